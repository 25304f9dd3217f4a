package doctype

import (
	"errors"
	"testing"
)

func TestClassifyShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		shape ImageShape
		want  Label
	}{
		// Passport photo: 0.6 <= ratio <= 0.9 and width < 500.
		{name: "typical passport photo", shape: ImageShape{Width: 200, Height: 300}, want: LabelPassportPhoto},
		{name: "ratio exactly 0.6", shape: ImageShape{Width: 300, Height: 500}, want: LabelPassportPhoto},
		{name: "ratio exactly 0.9", shape: ImageShape{Width: 450, Height: 500}, want: LabelPassportPhoto},
		{name: "ratio just below 0.6", shape: ImageShape{Width: 299, Height: 500}, want: LabelDocument},
		{name: "ratio just above 0.9", shape: ImageShape{Width: 451, Height: 500}, want: LabelDocument},
		{name: "width 500 is too wide", shape: ImageShape{Width: 500, Height: 625}, want: LabelDocument},
		{name: "width 499 fits", shape: ImageShape{Width: 499, Height: 624}, want: LabelPassportPhoto},

		// Signature: ratio > 1.5 and height < 150.
		{name: "typical signature", shape: ImageShape{Width: 400, Height: 100}, want: LabelSignature},
		{name: "ratio exactly 1.5 is not a signature", shape: ImageShape{Width: 150, Height: 100}, want: LabelDocument},
		{name: "ratio just above 1.5", shape: ImageShape{Width: 151, Height: 100}, want: LabelSignature},
		{name: "very wide signature strip", shape: ImageShape{Width: 1200, Height: 60}, want: LabelSignature},
		{name: "height 150 is too tall", shape: ImageShape{Width: 600, Height: 150}, want: LabelDocument},

		// Everything else.
		{name: "square scan", shape: ImageShape{Width: 1000, Height: 1000}, want: LabelDocument},
		{name: "A4 portrait scan", shape: ImageShape{Width: 2480, Height: 3508}, want: LabelDocument},
		{name: "landscape scan", shape: ImageShape{Width: 3508, Height: 2480}, want: LabelDocument},

		// Failed probes.
		{name: "decode error", shape: ImageShape{Err: ErrDecode}, want: LabelUnknownDocument},
		{name: "zero height", shape: ImageShape{Width: 100}, want: LabelUnknownDocument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ClassifyShape(tc.shape)
			if got != tc.want {
				t.Errorf("ClassifyShape(%dx%d) = %q, want %q", tc.shape.Width, tc.shape.Height, got, tc.want)
			}
		})
	}
}

func TestProbeImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       []byte
		wantW      int
		wantH      int
		wantFormat string
	}{
		{name: "png", data: makePNG(200, 300), wantW: 200, wantH: 300, wantFormat: "png"},
		{name: "jpeg", data: makeJPEG(640, 480), wantW: 640, wantH: 480, wantFormat: "jpeg"},
		{name: "bmp", data: makeBMP(40, 20), wantW: 40, wantH: 20, wantFormat: "bmp"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ProbeImage(tc.data)
			if !got.OK() {
				t.Fatalf("ProbeImage: unexpected error %v", got.Err)
			}
			if got.Width != tc.wantW || got.Height != tc.wantH || got.Format != tc.wantFormat {
				t.Errorf("ProbeImage = %dx%d %s, want %dx%d %s",
					got.Width, got.Height, got.Format, tc.wantW, tc.wantH, tc.wantFormat)
			}
		})
	}
}

func TestProbeImage_Invalid(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, {}, []byte("not an image"), makePNG(10, 10)[:20]} {
		got := ProbeImage(data)
		if got.OK() {
			t.Errorf("ProbeImage(%q) OK, want error", data)
		}
		if !errors.Is(got.Err, ErrDecode) {
			t.Errorf("ProbeImage(%q).Err = %v, want ErrDecode", data, got.Err)
		}
		if got.AspectRatio() != 0 {
			t.Errorf("AspectRatio of failed probe = %v, want 0", got.AspectRatio())
		}
	}
}

func TestClassifyImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want Label
	}{
		{name: "passport-shaped png", data: makePNG(200, 300), want: LabelPassportPhoto},
		{name: "signature-shaped jpeg", data: makeJPEG(400, 100), want: LabelSignature},
		{name: "large square png", data: makePNG(800, 800), want: LabelDocument},
		{name: "corrupted bytes", data: []byte{0xff, 0xd8, 0xff, 0x00, 0x01}, want: LabelUnknownDocument},
		{name: "empty input", data: nil, want: LabelUnknownDocument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyImage(tc.data); got != tc.want {
				t.Errorf("ClassifyImage = %q, want %q", got, tc.want)
			}
		})
	}
}
