package doctype

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// Enhancement constants applied by ConvertDocument.
const (
	photoBrighten      = 10
	documentBrighten   = 5
	documentContrast   = 10.0
	signatureContrast  = 20.0
	signatureThreshold = 128
)

// ConvertDocument re-encodes an upload as JPEG in the shape the exam expects:
//   - passport_photo: resized exactly to PhotoSize and slightly brightened;
//   - signature: grayscale, resized to SignatureSize, contrast boosted and
//     thresholded to pure black and white;
//   - anything else: original size, brightened and contrast boosted.
//
// Unlike the classifiers, conversion reports failures: ErrDecode when data is
// not a supported image, ErrEncode when JPEG encoding fails.
func (cfg *Config) ConvertDocument(data []byte, label Label, exam ExamFormat) ([]byte, error) {
	cfg = cfg.withDefaults()

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	var out image.Image
	switch label {
	case LabelPassportPhoto:
		out = convertPassportPhoto(src, exam.Requirements.PhotoSize)
	case LabelSignature:
		out = convertSignature(src, exam.Requirements.SignatureSize)
	default:
		out = convertGenericDocument(src)
	}

	cfg.logger().Debug("doctype: converted document", "label", label, "exam", exam.ID,
		"width", out.Bounds().Dx(), "height", out.Bounds().Dy())

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: cfg.JPEGQuality}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// ConvertDocument converts with the default configuration.
func ConvertDocument(data []byte, label Label, exam ExamFormat) ([]byte, error) {
	return defaultConfig.ConvertDocument(data, label, exam)
}

// flatten composites src over an opaque white page so that transparent
// backgrounds stay white once alpha is dropped.
func flatten(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

func convertPassportPhoto(src image.Image, size SizeRequirement) image.Image {
	dst := resizeExact(flatten(src), size.Width, size.Height)
	brighten(dst, photoBrighten)
	return dst
}

func convertSignature(src image.Image, size SizeRequirement) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), flatten(src), image.Point{}, draw.Src)

	w, h := positive(size.Width, src.Bounds().Dx()), positive(size.Height, src.Bounds().Dy())
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Src, nil)

	lut := contrastTable(signatureContrast)
	for i, v := range dst.Pix {
		if lut[v] > signatureThreshold {
			dst.Pix[i] = 255
		} else {
			dst.Pix[i] = 0
		}
	}
	return dst
}

func convertGenericDocument(src image.Image) image.Image {
	dst := flatten(src)
	brighten(dst, documentBrighten)
	adjustContrast(dst, documentContrast)
	return dst
}

// resizeExact scales src to w×h with Catmull-Rom resampling, ignoring the
// aspect ratio. Non-positive sizes keep the source dimension.
func resizeExact(src image.Image, w, h int) *image.NRGBA {
	w, h = positive(w, src.Bounds().Dx()), positive(h, src.Bounds().Dy())
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// brighten adds delta to every color channel, clamping to [0, 255].
func brighten(img *image.NRGBA, delta int) {
	for i := 0; i < len(img.Pix); i += 4 {
		for c := range 3 {
			img.Pix[i+c] = clamp8(int(img.Pix[i+c]) + delta)
		}
	}
}

// adjustContrast scales every color channel away from mid-grey. percent is
// the contrast change: 10 means +10%.
func adjustContrast(img *image.NRGBA, percent float64) {
	lut := contrastTable(percent)
	for i := 0; i < len(img.Pix); i += 4 {
		for c := range 3 {
			img.Pix[i+c] = lut[img.Pix[i+c]]
		}
	}
}

// contrastTable maps each level v to (v-127.5)*((100+percent)/100)^2+127.5,
// clamped and truncated.
func contrastTable(percent float64) [256]uint8 {
	const mid = 255.0 / 2
	factor := (100 + percent) / 100
	factor *= factor

	var lut [256]uint8
	for v := range lut {
		lut[v] = clamp8(int((float64(v)-mid)*factor + mid))
	}
	return lut
}

func clamp8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

func positive(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
