package doctype

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// errEmptyImage is reported when a header decodes to a zero-sized image.
var errEmptyImage = errors.New("image has no pixels")

// ImageShape is the outcome of probing an image header: either the decoded
// dimensions or the reason decoding failed.
type ImageShape struct {
	Width  int
	Height int
	Format string // "jpeg", "png", "gif", "bmp", "tiff", "webp"
	Err    error  // non-nil when the bytes are not a supported image
}

// OK reports whether the header decoded to usable dimensions.
func (s ImageShape) OK() bool {
	return s.Err == nil && s.Width > 0 && s.Height > 0
}

// AspectRatio returns width/height, or 0 if the shape is not OK.
func (s ImageShape) AspectRatio() float64 {
	if !s.OK() {
		return 0
	}
	return float64(s.Width) / float64(s.Height)
}

// ProbeImage decodes only the image header. It never panics on malformed
// input; failures are carried in ImageShape.Err wrapping ErrDecode.
func ProbeImage(data []byte) ImageShape {
	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageShape{Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}
	shape := ImageShape{Width: imgCfg.Width, Height: imgCfg.Height, Format: format}
	if shape.Width <= 0 || shape.Height <= 0 {
		shape.Err = fmt.Errorf("%w: %w", ErrDecode, errEmptyImage)
	}
	return shape
}

// ClassifyShape maps decoded dimensions to a label. First match wins:
//   - 0.6 <= w/h <= 0.9 and w < 500 → passport_photo
//   - w/h > 1.5 and h < 150         → signature
//   - otherwise                     → document
//
// A failed probe yields unknown_document.
func ClassifyShape(s ImageShape) Label {
	if !s.OK() {
		return LabelUnknownDocument
	}
	ratio := s.AspectRatio()

	if passportRatio.Contains(ratio) && s.Width < passportMaxWidth {
		return LabelPassportPhoto
	}
	if ratio > signatureRatio.Min && s.Height < signatureMaxHeight {
		return LabelSignature
	}
	return LabelDocument
}

// ClassifyImage probes data and classifies it by shape.
// Returns unknown_document if data is not a decodable image.
func (cfg *Config) ClassifyImage(data []byte) Label {
	shape := ProbeImage(data)
	if shape.Err != nil {
		cfg.logger().Warn("doctype: image decode failed", "bytes", len(data), "error", shape.Err.Error())
	}
	return ClassifyShape(shape)
}

// ClassifyImage classifies image bytes with the default configuration.
func ClassifyImage(data []byte) Label {
	return defaultConfig.ClassifyImage(data)
}
