package doctype

import (
	"bytes"
	"strings"

	"github.com/bep/imagemeta"
)

// DocumentMetadata holds the EXIF and XMP fields that hint at how an upload
// was produced (scanner software, camera, embedded title) and its resolution.
type DocumentMetadata struct {
	Software         string
	Make             string
	Model            string
	ImageDescription string
	Artist           string
	XMPCreator       string
	XMPTitle         string
	XMPDescription   string
	XResolution      float64
	YResolution      float64
	ResolutionUnit   int // 2 = inch, 3 = centimetre (EXIF)
}

// DPI returns the horizontal resolution in dots per inch, or 0 if unknown.
func (m *DocumentMetadata) DPI() int {
	if m == nil || m.XResolution <= 0 {
		return 0
	}
	const cmPerInch = 2.54
	if m.ResolutionUnit == 3 { //nolint:mnd // EXIF centimetre unit
		return int(m.XResolution*cmPerInch + 0.5)
	}
	return int(m.XResolution + 0.5)
}

// Text joins the free-text fields, lowercased, for keyword hints.
func (m *DocumentMetadata) Text() string {
	if m == nil {
		return ""
	}
	parts := make([]string, 0, 8) //nolint:mnd // number of text fields
	for _, f := range []string{
		m.Software, m.Make, m.Model, m.ImageDescription,
		m.Artist, m.XMPCreator, m.XMPTitle, m.XMPDescription,
	} {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// metaFormats maps image.DecodeConfig format names to imagemeta formats.
// Formats without EXIF/XMP support (gif, bmp) are absent.
var metaFormats = map[string]imagemeta.ImageFormat{
	"jpeg": imagemeta.JPEG,
	"png":  imagemeta.PNG,
	"tiff": imagemeta.TIFF,
	"webp": imagemeta.WebP,
}

var wantedTags = map[imagemeta.Source]map[string]bool{
	imagemeta.EXIF: {
		"Software":         true,
		"Make":             true,
		"Model":            true,
		"ImageDescription": true,
		"Artist":           true,
		"XResolution":      true,
		"YResolution":      true,
		"ResolutionUnit":   true,
	},
	imagemeta.XMP: {
		"Creator":     true,
		"Title":       true,
		"Description": true,
	},
}

// ExtractImageMetadata parses EXIF/XMP metadata from raw image bytes.
// Returns nil if the data is empty, unparsable, or carries none of the
// wanted tags. Never returns an error.
func ExtractImageMetadata(data []byte) *DocumentMetadata {
	if len(data) == 0 {
		return nil
	}
	return extractMetadata(data, ProbeImage(data).Format)
}

// extractMetadata is ExtractImageMetadata for an already probed format name.
func extractMetadata(data []byte, formatName string) (meta *DocumentMetadata) {
	format, ok := metaFormats[formatName]
	if !ok {
		return nil
	}

	// imagemeta is fed untrusted uploads.
	defer func() {
		if r := recover(); r != nil {
			meta = nil
		}
	}()

	m := &DocumentMetadata{}
	found := false

	_, err := imagemeta.Decode(imagemeta.Options{
		R:           bytes.NewReader(data),
		ImageFormat: format,
		Sources:     imagemeta.EXIF | imagemeta.XMP,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			if tags, ok := wantedTags[ti.Source]; ok {
				return tags[ti.Tag]
			}
			return false
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			switch ti.Source {
			case imagemeta.EXIF:
				handleEXIFTag(m, ti, &found)
			case imagemeta.XMP:
				handleXMPTag(m, ti, &found)
			}
			return nil
		},
	})

	if err != nil || !found {
		return nil
	}
	return m
}

func handleEXIFTag(m *DocumentMetadata, ti imagemeta.TagInfo, found *bool) {
	switch ti.Tag {
	case "XResolution":
		if f := tagValueFloat(ti.Value); f > 0 {
			m.XResolution = f
			*found = true
		}
		return
	case "YResolution":
		if f := tagValueFloat(ti.Value); f > 0 {
			m.YResolution = f
			*found = true
		}
		return
	case "ResolutionUnit":
		if f := tagValueFloat(ti.Value); f > 0 {
			m.ResolutionUnit = int(f)
			*found = true
		}
		return
	}

	s := tagValueString(ti.Value)
	if s == "" {
		return
	}
	switch ti.Tag {
	case "Software":
		m.Software = s
	case "Make":
		m.Make = s
	case "Model":
		m.Model = s
	case "ImageDescription":
		m.ImageDescription = s
	case "Artist":
		m.Artist = s
	default:
		return
	}
	*found = true
}

func handleXMPTag(m *DocumentMetadata, ti imagemeta.TagInfo, found *bool) {
	s := tagValueString(ti.Value)
	if s == "" {
		return
	}
	switch ti.Tag {
	case "Creator":
		m.XMPCreator = s
	case "Title":
		m.XMPTitle = s
	case "Description":
		m.XMPDescription = s
	default:
		return
	}
	*found = true
}

// tagValueString extracts a string from a tag value.
// XMP values may be string or []string (from altList/seqList).
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []string:
		if len(val) > 0 {
			return strings.TrimSpace(val[0])
		}
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// tagValueFloat extracts a number from an EXIF value. Rationals are exposed
// by imagemeta as values with a Float64 method.
func tagValueFloat(v any) float64 {
	switch val := v.(type) {
	case interface{ Float64() float64 }:
		return val.Float64()
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint16:
		return float64(val)
	case uint32:
		return float64(val)
	case []any:
		if len(val) > 0 {
			return tagValueFloat(val[0])
		}
	}
	return 0
}
