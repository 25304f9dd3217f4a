package doctype

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var errNotDataURL = errors.New("not a base64 data: URL")

// UploadFromDataURL builds an Upload from a browser data: URL such as
// "data:image/png;base64,iVBOR...". The MIME type becomes Upload.Type.
func UploadFromDataURL(name, dataURL string) (Upload, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return Upload{}, fmt.Errorf("%w: %w", ErrDecode, errNotDataURL)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Upload{}, fmt.Errorf("%w: %w", ErrDecode, errNotDataURL)
	}
	mimeType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return Upload{}, fmt.Errorf("%w: %w", ErrDecode, errNotDataURL)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return Upload{Name: name, Type: mimeType, Data: data}, nil
}

// EncodeDataURL creates a data: URI from bytes and MIME type.
func EncodeDataURL(data []byte, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
