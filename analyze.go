package doctype

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Route is the decision procedure chosen for an upload.
type Route int

const (
	RouteOther Route = iota // no text extraction stage: generic document
	RouteImage              // image shape heuristic
)

func (r Route) String() string {
	if r == RouteImage {
		return "image"
	}
	return "other"
}

// imageExtensions are the file name suffixes routed to the shape classifier
// when no image/* media type is declared.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff"}

// RouteFor picks the classifier for an upload by declared media type, then
// by lowercased file name extension.
func RouteFor(fileName, fileType string) Route {
	if strings.HasPrefix(fileType, "image/") {
		return RouteImage
	}
	lower := strings.ToLower(fileName)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return RouteImage
		}
	}
	return RouteOther
}

// AnalyzeDocument returns a label for an uploaded file. fileType is the
// declared MIME type and may be empty. It never fails: decode errors and
// panics are logged and reported as unknown_document.
func (cfg *Config) AnalyzeDocument(fileData []byte, fileName, fileType string) Label {
	ev, _ := cfg.dispatch(fileData, fileName, fileType)
	return ev.Label
}

// AnalyzeDocument analyzes a file with the default configuration.
func AnalyzeDocument(fileData []byte, fileName, fileType string) Label {
	return defaultConfig.AnalyzeDocument(fileData, fileName, fileType)
}

// dispatch runs the routed classifier and reports the decision along with the
// probed header of image uploads.
func (cfg *Config) dispatch(fileData []byte, fileName, fileType string) (ev ClassificationEvent, shape ImageShape) {
	ev = ClassificationEvent{FileName: fileName, FileType: fileType, Label: LabelUnknownDocument}

	defer func() {
		if r := recover(); r != nil {
			cfg.panicked("analyzeDocument", r)
			cfg.logger().Warn("doctype: document analysis failed", "file", fileName, "panic", r)
			ev.Label = LabelUnknownDocument
			ev.Err = fmt.Errorf("panic: %v", r)
		}
		cfg.emit(ev)
	}()

	ev.Route = RouteFor(fileName, fileType)
	if ev.Route != RouteImage {
		ev.Label = LabelDocument
		cfg.logger().Debug("doctype: non-image upload", "file", fileName, "ext", filepath.Ext(fileName))
		return ev, shape
	}

	shape = ProbeImage(fileData)
	ev.Width, ev.Height, ev.Err = shape.Width, shape.Height, shape.Err
	if shape.Err != nil {
		cfg.logger().Warn("doctype: image decode failed", "file", fileName, "error", shape.Err.Error())
	}
	ev.Label = ClassifyShape(shape)
	cfg.logger().Debug("doctype: image classified", "file", fileName, "label", ev.Label,
		"width", shape.Width, "height", shape.Height)
	return ev, shape
}
