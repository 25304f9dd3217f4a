package doctype

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IssueKind identifies which exam rule an upload breaks.
type IssueKind string

const (
	IssueTooLarge      IssueKind = "too_large"
	IssueFormat        IssueKind = "format"
	IssueDimensions    IssueKind = "dimensions"
	IssueUnreadable    IssueKind = "unreadable"
	IssueLowResolution IssueKind = "low_resolution"
)

// Issue is a single problem found by CheckUpload.
type Issue struct {
	Kind   IssueKind
	Detail string // human-readable detail
}

// formatAliases maps file extensions and MIME subtypes to the format names
// used in ExamRequirements.DocumentFormats.
var formatAliases = map[string]string{
	"jpg":  "JPEG",
	"jpeg": "JPEG",
	"png":  "PNG",
	"pdf":  "PDF",
	"bmp":  "BMP",
	"tif":  "TIFF",
	"tiff": "TIFF",
	"gif":  "GIF",
	"webp": "WEBP",
}

// UploadFormat names the format of an upload, preferring the declared MIME
// subtype over the file extension. Returns "" if neither is recognised.
func UploadFormat(up Upload) string {
	if _, sub, ok := strings.Cut(strings.ToLower(up.Type), "/"); ok {
		if idx := strings.IndexByte(sub, ';'); idx >= 0 {
			sub = strings.TrimSpace(sub[:idx])
		}
		if f, ok := formatAliases[sub]; ok {
			return f
		}
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(up.Name)), ".")
	return formatAliases[ext]
}

// CheckUpload reports every way an upload labelled label breaks the exam's
// rules. Photos and signatures must match the required size exactly, which
// ConvertDocument produces. An empty result means the upload is acceptable.
func CheckUpload(exam ExamFormat, up Upload, label Label) []Issue {
	req := exam.Requirements
	issues := make([]Issue, 0, 2) //nolint:mnd // typical worst case

	if req.MaxFileSize > 0 && int64(len(up.Data)) > req.MaxFileSize {
		issues = append(issues, Issue{
			Kind:   IssueTooLarge,
			Detail: fmt.Sprintf("%d bytes exceeds %s limit of %d bytes", len(up.Data), exam.Name, req.MaxFileSize),
		})
	}

	if format := UploadFormat(up); !acceptsFormat(req.DocumentFormats, format) {
		issues = append(issues, Issue{
			Kind:   IssueFormat,
			Detail: fmt.Sprintf("format %q not in %v", format, req.DocumentFormats),
		})
	}

	var want SizeRequirement
	switch label {
	case LabelPassportPhoto:
		want = req.PhotoSize
	case LabelSignature:
		want = req.SignatureSize
	default:
		return issues
	}

	shape := ProbeImage(up.Data)
	if !shape.OK() {
		return append(issues, Issue{Kind: IssueUnreadable, Detail: shape.Err.Error()})
	}
	if shape.Width != want.Width || shape.Height != want.Height {
		issues = append(issues, Issue{
			Kind:   IssueDimensions,
			Detail: fmt.Sprintf("%s is %dx%d, want %dx%d", label, shape.Width, shape.Height, want.Width, want.Height),
		})
	}
	if dpi := extractMetadata(up.Data, shape.Format).DPI(); dpi > 0 && want.DPI > 0 && dpi < want.DPI {
		issues = append(issues, Issue{
			Kind:   IssueLowResolution,
			Detail: fmt.Sprintf("%s is %d dpi, want %d", label, dpi, want.DPI),
		})
	}
	return issues
}

func acceptsFormat(allowed []string, format string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(a, format) {
			return true
		}
		// "JPG" in hand-written exam tables means JPEG.
		if strings.EqualFold(a, "jpg") && format == "JPEG" {
			return true
		}
	}
	return false
}

// MissingDocuments returns the exam's required labels that none of the
// given labels satisfy, in requirement order. A community certificate
// satisfies the category certificate requirement.
func MissingDocuments(exam ExamFormat, labels []Label) []Label {
	have := make(map[Label]bool, len(labels))
	for _, l := range labels {
		have[l] = true
		if l == LabelCommunityCertificate {
			have[LabelCategoryCertificate] = true
		}
	}

	var missing []Label
	for _, req := range exam.Requirements.RequiredDocuments {
		if !have[req] {
			missing = append(missing, req)
		}
	}
	return missing
}
