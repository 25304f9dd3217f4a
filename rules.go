package doctype

import (
	"regexp"
	"strings"
)

// Label is a document category returned by the classifiers. The vocabulary is
// open: callers should not assume the constants below are exhaustive.
type Label = string

const (
	LabelPassportPhoto         Label = "passport_photo"
	LabelSignature             Label = "signature"
	LabelDocument              Label = "document"         // generic fallback
	LabelUnknownDocument       Label = "unknown_document" // nothing matched or analysis failed
	LabelAadharCard            Label = "aadhar_card"
	Label10thMarksheet         Label = "10th_marksheet"
	Label12thMarksheet         Label = "12th_marksheet"
	LabelMarksheet             Label = "marksheet"
	LabelCommunityCertificate  Label = "community_certificate"
	LabelIncomeCertificate     Label = "income_certificate"
	LabelBirthCertificate      Label = "birth_certificate"
	LabelCertificate           Label = "certificate"
	LabelPassport              Label = "passport"
	LabelVoterID               Label = "voter_id"
	LabelDrivingLicense        Label = "driving_license"
	LabelCategoryCertificate   Label = "category_certificate"
	LabelGraduationCertificate Label = "graduation_certificate"
)

// RatioRange is an inclusive width/height interval.
type RatioRange struct {
	Min, Max float64
}

// Contains reports whether min <= r <= max.
func (rr RatioRange) Contains(r float64) bool {
	return r >= rr.Min && r <= rr.Max
}

// DocumentTypeRule describes the traits of one document category.
//
// The shape and keyword classifiers use hard-coded thresholds and do not read
// Keywords or Patterns. Those fields feed only the advisory Hints reported by
// AnalyzeDocumentFull.
type DocumentTypeRule struct {
	Name        Label
	AspectRatio *RatioRange // nil = no shape constraint
	MaxWidth    int         // 0 = unbounded
	MaxHeight   int         // 0 = unbounded
	Keywords    []string    // lowercase substrings
	Patterns    []*regexp.Regexp
}

// Shape thresholds shared by the rule table and ClassifyShape.
const (
	passportMaxWidth   = 500
	signatureMaxHeight = 150
)

var (
	aadharNumberRe = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	boardPatternRe = regexp.MustCompile(`10th|12th|ssc|hsc|cbse|icse`)

	passportRatio  = RatioRange{Min: 0.6, Max: 0.9}
	signatureRatio = RatioRange{Min: 1.5, Max: 4.0}
)

// DefaultRules returns a fresh copy of the built-in rule table.
func DefaultRules() []DocumentTypeRule {
	pr, sr := passportRatio, signatureRatio
	return []DocumentTypeRule{
		{
			Name:        LabelPassportPhoto,
			AspectRatio: &pr,
			MaxWidth:    passportMaxWidth,
			Keywords:    []string{"photo", "passport", "picture"},
		},
		{
			Name:        LabelSignature,
			AspectRatio: &sr,
			MaxHeight:   signatureMaxHeight,
			Keywords:    []string{"signature", "sign", "signed"},
		},
		{
			Name:     LabelAadharCard,
			Keywords: []string{"uidai", "aadhar", "unique identification"},
			Patterns: []*regexp.Regexp{aadharNumberRe},
		},
		{
			Name:     LabelMarksheet,
			Keywords: []string{"marksheet", "marks", "grade", "certificate", "board", "university"},
			Patterns: []*regexp.Regexp{boardPatternRe},
		},
		{
			Name:     LabelCertificate,
			Keywords: []string{"certificate", "certify", "issued", "authority"},
		},
	}
}

// containsAny reports whether lower contains any of the substrings.
// Matching is deliberately plain substring search: "sc" matches "discharge".
func containsAny(lower string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
