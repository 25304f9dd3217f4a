package doctype

import "strings"

// Keyword groups for ClassifyText, in evaluation order.
var (
	aadharKeywords     = []string{"uidai", "aadhar", "unique identification"}
	marksheetKeywords  = []string{"marksheet", "marks", "grade"}
	tenthKeywords      = []string{"10th", "ssc", "secondary"}
	twelfthKeywords    = []string{"12th", "hsc", "higher secondary"}
	communityKeywords  = []string{"community", "caste", "obc", "sc", "st"}
	passportKeywords   = []string{"passport", "republic of india"}
	voterKeywords      = []string{"voter", "election", "epic"}
	drivingLicKeywords = []string{"driving", "license", "dl"}
)

const (
	certificateKeyword = "certificate"
	incomeKeyword      = "income"
	birthKeyword       = "birth"
)

// ClassifyText labels already-extracted document text by ordered,
// case-insensitive substring checks. The first matching group wins, so text
// mentioning both "aadhar" and "certificate" is an aadhar_card.
//
// Short keywords such as "sc", "st" and "dl" match inside longer words.
func ClassifyText(text string) Label {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, aadharKeywords):
		return LabelAadharCard
	case containsAny(lower, marksheetKeywords):
		return classifyMarksheet(lower)
	case strings.Contains(lower, certificateKeyword):
		return classifyCertificate(lower)
	case containsAny(lower, passportKeywords):
		return LabelPassport
	case containsAny(lower, voterKeywords):
		return LabelVoterID
	case containsAny(lower, drivingLicKeywords):
		return LabelDrivingLicense
	default:
		return LabelUnknownDocument
	}
}

// classifyMarksheet picks the board level. "higher secondary" also contains
// "secondary", so 12th-only text phrased that way reports 10th_marksheet.
func classifyMarksheet(lower string) Label {
	switch {
	case containsAny(lower, tenthKeywords):
		return Label10thMarksheet
	case containsAny(lower, twelfthKeywords):
		return Label12thMarksheet
	default:
		return LabelMarksheet
	}
}

func classifyCertificate(lower string) Label {
	switch {
	case containsAny(lower, communityKeywords):
		return LabelCommunityCertificate
	case strings.Contains(lower, incomeKeyword):
		return LabelIncomeCertificate
	case strings.Contains(lower, birthKeyword):
		return LabelBirthCertificate
	default:
		return LabelCertificate
	}
}
