package doctype

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// SizeRequirement is the exact output size an exam portal expects for a
// photo or signature.
type SizeRequirement struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	DPI    int    `yaml:"dpi"`
	Format string `yaml:"format"`
}

// ExamRequirements lists an exam's upload rules.
type ExamRequirements struct {
	PhotoSize         SizeRequirement `yaml:"photoSize"`
	SignatureSize     SizeRequirement `yaml:"signatureSize"`
	DocumentFormats   []string        `yaml:"documentFormats"` // e.g. "PDF", "JPEG", "PNG"
	MaxFileSize       int64           `yaml:"maxFileSize"`     // bytes, 0 = unlimited
	RequiredDocuments []Label         `yaml:"requiredDocuments"`
}

// ExamFormat is a named exam and its upload rules.
type ExamFormat struct {
	ID           string           `yaml:"id"`
	Name         string           `yaml:"name"`
	Requirements ExamRequirements `yaml:"requirements"`
}

const (
	kib = 1024
	mib = 1024 * kib
)

var (
	signature140x60At200 = SizeRequirement{Width: 140, Height: 60, DPI: 200, Format: "JPEG"}
	signature140x60At300 = SizeRequirement{Width: 140, Height: 60, DPI: 300, Format: "JPEG"}
	standardFormats      = []string{"PDF", "JPEG", "PNG"}
)

// DefaultExamFormats returns a fresh copy of the built-in exam table
// (NEET, JEE, UPSC, CAT, GATE).
func DefaultExamFormats() []ExamFormat {
	school := func() []Label {
		return []Label{
			LabelPassportPhoto, LabelSignature, Label10thMarksheet, Label12thMarksheet,
			LabelCategoryCertificate, LabelAadharCard,
		}
	}
	graduate := func() []Label {
		return []Label{
			LabelPassportPhoto, LabelSignature, Label10thMarksheet, Label12thMarksheet,
			LabelGraduationCertificate, LabelCategoryCertificate, LabelAadharCard,
		}
	}
	formats := func() []string { return append([]string(nil), standardFormats...) }

	return []ExamFormat{
		{ID: "neet", Name: "NEET", Requirements: ExamRequirements{
			PhotoSize:         SizeRequirement{Width: 200, Height: 230, DPI: 200, Format: "JPEG"},
			SignatureSize:     signature140x60At200,
			DocumentFormats:   formats(),
			MaxFileSize:       1 * mib,
			RequiredDocuments: school(),
		}},
		{ID: "jee", Name: "JEE", Requirements: ExamRequirements{
			PhotoSize:         SizeRequirement{Width: 180, Height: 240, DPI: 300, Format: "JPEG"},
			SignatureSize:     signature140x60At300,
			DocumentFormats:   formats(),
			MaxFileSize:       500 * kib,
			RequiredDocuments: school(),
		}},
		{ID: "upsc", Name: "UPSC", Requirements: ExamRequirements{
			PhotoSize:         SizeRequirement{Width: 300, Height: 400, DPI: 300, Format: "JPEG"},
			SignatureSize:     signature140x60At300,
			DocumentFormats:   formats(),
			MaxFileSize:       2 * mib,
			RequiredDocuments: graduate(),
		}},
		{ID: "cat", Name: "CAT", Requirements: ExamRequirements{
			PhotoSize:         SizeRequirement{Width: 240, Height: 320, DPI: 200, Format: "JPEG"},
			SignatureSize:     signature140x60At200,
			DocumentFormats:   formats(),
			MaxFileSize:       1 * mib,
			RequiredDocuments: graduate(),
		}},
		{ID: "gate", Name: "GATE", Requirements: ExamRequirements{
			PhotoSize:         SizeRequirement{Width: 240, Height: 320, DPI: 200, Format: "JPEG"},
			SignatureSize:     signature140x60At200,
			DocumentFormats:   formats(),
			MaxFileSize:       1 * mib,
			RequiredDocuments: graduate(),
		}},
	}
}

// examFile is the YAML document shape accepted by LoadExamFormats.
type examFile struct {
	Exams []ExamFormat `yaml:"exams"`
}

// LoadExamFormats parses a YAML exam table of the form
//
//	exams:
//	  - id: neet
//	    name: NEET
//	    requirements:
//	      photoSize: {width: 200, height: 230, dpi: 200, format: JPEG}
//	      ...
//
// Every exam is validated; the first problem is returned wrapping ErrInvalidExamFormat.
func LoadExamFormats(r io.Reader) ([]ExamFormat, error) {
	var f examFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidExamFormat)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidExamFormat, err)
	}
	if len(f.Exams) == 0 {
		return nil, fmt.Errorf("%w: no exams defined", ErrInvalidExamFormat)
	}

	seen := make(map[string]bool, len(f.Exams))
	for i := range f.Exams {
		e := &f.Exams[i]
		e.ID = strings.ToLower(strings.TrimSpace(e.ID))
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: duplicate exam id %q", ErrInvalidExamFormat, e.ID)
		}
		seen[e.ID] = true
	}
	return f.Exams, nil
}

// Validate checks that an exam has an ID and positive photo/signature sizes.
func (e ExamFormat) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidExamFormat)
	}
	sizes := []struct {
		name string
		size SizeRequirement
	}{
		{"photoSize", e.Requirements.PhotoSize},
		{"signatureSize", e.Requirements.SignatureSize},
	}
	for _, s := range sizes {
		if s.size.Width <= 0 || s.size.Height <= 0 {
			return fmt.Errorf("%w: exam %q: %s must have positive width and height", ErrInvalidExamFormat, e.ID, s.name)
		}
	}
	if e.Requirements.MaxFileSize < 0 {
		return fmt.Errorf("%w: exam %q: negative maxFileSize", ErrInvalidExamFormat, e.ID)
	}
	return nil
}

// LookupExam finds an exam by case-insensitive ID in cfg.Exams.
func (cfg *Config) LookupExam(id string) (ExamFormat, error) {
	cfg = cfg.withDefaults()
	want := strings.ToLower(strings.TrimSpace(id))
	for _, e := range cfg.Exams {
		if strings.ToLower(e.ID) == want {
			return e, nil
		}
	}
	return ExamFormat{}, fmt.Errorf("%w: %q", ErrUnknownExam, id)
}

// LookupExam finds a built-in exam by ID.
func LookupExam(id string) (ExamFormat, error) {
	return defaultConfig.LookupExam(id)
}
