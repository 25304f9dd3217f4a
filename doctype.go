// Package doctype classifies uploaded exam-application documents (identity
// cards, marksheets, certificates, passport photos, signatures) with cheap
// heuristics and prepares them for an exam portal's upload rules.
//
// Classification is advisory: every classifier returns a label and never an
// error. Decode failures and unexpected panics degrade to LabelUnknownDocument.
package doctype

import "log/slog"

const (
	// DefaultConcurrency bounds the number of uploads analyzed at once by AnalyzeBatch.
	DefaultConcurrency = 4

	// DefaultJPEGQuality is the encoder quality used by ConvertDocument.
	DefaultJPEGQuality = 90
)

// ClassificationEvent describes one dispatch decision. It is passed to
// Config.OnClassification for audit logging.
type ClassificationEvent struct {
	FileName string
	FileType string
	Route    Route
	Label    Label
	Width    int   // 0 unless the image route decoded a header
	Height   int   // 0 unless the image route decoded a header
	Err      error // decode failure or recovered panic, if any
}

// Config holds the tables and hooks used by the analyzer. The zero value is
// ready to use; nil tables fall back to the built-in defaults.
type Config struct {
	Rules []DocumentTypeRule // default: DefaultRules()
	Exams []ExamFormat       // default: DefaultExamFormats()

	Concurrency    int // AnalyzeBatch worker limit (default: DefaultConcurrency)
	DedupThreshold int // max dHash distance for duplicates (default: 10)
	JPEGQuality    int // ConvertDocument output quality (default: DefaultJPEGQuality)

	Logger *slog.Logger // nil = slog.Default()

	// Optional callbacks for metrics/logging.
	OnPanic          func(tag string, r any)
	OnClassification func(ClassificationEvent)
}

// Built-in tables shared by every Config that leaves Rules or Exams nil.
// They are never mutated; callers get copies from DefaultRules and DefaultExamFormats.
var (
	builtinRules = DefaultRules()
	builtinExams = DefaultExamFormats()
)

// defaultConfig backs the package-level helpers. It is built once and never mutated.
var defaultConfig = newDefaultConfig()

func newDefaultConfig() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// withDefaults returns a copy of cfg with zero-value fields filled in, so that
// methods never write to a Config shared between goroutines.
func (cfg *Config) withDefaults() *Config {
	if cfg == nil {
		return defaultConfig
	}
	c := *cfg
	c.defaults()
	return &c
}

func (cfg *Config) defaults() {
	if cfg.Rules == nil {
		cfg.Rules = builtinRules
	}
	if cfg.Exams == nil {
		cfg.Exams = builtinExams
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.DedupThreshold <= 0 {
		cfg.DedupThreshold = defaultDedupThreshold
	}
	if cfg.JPEGQuality <= 0 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = DefaultJPEGQuality
	}
}

func (cfg *Config) logger() *slog.Logger {
	if cfg != nil && cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.Default()
}

// emit reports ev to the audit hook. A panicking hook does not affect the result.
func (cfg *Config) emit(ev ClassificationEvent) {
	if cfg == nil || cfg.OnClassification == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			cfg.panicked("onClassification", r)
		}
	}()
	cfg.OnClassification(ev)
}

func (cfg *Config) panicked(tag string, r any) {
	if cfg != nil && cfg.OnPanic != nil {
		cfg.OnPanic(tag, r)
	}
}
