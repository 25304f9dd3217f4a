package doctype

// Analysis is the detailed result of AnalyzeDocumentFull. Label is always the
// same value AnalyzeDocument returns; the other fields are advisory.
type Analysis struct {
	Label     Label
	Route     Route
	Size      int
	Shape     ImageShape        // zero unless Route == RouteImage
	Metadata  *DocumentMetadata // EXIF/XMP of image uploads, nil if none
	PageCount int               // pages of a PDF upload, 0 otherwise
	Hints     []Label           // rules whose keywords or patterns occur in the metadata text
}

// AnalyzeDocumentFull classifies an upload like AnalyzeDocument and also
// collects image metadata, PDF page count, and rule hints. It never fails.
func (cfg *Config) AnalyzeDocumentFull(fileData []byte, fileName, fileType string) Analysis {
	cfg = cfg.withDefaults()

	ev, shape := cfg.dispatch(fileData, fileName, fileType)
	a := Analysis{
		Label: ev.Label,
		Route: ev.Route,
		Size:  len(fileData),
	}

	if a.Route == RouteImage {
		a.Shape = shape
		a.Metadata = extractMetadata(fileData, shape.Format)
		a.Hints = MatchRules(cfg.Rules, a.Metadata.Text())
		return a
	}

	if IsPDF(fileData) {
		n, err := PDFPageCount(fileData)
		if err != nil {
			cfg.logger().Debug("doctype: pdf page count failed", "file", fileName, "error", err.Error())
		}
		a.PageCount = n
	}
	return a
}

// AnalyzeDocumentFull analyzes a file with the default configuration.
func AnalyzeDocumentFull(fileData []byte, fileName, fileType string) Analysis {
	return defaultConfig.AnalyzeDocumentFull(fileData, fileName, fileType)
}

// MatchRules returns the names of rules whose keywords or patterns occur in
// lowercased text, in rule order.
func MatchRules(rules []DocumentTypeRule, lower string) []Label {
	if lower == "" {
		return nil
	}
	var hits []Label
	for _, r := range rules {
		if containsAny(lower, r.Keywords) || matchesAny(lower, r) {
			hits = append(hits, r.Name)
		}
	}
	return hits
}

func matchesAny(lower string, r DocumentTypeRule) bool {
	for _, re := range r.Patterns {
		if re != nil && re.MatchString(lower) {
			return true
		}
	}
	return false
}
