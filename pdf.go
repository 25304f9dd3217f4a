package doctype

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfMagic = []byte("%PDF-")

var disablePDFConfigDir sync.Once

// IsPDF reports whether data starts with a PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// PDFPageCount returns the number of pages in a PDF upload. The document is
// only parsed and validated; no text is extracted.
func PDFPageCount(data []byte) (n int, err error) {
	if !IsPDF(data) {
		return 0, ErrNotPDF
	}

	// pdfcpu otherwise creates a config directory under the user's home.
	disablePDFConfigDir.Do(api.DisableConfigDir)

	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: pdf parser panic: %v", ErrDecode, r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	n, err = api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return n, nil
}
