package doctype

import "errors"

var (
	ErrDecode            = errors.New("doctype: decode failed")
	ErrEncode            = errors.New("doctype: encode failed")
	ErrInvalidExamFormat = errors.New("doctype: invalid exam format")
	ErrUnknownExam       = errors.New("doctype: unknown exam")
	ErrNotPDF            = errors.New("doctype: not a PDF")
)
