package docx

import "errors"

var (
	ErrNotDocx      = errors.New("file is not a docx package")
	ErrMissingPart  = errors.New("docx package part missing")
	ErrMalformedXML = errors.New("docx part is not well-formed xml")
)
