// Package comparisons runs paragraph-level and package-level comparisons of
// uploaded .docx documents, either pairwise or against a stored template.
package comparisons

import (
	"github.com/JaimeStill/formatdiff/internal/templates"
	"github.com/JaimeStill/formatdiff/pkg/docx"
	"github.com/JaimeStill/formatdiff/pkg/paragraphs"
)

// Upload is one received document.
type Upload struct {
	Filename string
	Data     []byte
}

// Report is the outcome of comparing two documents. Template is set when the
// left side is a stored template.
type Report struct {
	Template   *templates.Template     `json:"template,omitempty"`
	Paragraphs *paragraphs.Result      `json:"paragraphs"`
	Package    *docx.PackageComparison `json:"package"`
}
