// Package paragraphs compares two parsed documents paragraph by paragraph.
//
// Paragraphs are aligned by position, each fully paired position is diffed
// across seven tracked attributes (text, style, justification, tab count,
// line-break count, indentation and spacing), every position is classified as
// unchanged, modified, added or removed, and the classifications are tallied.
// The package performs no I/O and holds no package-level mutable state, so
// concurrent comparisons never interfere.
package paragraphs

// ParagraphRecord is the normalized structure of one paragraph: its text and
// the formatting attributes tracked for comparison. Nil optional fields take
// their documented defaults when compared.
type ParagraphRecord struct {
	Index         int      `json:"index"`
	Text          string   `json:"text"`
	StyleID       *string  `json:"style_id"`
	Justification *string  `json:"jc"`
	TabCount      *int     `json:"tab_count"`
	BreakCount    *int     `json:"br_count"`
	Indent        *Indent  `json:"indent"`
	Spacing       *Spacing `json:"spacing"`
}

// DocumentRecord is the ordered paragraph sequence of one parsed document.
// TotalParagraphs must equal len(Paragraphs).
type DocumentRecord struct {
	Filename        string            `json:"filename"`
	Paragraphs      []ParagraphRecord `json:"paragraphs"`
	TotalParagraphs int               `json:"total_paragraphs"`
}

// NewDocumentRecord builds a DocumentRecord with a consistent paragraph count.
func NewDocumentRecord(filename string, paragraphs []ParagraphRecord) *DocumentRecord {
	if paragraphs == nil {
		paragraphs = []ParagraphRecord{}
	}
	return &DocumentRecord{
		Filename:        filename,
		Paragraphs:      paragraphs,
		TotalParagraphs: len(paragraphs),
	}
}

// DocumentSummary identifies one side of a comparison for display.
type DocumentSummary struct {
	Filename        string `json:"filename"`
	TotalParagraphs int    `json:"total_paragraphs"`
}

// Summary returns the display header of the document.
func (d *DocumentRecord) Summary() DocumentSummary {
	return DocumentSummary{
		Filename:        d.Filename,
		TotalParagraphs: d.TotalParagraphs,
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intValue(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
