// Package docx reads WordprocessingML packages: it extracts the paragraph
// records compared by package paragraphs and measures how closely the format
// definition parts of two packages agree.
package docx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/JaimeStill/formatdiff/pkg/paragraphs"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

var (
	paragraphExpr = compile("//w:body//w:p")
	styleExpr     = compile("w:pPr/w:pStyle")
	indentExpr    = compile("w:pPr/w:ind")
	spacingExpr   = compile("w:pPr/w:spacing")
	jcExpr        = compile("w:pPr/w:jc")
)

func compile(expr string) *xpath.Expr {
	e, err := xpath.CompileWithNS(expr, map[string]string{"w": wordNS})
	if err != nil {
		panic(fmt.Sprintf("docx: compile %q: %v", expr, err))
	}
	return e
}

// Parse extracts the non-blank paragraphs of the main document part of a
// .docx package. Index is the ordinal of the paragraph among all body
// paragraphs, blank ones included.
func Parse(filename string, data []byte) (*paragraphs.DocumentRecord, error) {
	a, err := openArchive(data)
	if err != nil {
		return nil, err
	}

	body, err := a.read(documentPart)
	if err != nil {
		return nil, err
	}

	root, err := parseXML(documentPart, body)
	if err != nil {
		return nil, err
	}

	var records []paragraphs.ParagraphRecord
	for i, p := range xmlquery.QuerySelectorAll(root, paragraphExpr) {
		record := readParagraph(p)
		if strings.TrimSpace(record.Text) == "" {
			continue
		}
		record.Index = i
		records = append(records, record)
	}

	return paragraphs.NewDocumentRecord(filename, records), nil
}

func parseXML(name string, data []byte) (*xmlquery.Node, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedXML, name, err)
	}
	return root, nil
}

func readParagraph(p *xmlquery.Node) paragraphs.ParagraphRecord {
	var record paragraphs.ParagraphRecord

	if n := xmlquery.QuerySelector(p, styleExpr); n != nil {
		record.StyleID = wordAttr(n, "val")
	}

	if n := xmlquery.QuerySelector(p, jcExpr); n != nil {
		record.Justification = wordAttr(n, "val")
	}

	if n := xmlquery.QuerySelector(p, indentExpr); n != nil {
		record.Indent = &paragraphs.Indent{
			Left:      firstAttr(n, "left", "start"),
			Right:     firstAttr(n, "right", "end"),
			FirstLine: wordAttr(n, "firstLine"),
			Hanging:   wordAttr(n, "hanging"),
		}
	}

	if n := xmlquery.QuerySelector(p, spacingExpr); n != nil {
		record.Spacing = &paragraphs.Spacing{
			Before:   wordAttr(n, "before"),
			After:    wordAttr(n, "after"),
			Line:     wordAttr(n, "line"),
			LineRule: wordAttr(n, "lineRule"),
		}
	}

	record.Text = runText(p)

	tabs := strings.Count(record.Text, "\t")
	breaks := strings.Count(record.Text, "\n")
	record.TabCount = &tabs
	record.BreakCount = &breaks

	return record
}

// runText assembles the text of the runs directly under p.
func runText(p *xmlquery.Node) string {
	var sb strings.Builder

	for run := p.FirstChild; run != nil; run = run.NextSibling {
		if !isWord(run, "r") {
			continue
		}
		for c := run.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode || !inWordNS(c) {
				continue
			}
			switch c.Data {
			case "t":
				sb.WriteString(c.InnerText())
			case "tab":
				sb.WriteByte('\t')
			case "br":
				sb.WriteByte('\n')
			case "cr":
				sb.WriteByte('\r')
			}
		}
	}

	return sb.String()
}

func isWord(n *xmlquery.Node, local string) bool {
	return n.Type == xmlquery.ElementNode && n.Data == local && inWordNS(n)
}

func inWordNS(n *xmlquery.Node) bool {
	return n.NamespaceURI == wordNS || (n.NamespaceURI == "" && n.Prefix == "w")
}

// wordAttr returns the non-empty value of the w:-qualified attribute local,
// or nil.
func wordAttr(n *xmlquery.Node, local string) *string {
	for _, a := range n.Attr {
		if a.Name.Local != local {
			continue
		}
		if a.NamespaceURI != wordNS && a.Name.Space != "w" {
			continue
		}
		if a.Value == "" {
			return nil
		}
		v := a.Value
		return &v
	}
	return nil
}

func firstAttr(n *xmlquery.Node, names ...string) *string {
	for _, name := range names {
		if v := wordAttr(n, name); v != nil {
			return v
		}
	}
	return nil
}
