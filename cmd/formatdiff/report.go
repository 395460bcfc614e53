package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/JaimeStill/formatdiff/pkg/docx"
	"github.com/JaimeStill/formatdiff/pkg/paragraphs"
)

const rule = 50

func formatReport(result *paragraphs.Result) string {
	var b strings.Builder

	b.WriteString("Paragraph Comparison Report\n")
	b.WriteString(strings.Repeat("=", rule) + "\n\n")
	fmt.Fprintf(&b, "Left:  %s (%d paragraphs)\n", result.Left.Filename, result.Left.TotalParagraphs)
	fmt.Fprintf(&b, "Right: %s (%d paragraphs)\n\n", result.Right.Filename, result.Right.TotalParagraphs)

	s := result.Statistics
	if !s.Changed() {
		fmt.Fprintf(&b, "Documents are IDENTICAL (%d paragraphs)\n", s.Unchanged)
		return b.String()
	}

	b.WriteString("Documents are DIFFERENT\n")
	fmt.Fprintf(&b, "  Modified:  %d\n", s.Modified)
	fmt.Fprintf(&b, "  Added:     %d\n", s.Added)
	fmt.Fprintf(&b, "  Removed:   %d\n", s.Removed)
	fmt.Fprintf(&b, "  Unchanged: %d\n", s.Unchanged)

	for _, e := range result.Entries {
		if e.Status == paragraphs.StatusUnchanged {
			continue
		}
		fmt.Fprintf(&b, "\n[%d] %s\n", e.Index, e.Status)
		b.WriteString(strings.Repeat("-", 30) + "\n")

		switch e.Status {
		case paragraphs.StatusAdded:
			fmt.Fprintf(&b, "  + %q\n", e.Right.Text)
		case paragraphs.StatusRemoved:
			fmt.Fprintf(&b, "  - %q\n", e.Left.Text)
		case paragraphs.StatusModified:
			writeAnnotation(&b, e.Annotation)
		}
	}

	return b.String()
}

func writeAnnotation(b *strings.Builder, a *paragraphs.Annotation) {
	if a == nil {
		return
	}
	if a.Text != nil {
		fmt.Fprintf(b, "  text:    %q -> %q\n", a.Text.Left, a.Text.Right)
	}
	if a.Style != nil {
		fmt.Fprintf(b, "  style:   %q -> %q\n", a.Style.Left, a.Style.Right)
	}
	if a.Justification != nil {
		fmt.Fprintf(b, "  jc:      %q -> %q\n", a.Justification.Left, a.Justification.Right)
	}
	if a.Tabs != nil {
		fmt.Fprintf(b, "  tabs:    %d -> %d\n", a.Tabs.Left, a.Tabs.Right)
	}
	if a.Breaks != nil {
		fmt.Fprintf(b, "  breaks:  %d -> %d\n", a.Breaks.Left, a.Breaks.Right)
	}
	if a.Indent != nil {
		fmt.Fprintf(b, "  indent:  %s -> %s\n", formatIndent(a.Indent.Left), formatIndent(a.Indent.Right))
	}
	if a.Spacing != nil {
		fmt.Fprintf(b, "  spacing: %s -> %s\n", formatSpacing(a.Spacing.Left), formatSpacing(a.Spacing.Right))
	}
}

type field struct {
	name  string
	value *string
}

func formatIndent(i *paragraphs.Indent) string {
	switch {
	case i == nil:
		return "{}"
	case i.Malformed():
		return "<malformed>"
	}
	return formatFields(
		field{"left", i.Left},
		field{"right", i.Right},
		field{"first_line", i.FirstLine},
		field{"hanging", i.Hanging},
	)
}

func formatSpacing(s *paragraphs.Spacing) string {
	switch {
	case s == nil:
		return "{}"
	case s.Malformed():
		return "<malformed>"
	}
	return formatFields(
		field{"before", s.Before},
		field{"after", s.After},
		field{"line", s.Line},
		field{"line_rule", s.LineRule},
	)
}

func formatFields(fields ...field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value != nil {
			parts = append(parts, f.name+"="+*f.value)
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func formatSimilarity(cmp *docx.PackageComparison) string {
	var b strings.Builder

	b.WriteString("Package Similarity Report\n")
	b.WriteString(strings.Repeat("=", rule) + "\n\n")
	fmt.Fprintf(&b, "Overall: %.3f (%s)\n", cmp.OverallSimilarity, cmp.SimilarityLevel)
	fmt.Fprintf(&b, "Content consistent: %t\n\n", cmp.ContentConsistent)

	names := make([]string, 0, len(cmp.Parts))
	for name := range cmp.Parts {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		pc := cmp.Parts[name]
		line := fmt.Sprintf("  %-24s %.3f", name, pc.Similarity)
		switch {
		case pc.Identical:
			line += " identical"
		case pc.Reason != "":
			line += " " + pc.Reason
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
