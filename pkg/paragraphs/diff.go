package paragraphs

// Attribute names one tracked paragraph attribute.
type Attribute string

const (
	AttributeText          Attribute = "text"
	AttributeStyle         Attribute = "style"
	AttributeJustification Attribute = "jc"
	AttributeTabs          Attribute = "tab_count"
	AttributeBreaks        Attribute = "br_count"
	AttributeIndent        Attribute = "indent"
	AttributeSpacing       Attribute = "spacing"
)

// Values carries the left and right value of a differing attribute.
type Values[T any] struct {
	Left  T `json:"left"`
	Right T `json:"right"`
}

// Annotation records which attributes of a fully paired position differ.
// The value pointers are set exactly for the flags that are true.
type Annotation struct {
	TextDiff          bool `json:"text_diff"`
	StyleDiff         bool `json:"style_diff"`
	JustificationDiff bool `json:"jc_diff"`
	TabDiff           bool `json:"tab_diff"`
	BreakDiff         bool `json:"br_diff"`
	IndentDiff        bool `json:"indent_diff"`
	SpacingDiff       bool `json:"spacing_diff"`

	Text          *Values[string]   `json:"text,omitempty"`
	Style         *Values[string]   `json:"style_id,omitempty"`
	Justification *Values[string]   `json:"jc,omitempty"`
	Tabs          *Values[int]      `json:"tab_count,omitempty"`
	Breaks        *Values[int]      `json:"br_count,omitempty"`
	Indent        *Values[*Indent]  `json:"indent,omitempty"`
	Spacing       *Values[*Spacing] `json:"spacing,omitempty"`
}

// Identical reports whether no attribute differs.
func (a *Annotation) Identical() bool {
	return !a.TextDiff &&
		!a.StyleDiff &&
		!a.JustificationDiff &&
		!a.TabDiff &&
		!a.BreakDiff &&
		!a.IndentDiff &&
		!a.SpacingDiff
}

// Differences lists the differing attributes in a fixed order.
func (a *Annotation) Differences() []Attribute {
	flags := []struct {
		set  bool
		attr Attribute
	}{
		{a.TextDiff, AttributeText},
		{a.StyleDiff, AttributeStyle},
		{a.JustificationDiff, AttributeJustification},
		{a.TabDiff, AttributeTabs},
		{a.BreakDiff, AttributeBreaks},
		{a.IndentDiff, AttributeIndent},
		{a.SpacingDiff, AttributeSpacing},
	}

	diffs := make([]Attribute, 0, len(flags))
	for _, f := range flags {
		if f.set {
			diffs = append(diffs, f.attr)
		}
	}
	return diffs
}

// Diff compares the tracked attributes of two paragraphs. Each attribute is
// evaluated independently; a malformed indent or spacing counts as differing.
func Diff(left, right *ParagraphRecord) Annotation {
	var a Annotation

	if left.Text != right.Text {
		a.TextDiff = true
		a.Text = &Values[string]{left.Text, right.Text}
	}

	if l, r := stringValue(left.StyleID), stringValue(right.StyleID); l != r {
		a.StyleDiff = true
		a.Style = &Values[string]{l, r}
	}

	if l, r := stringValue(left.Justification), stringValue(right.Justification); l != r {
		a.JustificationDiff = true
		a.Justification = &Values[string]{l, r}
	}

	if l, r := intValue(left.TabCount), intValue(right.TabCount); l != r {
		a.TabDiff = true
		a.Tabs = &Values[int]{l, r}
	}

	if l, r := intValue(left.BreakCount), intValue(right.BreakCount); l != r {
		a.BreakDiff = true
		a.Breaks = &Values[int]{l, r}
	}

	if !left.Indent.Equal(right.Indent) {
		a.IndentDiff = true
		a.Indent = &Values[*Indent]{left.Indent, right.Indent}
	}

	if !left.Spacing.Equal(right.Spacing) {
		a.SpacingDiff = true
		a.Spacing = &Values[*Spacing]{left.Spacing, right.Spacing}
	}

	return a
}
