package paragraphs

import (
	"bytes"
	"encoding/json"
)

// Indent is the paragraph indentation record. Values are kept as the literal
// measurements found in the source document.
type Indent struct {
	Left      *string `json:"left,omitempty"`
	Right     *string `json:"right,omitempty"`
	FirstLine *string `json:"first_line,omitempty"`
	Hanging   *string `json:"hanging,omitempty"`

	raw json.RawMessage
}

// Malformed reports whether the decoded payload did not have the indent shape.
func (i *Indent) Malformed() bool {
	return i != nil && i.raw != nil
}

// Equal compares two indents field by field. A nil indent equals the empty
// record. A malformed indent is never equal to anything, itself included.
func (i *Indent) Equal(other *Indent) bool {
	if i.Malformed() || other.Malformed() {
		return false
	}
	return i.values() == other.values()
}

func (i *Indent) values() [4]string {
	if i == nil {
		return [4]string{}
	}
	return [4]string{
		stringValue(i.Left),
		stringValue(i.Right),
		stringValue(i.FirstLine),
		stringValue(i.Hanging),
	}
}

// UnmarshalJSON decodes an indent object. Payloads of any other shape are
// retained verbatim and flagged as malformed rather than rejected.
func (i *Indent) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}

	var out Indent
	raw := decodeRecord(data, map[string]**string{
		"left":       &out.Left,
		"right":      &out.Right,
		"first_line": &out.FirstLine,
		"hanging":    &out.Hanging,
	})
	if raw != nil {
		out = Indent{raw: raw}
	}

	*i = out
	return nil
}

// MarshalJSON writes a malformed indent back exactly as it was received.
func (i Indent) MarshalJSON() ([]byte, error) {
	if i.raw != nil {
		return i.raw, nil
	}
	type plain Indent
	return json.Marshal(plain(i))
}

// Spacing is the paragraph spacing record (space before and after, line
// height and its rule).
type Spacing struct {
	Before   *string `json:"before,omitempty"`
	After    *string `json:"after,omitempty"`
	Line     *string `json:"line,omitempty"`
	LineRule *string `json:"line_rule,omitempty"`

	raw json.RawMessage
}

// Malformed reports whether the decoded payload did not have the spacing shape.
func (s *Spacing) Malformed() bool {
	return s != nil && s.raw != nil
}

// Equal compares two spacing records field by field with the same nil and
// malformed rules as Indent.Equal.
func (s *Spacing) Equal(other *Spacing) bool {
	if s.Malformed() || other.Malformed() {
		return false
	}
	return s.values() == other.values()
}

func (s *Spacing) values() [4]string {
	if s == nil {
		return [4]string{}
	}
	return [4]string{
		stringValue(s.Before),
		stringValue(s.After),
		stringValue(s.Line),
		stringValue(s.LineRule),
	}
}

// UnmarshalJSON decodes a spacing object, flagging other shapes as malformed.
func (s *Spacing) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}

	var out Spacing
	raw := decodeRecord(data, map[string]**string{
		"before":    &out.Before,
		"after":     &out.After,
		"line":      &out.Line,
		"line_rule": &out.LineRule,
	})
	if raw != nil {
		out = Spacing{raw: raw}
	}

	*s = out
	return nil
}

// MarshalJSON writes a malformed spacing back exactly as it was received.
func (s Spacing) MarshalJSON() ([]byte, error) {
	if s.raw != nil {
		return s.raw, nil
	}
	type plain Spacing
	return json.Marshal(plain(s))
}

// decodeRecord fills fields from a flat JSON object of scalar values.
// It returns a copy of data when the payload is not such an object or
// carries a key outside fields.
func decodeRecord(data []byte, fields map[string]**string) json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return bytes.Clone(data)
	}

	for key, value := range obj {
		dst, ok := fields[key]
		if !ok {
			return bytes.Clone(data)
		}
		if isNull(value) {
			continue
		}
		s, ok := scalarString(value)
		if !ok {
			return bytes.Clone(data)
		}
		*dst = &s
	}

	return nil
}

func scalarString(value json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s, true
	}

	var n json.Number
	if err := json.Unmarshal(value, &n); err == nil {
		return n.String(), true
	}

	return "", false
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
