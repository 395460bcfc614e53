package paragraphs

// AlignedPair is one position of an alignment. At most one of Left and Right
// is nil.
type AlignedPair struct {
	Index int              `json:"index"`
	Left  *ParagraphRecord `json:"left"`
	Right *ParagraphRecord `json:"right"`
}

// Paired reports whether both sides of the position are present.
func (p AlignedPair) Paired() bool {
	return p.Left != nil && p.Right != nil
}

// Align pairs left and right by position. The result has max(len(left),
// len(right)) entries; positions past the end of the shorter sequence carry a
// nil side. Pairs point into the input slices, which are not modified.
func Align(left, right []ParagraphRecord) []AlignedPair {
	n := max(len(left), len(right))
	pairs := make([]AlignedPair, n)

	for i := range n {
		pairs[i].Index = i
		if i < len(left) {
			pairs[i].Left = &left[i]
		}
		if i < len(right) {
			pairs[i].Right = &right[i]
		}
	}

	return pairs
}
