package paragraphs

// Status is the classification of one aligned position.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusModified  Status = "modified"
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
)

// Classify derives the status of a position from which sides are present and,
// for fully paired positions, whether the differ found them identical.
// Align never produces a pair without sides; Classify panics on one.
func Classify(pair AlignedPair, identical bool) Status {
	switch {
	case pair.Paired() && identical:
		return StatusUnchanged
	case pair.Paired():
		return StatusModified
	case pair.Right != nil:
		return StatusAdded
	case pair.Left != nil:
		return StatusRemoved
	default:
		panic("paragraphs: aligned pair has no sides")
	}
}
