package paragraphs

// Statistics tallies the classifications of an alignment.
type Statistics struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
}

// Total returns the number of positions counted, which equals the alignment
// length.
func (s Statistics) Total() int {
	return s.Added + s.Removed + s.Modified + s.Unchanged
}

// Changed reports whether any position is not unchanged.
func (s Statistics) Changed() bool {
	return s.Added+s.Removed+s.Modified > 0
}

// Aggregate counts entries by status in a single pass.
func Aggregate(entries []Entry) Statistics {
	var s Statistics
	for _, e := range entries {
		switch e.Status {
		case StatusAdded:
			s.Added++
		case StatusRemoved:
			s.Removed++
		case StatusModified:
			s.Modified++
		case StatusUnchanged:
			s.Unchanged++
		}
	}
	return s
}
