package paragraphs

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Entry is one classified position of a comparison. Annotation is set only
// when both sides are present.
type Entry struct {
	AlignedPair
	Status     Status      `json:"status"`
	Annotation *Annotation `json:"annotation,omitempty"`
}

// Result is the complete outcome of comparing two documents.
type Result struct {
	Left       DocumentSummary `json:"left"`
	Right      DocumentSummary `json:"right"`
	Entries    []Entry         `json:"entries"`
	Statistics Statistics      `json:"statistics"`
}

// Changes returns the entries whose status is not unchanged.
func (r *Result) Changes() []Entry {
	changes := make([]Entry, 0, r.Statistics.Total()-r.Statistics.Unchanged)
	for _, e := range r.Entries {
		if e.Status != StatusUnchanged {
			changes = append(changes, e)
		}
	}
	return changes
}

// Compare aligns the paragraphs of left and right by position, diffs and
// classifies every position, and tallies the classifications.
func Compare(left, right *DocumentRecord) (*Result, error) {
	if err := validate(left, right); err != nil {
		return nil, err
	}

	pairs := Align(left.Paragraphs, right.Paragraphs)
	entries := make([]Entry, len(pairs))
	for i, pair := range pairs {
		entries[i] = annotate(pair)
	}

	return newResult(left, right, entries), nil
}

// CompareConcurrent produces the same result as Compare, spreading the
// per-position work over up to workers goroutines. Statistics are aggregated
// after all positions are classified.
func CompareConcurrent(left, right *DocumentRecord, workers int) (*Result, error) {
	if err := validate(left, right); err != nil {
		return nil, err
	}

	pairs := Align(left.Paragraphs, right.Paragraphs)
	entries := make([]Entry, len(pairs))

	workers = workerCount(workers, len(pairs))
	chunk := (len(pairs) + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)

	for start := 0; start < len(pairs); start += chunk {
		end := min(start+chunk, len(pairs))
		g.Go(func() error {
			for i := start; i < end; i++ {
				entries[i] = annotate(pairs[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newResult(left, right, entries), nil
}

func annotate(pair AlignedPair) Entry {
	if !pair.Paired() {
		return Entry{
			AlignedPair: pair,
			Status:      Classify(pair, false),
		}
	}

	ann := Diff(pair.Left, pair.Right)
	return Entry{
		AlignedPair: pair,
		Status:      Classify(pair, ann.Identical()),
		Annotation:  &ann,
	}
}

func newResult(left, right *DocumentRecord, entries []Entry) *Result {
	return &Result{
		Left:       left.Summary(),
		Right:      right.Summary(),
		Entries:    entries,
		Statistics: Aggregate(entries),
	}
}

func validate(left, right *DocumentRecord) error {
	for _, side := range []struct {
		name string
		doc  *DocumentRecord
	}{
		{"left", left},
		{"right", right},
	} {
		if side.doc == nil {
			return fmt.Errorf("%w: %s document is missing", ErrInputUnavailable, side.name)
		}
		if side.doc.TotalParagraphs != len(side.doc.Paragraphs) {
			return fmt.Errorf(
				"%w: %s document %q declares %d paragraphs but holds %d",
				ErrInputUnavailable, side.name, side.doc.Filename,
				side.doc.TotalParagraphs, len(side.doc.Paragraphs),
			)
		}
	}
	return nil
}

func workerCount(requested, positions int) int {
	return max(min(requested, runtime.NumCPU(), positions), 1)
}
