// Package ledger records the iteration history of a refinement run.
package ledger

import (
	"fmt"

	"github.com/jonathan/star-refiner/internal/types"
)

// Ledger is an append-only record of refinement iterations. Iterations are
// numbered from 1 and must be appended in order.
type Ledger struct {
	records []types.IterationRecord
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append adds an iteration record. The record's iteration number must be
// exactly one past the last appended record.
func (l *Ledger) Append(rec types.IterationRecord) error {
	if want := len(l.records) + 1; rec.Iteration != want {
		return fmt.Errorf("iteration out of order: got %d, want %d", rec.Iteration, want)
	}
	l.records = append(l.records, rec)
	return nil
}

// Len returns the number of recorded iterations.
func (l *Ledger) Len() int {
	return len(l.records)
}

// All returns a copy of the recorded iterations in order.
func (l *Ledger) All() []types.IterationRecord {
	out := make([]types.IterationRecord, len(l.records))
	copy(out, l.records)
	return out
}

// HighestRated returns the record with the highest rating. Ties go to the
// later iteration, since a refined answer at the same rating incorporates
// more feedback. Returns false if the ledger is empty.
func (l *Ledger) HighestRated() (types.IterationRecord, bool) {
	if len(l.records) == 0 {
		return types.IterationRecord{}, false
	}
	best := l.records[0]
	for _, rec := range l.records[1:] {
		if rec.Rating >= best.Rating {
			best = rec
		}
	}
	return best, true
}
