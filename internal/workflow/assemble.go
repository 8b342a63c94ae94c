package workflow

import (
	"github.com/jonathan/star-refiner/internal/ledger"
	"github.com/jonathan/star-refiner/internal/types"
)

// Assemble builds the externally visible payload for a finished run. The
// answer is taken from the highest-rated iteration; when no iteration
// completed, a sentinel answer stands in so callers always get a payload of
// the same shape.
func Assemble(led *ledger.Ledger, state types.WorkflowState) types.OutputPayload {
	records := led.All()
	history := make([]types.HistoryItem, 0, len(records))
	for _, rec := range records {
		history = append(history, types.HistoryItem{
			Iteration: rec.Iteration,
			Answer:    rec.Answer,
			Critique:  rec.Critique,
			Timestamp: rec.Timestamp,
		})
	}

	payload := types.OutputPayload{
		Answer:  types.UnavailableAnswer(),
		History: history,
	}
	if best, ok := led.HighestRated(); ok {
		payload.Answer = best.Answer
		payload.Rating = best.Rating
	}
	return payload
}
