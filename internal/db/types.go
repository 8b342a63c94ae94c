package db

import (
	"time"

	"github.com/jonathan/star-refiner/internal/types"
)

// Run represents a refinement run record
type Run struct {
	ID            string     `json:"id"`
	Role          string     `json:"role"`
	Industry      string     `json:"industry"`
	Question      string     `json:"question"`
	Status        string     `json:"status"`
	HighestRating float64    `json:"highest_rating"`
	IterationsRun int        `json:"iterations_run"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Iteration represents one stored critique iteration of a run
type Iteration struct {
	RunID      string           `json:"run_id"`
	Iteration  int              `json:"iteration"`
	Answer     types.STARAnswer `json:"answer"`
	Critique   types.Critique   `json:"critique"`
	Rating     float64          `json:"rating"`
	RecordedAt string           `json:"recorded_at"`
}
