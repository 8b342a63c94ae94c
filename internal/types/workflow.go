package types

// Status describes how a workflow run ended (or that it is still running).
type Status string

// Workflow status codes. The HTTP layer maps these onto response codes; the
// workflow core never sees an HTTP status itself.
const (
	StatusInProgress           Status = "IN_PROGRESS"
	StatusCompletedHighRating  Status = "COMPLETED_HIGH_RATING"
	StatusCompletedMaxIter     Status = "COMPLETED_MAX_ITERATIONS"
	StatusErrorInputValidation Status = "ERROR_INPUT_VALIDATION"
	StatusErrorAgentProcessing Status = "ERROR_AGENT_PROCESSING"
)

// Completed reports whether the status is a successful terminal state.
func (s Status) Completed() bool {
	return s == StatusCompletedHighRating || s == StatusCompletedMaxIter
}

// WorkflowState is the orchestrator-owned state for one run. It is created
// at workflow start and finalized exactly once; no component other than the
// orchestrator writes it.
type WorkflowState struct {
	Status           Status  `json:"status"`
	HighestRating    float64 `json:"highest_rating"`
	HighestIteration int     `json:"highest_rated_iteration"`
	ErrorMessage     string  `json:"error_message,omitempty"`
	IterationsRun    int     `json:"iterations_run"`
}

// HistoryItem is one iteration as exposed to callers.
type HistoryItem struct {
	Iteration int        `json:"iteration"`
	Answer    STARAnswer `json:"star_answer"`
	Critique  Critique   `json:"critique"`
	Timestamp string     `json:"timestamp,omitempty"`
}

// OutputPayload is the externally visible result of a workflow run. Every
// terminal state produces one; the answer falls back to a sentinel when no
// iteration completed.
type OutputPayload struct {
	Answer  STARAnswer    `json:"answer"`
	History []HistoryItem `json:"history"`
	Rating  float64       `json:"rating"`
}

// UnavailableAnswer is the sentinel returned when a run produced no usable answer.
func UnavailableAnswer() STARAnswer {
	return STARAnswer{Situation: "Answer not available"}
}
