// Package types provides type definitions for structured data used throughout the star-refiner system.
package types

// STARAnswer is a four-part narrative interview answer.
// Fields may be empty when the generating model omitted a section or when
// parsing fell back to a sentinel value.
type STARAnswer struct {
	Situation string `json:"situation"`
	Task      string `json:"task"`
	Action    string `json:"action"`
	Result    string `json:"result"`
}

// IsZero reports whether every STAR component is empty.
func (a STARAnswer) IsZero() bool {
	return a.Situation == "" && a.Task == "" && a.Action == "" && a.Result == ""
}

// Critique is the evaluator's verdict on one STAR answer.
type Critique struct {
	Rating                     float64  `json:"rating"`
	Suggestions                []string `json:"suggestions"`
	StructureFeedback          string   `json:"structure_feedback,omitempty"`
	RelevanceFeedback          string   `json:"relevance_feedback,omitempty"`
	SpecificityFeedback        string   `json:"specificity_feedback,omitempty"`
	ProfessionalImpactFeedback string   `json:"professional_impact_feedback,omitempty"`

	// RawText retains the unparsed critique output when decoding required
	// recovery, so malformed responses stay diagnosable.
	RawText string `json:"raw_text,omitempty"`
}

// IterationRecord pairs one answer with its critique inside a workflow run.
// Records are immutable once appended to the ledger.
type IterationRecord struct {
	Iteration int        `json:"iteration"`
	Answer    STARAnswer `json:"answer"`
	Critique  Critique   `json:"critique"`
	// Rating duplicates Critique.Rating for threshold checks without
	// reaching into the nested struct.
	Rating    float64 `json:"rating"`
	Timestamp string  `json:"timestamp"`
}
