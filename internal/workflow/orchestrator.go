// Package workflow provides the high-level orchestration for the STAR answer
// refinement loop: generate a draft, then alternate critique and refinement
// until the rating threshold or the iteration cap is reached.
package workflow

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/star-refiner/internal/extract"
	"github.com/jonathan/star-refiner/internal/ledger"
	"github.com/jonathan/star-refiner/internal/llm"
	"github.com/jonathan/star-refiner/internal/parsing"
	"github.com/jonathan/star-refiner/internal/schemas"
	"github.com/jonathan/star-refiner/internal/steps"
	"github.com/jonathan/star-refiner/internal/types"
)

// Default loop parameters.
const (
	DefaultRatingThreshold = 4.6
	DefaultMaxIterations   = 3
)

// Config holds the loop parameters for a run.
type Config struct {
	// RatingThreshold is the critique rating at or above which the loop
	// stops with COMPLETED_HIGH_RATING.
	RatingThreshold float64
	// MaxIterations caps the number of critique iterations. Values below 1
	// are treated as 1: every run gets at least one critique.
	MaxIterations int
}

// DefaultConfig returns the standard loop parameters.
func DefaultConfig() Config {
	return Config{
		RatingThreshold: DefaultRatingThreshold,
		MaxIterations:   DefaultMaxIterations,
	}
}

// Store persists run history. Persistence is best-effort: a nil Store or a
// failing write never affects the run outcome.
type Store interface {
	CreateRun(ctx context.Context, runID string, req types.AnswerRequest) error
	SaveIteration(ctx context.Context, runID string, rec types.IterationRecord) error
	CompleteRun(ctx context.Context, runID string, state types.WorkflowState) error
}

// Orchestrator drives the refinement loop for answer requests.
type Orchestrator struct {
	client llm.Client
	cfg    Config
	store  Store
	logger *log.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStore attaches a persistence store to the orchestrator.
func WithStore(store Store) Option {
	return func(o *Orchestrator) { o.store = store }
}

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// New creates an orchestrator around an LLM client.
func New(client llm.Client, cfg Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client: client,
		cfg:    cfg,
		logger: log.New(os.Stderr, "[workflow] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the full refinement loop for one request. It always returns a
// usable payload and a terminal state; model failures surface as
// ERROR_AGENT_PROCESSING with whatever history accumulated before the
// failure.
func (o *Orchestrator) Run(ctx context.Context, req types.AnswerRequest) (types.OutputPayload, types.WorkflowState) {
	state := types.WorkflowState{Status: types.StatusInProgress}
	led := ledger.New()

	if err := req.Validate(); err != nil {
		o.logger.Printf("request rejected: %v", err)
		state.Status = types.StatusErrorInputValidation
		state.ErrorMessage = err.Error()
		return Assemble(led, state), state
	}

	runID := uuid.New().String()
	o.logger.Printf("run %s: role=%q industry=%q", runID, req.Role, req.Industry)
	if o.store != nil {
		if err := o.store.CreateRun(ctx, runID, req); err != nil {
			o.logger.Printf("run %s: create run record failed: %v", runID, err)
		}
	}

	rawAnswer, err := steps.Generate(ctx, o.client, req)
	if err != nil {
		return o.fail(ctx, runID, led, state, err)
	}
	answer := parsing.ParseSTARAnswer(rawAnswer)
	o.checkSchema(runID, "answer", rawAnswer, schemas.CheckSTARAnswer)

	effectiveMax := o.cfg.MaxIterations
	if effectiveMax < 1 {
		effectiveMax = 1
	}

	for iteration := 1; ; iteration++ {
		rawCritique, err := steps.Critique(ctx, o.client, answer)
		if err != nil {
			return o.fail(ctx, runID, led, state, err)
		}
		critique := parsing.ParseCritique(rawCritique)
		o.checkSchema(runID, "critique", rawCritique, schemas.CheckCritique)

		rec := types.IterationRecord{
			Iteration: iteration,
			Answer:    answer,
			Critique:  critique,
			Rating:    critique.Rating,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		if err := led.Append(rec); err != nil {
			return o.fail(ctx, runID, led, state, err)
		}
		if o.store != nil {
			if err := o.store.SaveIteration(ctx, runID, rec); err != nil {
				o.logger.Printf("run %s: save iteration %d failed: %v", runID, iteration, err)
			}
		}
		o.logger.Printf("run %s: iteration %d rated %.1f", runID, iteration, critique.Rating)

		// Threshold wins over the cap when both hold on the same iteration.
		if critique.Rating >= o.cfg.RatingThreshold {
			state.Status = types.StatusCompletedHighRating
			break
		}
		if iteration >= effectiveMax {
			state.Status = types.StatusCompletedMaxIter
			break
		}

		rawRefined, err := steps.Refine(ctx, o.client, answer, critique)
		if err != nil {
			return o.fail(ctx, runID, led, state, err)
		}
		answer = parsing.ParseSTARAnswer(rawRefined)
		o.checkSchema(runID, "answer", rawRefined, schemas.CheckSTARAnswer)
	}

	o.finalize(led, &state)
	o.logger.Printf("run %s: %s after %d iteration(s), highest %.1f",
		runID, state.Status, state.IterationsRun, state.HighestRating)
	if o.store != nil {
		if err := o.store.CompleteRun(ctx, runID, state); err != nil {
			o.logger.Printf("run %s: complete run record failed: %v", runID, err)
		}
	}
	return Assemble(led, state), state
}

// fail finalizes a run that hit a step error, preserving the history
// accumulated so far.
func (o *Orchestrator) fail(ctx context.Context, runID string, led *ledger.Ledger, state types.WorkflowState, err error) (types.OutputPayload, types.WorkflowState) {
	o.logger.Printf("run %s: %v", runID, err)
	state.Status = types.StatusErrorAgentProcessing
	state.ErrorMessage = err.Error()
	o.finalize(led, &state)
	if o.store != nil {
		if cerr := o.store.CompleteRun(ctx, runID, state); cerr != nil {
			o.logger.Printf("run %s: complete run record failed: %v", runID, cerr)
		}
	}
	return Assemble(led, state), state
}

func (o *Orchestrator) finalize(led *ledger.Ledger, state *types.WorkflowState) {
	state.IterationsRun = led.Len()
	if best, ok := led.HighestRated(); ok {
		state.HighestRating = best.Rating
		state.HighestIteration = best.Iteration
	}
}

// checkSchema runs a diagnostic schema validation over a raw model response.
// Failures are logged, never fatal: the parsing layer already coerced the
// response into a usable value.
func (o *Orchestrator) checkSchema(runID, kind, raw string, check func(string) error) {
	if err := check(extract.JSONCandidate(raw)); err != nil {
		o.logger.Printf("run %s: %s schema diagnostic: %v", runID, kind, err)
	}
}
