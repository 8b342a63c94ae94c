// Package steps implements the individual model calls of the answer
// refinement loop: generate, critique, refine.
//
// Each step formats a prompt template, invokes the model, and returns the
// raw response text. Turning that text into a structured value is the
// parsing package's job, so a malformed model response never surfaces as a
// step error.
package steps

import (
	"context"
	"time"

	"github.com/jonathan/star-refiner/internal/llm"
	"github.com/jonathan/star-refiner/internal/prompts"
	"github.com/jonathan/star-refiner/internal/types"
)

const promptFile = "star.json"

// stepTimeout bounds each model call. A hung call surfaces as an ordinary
// step error rather than stalling the whole run.
const stepTimeout = 2 * time.Minute

// Generate produces the initial STAR answer draft for a request.
// User-supplied fields are sanitized before they reach the prompt.
func Generate(ctx context.Context, client llm.Client, req types.AnswerRequest) (string, error) {
	template, err := prompts.Get(promptFile, "generate-answer")
	if err != nil {
		return "", &APICallError{Step: "generate", Message: "failed to load prompt", Cause: err}
	}

	clean := req.Sanitized()
	prompt := prompts.Format(template, map[string]string{
		"Role":           clean.Role,
		"Industry":       clean.Industry,
		"Question":       clean.Question,
		"Resume":         orNone(clean.Resume),
		"JobDescription": orNone(clean.JobDescription),
	})

	ctx, cancel := context.WithTimeout(ctx, stepTimeout)
	defer cancel()

	responseText, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", &APICallError{Step: "generate", Message: "failed to generate content", Cause: err}
	}

	return responseText, nil
}

func orNone(v string) string {
	if v == "" {
		return "(not provided)"
	}
	return v
}
