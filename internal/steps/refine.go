package steps

import (
	"context"
	"encoding/json"

	"github.com/jonathan/star-refiner/internal/llm"
	"github.com/jonathan/star-refiner/internal/prompts"
	"github.com/jonathan/star-refiner/internal/types"
)

// Refine rewrites a STAR answer by applying critique feedback. Refinement
// uses the advanced tier; it benefits most from the stronger model.
func Refine(ctx context.Context, client llm.Client, answer types.STARAnswer, critique types.Critique) (string, error) {
	template, err := prompts.Get(promptFile, "refine-answer")
	if err != nil {
		return "", &APICallError{Step: "refine", Message: "failed to load prompt", Cause: err}
	}

	answerJSON, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return "", &APICallError{Step: "refine", Message: "failed to encode answer", Cause: err}
	}

	critiqueJSON, err := json.MarshalIndent(critique, "", "  ")
	if err != nil {
		return "", &APICallError{Step: "refine", Message: "failed to encode critique", Cause: err}
	}

	prompt := prompts.Format(template, map[string]string{
		"Answer":   string(answerJSON),
		"Critique": string(critiqueJSON),
	})

	ctx, cancel := context.WithTimeout(ctx, stepTimeout)
	defer cancel()

	responseText, err := client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", &APICallError{Step: "refine", Message: "failed to generate content", Cause: err}
	}

	return responseText, nil
}
