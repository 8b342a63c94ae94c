package steps

import (
	"context"
	"encoding/json"

	"github.com/jonathan/star-refiner/internal/llm"
	"github.com/jonathan/star-refiner/internal/prompts"
	"github.com/jonathan/star-refiner/internal/types"
)

// Critique evaluates a STAR answer against the scoring rubric and returns
// the raw critique text.
func Critique(ctx context.Context, client llm.Client, answer types.STARAnswer) (string, error) {
	template, err := prompts.Get(promptFile, "critique-answer")
	if err != nil {
		return "", &APICallError{Step: "critique", Message: "failed to load prompt", Cause: err}
	}

	answerJSON, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return "", &APICallError{Step: "critique", Message: "failed to encode answer", Cause: err}
	}

	prompt := prompts.Format(template, map[string]string{
		"Answer": string(answerJSON),
	})

	ctx, cancel := context.WithTimeout(ctx, stepTimeout)
	defer cancel()

	responseText, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", &APICallError{Step: "critique", Message: "failed to generate content", Cause: err}
	}

	return responseText, nil
}
