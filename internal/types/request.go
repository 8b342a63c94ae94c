package types

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// AnswerRequest represents a request to generate a refined STAR answer.
type AnswerRequest struct {
	Role           string `json:"role" validate:"required,min=2,max=100"`
	Industry       string `json:"industry" validate:"required,min=2,max=100"`
	Question       string `json:"question" validate:"required,min=10"`
	Resume         string `json:"resume,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
}

// Validate validates the AnswerRequest using the validator plus the question
// formatting rules the tags cannot express.
func (r *AnswerRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}

	if !containsAlpha(r.Role) {
		return fmt.Errorf("role must contain alphabetic characters, not just spaces or special characters")
	}
	if !containsAlpha(r.Industry) {
		return fmt.Errorf("industry must contain alphabetic characters, not just spaces or special characters")
	}

	q := strings.TrimSpace(r.Question)
	if !strings.HasSuffix(q, "?") && !strings.HasSuffix(q, ".") && !strings.HasSuffix(q, "!") {
		return fmt.Errorf("question must end with proper punctuation (?, ., or !)")
	}
	if len(strings.Fields(q)) < 3 {
		return fmt.Errorf("question must be at least 3 words long")
	}

	return nil
}

func containsAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// injectionPatterns are phrases scrubbed from user input before it is
// substituted into a prompt template.
var injectionPatterns = []string{
	"ignore previous instructions",
	"disregard",
	"system prompt",
	"ignore the above",
	"ignore all instructions",
	"as an AI",
	"as an LLM",
}

// SanitizeForPrompt removes known prompt-injection phrases from a user-supplied value.
func SanitizeForPrompt(v string) string {
	for _, pattern := range injectionPatterns {
		v = strings.ReplaceAll(v, pattern, "[filtered]")
	}
	return v
}

// Sanitized returns a copy of the request with injection patterns filtered
// from every field that reaches a prompt.
func (r AnswerRequest) Sanitized() AnswerRequest {
	return AnswerRequest{
		Role:           SanitizeForPrompt(r.Role),
		Industry:       SanitizeForPrompt(r.Industry),
		Question:       SanitizeForPrompt(r.Question),
		Resume:         SanitizeForPrompt(r.Resume),
		JobDescription: SanitizeForPrompt(r.JobDescription),
	}
}
