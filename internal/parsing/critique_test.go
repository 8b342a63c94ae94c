package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCritique_ValidJSON(t *testing.T) {
	raw := `{
  "rating": 4.2,
  "structure_feedback": "All four sections present and balanced.",
  "relevance_feedback": "Well tailored to the role.",
  "specificity_feedback": "Good metrics in the result.",
  "professional_impact_feedback": "Confident tone throughout.",
  "suggestions": ["Name the company", "Add a timeframe"]
}`

	c := ParseCritique(raw)
	assert.Equal(t, 4.2, c.Rating)
	assert.Equal(t, []string{"Name the company", "Add a timeframe"}, c.Suggestions)
	assert.Equal(t, "All four sections present and balanced.", c.StructureFeedback)
	assert.Equal(t, "Confident tone throughout.", c.ProfessionalImpactFeedback)
	assert.Empty(t, c.RawText)
}

func TestParseCritique_MarkdownFence(t *testing.T) {
	raw := "```json\n{\"rating\": 3.8, \"suggestions\": [\"tighten the action section\"]}\n```"

	c := ParseCritique(raw)
	assert.Equal(t, 3.8, c.Rating)
	assert.Equal(t, []string{"tighten the action section"}, c.Suggestions)
}

func TestParseCritique_MalformedSuggestionsArray(t *testing.T) {
	// Truncated array inside a fenced block: repair closes the brackets but
	// the bare word is still not valid JSON, so the whole parse falls back.
	raw := "```json\n{\"rating\": 4.2, \"suggestions\": [oops\n"

	c := ParseCritique(raw)
	assert.Equal(t, 0.0, c.Rating)
	assert.Equal(t, []string{"Unable to parse critique"}, c.Suggestions)
	assert.Equal(t, raw, c.RawText)
}

func TestParseCritique_RatingOutOfRangeClampsToZero(t *testing.T) {
	for _, raw := range []string{
		`{"rating": 7.5, "suggestions": []}`,
		`{"rating": -1.0, "suggestions": []}`,
	} {
		c := ParseCritique(raw)
		assert.Equal(t, 0.0, c.Rating, "input %s", raw)
		assert.Equal(t, raw, c.RawText, "original preserved for diagnosis")
	}
}

func TestParseCritique_NonNumericRating(t *testing.T) {
	raw := `{"rating": "excellent", "suggestions": ["x"]}`

	c := ParseCritique(raw)
	assert.Equal(t, 0.0, c.Rating)
	assert.Equal(t, raw, c.RawText)
	assert.Equal(t, []string{"x"}, c.Suggestions)
}

func TestParseCritique_NonListSuggestions(t *testing.T) {
	c := ParseCritique(`{"rating": 3.0, "suggestions": "add metrics"}`)
	assert.Equal(t, []string{"add metrics"}, c.Suggestions)
}

func TestParseCritique_MissingSuggestions(t *testing.T) {
	c := ParseCritique(`{"rating": 3.0}`)
	assert.NotNil(t, c.Suggestions)
	assert.Empty(t, c.Suggestions)
}

func TestParseCritique_TrailingCommaRepaired(t *testing.T) {
	c := ParseCritique(`{"rating": 4.0, "suggestions": ["a", "b",],}`)
	assert.Equal(t, 4.0, c.Rating)
	assert.Equal(t, []string{"a", "b"}, c.Suggestions)
}

func TestParseCritique_TotalFailure(t *testing.T) {
	for _, raw := range []string{"", "not json at all", "```\n```"} {
		c := ParseCritique(raw)
		assert.Equal(t, 0.0, c.Rating, "input %q", raw)
		assert.Equal(t, []string{"Unable to parse critique"}, c.Suggestions)
		assert.Equal(t, raw, c.RawText)
	}
}

func TestParseCritique_NeverPanicsOnAnyInput(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"[]",
		`{"rating": null}`,
		`{"suggestions": {"not": "a list"}}`,
		"```json\n{\"rating\": 4.2, \"suggestions\": [oops\n```",
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() { _ = ParseCritique(in) }, "input %q", in)
	}
}
