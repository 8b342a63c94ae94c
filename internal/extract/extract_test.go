package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCandidate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic fence",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "fence with language identifier",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON untouched",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "whitespace trimmed",
			input:    "  \n {\"key\": 1} \n ",
			expected: `{"key": 1}`,
		},
		{
			name:     "non-JSON prose untouched",
			input:    "I could not produce an answer.",
			expected: "I could not produce an answer.",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "unterminated fence",
			input:    "```json\n{\"key\": \"value\"}",
			expected: `{"key": "value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JSONCandidate(tt.input))
		})
	}
}

func TestJSONCandidate_Idempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\": 1}\n```",
		"```\ntext\n```",
		`{"a": 1}`,
		"plain prose with ``` inside",
		"",
		"   spaced   ",
	}

	for _, in := range inputs {
		once := JSONCandidate(in)
		twice := JSONCandidate(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestRepairJSON_TrailingCommas(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"trailing comma in object", `{"a": 1, "b": 2,}`},
		{"trailing comma in array", `{"items": ["x", "y",]}`},
		{"trailing comma with whitespace", "{\"a\": 1,\n}"},
		{"nested trailing commas", `{"a": {"b": [1, 2,],},}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repaired := RepairJSON(tt.input)
			var out map[string]any
			require.NoError(t, json.Unmarshal([]byte(repaired), &out), "repaired: %s", repaired)
		})
	}
}

func TestRepairJSON_UnbalancedBraces(t *testing.T) {
	repaired := RepairJSON(`{"rating": 4.2, "suggestions": ["add metrics"`)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &out))
	assert.Equal(t, 4.2, out["rating"])
}

func TestRepairJSON_UnterminatedString(t *testing.T) {
	repaired := RepairJSON(`{"situation": "we shipped late`)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &out))
	assert.Equal(t, "we shipped late", out["situation"])
}

func TestRepairJSON_ValidInputUnchanged(t *testing.T) {
	input := `{"a": "text with , comma and } brace", "b": [1, 2]}`
	assert.Equal(t, input, RepairJSON(input))
}

func TestRepairJSON_CommaInsideStringPreserved(t *testing.T) {
	input := `{"note": "first, second,"}`
	assert.Equal(t, input, RepairJSON(input))
}
