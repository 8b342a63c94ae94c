package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	ClearCache()

	tests := []struct {
		name     string
		filename string
		key      string
		wantErr  bool
		contains string
	}{
		{
			name:     "generate prompt exists",
			filename: "star.json",
			key:      "generate-answer",
			contains: "STAR Answer Generator",
		},
		{
			name:     "critique prompt exists",
			filename: "star.json",
			key:      "critique-answer",
			contains: "Quality Evaluator",
		},
		{
			name:     "refine prompt exists",
			filename: "star.json",
			key:      "refine-answer",
			contains: "STAR Answer Refiner",
		},
		{
			name:     "unknown key",
			filename: "star.json",
			key:      "no-such-prompt",
			wantErr:  true,
		},
		{
			name:     "unknown file",
			filename: "missing.json",
			key:      "generate-answer",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Get(tt.filename, tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, got, tt.contains)
		})
	}
}

func TestPromptPlaceholders(t *testing.T) {
	ClearCache()

	generate, err := Get("star.json", "generate-answer")
	require.NoError(t, err)
	for _, placeholder := range []string{"{{.Role}}", "{{.Industry}}", "{{.Question}}", "{{.Resume}}", "{{.JobDescription}}"} {
		assert.Contains(t, generate, placeholder)
	}

	critique, err := Get("star.json", "critique-answer")
	require.NoError(t, err)
	assert.Contains(t, critique, "{{.Answer}}")

	refine, err := Get("star.json", "refine-answer")
	require.NoError(t, err)
	assert.Contains(t, refine, "{{.Answer}}")
	assert.Contains(t, refine, "{{.Critique}}")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{
			name:     "single substitution",
			template: "Role: {{.Role}}",
			data:     map[string]string{"Role": "Engineer"},
			want:     "Role: Engineer",
		},
		{
			name:     "multiple substitutions",
			template: "{{.Role}} in {{.Industry}}",
			data:     map[string]string{"Role": "Analyst", "Industry": "Finance"},
			want:     "Analyst in Finance",
		},
		{
			name:     "missing key leaves placeholder",
			template: "{{.Role}} and {{.Other}}",
			data:     map[string]string{"Role": "PM"},
			want:     "PM and {{.Other}}",
		},
		{
			name:     "empty value",
			template: "Resume: {{.Resume}}",
			data:     map[string]string{"Resume": ""},
			want:     "Resume: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestFormat_RealTemplate(t *testing.T) {
	template := MustGet("star.json", "generate-answer")
	formatted := Format(template, map[string]string{
		"Role":           "Data Scientist",
		"Industry":       "Healthcare",
		"Question":       "Tell me about a time you led a project.",
		"Resume":         "",
		"JobDescription": "",
	})
	assert.Contains(t, formatted, "Data Scientist")
	assert.Contains(t, formatted, "Healthcare")
	assert.False(t, strings.Contains(formatted, "{{.Role}}"))
	assert.False(t, strings.Contains(formatted, "{{.Question}}"))
}
