package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/star-refiner/internal/llm"
	"github.com/jonathan/star-refiner/internal/workflow"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "test-key",
		"rating_threshold": 4.2,
		"max_iterations": 5,
		"advanced_model": "gemini-custom"
	}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 4.2, cfg.RatingThreshold)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, "gemini-custom", cfg.AdvancedModel)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("")
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConfig(t, `{not json`)
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"api_key": "file-key", "max_iterations": 2}`)
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvRatingThreshold, "4.8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 4.8, cfg.RatingThreshold)
	assert.Equal(t, 2, cfg.MaxIterations)
}

func TestLoad_InvalidEnvValues(t *testing.T) {
	t.Setenv(EnvRatingThreshold, "not-a-number")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidMaxIterationsEnv(t *testing.T) {
	t.Setenv(EnvMaxIterations, "three")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{APIKey: "k", RatingThreshold: 4.6, MaxIterations: 3},
		},
		{
			name:    "missing api key",
			cfg:     Config{RatingThreshold: 4.6},
			wantErr: "API key",
		},
		{
			name:    "threshold out of range",
			cfg:     Config{APIKey: "k", RatingThreshold: 6.0},
			wantErr: "rating_threshold",
		},
		{
			name:    "negative iterations",
			cfg:     Config{APIKey: "k", MaxIterations: -1},
			wantErr: "max_iterations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWorkflowConfig_Defaults(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, workflow.DefaultConfig(), cfg.WorkflowConfig())

	cfg = Config{RatingThreshold: 4.0, MaxIterations: 1}
	wc := cfg.WorkflowConfig()
	assert.Equal(t, 4.0, wc.RatingThreshold)
	assert.Equal(t, 1, wc.MaxIterations)
}

func TestLLMConfig_Overrides(t *testing.T) {
	cfg := Config{AdvancedModel: "gemini-custom"}
	lc := cfg.LLMConfig()

	assert.Equal(t, "gemini-custom", lc.GetModel(llm.TierAdvanced))
	assert.Equal(t, llm.DefaultGeminiConfig().GetModel(llm.TierStandard), lc.GetModel(llm.TierStandard))
}
