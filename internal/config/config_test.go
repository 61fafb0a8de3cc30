package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/textviz/client"
	"github.com/1broseidon/textviz/common"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"TEXTVIZ_SUMMARY_MODEL", "TEXTVIZ_DIAGRAM_MODEL", "TEXTVIZ_IMAGE_MODEL",
		"TEXTVIZ_ASPECT_RATIO", "TEXTVIZ_LANGUAGE", "APP_PORT", "GO_ENV", "LOG_LEVEL",
		"LOG_FILE_PATH", "CORS_ALLOWED_ORIGINS", "SESSION_TTL", "MMDC_PATH", "MERMAID_THEME",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, time.Hour, cfg.App.SessionTTL)
	assert.Equal(t, client.DefaultSummaryModel, cfg.Models.Summary)
	assert.Equal(t, client.DefaultDiagramModel, cfg.Models.Diagram)
	assert.Equal(t, client.DefaultImageModel, cfg.Models.Image)
	assert.Equal(t, "16:9", cfg.Models.AspectRatio)
	assert.Equal(t, "mmdc", cfg.Renderer.MermaidCLI)
	assert.Equal(t, "neutral", cfg.Renderer.Theme)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "localhost:4318", cfg.Tracing.Endpoint)
	assert.False(t, cfg.IsProduction())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, common.InfoLevel, level)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "fallback-key")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("GO_ENV", "production")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("TEXTVIZ_IMAGE_MODEL", "openai/gpt-image-1")

	cfg := FromEnv()
	assert.Equal(t, "fallback-key", cfg.Keys.GoogleGemini)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 15*time.Minute, cfg.App.SessionTTL)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "openai/gpt-image-1", cfg.Models.Image)

	t.Setenv("GEMINI_API_KEY", "primary-key")
	assert.Equal(t, "primary-key", FromEnv().Keys.GoogleGemini)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "soon")
	assert.Equal(t, time.Hour, FromEnv().App.SessionTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr []string
	}{
		{
			name: "gemini key present",
			env:  map[string]string{"GEMINI_API_KEY": "k"},
		},
		{
			name:    "gemini key missing",
			env:     map[string]string{},
			wantErr: []string{"summary model", "diagram model", "image model", "GEMINI_API_KEY"},
		},
		{
			name: "openai image model without openai key",
			env: map[string]string{
				"GEMINI_API_KEY":      "k",
				"TEXTVIZ_IMAGE_MODEL": "openai/gpt-image-1",
			},
			wantErr: []string{"image model", "OPENAI_API_KEY"},
		},
		{
			name: "unknown provider",
			env: map[string]string{
				"GEMINI_API_KEY":        "k",
				"TEXTVIZ_DIAGRAM_MODEL": "mystery/model",
			},
			wantErr: []string{"unsupported provider"},
		},
		{
			name: "malformed model",
			env: map[string]string{
				"GEMINI_API_KEY":        "k",
				"TEXTVIZ_SUMMARY_MODEL": "no-slash",
			},
			wantErr: []string{"expected provider/model"},
		},
		{
			name: "bad log level",
			env: map[string]string{
				"GEMINI_API_KEY": "k",
				"LOG_LEVEL":      "chatty",
			},
			wantErr: []string{"unknown log level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := FromEnv().Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
