package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/1broseidon/textviz/client"
	"github.com/1broseidon/textviz/common"
	"github.com/1broseidon/textviz/providers/googlegemini"
	"github.com/1broseidon/textviz/providers/openai"
	"github.com/1broseidon/textviz/render"
)

type Config struct {
	App      AppConfig
	Keys     APIKeys
	Models   ModelConfig
	Renderer RendererConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogLevel           string
	LogFilePath        string
	CorsAllowedOrigins string
	SessionTTL         time.Duration
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
	OpenAIBase   string
}

type ModelConfig struct {
	Summary     string
	Diagram     string
	Image       string
	AspectRatio string
	Language    string
}

type RendererConfig struct {
	MermaidCLI string
	Theme      string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

// Load reads an optional .env file, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogLevel:           getEnv("LOG_LEVEL", "info"),
			LogFilePath:        getEnv("LOG_FILE_PATH", ""),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", time.Hour),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			OpenAIBase:   getEnv("OPENAI_BASE_URL", ""),
		},
		Models: ModelConfig{
			Summary:     getEnv("TEXTVIZ_SUMMARY_MODEL", client.DefaultSummaryModel),
			Diagram:     getEnv("TEXTVIZ_DIAGRAM_MODEL", client.DefaultDiagramModel),
			Image:       getEnv("TEXTVIZ_IMAGE_MODEL", client.DefaultImageModel),
			AspectRatio: getEnv("TEXTVIZ_ASPECT_RATIO", client.DefaultAspectRatio),
			Language:    getEnv("TEXTVIZ_LANGUAGE", client.DefaultLanguage),
		},
		Renderer: RendererConfig{
			MermaidCLI: getEnv("MMDC_PATH", "mmdc"),
			Theme:      getEnv("MERMAID_THEME", render.DefaultTheme),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// IsProduction reports whether logs should be JSON encoded.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Level parses the configured log level.
func (c *Config) Level() (common.LogLevel, error) {
	return common.ParseLogLevel(c.App.LogLevel)
}

// Validate checks that every configured model names a provider with a credential.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	for _, m := range []struct{ role, model string }{
		{"summary", c.Models.Summary},
		{"diagram", c.Models.Diagram},
		{"image", c.Models.Image},
	} {
		switch provider := client.ProviderOf(m.model); provider {
		case googlegemini.ProviderName:
			if c.Keys.GoogleGemini == "" {
				errs = append(errs, fmt.Errorf("%s model %s: GEMINI_API_KEY is not set", m.role, m.model))
			}
		case openai.ProviderName:
			if c.Keys.OpenAI == "" {
				errs = append(errs, fmt.Errorf("%s model %s: OPENAI_API_KEY is not set", m.role, m.model))
			}
		case "":
			errs = append(errs, fmt.Errorf("%s model %q: expected provider/model", m.role, m.model))
		default:
			errs = append(errs, fmt.Errorf("%s model %s: %w: %s", m.role, m.model, client.ErrUnsupportedProvider, provider))
		}
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil && value > 0 {
		return value
	}
	return fallback
}
