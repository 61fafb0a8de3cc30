package commands

import (
	"context"
	"fmt"

	"github.com/1broseidon/textviz/client"
	"github.com/1broseidon/textviz/internal/config"
	"github.com/1broseidon/textviz/internal/logging"
	"github.com/1broseidon/textviz/orchestrator"
	"github.com/1broseidon/textviz/providers/googlegemini"
	"github.com/1broseidon/textviz/providers/openai"
	"github.com/1broseidon/textviz/render"
)

// app holds the process-wide collaborators shared by every orchestrator.
type app struct {
	cfg      *config.Config
	logger   logging.Logger
	client   *client.Client
	renderer render.Renderer
}

func loadApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	level, _ := cfg.Level()

	logger := logging.NewZapLogger(logging.Options{
		Level:    level,
		JSON:     cfg.IsProduction(),
		FilePath: cfg.App.LogFilePath,
	})

	opts := []client.ClientOption{
		client.WithLogger(logger),
		client.WithSummaryModel(cfg.Models.Summary),
		client.WithDiagramModel(cfg.Models.Diagram),
		client.WithImageModel(cfg.Models.Image),
		client.WithAspectRatio(cfg.Models.AspectRatio),
		client.WithLanguage(cfg.Models.Language),
	}

	if cfg.Keys.GoogleGemini != "" {
		p, err := googlegemini.NewGoogleGeminiProvider(ctx, cfg.Keys.GoogleGemini)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini provider: %w", err)
		}
		opts = append(opts, client.WithProvider(googlegemini.ProviderName, p))
	}
	if cfg.Keys.OpenAI != "" {
		p, err := openai.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Keys.OpenAIBase, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai provider: %w", err)
		}
		opts = append(opts, client.WithProvider(openai.ProviderName, p))
	}

	c, err := client.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		client:   c,
		renderer: newRenderer(cfg.Renderer, logger),
	}, nil
}

// newRenderer falls back to a renderer that always fails when mmdc is missing,
// so diagrams still surface with the render failure message.
func newRenderer(cfg config.RendererConfig, logger logging.Logger) render.Renderer {
	r, err := render.NewMermaidCLI(cfg.MermaidCLI, cfg.Theme)
	if err != nil {
		logger.Warnf("Diagram rendering unavailable: %v", err)
		return render.Func(func(context.Context, string) (*render.Rendered, error) {
			return nil, &render.RenderError{Err: err}
		})
	}
	return r
}

func (a *app) newOrchestrator() *orchestrator.Orchestrator {
	return orchestrator.New(a.client, a.renderer, orchestrator.WithLogger(a.logger))
}

func (a *app) Close() {
	if err := a.client.Close(); err != nil {
		a.logger.Warnf("Error closing providers: %v", err)
	}
	logging.Sync(a.logger)
}
