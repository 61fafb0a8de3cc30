package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/1broseidon/textviz/common"
	"github.com/1broseidon/textviz/internal/logging"
	"github.com/1broseidon/textviz/models"
)

// Provider interface defines the methods that each provider must implement
type Provider interface {
	GenerateCompletion(ctx context.Context, modelName string, input models.CompletionInput) (*models.CompletionResponse, error)
	GenerateImage(ctx context.Context, modelName string, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error)
	Close() error
}

// Default "provider/model" strings and request settings.
const (
	DefaultSummaryModel = "googlegemini/gemini-3-flash-preview"
	DefaultDiagramModel = "googlegemini/gemini-3-pro-preview"
	DefaultImageModel   = "googlegemini/gemini-2.5-flash-image"
	DefaultAspectRatio  = "16:9"
	DefaultLanguage     = "Simplified Chinese"

	summaryTemperature = 0.2
	diagramTemperature = 0.3
)

// Descriptions attached to generated results.
const (
	DiagramDescription = "AI-distilled logic diagram"
	ImageDescription   = "AI infographic"
)

// ErrNoImage is returned when an image request succeeds but carries no inline image.
var ErrNoImage = errors.New("no image produced")

// Client is the remote generation client. It is built once at process start
// and shared by every orchestrator.
type Client struct {
	providers    map[string]Provider
	summaryModel string
	diagramModel string
	imageModel   string
	aspectRatio  string
	language     string
	logger       logging.Logger
	mu           sync.RWMutex
}

// NewClient creates a new client. Providers are registered through
// WithProvider or RegisterProvider; nothing is read from the environment.
func NewClient(ctx context.Context, options ...ClientOption) (*Client, error) {
	c := &Client{
		providers:    make(map[string]Provider),
		summaryModel: DefaultSummaryModel,
		diagramModel: DefaultDiagramModel,
		imageModel:   DefaultImageModel,
		aspectRatio:  DefaultAspectRatio,
		language:     DefaultLanguage,
		logger:       logging.NewDefaultLogger(),
	}

	// Set default log level to Disabled
	c.logger.SetLevel(common.DisabledLevel)

	// Apply options
	for _, option := range options {
		option(c)
	}

	for _, m := range []string{c.summaryModel, c.diagramModel, c.imageModel} {
		if _, _, err := parseProviderModel(m); err != nil {
			return nil, fmt.Errorf("model %q: %w", m, err)
		}
	}

	c.logger.Info("Initializing textviz client")

	return c, nil
}

// RegisterProvider registers a new provider with the client
func (c *Client) RegisterProvider(name string, provider Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[name] = provider
}

// Close closes all provider clients
func (c *Client) Close() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var wg sync.WaitGroup
	errChan := make(chan error, len(c.providers))

	for _, provider := range c.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			if err := p.Close(); err != nil {
				errChan <- err
			}
		}(provider)
	}

	go func() {
		wg.Wait()
		close(errChan)
	}()

	var lastErr error
	for err := range errChan {
		if err != nil {
			c.logger.Error("Error closing provider:", err)
			lastErr = err
		}
	}

	return lastErr
}

// GenerateCompletion generates a completion with the provider named in
// input.Model, which must have the form "provider/model".
func (c *Client) GenerateCompletion(ctx context.Context, input models.CompletionInput) (*models.CompletionResponse, error) {
	p, model, err := c.provider(input.Model)
	if err != nil {
		return nil, err
	}

	c.logger.Debugf("Generating completion with model %s", input.Model)
	resp, err := p.GenerateCompletion(ctx, model, input)
	if err != nil {
		c.logger.Error("Failed to generate completion:", err)
		return nil, err
	}

	return resp, nil
}

// GenerateImage generates an image with the provider named in input.Model.
func (c *Client) GenerateImage(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
	p, model, err := c.provider(input.Model)
	if err != nil {
		return nil, err
	}

	c.logger.Debugf("Generating image with model %s", input.Model)
	resp, err := p.GenerateImage(ctx, model, input)
	if err != nil {
		c.logger.Error("Failed to generate image:", err)
		return nil, err
	}

	return resp, nil
}

// Summarize condenses raw text, or the page behind a URL, into a structured
// description for the requested category. An empty answer falls back to the
// original input.
func (c *Client) Summarize(ctx context.Context, input string, category models.Category) (string, error) {
	urlMode := IsURL(input)

	resp, err := c.GenerateCompletion(ctx, models.CompletionInput{
		Model:       c.summaryModel,
		Prompt:      buildSummaryPrompt(input, category, urlMode, c.language),
		Temperature: summaryTemperature,
		WebSearch:   urlMode,
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	if resp.Text == "" {
		c.logger.Warn("Summary came back empty, using the original input")
		return input, nil
	}
	return resp.Text, nil
}

// Visualize turns a summary into diagram markup, or into an image when the
// category is illustration.
func (c *Client) Visualize(ctx context.Context, summary string, category models.Category) (models.Result, error) {
	if category == models.CategoryIllustration {
		return c.generateImage(ctx, summary)
	}
	return c.generateDiagram(ctx, summary, category)
}

func (c *Client) generateDiagram(ctx context.Context, summary string, category models.Category) (models.Result, error) {
	resp, err := c.GenerateCompletion(ctx, models.CompletionInput{
		Model:       c.diagramModel,
		Prompt:      buildDiagramPrompt(summary, category, c.language),
		Temperature: diagramTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("visualize: %w", err)
	}

	markup := StripCodeFence(resp.Text)
	return &models.DiagramResult{
		Kind:        ResolveCategory(category, markup),
		Markup:      markup,
		Description: DiagramDescription,
	}, nil
}

func (c *Client) generateImage(ctx context.Context, summary string) (models.Result, error) {
	resp, err := c.GenerateImage(ctx, models.ImageGenerationInput{
		Model:       c.imageModel,
		Prompt:      buildImagePrompt(summary, c.language),
		AspectRatio: c.aspectRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("visualize: %w", err)
	}

	for _, img := range resp.Images {
		if len(img.Data) > 0 {
			return &models.ImageResult{
				MIMEType:    img.MIMEType,
				Data:        img.Data,
				Description: ImageDescription,
			}, nil
		}
	}
	return nil, ErrNoImage
}

func (c *Client) provider(providerModel string) (Provider, string, error) {
	provider, model, err := parseProviderModel(providerModel)
	if err != nil {
		c.logger.Error("Failed to parse provider/model", "error", err)
		return nil, "", fmt.Errorf("failed to parse provider/model: %w", err)
	}

	c.mu.RLock()
	p, ok := c.providers[provider]
	c.mu.RUnlock()

	if !ok {
		c.logger.Error("Unsupported provider:", provider)
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
	return p, model, nil
}

// parseProviderModel splits the providerModel string into provider and model components.
// It returns an error if the string is not in the correct "provider/model" format.
func parseProviderModel(providerModel string) (string, string, error) {
	parts := strings.SplitN(providerModel, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.New("invalid provider/model format")
	}
	return parts[0], parts[1], nil
}

// ProviderOf returns the provider half of a "provider/model" string, or "" when malformed.
func ProviderOf(providerModel string) string {
	provider, _, err := parseProviderModel(providerModel)
	if err != nil {
		return ""
	}
	return provider
}
