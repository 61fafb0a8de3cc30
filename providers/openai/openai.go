package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/1broseidon/textviz/internal/logging"
	"github.com/1broseidon/textviz/models"
)

// ProviderName is the registry key used in "provider/model" strings.
const ProviderName = "openai"

// ErrAPIKeyMissing is returned when the provider is built without a credential.
var ErrAPIKeyMissing = errors.New("openai API key is not set")

// OpenAIProvider implements the OpenAI-specific functionality
type OpenAIProvider struct {
	client openai.Client
	logger logging.Logger
}

// NewOpenAIProvider creates a new OpenAI provider. baseURL may point at any
// OpenAI-compatible endpoint; empty keeps the SDK default.
func NewOpenAIProvider(apiKey, baseURL string, logger logging.Logger) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		logger: logger,
	}, nil
}

// Close is a no-op; the SDK holds no long-lived connections of its own.
func (p *OpenAIProvider) Close() error {
	return nil
}

// GenerateCompletion generates a completion using the specified OpenAI model
func (p *OpenAIProvider) GenerateCompletion(ctx context.Context, modelName string, input models.CompletionInput) (*models.CompletionResponse, error) {
	if input.WebSearch {
		p.logger.Warnf("openai chat completions have no search grounding; model %s answers without it", modelName)
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(modelName),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(input.Prompt)},
		Temperature: openai.Float(float64(input.Temperature)),
	}
	if input.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(input.MaxTokens))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API request failed: %w", err)
	}
	return completionFromChat(resp), nil
}

// completionFromChat maps a chat answer; no choices yields empty text.
func completionFromChat(resp *openai.ChatCompletion) *models.CompletionResponse {
	out := &models.CompletionResponse{
		Usage: &models.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
		Provider: ProviderName,
	}
	if len(resp.Choices) > 0 {
		out.Text = resp.Choices[0].Message.Content
	}
	return out
}

// GenerateImage generates images through the Images API and returns them inline.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, modelName string, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
	dalle := strings.HasPrefix(modelName, "dall-e")

	params := openai.ImageGenerateParams{
		Prompt: input.Prompt,
		Model:  openai.ImageModel(modelName),
		Size:   openai.ImageGenerateParamsSize(SizeForAspectRatio(input.AspectRatio, dalle)),
	}
	if dalle {
		// gpt-image models always answer in base64 and reject the field.
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormatB64JSON
	}

	resp, err := p.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI image request failed: %w", err)
	}

	out := &models.ImageGenerationResponse{Provider: ProviderName}
	for _, img := range resp.Data {
		if img.B64JSON == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("openai: decode image payload: %w", err)
		}
		out.Images = append(out.Images, models.InlineImage{MIMEType: "image/png", Data: data})
	}
	return out, nil
}

// SizeForAspectRatio maps an aspect ratio such as "16:9" to the closest size
// the Images API accepts. DALL-E 3 and gpt-image models support different sizes.
func SizeForAspectRatio(aspectRatio string, dalle bool) string {
	w, h, ok := parseRatio(aspectRatio)
	switch {
	case !ok || w == h:
		return "1024x1024"
	case w > h && dalle:
		return "1792x1024"
	case w > h:
		return "1536x1024"
	case dalle:
		return "1024x1792"
	default:
		return "1024x1536"
	}
}

func parseRatio(s string) (int, int, bool) {
	var w, h int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
