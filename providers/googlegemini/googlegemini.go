package googlegemini

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	gensdk "google.golang.org/genai"

	"github.com/1broseidon/textviz/models"
)

// ProviderName is the registry key used in "provider/model" strings.
const ProviderName = "googlegemini"

// ErrAPIKeyMissing is returned when the provider is built without a credential.
var ErrAPIKeyMissing = errors.New("gemini API key is not set")

// GoogleGeminiProvider implements the Google Gemini-specific functionality.
// Plain text goes through the generative-ai-go client. Search-grounded text
// and images go through the genai SDK, the one exposing the google_search
// tool and per-request image configuration.
type GoogleGeminiProvider struct {
	client *genai.Client
	sdk    *gensdk.Client
}

// NewGoogleGeminiProvider creates a new Google Gemini provider
func NewGoogleGeminiProvider(ctx context.Context, apiKey string) (*GoogleGeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	sdk, err := gensdk.NewClient(ctx, &gensdk.ClientConfig{
		APIKey:  apiKey,
		Backend: gensdk.BackendGeminiAPI,
	})
	if err != nil {
		client.Close()
		return nil, err
	}

	return &GoogleGeminiProvider{
		client: client,
		sdk:    sdk,
	}, nil
}

// Close closes the Google Gemini client
func (p *GoogleGeminiProvider) Close() error {
	return p.client.Close()
}

// GenerateCompletion generates a completion using the specified Google Gemini model.
// A blocked or empty answer yields empty text, not an error.
func (p *GoogleGeminiProvider) GenerateCompletion(ctx context.Context, modelName string, input models.CompletionInput) (*models.CompletionResponse, error) {
	if input.WebSearch {
		return p.generateGrounded(ctx, modelName, input)
	}

	model := p.client.GenerativeModel(modelName)
	model.SetTemperature(input.Temperature)
	p.SetMaxOutputTokens(model, input.MaxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(input.Prompt))
	if err != nil {
		return nil, err
	}
	return completionResponse(resp), nil
}

func completionResponse(resp *genai.GenerateContentResponse) *models.CompletionResponse {
	out := &models.CompletionResponse{Provider: ProviderName}
	if resp == nil {
		return out
	}
	out.Usage = usage(resp.UsageMetadata)
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		out.Text = joinText(resp.Candidates[0].Content.Parts)
	}
	return out
}

// SetMaxOutputTokens sets the max output tokens for the model
func (p *GoogleGeminiProvider) SetMaxOutputTokens(model *genai.GenerativeModel, maxTokens int) {
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}
}

// joinText concatenates the text parts of a candidate; grounded answers arrive split.
func joinText(parts []genai.Part) string {
	var b strings.Builder
	for _, part := range parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

func usage(meta *genai.UsageMetadata) *models.Usage {
	if meta == nil {
		return nil
	}
	return &models.Usage{
		PromptTokens:     int(meta.PromptTokenCount),
		CompletionTokens: int(meta.CandidatesTokenCount),
		TotalTokens:      int(meta.TotalTokenCount),
	}
}
