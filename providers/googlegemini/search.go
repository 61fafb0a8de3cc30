package googlegemini

import (
	"context"
	"strings"

	gensdk "google.golang.org/genai"

	"github.com/1broseidon/textviz/models"
)

// generateGrounded answers with the google_search tool enabled so the model
// can fetch pages it is asked about.
func (p *GoogleGeminiProvider) generateGrounded(ctx context.Context, modelName string, input models.CompletionInput) (*models.CompletionResponse, error) {
	resp, err := p.sdk.Models.GenerateContent(ctx, modelName, gensdk.Text(input.Prompt), searchConfig(input))
	if err != nil {
		return nil, err
	}
	return groundedResponse(resp), nil
}

func searchConfig(input models.CompletionInput) *gensdk.GenerateContentConfig {
	config := &gensdk.GenerateContentConfig{
		Temperature: gensdk.Ptr(input.Temperature),
		Tools:       []*gensdk.Tool{{GoogleSearch: &gensdk.GoogleSearch{}}},
	}
	if input.MaxTokens > 0 {
		config.MaxOutputTokens = int32(input.MaxTokens)
	}
	return config
}

func groundedResponse(resp *gensdk.GenerateContentResponse) *models.CompletionResponse {
	out := &models.CompletionResponse{Provider: ProviderName}
	if resp == nil {
		return out
	}
	if meta := resp.UsageMetadata; meta != nil {
		out.Usage = &models.Usage{
			PromptTokens:     int(meta.PromptTokenCount),
			CompletionTokens: int(meta.CandidatesTokenCount),
			TotalTokens:      int(meta.TotalTokenCount),
		}
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		out.Text = partsText(resp.Candidates[0].Content.Parts)
	}
	return out
}

// partsText joins the answer text, leaving out thought summaries.
func partsText(parts []*gensdk.Part) string {
	var b strings.Builder
	for _, part := range parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
