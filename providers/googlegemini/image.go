package googlegemini

import (
	"context"

	gensdk "google.golang.org/genai"

	"github.com/1broseidon/textviz/models"
)

// GenerateImage sends one prompt to an image-capable Gemini model and
// collects every inline image part of the first candidate.
func (p *GoogleGeminiProvider) GenerateImage(ctx context.Context, modelName string, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
	config := &gensdk.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	}
	if input.AspectRatio != "" {
		config.ImageConfig = &gensdk.ImageConfig{AspectRatio: input.AspectRatio}
	}

	resp, err := p.sdk.Models.GenerateContent(ctx, modelName, gensdk.Text(input.Prompt), config)
	if err != nil {
		return nil, err
	}

	out := &models.ImageGenerationResponse{Provider: ProviderName}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return out, nil
	}
	out.Images = inlineImages(resp.Candidates[0].Content.Parts)
	return out, nil
}

func inlineImages(parts []*gensdk.Part) []models.InlineImage {
	var images []models.InlineImage
	for _, part := range parts {
		if part == nil || part.InlineData == nil {
			continue
		}
		images = append(images, models.InlineImage{
			MIMEType: part.InlineData.MIMEType,
			Data:     part.InlineData.Data,
		})
	}
	return images
}
