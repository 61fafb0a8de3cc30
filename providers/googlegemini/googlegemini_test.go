package googlegemini

import (
	"context"
	"os"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gensdk "google.golang.org/genai"

	"github.com/1broseidon/textviz/models"
)

func TestNewGoogleGeminiProviderRequiresKey(t *testing.T) {
	p, err := NewGoogleGeminiProvider(context.Background(), "")
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
	assert.Nil(t, p)
}

func TestJoinText(t *testing.T) {
	parts := []genai.Part{
		genai.Text("graph TD\n"),
		genai.Blob{MIMEType: "image/png", Data: []byte{1}},
		genai.Text("  A --> B"),
	}
	assert.Equal(t, "graph TD\n  A --> B", joinText(parts))
}

func TestUsage(t *testing.T) {
	assert.Nil(t, usage(nil))

	u := usage(&genai.UsageMetadata{PromptTokenCount: 3, CandidatesTokenCount: 4, TotalTokenCount: 7})
	require.NotNil(t, u)
	assert.Equal(t, models.Usage{PromptTokens: 3, CompletionTokens: 4, TotalTokens: 7}, *u)
}

func TestInlineImages(t *testing.T) {
	parts := []*gensdk.Part{
		{Text: "here is your infographic"},
		nil,
		{InlineData: &gensdk.Blob{MIMEType: "image/png", Data: []byte("png")}},
	}

	images := inlineImages(parts)
	require.Len(t, images, 1)
	assert.Equal(t, "image/png", images[0].MIMEType)
	assert.Equal(t, []byte("png"), images[0].Data)

	assert.Empty(t, inlineImages([]*gensdk.Part{{Text: "no image"}}))
}

func TestSearchConfig(t *testing.T) {
	config := searchConfig(models.CompletionInput{Prompt: "p", Temperature: 0.2, WebSearch: true})

	require.Len(t, config.Tools, 1)
	assert.NotNil(t, config.Tools[0].GoogleSearch)
	assert.Nil(t, config.Tools[0].GoogleSearchRetrieval)
	require.NotNil(t, config.Temperature)
	assert.Equal(t, float32(0.2), *config.Temperature)
	assert.Zero(t, config.MaxOutputTokens)

	config = searchConfig(models.CompletionInput{MaxTokens: 512, WebSearch: true})
	assert.Equal(t, int32(512), config.MaxOutputTokens)
}

func TestGroundedResponse(t *testing.T) {
	resp := &gensdk.GenerateContentResponse{
		Candidates: []*gensdk.Candidate{{
			Content: &gensdk.Content{Parts: []*gensdk.Part{
				{Text: "planning the search", Thought: true},
				{Text: "The article "},
				nil,
				{Text: "argues three points."},
			}},
		}},
		UsageMetadata: &gensdk.GenerateContentResponseUsageMetadata{PromptTokenCount: 5, CandidatesTokenCount: 6, TotalTokenCount: 11},
	}

	out := groundedResponse(resp)
	assert.Equal(t, "The article argues three points.", out.Text)
	assert.Equal(t, ProviderName, out.Provider)
	require.NotNil(t, out.Usage)
	assert.Equal(t, 11, out.Usage.TotalTokens)
}

func TestEmptyAnswersYieldEmptyText(t *testing.T) {
	for name, out := range map[string]*models.CompletionResponse{
		"grounded nil":           groundedResponse(nil),
		"grounded no candidates": groundedResponse(&gensdk.GenerateContentResponse{}),
		"grounded no content":    groundedResponse(&gensdk.GenerateContentResponse{Candidates: []*gensdk.Candidate{{}}}),
		"plain nil":              completionResponse(nil),
		"plain no candidates":    completionResponse(&genai.GenerateContentResponse{}),
		"plain no content":       completionResponse(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}),
	} {
		t.Run(name, func(t *testing.T) {
			require.NotNil(t, out)
			assert.Empty(t, out.Text)
			assert.Equal(t, ProviderName, out.Provider)
		})
	}
}

func TestGoogleGeminiProvider(t *testing.T) {
	// Skip the test if GEMINI_API_KEY is not set
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping Google Gemini provider test")
	}

	ctx := context.Background()

	provider, err := NewGoogleGeminiProvider(ctx, apiKey)
	require.NoError(t, err)
	defer provider.Close()

	t.Run("GenerateCompletion", func(t *testing.T) {
		response, err := provider.GenerateCompletion(ctx, "gemini-2.5-flash", models.CompletionInput{
			Prompt:      "Summarize the water cycle in three short steps.",
			Temperature: 0.2,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, response.Text)
		assert.Equal(t, ProviderName, response.Provider)
	})

	t.Run("GenerateCompletionWithSearch", func(t *testing.T) {
		response, err := provider.GenerateCompletion(ctx, "gemini-2.5-flash", models.CompletionInput{
			Prompt:      "Summarize the content of this URL: https://go.dev/doc/effective_go",
			Temperature: 0.2,
			WebSearch:   true,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, response.Text)
	})

	t.Run("GenerateImage", func(t *testing.T) {
		response, err := provider.GenerateImage(ctx, "gemini-2.5-flash-image", models.ImageGenerationInput{
			Prompt:      "A flat vector icon of a gear on a white background.",
			AspectRatio: "16:9",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, response.Images)
	})
}
