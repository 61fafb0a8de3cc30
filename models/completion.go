package models

// CompletionInput represents the input for a text completion request.
type CompletionInput struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float32
	// WebSearch asks the provider to ground the answer with search-augmented retrieval.
	WebSearch bool
}

// CompletionResponse represents the response from a completion request.
type CompletionResponse struct {
	Text     string
	Usage    *Usage
	Provider string // Indicates which provider generated the response
}

// Usage represents the token usage information for a completion request.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
