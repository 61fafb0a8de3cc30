package models

// ImageGenerationInput represents the input for an image generation request.
type ImageGenerationInput struct {
	Model       string
	Prompt      string
	AspectRatio string // e.g. "16:9"
}

// InlineImage is one image payload returned inline by a provider.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// ImageGenerationResponse represents the response from an image generation request.
type ImageGenerationResponse struct {
	Images   []InlineImage
	Provider string
}
