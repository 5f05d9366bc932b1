package ai

import (
	"context"
)

// TextGenerator produces free text for a prompt.
// Implementations exist for OpenAI chat completions and Gemini, so the
// provider can be swapped by configuration.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// ImageGenerator renders one image for a prompt and returns its URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
