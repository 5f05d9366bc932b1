package ai

import "errors"

// ErrEmptyResponse is returned when a provider answers without any content.
var ErrEmptyResponse = errors.New("ai: empty response")

// TextRequest is one text-generation call.
type TextRequest struct {
	// System sets the assistant persona, e.g. "You are a travel guide."
	System string

	Prompt string

	// MaxTokens caps the response length. Zero leaves the provider default.
	MaxTokens int

	// Temperature is passed through when non-nil.
	Temperature *float32
}

// Temp is a helper for setting TextRequest.Temperature inline.
func Temp(v float32) *float32 {
	return &v
}
