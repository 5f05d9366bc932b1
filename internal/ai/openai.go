package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultOpenAIModel = "gpt-3.5-turbo"
	DefaultImageSize   = "1024x1024"
)

// OpenAIProvider implements TextGenerator and ImageGenerator on the OpenAI API.
type OpenAIProvider struct {
	client    openai.Client
	model     string
	imageSize string
	reqOpts   []option.RequestOption
}

type OpenAIOption func(*OpenAIProvider)

// WithOpenAIBaseURL points the client at a compatible endpoint.
func WithOpenAIBaseURL(u string) OpenAIOption {
	return func(p *OpenAIProvider) {
		if u != "" {
			p.reqOpts = append(p.reqOpts, option.WithBaseURL(u))
		}
	}
}

func WithOpenAIModel(model string) OpenAIOption {
	return func(p *OpenAIProvider) {
		if model != "" {
			p.model = model
		}
	}
}

func WithImageSize(size string) OpenAIOption {
	return func(p *OpenAIProvider) {
		if size != "" {
			p.imageSize = size
		}
	}
}

// WithOpenAIMaxRetries overrides the SDK's retry count for 429 and 5xx answers.
func WithOpenAIMaxRetries(n int) OpenAIOption {
	return func(p *OpenAIProvider) {
		if n >= 0 {
			p.reqOpts = append(p.reqOpts, option.WithMaxRetries(n))
		}
	}
}

func NewOpenAIProvider(apiKey string, opts ...OpenAIOption) *OpenAIProvider {
	p := &OpenAIProvider{
		model:     DefaultOpenAIModel,
		imageSize: DefaultImageSize,
		reqOpts: []option.RequestOption{
			option.WithAPIKey(apiKey),
			// image generation regularly takes longer than chat
			option.WithRequestTimeout(90 * time.Second),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.client = openai.NewClient(p.reqOpts...)
	return p
}

// GenerateText sends one chat completion and returns the trimmed reply.
func (p *OpenAIProvider) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	msgs = append(msgs, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    p.model,
		Messages: msgs,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(float64(*req.Temperature))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat: %w", ErrEmptyResponse)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateImage requests a single image and returns its URL.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize(p.imageSize),
	})
	if err != nil {
		return "", fmt.Errorf("openai image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("openai image: %w", ErrEmptyResponse)
	}
	return resp.Data[0].URL, nil
}
