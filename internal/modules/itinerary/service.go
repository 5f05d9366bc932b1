package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tripplanner/internal/ai"
)

const (
	DefaultMaxImages = 4
	attractionCount  = 5
	systemPrompt     = "You are a travel guide."
)

var ErrNoGenerator = errors.New("itinerary: no text generator configured")

// AttractionSource supplies notable sights used as extra prompt context.
type AttractionSource interface {
	AttractionNames(ctx context.Context, location string, n int) ([]string, error)
}

// Request describes the trip an itinerary is written for.
type Request struct {
	Location string
	TripType string
	Start    time.Time
	End      time.Time
}

// Image is one generated picture. Failures are recorded in Error instead of
// aborting the batch.
type Image struct {
	Prompt string `json:"prompt"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Plan is an itinerary with its illustrations.
type Plan struct {
	Text   string  `json:"itinerary"`
	Images []Image `json:"images,omitempty"`
}

type Service struct {
	text        ai.TextGenerator
	images      ai.ImageGenerator
	attractions AttractionSource
	maxImages   int
	concurrency int
	logger      *zap.Logger
}

type Option func(*Service)

func WithAttractions(src AttractionSource) Option {
	return func(s *Service) { s.attractions = src }
}

// WithMaxImages caps the images produced per itinerary. Zero disables images.
func WithMaxImages(n int) Option {
	return func(s *Service) { s.maxImages = n }
}

func WithConcurrency(n int) Option {
	return func(s *Service) { s.concurrency = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(text ai.TextGenerator, images ai.ImageGenerator, opts ...Option) *Service {
	s := &Service{
		text:        text,
		images:      images,
		maxImages:   DefaultMaxImages,
		concurrency: 2,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prompt builds the itinerary request text. attractions may be empty.
func Prompt(req Request, attractions []string) string {
	p := fmt.Sprintf(
		"Create a detailed daily itinerary for a %s trip to %s from %s to %s. Include activities, meal suggestions, and local travel tips.",
		req.TripType, req.Location, req.Start.Format(time.DateOnly), req.End.Format(time.DateOnly))
	if len(attractions) > 0 {
		p += " Consider these popular attractions: " + strings.Join(attractions, "; ") + "."
	}
	return p
}

// Itinerary asks the text generator for a day-by-day plan.
func (s *Service) Itinerary(ctx context.Context, req Request) (string, error) {
	if s.text == nil {
		return "", ErrNoGenerator
	}

	var attractions []string
	if s.attractions != nil {
		names, err := s.attractions.AttractionNames(ctx, req.Location, attractionCount)
		if err != nil {
			s.logger.Warn("attraction lookup failed", zap.String("location", req.Location), zap.Error(err))
		} else {
			attractions = names
		}
	}

	text, err := s.text.GenerateText(ctx, ai.TextRequest{
		System:      systemPrompt,
		Prompt:      Prompt(req, attractions),
		MaxTokens:   1500,
		Temperature: ai.Temp(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("itinerary for %s: %w", req.Location, err)
	}
	return text, nil
}

// Images renders pictures for the prompts. Each prompt gets
// max(1, cap/len(prompts)) images and the total is truncated to the cap.
// Results keep prompt order.
func (s *Service) Images(ctx context.Context, prompts []string) []Image {
	slots := planImages(prompts, s.maxImages)
	if len(slots) == 0 || s.images == nil {
		return nil
	}

	out := make([]Image, len(slots))
	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, prompt := range slots {
		g.Go(func() error {
			img := Image{Prompt: prompt}
			url, err := s.images.GenerateImage(gctx, prompt)
			if err != nil {
				img.Error = "Error generating image: " + err.Error()
				s.logger.Warn("image generation failed", zap.String("prompt", prompt), zap.Error(err))
			} else {
				img.URL = url
			}
			out[i] = img
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Illustrate writes the itinerary and renders images for the prompts found in it.
func (s *Service) Illustrate(ctx context.Context, req Request) (Plan, error) {
	text, err := s.Itinerary(ctx, req)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Text: text, Images: s.Images(ctx, ExtractPrompts(text))}, nil
}

// planImages expands prompts into one entry per image to request.
func planImages(prompts []string, limit int) []string {
	if limit <= 0 || len(prompts) == 0 {
		return nil
	}
	per := max(1, limit/len(prompts))
	slots := make([]string, 0, limit)
	for _, p := range prompts {
		for i := 0; i < per && len(slots) < limit; i++ {
			slots = append(slots, p)
		}
		if len(slots) == limit {
			break
		}
	}
	return slots
}
