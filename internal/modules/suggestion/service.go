// README: Destination suggestions from the text generator, and candidate parsing.
package suggestion

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tripplanner/internal/ai"
)

const DefaultCount = 2

// ErrNoSuggestions is returned when the generator fails or nothing parses.
var ErrNoSuggestions = errors.New("no suggestions available")

var numbered = regexp.MustCompile(`^\d+\.\s*([^,]+),\s*([^,]+)$`)

// Candidate is a destination proposal of the form "Place, Country".
type Candidate struct {
	Place   string `json:"place"`
	Country string `json:"country"`
}

func (c Candidate) String() string {
	return c.Place + ", " + c.Country
}

// ParseCandidate splits "Place, Country" at the first comma. Strings without a
// comma or with an empty place are rejected.
func ParseCandidate(raw string) (Candidate, bool) {
	place, country, ok := strings.Cut(raw, ",")
	if !ok {
		return Candidate{}, false
	}
	place = strings.TrimSpace(place)
	if place == "" {
		return Candidate{}, false
	}
	return Candidate{Place: place, Country: strings.TrimSpace(country)}, true
}

type Service struct {
	gen   ai.TextGenerator
	count int
}

func NewService(gen ai.TextGenerator, count int) *Service {
	if count <= 0 {
		count = DefaultCount
	}
	return &Service{gen: gen, count: count}
}

// Suggest asks for destinations suited to tripType in month and returns them
// as "Place, Country" strings.
func (s *Service) Suggest(ctx context.Context, month time.Month, tripType string) ([]string, error) {
	reply, err := s.gen.GenerateText(ctx, ai.TextRequest{
		System: "You are a travel guide.",
		Prompt: fmt.Sprintf(
			"List exactly %d cities or regions ideal for a %s trip in %s, focusing on the names of the cities or regions and countries only.",
			s.count, tripType, month),
		MaxTokens: 250,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSuggestions, err)
	}

	out := ParseList(reply)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: unparseable reply %q", ErrNoSuggestions, reply)
	}
	return out, nil
}

// ParseList keeps numbered "N. Place, Country" lines.
func ParseList(reply string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(reply), "\n") {
		m := numbered.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		out = append(out, strings.TrimSpace(m[1])+", "+strings.TrimSpace(m[2]))
	}
	return out
}
