package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

const minRating = 4.0

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// textSearcher is the subset of *maps.Client used here.
type textSearcher interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client textSearcher
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// TopAttractions returns up to n well-rated tourist attractions in location,
// in the order Places ranks them.
func (s *PlacesService) TopAttractions(ctx context.Context, location string, n int) ([]Place, error) {
	if n <= 0 {
		return nil, nil
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    "top tourist attractions in " + location,
		Type:     maps.PlaceTypeTouristAttraction,
		Language: "en",
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	seen := make(map[string]struct{}, len(resp.Results))
	var results []Place
	for _, r := range resp.Results {
		if r.Rating < minRating {
			continue
		}
		if _, dup := seen[r.PlaceID]; dup {
			continue
		}
		seen[r.PlaceID] = struct{}{}

		results = append(results, Place{
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Rating:           r.Rating,
			PlaceID:          r.PlaceID,
			UserRatingsTotal: r.UserRatingsTotal,
		})
		if len(results) >= n {
			break
		}
	}
	return results, nil
}

// AttractionNames returns the names of the top n attractions, for prompt context.
func (s *PlacesService) AttractionNames(ctx context.Context, location string, n int) ([]string, error) {
	places, err := s.TopAttractions(ctx, location, n)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(places))
	for _, p := range places {
		names = append(names, p.Name)
	}
	return names, nil
}
