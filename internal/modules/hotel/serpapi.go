package hotel

import (
	"context"
	"net/url"
	"time"

	"tripplanner/internal/serpapi"
	"tripplanner/internal/types"
)

// SerpAPISearcher queries the google_hotels engine.
type SerpAPISearcher struct {
	client   *serpapi.Client
	currency string
}

func NewSerpAPISearcher(client *serpapi.Client, currency string) *SerpAPISearcher {
	if currency == "" {
		currency = types.DefaultCurrency
	}
	return &SerpAPISearcher{client: client, currency: currency}
}

type serpHotelsResponse struct {
	Properties []struct {
		Name         string `json:"name"`
		RatePerNight *struct {
			ExtractedLowest *float64 `json:"extracted_lowest"`
		} `json:"rate_per_night"`
	} `json:"properties"`
}

func (s *SerpAPISearcher) Search(ctx context.Context, req SearchRequest) ([]Property, error) {
	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", "hotels in "+req.Location)
	params.Set("check_in_date", req.CheckIn.Format(time.DateOnly))
	params.Set("check_out_date", req.CheckOut.Format(time.DateOnly))
	params.Set("adults", "1")
	params.Set("currency", s.currency)
	params.Set("hl", "en")

	var resp serpHotelsResponse
	if err := s.client.Search(ctx, params, &resp); err != nil {
		return nil, err
	}

	props := make([]Property, 0, len(resp.Properties))
	for _, p := range resp.Properties {
		if p.RatePerNight == nil || p.RatePerNight.ExtractedLowest == nil {
			continue
		}
		name := p.Name
		if name == "" {
			name = "Name not provided"
		}
		props = append(props, Property{
			Name:        name,
			NightlyRate: types.FromMajor(*p.RatePerNight.ExtractedLowest, s.currency),
		})
	}
	return props, nil
}
