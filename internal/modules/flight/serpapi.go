// README: Google Flights search via SerpAPI.
package flight

import (
	"context"
	"net/url"

	"tripplanner/internal/serpapi"
	"tripplanner/internal/types"
)

// SerpAPISearcher queries the google_flights engine for one-way fares.
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

type serpAirport struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

func (a serpAirport) label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

type serpFlightGroup struct {
	Flights []struct {
		DepartureAirport serpAirport `json:"departure_airport"`
		ArrivalAirport   serpAirport `json:"arrival_airport"`
	} `json:"flights"`
	Price float64 `json:"price"`
}

type serpFlightsResponse struct {
	BestFlights  []serpFlightGroup `json:"best_flights"`
	OtherFlights []serpFlightGroup `json:"other_flights"`
}

func (s *SerpAPISearcher) Search(ctx context.Context, req SearchRequest) ([]Offer, error) {
	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", string(req.Origin))
	params.Set("arrival_id", string(req.Destination))
	params.Set("outbound_date", req.Date.Format("2006-01-02"))
	params.Set("type", "2") // one-way
	params.Set("currency", s.currency)
	params.Set("hl", "en")

	var resp serpFlightsResponse
	if err := s.client.Search(ctx, params, &resp); err != nil {
		return nil, err
	}

	groups := append(resp.BestFlights, resp.OtherFlights...)
	offers := make([]Offer, 0, len(groups))
	for _, g := range groups {
		// SerpAPI omits the price when a fare is unavailable.
		if g.Price <= 0 {
			continue
		}
		legs := make([]Leg, 0, len(g.Flights))
		for _, f := range g.Flights {
			legs = append(legs, Leg{
				DepartureAirport: f.DepartureAirport.label(),
				DepartureTime:    f.DepartureAirport.Time,
				ArrivalAirport:   f.ArrivalAirport.label(),
				ArrivalTime:      f.ArrivalAirport.Time,
			})
		}
		offers = append(offers, Offer{Price: types.FromMajor(g.Price, s.currency), Legs: legs})
	}
	return offers, nil
}
