// README: Flight pricer picks the cheapest outbound and return fares.
package flight

import (
	"context"
	"fmt"
	"time"

	"tripplanner/internal/modules/airport"
)

// Service prices both legs between a fixed home airport and a destination.
// It holds no per-call state, so both directions may be priced concurrently.
type Service struct {
	searcher     Searcher
	resolver     Resolver
	origin       airport.Code
	preferDirect bool
}

type Option func(*Service)

// WithPreferDirect selects the cheapest direct offer when one exists and only
// falls back to the cheapest connecting offer otherwise.
func WithPreferDirect(prefer bool) Option {
	return func(s *Service) { s.preferDirect = prefer }
}

func NewService(searcher Searcher, resolver Resolver, origin airport.Code, opts ...Option) *Service {
	s := &Service{searcher: searcher, resolver: resolver, origin: origin}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheapestOutbound prices origin -> destination on departDate.
func (s *Service) CheapestOutbound(ctx context.Context, destination string, departDate time.Time) (Quote, error) {
	return s.cheapest(ctx, destination, departDate, Outbound)
}

// CheapestReturn prices destination -> origin on returnDate.
func (s *Service) CheapestReturn(ctx context.Context, destination string, returnDate time.Time) (Quote, error) {
	return s.cheapest(ctx, destination, returnDate, Return)
}

func (s *Service) cheapest(ctx context.Context, destination string, date time.Time, dir Direction) (Quote, error) {
	code, ok := s.resolver.Resolve(destination)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %q", ErrUnresolvedDestination, destination)
	}

	req := SearchRequest{Origin: s.origin, Destination: code, Date: date, Direction: dir}
	if dir == Return {
		req.Origin, req.Destination = code, s.origin
	}

	offers, err := s.searcher.Search(ctx, req)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %s %s->%s: %w", ErrNoQuotes, dir, req.Origin, req.Destination, err)
	}

	var best Offer
	if s.preferDirect {
		best, ok = SelectPreferDirect(offers)
	} else {
		best, ok = SelectCheapest(offers)
	}
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s %s->%s", ErrNoQuotes, dir, req.Origin, req.Destination)
	}
	return best.Quote(), nil
}

// SelectCheapest returns the lowest-priced offer; ties keep the first seen.
func SelectCheapest(offers []Offer) (Offer, bool) {
	var best Offer
	found := false
	for _, o := range offers {
		if !found || o.Price.Amount < best.Price.Amount {
			best, found = o, true
		}
	}
	return best, found
}

// SelectPreferDirect returns the cheapest direct offer, or the cheapest
// overall when there is no direct one.
func SelectPreferDirect(offers []Offer) (Offer, bool) {
	direct := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if o.Direct() {
			direct = append(direct, o)
		}
	}
	if best, ok := SelectCheapest(direct); ok {
		return best, true
	}
	return SelectCheapest(offers)
}
