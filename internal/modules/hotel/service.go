// README: Hotel selector returns the most expensive stay the remaining budget affords.
package hotel

import (
	"context"
	"fmt"
	"time"

	"tripplanner/internal/types"
)

type Service struct {
	searcher Searcher
}

func NewService(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Select queries offers for location and picks the one with the highest total
// price that does not exceed remaining.
func (s *Service) Select(ctx context.Context, location string, remaining types.Money, checkIn, checkOut time.Time) (Offer, error) {
	nights := Nights(checkIn, checkOut)
	if nights < 1 {
		return Offer{}, fmt.Errorf("%w: %s to %s", ErrInvalidStay, checkIn.Format(time.DateOnly), checkOut.Format(time.DateOnly))
	}

	props, err := s.searcher.Search(ctx, SearchRequest{Location: location, CheckIn: checkIn, CheckOut: checkOut})
	if err != nil {
		return Offer{}, fmt.Errorf("%w: %s: %w", ErrNoOffers, location, err)
	}
	if len(props) == 0 {
		return Offer{}, fmt.Errorf("%w: %s", ErrNoOffers, location)
	}

	best, ok := SelectWithinBudget(props, nights, remaining)
	if !ok {
		return Offer{}, fmt.Errorf("%w: %s, budget %s", ErrNoOfferWithinBudget, location, remaining)
	}
	return best, nil
}

// SelectWithinBudget prices every property for the stay and keeps the maximum
// total that is <= budget. Ties keep the first seen.
func SelectWithinBudget(props []Property, nights int, budget types.Money) (Offer, bool) {
	var best Offer
	found := false
	for _, p := range props {
		total := p.NightlyRate.Mul(nights)
		if total.Amount > budget.Amount {
			continue
		}
		if !found || total.Amount > best.TotalPrice.Amount {
			best = Offer{Name: p.Name, NightlyPrice: p.NightlyRate, Nights: nights, TotalPrice: total}
			found = true
		}
	}
	return best, found
}
