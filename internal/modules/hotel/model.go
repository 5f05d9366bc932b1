// README: Hotel offer types and the lodging-search collaborator contract.
package hotel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripplanner/internal/types"
)

var (
	// ErrInvalidStay is returned when check-out is not at least one night after check-in.
	ErrInvalidStay = errors.New("stay must be at least one night")
	// ErrNoOffers covers an empty response as well as any search failure.
	ErrNoOffers = errors.New("no offers available")
	// ErrNoOfferWithinBudget means offers exist but every stay exceeds the budget.
	ErrNoOfferWithinBudget = errors.New("no offer found within budget")
)

// Property is a lodging result with its lowest nightly rate.
type Property struct {
	Name        string      `json:"name"`
	NightlyRate types.Money `json:"nightly_rate"`
}

// Offer is a priced stay at one property for the whole date range.
type Offer struct {
	Name         string      `json:"name"`
	NightlyPrice types.Money `json:"nightly_price"`
	Nights       int         `json:"nights"`
	TotalPrice   types.Money `json:"total_price"`
}

func (o Offer) String() string {
	return fmt.Sprintf("%s: %s per night, %s for %d nights", o.Name, o.NightlyPrice, o.TotalPrice, o.Nights)
}

type SearchRequest struct {
	Location string
	CheckIn  time.Time
	CheckOut time.Time
}

// Searcher is the external lodging-search service.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) ([]Property, error)
}

// Nights counts whole days between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}
