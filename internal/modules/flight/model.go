// README: Flight quote types and the flight-search collaborator contract.
package flight

import (
	"context"
	"errors"
	"time"

	"tripplanner/internal/modules/airport"
	"tripplanner/internal/types"
)

type Direction string

const (
	Outbound Direction = "outbound"
	Return   Direction = "return"
)

var (
	// ErrUnresolvedDestination means the place has no airport in the directory.
	ErrUnresolvedDestination = errors.New("destination has no airport")
	// ErrNoQuotes covers an empty result as well as any search failure.
	ErrNoQuotes = errors.New("no flight quotes")
)

// Leg is one flight segment of an offer.
type Leg struct {
	DepartureAirport string `json:"departure_airport"`
	DepartureTime    string `json:"departure_time"`
	ArrivalAirport   string `json:"arrival_airport"`
	ArrivalTime      string `json:"arrival_time"`
}

// Offer is a priced itinerary as returned by the search collaborator.
type Offer struct {
	Price types.Money `json:"price"`
	Legs  []Leg       `json:"legs"`
}

// Direct reports whether the offer is a single-leg flight.
func (o Offer) Direct() bool {
	return len(o.Legs) <= 1
}

// Quote flattens the offer: departure of the first leg, arrival of the last.
func (o Offer) Quote() Quote {
	q := Quote{Price: o.Price}
	if len(o.Legs) == 0 {
		return q
	}
	first, last := o.Legs[0], o.Legs[len(o.Legs)-1]
	q.DepartureAirport = first.DepartureAirport
	q.DepartureTime = first.DepartureTime
	q.ArrivalAirport = last.ArrivalAirport
	q.ArrivalTime = last.ArrivalTime
	q.Stops = len(o.Legs) - 1
	return q
}

// Quote is the selected fare for one leg direction of a trip.
type Quote struct {
	Price            types.Money `json:"price"`
	DepartureAirport string      `json:"departure_airport"`
	DepartureTime    string      `json:"departure_time"`
	ArrivalAirport   string      `json:"arrival_airport"`
	ArrivalTime      string      `json:"arrival_time"`
	Stops            int         `json:"stops"`
}

type SearchRequest struct {
	Origin      airport.Code
	Destination airport.Code
	Date        time.Time
	Direction   Direction
}

// Searcher is the external flight-search service.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) ([]Offer, error)
}

// Resolver maps a place name to an airport code.
type Resolver interface {
	Resolve(place string) (airport.Code, bool)
}
