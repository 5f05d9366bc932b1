package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tripplanner/internal/modules/flight"
	"tripplanner/internal/modules/hotel"
	"tripplanner/internal/modules/itinerary"
	"tripplanner/internal/modules/suggestion"
	"tripplanner/internal/types"
)

const DefaultConcurrency = 4

var (
	ErrInvalidRequest = errors.New("invalid trip request")
	// ErrNoSuggestions means the suggestion source itself failed.
	ErrNoSuggestions = errors.New("failed to retrieve trip suggestions")
	// ErrNoCandidates means no suggestion was a well-formed "Place, Country".
	ErrNoCandidates = errors.New("no trip candidates")
	// ErrNoFeasibleTrips means candidates were evaluated but none fit the budget.
	ErrNoFeasibleTrips = errors.New("no valid trip options are available")
	// ErrItineraryUnavailable is returned by SelectTrip when no itinerary can be produced.
	ErrItineraryUnavailable = errors.New("itinerary unavailable")
)

type Suggester interface {
	Suggest(ctx context.Context, month time.Month, tripType string) ([]string, error)
}

type FlightPricer interface {
	CheapestOutbound(ctx context.Context, destination string, departDate time.Time) (flight.Quote, error)
	CheapestReturn(ctx context.Context, destination string, returnDate time.Time) (flight.Quote, error)
}

type HotelSelector interface {
	Select(ctx context.Context, location string, remaining types.Money, checkIn, checkOut time.Time) (hotel.Offer, error)
}

type Itineraries interface {
	Itinerary(ctx context.Context, req itinerary.Request) (string, error)
	Illustrate(ctx context.Context, req itinerary.Request) (itinerary.Plan, error)
}

// PlanRequest asks for trip options in a date range under a total budget.
type PlanRequest struct {
	StartDate time.Time   `validate:"required"`
	EndDate   time.Time   `validate:"required,gtfield=StartDate"`
	Budget    types.Money `validate:"gt=0"`
	TripType  string      `validate:"required,max=64"`
}

// SelectRequest asks for the itinerary of one chosen destination.
type SelectRequest struct {
	StartDate   time.Time `validate:"required"`
	EndDate     time.Time `validate:"required,gtfield=StartDate"`
	TripType    string    `validate:"required,max=64"`
	Destination string    `validate:"required,max=128"`
}

type FlightInfo struct {
	Outbound flight.Quote `json:"outbound"`
	Return   flight.Quote `json:"return"`
}

// TripOption is one priced, budget-feasible trip.
// TotalCost is exactly outbound + return + hotel total.
type TripOption struct {
	Destination string            `json:"destination"`
	TotalCost   types.Money       `json:"total_cost"`
	Hotel       hotel.Offer       `json:"hotel_info"`
	Flights     FlightInfo        `json:"flight_info"`
	Itinerary   string            `json:"itinerary,omitempty"`
	Images      []itinerary.Image `json:"images,omitempty"`
}

type SelectedTrip struct {
	Destination string `json:"destination"`
	Itinerary   string `json:"itinerary"`
}

// TripPlanner turns destination suggestions into priced trip options.
type TripPlanner struct {
	suggestions Suggester
	flights     FlightPricer
	hotels      HotelSelector
	itineraries Itineraries
	illustrate  bool
	concurrency int
	logger      *zap.Logger
	validate    *validator.Validate
}

type Option func(*TripPlanner)

// WithItineraries enables SelectTrip and, unless turned off with
// WithPlanItineraries, itinerary text and images on each planned option.
func WithItineraries(it Itineraries) Option {
	return func(p *TripPlanner) { p.itineraries = it }
}

func WithPlanItineraries(enabled bool) Option {
	return func(p *TripPlanner) { p.illustrate = enabled }
}

// WithConcurrency bounds how many candidates are evaluated at once.
func WithConcurrency(n int) Option {
	return func(p *TripPlanner) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(p *TripPlanner) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewTripPlanner creates a TripPlanner with initialized dependencies.
func NewTripPlanner(s Suggester, f FlightPricer, h HotelSelector, opts ...Option) *TripPlanner {
	p := &TripPlanner{
		suggestions: s,
		flights:     f,
		hotels:      h,
		illustrate:  true,
		concurrency: DefaultConcurrency,
		logger:      zap.NewNop(),
		validate:    newValidator(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// validate Money by its minor-unit amount
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if m, ok := field.Interface().(types.Money); ok {
			return m.Amount
		}
		return nil
	}, types.Money{})
	return v
}

// PlanTrip suggests destinations for the start month and assembles options.
func (p *TripPlanner) PlanTrip(ctx context.Context, req PlanRequest) ([]TripOption, error) {
	if err := p.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	raw, err := p.suggestions.Suggest(ctx, req.StartDate.Month(), req.TripType)
	if err != nil {
		p.logger.Error("suggestion source failed", zap.String("trip_type", req.TripType), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrNoSuggestions, err)
	}
	p.logger.Info("suggestions received", zap.Strings("suggestions", raw))

	return p.Assemble(ctx, raw, req)
}

// Assemble evaluates each well-formed candidate independently and returns the
// feasible options in input order.
func (p *TripPlanner) Assemble(ctx context.Context, raw []string, req PlanRequest) ([]TripOption, error) {
	candidates := make([]suggestion.Candidate, 0, len(raw))
	for _, s := range raw {
		c, ok := suggestion.ParseCandidate(s)
		if !ok {
			p.logger.Info("candidate skipped", zap.String("destination", s), zap.String("reason", "malformed"))
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	results := make([]*TripOption, len(candidates))
	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, c := range candidates {
		g.Go(func() error {
			results[i] = p.evaluate(ctx, c, req)
			return nil
		})
	}
	_ = g.Wait()

	options := make([]TripOption, 0, len(results))
	for _, r := range results {
		if r != nil {
			options = append(options, *r)
		}
	}
	p.logger.Info("trip assembly finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("options", len(options)))

	if len(options) == 0 {
		return nil, ErrNoFeasibleTrips
	}
	return options, nil
}

// evaluate runs the sequential pipeline for one candidate. A nil result means
// the candidate was dropped.
func (p *TripPlanner) evaluate(ctx context.Context, c suggestion.Candidate, req PlanRequest) *TripOption {
	log := p.logger.With(zap.String("destination", c.String()))

	var outbound, inbound flight.Quote
	fg, fctx := errgroup.WithContext(ctx)
	fg.Go(func() error {
		q, err := p.flights.CheapestOutbound(fctx, c.Place, req.StartDate)
		outbound = q
		return err
	})
	fg.Go(func() error {
		q, err := p.flights.CheapestReturn(fctx, c.Place, req.EndDate)
		inbound = q
		return err
	})
	if err := fg.Wait(); err != nil {
		log.Info("candidate dropped", zap.String("reason", "flights"), zap.Error(err))
		return nil
	}

	remaining := req.Budget
	spent := types.Money{Currency: remaining.Currency}

	fares := outbound.Price.Add(inbound.Price)
	if !remaining.Sub(fares).IsPositive() {
		log.Info("candidate dropped",
			zap.String("reason", "flights exceed budget"),
			zap.Stringer("flights", fares),
			zap.Stringer("budget", remaining))
		return nil
	}
	remaining = remaining.Sub(fares)
	spent = spent.Add(fares)

	offer, err := p.hotels.Select(ctx, c.String(), remaining, req.StartDate, req.EndDate)
	if err != nil {
		log.Info("candidate dropped",
			zap.String("reason", "hotel"),
			zap.Stringer("remaining", remaining),
			zap.Error(err))
		return nil
	}
	remaining = remaining.Sub(offer.TotalPrice)
	spent = spent.Add(offer.TotalPrice)

	opt := &TripOption{
		Destination: c.String(),
		TotalCost:   spent,
		Hotel:       offer,
		Flights:     FlightInfo{Outbound: outbound, Return: inbound},
	}

	if p.itineraries != nil && p.illustrate {
		plan, err := p.itineraries.Illustrate(ctx, itinerary.Request{
			Location: c.String(),
			TripType: req.TripType,
			Start:    req.StartDate,
			End:      req.EndDate,
		})
		if err != nil {
			log.Warn("itinerary unavailable", zap.Error(err))
		} else {
			opt.Itinerary = plan.Text
			opt.Images = plan.Images
		}
	}

	log.Info("candidate accepted",
		zap.Stringer("hotel", offer),
		zap.Stringer("total_cost", spent),
		zap.Stringer("remaining", remaining),
		zap.Int("images", len(opt.Images)))
	return opt
}

// SelectTrip returns the itinerary for a chosen destination. Only the place
// part of "Place, Country" is sent to the generator.
func (p *TripPlanner) SelectTrip(ctx context.Context, req SelectRequest) (SelectedTrip, error) {
	if err := p.validate.Struct(req); err != nil {
		return SelectedTrip{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if p.itineraries == nil {
		return SelectedTrip{}, ErrItineraryUnavailable
	}

	place := req.Destination
	if c, ok := suggestion.ParseCandidate(req.Destination); ok {
		place = c.Place
	}

	text, err := p.itineraries.Itinerary(ctx, itinerary.Request{
		Location: place,
		TripType: req.TripType,
		Start:    req.StartDate,
		End:      req.EndDate,
	})
	if err != nil {
		p.logger.Warn("itinerary unavailable", zap.String("destination", req.Destination), zap.Error(err))
		return SelectedTrip{}, fmt.Errorf("%w: %w", ErrItineraryUnavailable, err)
	}
	return SelectedTrip{Destination: req.Destination, Itinerary: text}, nil
}
