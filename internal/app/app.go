// README: Builds the trip planner and its collaborators from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tripplanner/internal/ai"
	"tripplanner/internal/cache"
	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	"tripplanner/internal/maps"
	"tripplanner/internal/modules/airport"
	"tripplanner/internal/modules/flight"
	"tripplanner/internal/modules/hotel"
	"tripplanner/internal/modules/itinerary"
	"tripplanner/internal/modules/suggestion"
	"tripplanner/internal/serpapi"
	"tripplanner/internal/service"
)

// App owns the planner and the connections behind it.
type App struct {
	Planner *service.TripPlanner
	closers []func()
}

// Close releases connections in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}

	dir, err := a.airports(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	origin := airport.Code(cfg.Planner.OriginAirport)
	if _, ok := dir.Lookup(origin); !ok {
		logger.Warn("origin airport not in directory", zap.String("origin", string(origin)))
	}

	loader := cache.NewLoader(a.cacheStore(ctx, cfg, logger), cfg.Cache.TTL, logger.Named("cache"),
		cache.WithFetchTimeout(cfg.Planner.RequestTimeout))

	serp := serpapi.NewClient(cfg.SerpAPI.Key, cfg.SerpAPI.BaseURL,
		serpapi.WithRateLimit(cfg.SerpAPI.RPS, max(1, int(cfg.SerpAPI.RPS))))

	flights := flight.NewService(
		flight.NewCachedSearcher(flight.NewSerpAPISearcher(serp, cfg.Planner.Currency), loader),
		dir, origin,
		flight.WithPreferDirect(cfg.Planner.PreferDirect))
	hotels := hotel.NewService(
		hotel.NewCachedSearcher(hotel.NewSerpAPISearcher(serp, cfg.Planner.Currency), loader))

	text, images, err := a.generators(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	itinOpts := []itinerary.Option{
		itinerary.WithMaxImages(cfg.Planner.MaxImages),
		itinerary.WithLogger(logger.Named("itinerary")),
	}
	if cfg.Maps.APIKey != "" {
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			logger.Warn("places lookup disabled", zap.Error(err))
		} else {
			itinOpts = append(itinOpts, itinerary.WithAttractions(places))
		}
	}

	a.Planner = service.NewTripPlanner(
		suggestion.NewService(text, cfg.Planner.Suggestions),
		flights,
		hotels,
		service.WithItineraries(itinerary.NewService(text, images, itinOpts...)),
		service.WithPlanItineraries(cfg.Planner.Itinerary),
		service.WithConcurrency(cfg.Planner.Concurrency),
		service.WithLogger(logger.Named("planner")),
	)
	return a, nil
}

// airports loads the directory from Postgres when configured, seeding an
// empty table from the base list. The base list is TRIP_AIRPORTS_FILE when
// set and the embedded table otherwise.
func (a *App) airports(ctx context.Context, cfg config.Config, logger *zap.Logger) (*airport.Directory, error) {
	var (
		base *airport.Directory
		err  error
	)
	if cfg.Airports.File != "" {
		base, err = airport.LoadFile(cfg.Airports.File)
	} else {
		base, err = airport.Embedded()
	}
	if err != nil {
		return nil, fmt.Errorf("airports: %w", err)
	}
	logger.Info("airport directory loaded", zap.Int("count", base.Len()), zap.String("file", cfg.Airports.File))
	if cfg.DB.DSN == "" {
		return base, nil
	}

	pool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, pool.Close)

	store := airport.NewStore(pool)
	dir, err := airport.LoadDirectory(ctx, store)
	if errors.Is(err, airport.ErrEmptyDirectory) {
		logger.Info("seeding airports table", zap.Int("count", base.Len()))
		if err := store.Seed(ctx, base.All()); err != nil {
			return nil, err
		}
		dir, err = airport.LoadDirectory(ctx, store)
	}
	if err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}
	return dir, nil
}

func (a *App) cacheStore(ctx context.Context, cfg config.Config, logger *zap.Logger) cache.Store {
	if cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err == nil {
			a.closers = append(a.closers, func() { _ = client.Close() })
			return cache.NewRedisStore(client)
		}
		logger.Warn("redis unavailable, using in-process cache", zap.Error(err))
	}
	return cache.NewMemoryStore(cfg.Cache.TTL, 2*cfg.Cache.TTL)
}

// generators picks the text provider. Images always come from OpenAI and are
// disabled when no OpenAI key is configured.
func (a *App) generators(ctx context.Context, cfg config.Config) (ai.TextGenerator, ai.ImageGenerator, error) {
	var openai *ai.OpenAIProvider
	if cfg.AI.OpenAIKey != "" {
		openai = ai.NewOpenAIProvider(cfg.AI.OpenAIKey,
			ai.WithOpenAIModel(cfg.AI.OpenAIModel),
			ai.WithImageSize(cfg.AI.ImageSize))
	}

	var images ai.ImageGenerator
	if openai != nil {
		images = openai
	}

	switch cfg.AI.Provider {
	case "gemini":
		gp, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, "")
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, gp.Close)
		return gp, images, nil
	default:
		if openai == nil {
			return nil, nil, config.ErrMissingKey
		}
		return openai, images, nil
	}
}
