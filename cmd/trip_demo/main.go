// README: CLI that plans one trip (or selects a destination) and prints JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"tripplanner/internal/app"
	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	"tripplanner/internal/service"
	"tripplanner/internal/types"
)

func main() {
	start := flag.String("start", time.Now().AddDate(0, 1, 0).Format(time.DateOnly), "start date (YYYY-MM-DD)")
	end := flag.String("end", time.Now().AddDate(0, 1, 5).Format(time.DateOnly), "end date (YYYY-MM-DD)")
	budget := flag.Float64("budget", 2000, "total budget")
	tripType := flag.String("type", "cultural", "trip type")
	destination := flag.String("select", "", `"Place, Country" to print an itinerary for instead of planning`)
	flag.Parse()

	if err := run(*start, *end, *budget, *tripType, *destination); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(start, end string, budget float64, tripType, destination string) error {
	startDate, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	endDate, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return fmt.Errorf("invalid -end: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := infra.NewLogger("warn", "", false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Planner.RequestTimeout)
	defer cancel()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("wiring failed: %w", err)
	}
	defer a.Close()

	var out any
	if destination != "" {
		out, err = a.Planner.SelectTrip(ctx, service.SelectRequest{
			StartDate:   startDate,
			EndDate:     endDate,
			TripType:    tripType,
			Destination: destination,
		})
	} else {
		var opts []service.TripOption
		opts, err = a.Planner.PlanTrip(ctx, service.PlanRequest{
			StartDate: startDate,
			EndDate:   endDate,
			Budget:    types.FromMajor(budget, cfg.Planner.Currency),
			TripType:  tripType,
		})
		out = map[string]any{"trip_options": opts}
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
