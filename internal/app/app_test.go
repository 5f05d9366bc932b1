package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripplanner/internal/config"
)

func testConfig() config.Config {
	var cfg config.Config
	cfg.Cache.TTL = time.Minute
	cfg.SerpAPI.Key = "serp"
	cfg.SerpAPI.RPS = 2
	cfg.AI.Provider = "openai"
	cfg.AI.OpenAIKey = "sk"
	cfg.Planner.OriginAirport = "TLV"
	cfg.Planner.Currency = "USD"
	cfg.Planner.Suggestions = 2
	cfg.Planner.MaxImages = 4
	cfg.Planner.Concurrency = 2
	cfg.Planner.Itinerary = true
	return cfg
}

func TestBuildWithEmbeddedDirectoryAndMemoryCache(t *testing.T) {
	a, err := Build(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	assert.NotNil(t, a.Planner)
}

func TestBuildWithAirportsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,name,city,country\nTLV,Ben Gurion,Tel Aviv,IL\n"), 0o600))

	cfg := testConfig()
	cfg.Airports.File = path
	a, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	cfg.Airports.File = filepath.Join(t.TempDir(), "missing.csv")
	_, err = Build(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestBuildRequiresTextProvider(t *testing.T) {
	cfg := testConfig()
	cfg.AI.OpenAIKey = ""
	_, err := Build(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, config.ErrMissingKey)
}

func TestCacheStoreFallsBackWithoutRedis(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.Addr = "127.0.0.1:1"
	a := &App{}
	store := a.cacheStore(context.Background(), cfg, zap.NewNop())
	assert.NotNil(t, store)
	assert.Empty(t, a.closers)
}
