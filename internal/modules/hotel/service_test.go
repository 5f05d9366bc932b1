package hotel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/cache"
	"tripplanner/internal/serpapi"
	"tripplanner/internal/types"
)

type fakeSearcher struct {
	props []Property
	err   error
	calls int
}

func (f *fakeSearcher) Search(context.Context, SearchRequest) ([]Property, error) {
	f.calls++
	return f.props, f.err
}

func usd(v float64) types.Money { return types.FromMajor(v, "USD") }

var (
	checkIn  = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	checkOut = time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
)

func TestNights(t *testing.T) {
	assert.Equal(t, 2, Nights(checkIn, checkOut))
	assert.Equal(t, 0, Nights(checkIn, checkIn))
	assert.Equal(t, -2, Nights(checkOut, checkIn))
}

func TestSelectRejectsOverBudgetStay(t *testing.T) {
	// remaining 400 after flights: 450 must be rejected, 380 accepted.
	f := &fakeSearcher{props: []Property{
		{Name: "Grand", NightlyRate: usd(225)},
		{Name: "Modest", NightlyRate: usd(190)},
	}}
	offer, err := NewService(f).Select(context.Background(), "Paris", usd(400), checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, "Modest", offer.Name)
	assert.Equal(t, usd(380), offer.TotalPrice)
	assert.Equal(t, 2, offer.Nights)
	assert.LessOrEqual(t, offer.TotalPrice.Amount, usd(400).Amount)
}

func TestSelectMaximizesSpend(t *testing.T) {
	props := []Property{
		{Name: "Hostel", NightlyRate: usd(40)},
		{Name: "Boutique", NightlyRate: usd(150)},
		{Name: "Twin", NightlyRate: usd(150)},
		{Name: "Palace", NightlyRate: usd(900)},
	}
	offer, ok := SelectWithinBudget(props, 2, usd(300))
	require.True(t, ok)
	assert.Equal(t, "Boutique", offer.Name)
	assert.Equal(t, usd(300), offer.TotalPrice)
}

func TestSelectNoOfferWithinBudget(t *testing.T) {
	f := &fakeSearcher{props: []Property{{Name: "Palace", NightlyRate: usd(900)}}}
	_, err := NewService(f).Select(context.Background(), "Paris", usd(400), checkIn, checkOut)
	assert.ErrorIs(t, err, ErrNoOfferWithinBudget)
	assert.NotErrorIs(t, err, ErrNoOffers)
}

func TestSelectNoOffers(t *testing.T) {
	_, err := NewService(&fakeSearcher{}).Select(context.Background(), "Paris", usd(400), checkIn, checkOut)
	assert.ErrorIs(t, err, ErrNoOffers)

	boom := errors.New("bad gateway")
	_, err = NewService(&fakeSearcher{err: boom}).Select(context.Background(), "Paris", usd(400), checkIn, checkOut)
	assert.ErrorIs(t, err, ErrNoOffers)
	assert.ErrorIs(t, err, boom)
}

func TestSelectInvalidStay(t *testing.T) {
	f := &fakeSearcher{}
	_, err := NewService(f).Select(context.Background(), "Paris", usd(400), checkIn, checkIn)
	assert.ErrorIs(t, err, ErrInvalidStay)
	assert.Zero(t, f.calls)
}

func TestSerpAPISearcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google_hotels", q.Get("engine"))
		assert.Equal(t, "hotels in Paris", q.Get("q"))
		assert.Equal(t, "2024-06-10", q.Get("check_in_date"))
		assert.Equal(t, "2024-06-12", q.Get("check_out_date"))
		assert.Equal(t, "1", q.Get("adults"))
		_, _ = w.Write([]byte(`{"properties":[
			{"name":"Hotel Lutetia","rate_per_night":{"lowest":"$512","extracted_lowest":512}},
			{"name":"Sold Out Inn"},
			{"rate_per_night":{"extracted_lowest":89.99}}
		]}`))
	}))
	defer srv.Close()

	s := NewSerpAPISearcher(serpapi.NewClient("k", srv.URL), "USD")
	props, err := s.Search(context.Background(), SearchRequest{Location: "Paris", CheckIn: checkIn, CheckOut: checkOut})
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, Property{Name: "Hotel Lutetia", NightlyRate: usd(512)}, props[0])
	assert.Equal(t, "Name not provided", props[1].Name)
	assert.Equal(t, int64(8999), props[1].NightlyRate.Amount)
}

func TestCachedSearcher(t *testing.T) {
	f := &fakeSearcher{props: []Property{{Name: "Grand", NightlyRate: usd(225)}}}
	loader := cache.NewLoader(cache.NewMemoryStore(time.Minute, time.Minute), time.Minute, nil)
	cs := NewCachedSearcher(f, loader)

	req := SearchRequest{Location: "Paris", CheckIn: checkIn, CheckOut: checkOut}
	_, err := cs.Search(context.Background(), req)
	require.NoError(t, err)
	req.Location = " paris "
	props, err := cs.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, usd(225), props[0].NightlyRate)
}
