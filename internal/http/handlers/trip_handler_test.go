package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/http/handlers"
	"tripplanner/internal/modules/hotel"
	"tripplanner/internal/service"
	"tripplanner/internal/types"
)

type stubPlanner struct {
	options []service.TripOption
	trip    service.SelectedTrip
	err     error

	planReq   service.PlanRequest
	selectReq service.SelectRequest
}

func (s *stubPlanner) PlanTrip(_ context.Context, req service.PlanRequest) ([]service.TripOption, error) {
	s.planReq = req
	return s.options, s.err
}

func (s *stubPlanner) SelectTrip(_ context.Context, req service.SelectRequest) (service.SelectedTrip, error) {
	s.selectReq = req
	return s.trip, s.err
}

func buildTestRouter(p handlers.TripPlanner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewTripHandler(p, "USD", time.Second)
	r.POST("/api/trips/plan", h.Plan)
	r.POST("/api/trips/select", h.Select)
	return r
}

func doRequest(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlan(t *testing.T) {
	p := &stubPlanner{options: []service.TripOption{{
		Destination: "Paris, France",
		TotalCost:   types.FromMajor(980, "USD"),
		Hotel:       hotel.Offer{Name: "Modest", NightlyPrice: types.FromMajor(190, "USD"), Nights: 2, TotalPrice: types.FromMajor(380, "USD")},
	}}}
	r := buildTestRouter(p)

	w := doRequest(r, "/api/trips/plan", map[string]any{
		"start_date": "2024-06-10",
		"end_date":   "2024-06-12",
		"budget":     1000.50,
		"trip_type":  "cultural",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), p.planReq.StartDate)
	assert.Equal(t, int64(100050), p.planReq.Budget.Amount)
	assert.Equal(t, "cultural", p.planReq.TripType)

	var resp struct {
		TripOptions []struct {
			Destination string `json:"destination"`
			TotalCost   struct {
				Amount   float64 `json:"amount"`
				Currency string  `json:"currency"`
			} `json:"total_cost"`
			HotelInfo struct {
				Name   string `json:"name"`
				Nights int    `json:"nights"`
			} `json:"hotel_info"`
		} `json:"trip_options"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.TripOptions, 1)
	assert.Equal(t, "Paris, France", resp.TripOptions[0].Destination)
	assert.InDelta(t, 980.0, resp.TripOptions[0].TotalCost.Amount, 0.001)
	assert.Equal(t, "Modest", resp.TripOptions[0].HotelInfo.Name)
}

func TestPlanBadRequests(t *testing.T) {
	r := buildTestRouter(&stubPlanner{})
	cases := []any{
		`{not json`,
		map[string]any{"start_date": "2024-06-10", "end_date": "2024-06-12", "trip_type": "beach"},
		map[string]any{"start_date": "2024-06-10", "end_date": "2024-06-12", "budget": -5, "trip_type": "beach"},
		map[string]any{"start_date": "10/06/2024", "end_date": "2024-06-12", "budget": 100, "trip_type": "beach"},
		map[string]any{"start_date": "2024-06-10", "end_date": "June 12", "budget": 100, "trip_type": "beach"},
	}
	for i, body := range cases {
		w := doRequest(r, "/api/trips/plan", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "case %d: %s", i, w.Body.String())
	}
}

func TestPlanErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: end before start", service.ErrInvalidRequest), http.StatusBadRequest},
		{service.ErrNoCandidates, http.StatusUnprocessableEntity},
		{service.ErrNoFeasibleTrips, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: openai down", service.ErrNoSuggestions), http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("unexpected"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		r := buildTestRouter(&stubPlanner{err: tc.err})
		w := doRequest(r, "/api/trips/plan", map[string]any{
			"start_date": "2024-06-10", "end_date": "2024-06-12", "budget": 1000, "trip_type": "beach",
		})
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		assert.Contains(t, w.Body.String(), `"error"`)
	}
}

func TestSelect(t *testing.T) {
	p := &stubPlanner{trip: service.SelectedTrip{Destination: "Kyoto, Japan", Itinerary: "Day 1"}}
	r := buildTestRouter(p)

	w := doRequest(r, "/api/trips/select", map[string]any{
		"start_date": "2024-04-01", "end_date": "2024-04-05", "trip_type": "cultural", "destination": "Kyoto, Japan",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"destination":"Kyoto, Japan","itinerary":"Day 1"}`, w.Body.String())
	assert.Equal(t, "Kyoto, Japan", p.selectReq.Destination)

	w = doRequest(r, "/api/trips/select", map[string]any{"start_date": "2024-04-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	p.err = service.ErrItineraryUnavailable
	w = doRequest(r, "/api/trips/select", map[string]any{
		"start_date": "2024-04-01", "end_date": "2024-04-05", "trip_type": "cultural", "destination": "Kyoto, Japan",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
