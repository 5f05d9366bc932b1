// README: Trip handlers (plan options, select destination).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/service"
	"tripplanner/internal/types"
)

type TripPlanner interface {
	PlanTrip(ctx context.Context, req service.PlanRequest) ([]service.TripOption, error)
	SelectTrip(ctx context.Context, req service.SelectRequest) (service.SelectedTrip, error)
}

type TripHandler struct {
	planner  TripPlanner
	currency string
	timeout  time.Duration
}

func NewTripHandler(planner TripPlanner, currency string, timeout time.Duration) *TripHandler {
	if currency == "" {
		currency = types.DefaultCurrency
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &TripHandler{planner: planner, currency: currency, timeout: timeout}
}

type planTripReq struct {
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Budget    float64 `json:"budget" binding:"required,gt=0"`
	TripType  string  `json:"trip_type" binding:"required"`
}

type planTripResp struct {
	TripOptions []service.TripOption `json:"trip_options"`
}

type selectTripReq struct {
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	TripType    string `json:"trip_type" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// Plan handles POST /api/trips/plan.
func (h *TripHandler) Plan(c *gin.Context) {
	var req planTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	opts, err := h.planner.PlanTrip(ctx, service.PlanRequest{
		StartDate: start,
		EndDate:   end,
		Budget:    types.FromMajor(req.Budget, h.currency),
		TripType:  req.TripType,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, planTripResp{TripOptions: opts})
}

// Select handles POST /api/trips/select.
func (h *TripHandler) Select(c *gin.Context) {
	var req selectTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	trip, err := h.planner.SelectTrip(ctx, service.SelectRequest{
		StartDate:   start,
		EndDate:     end,
		TripType:    req.TripType,
		Destination: req.Destination,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, trip)
}
