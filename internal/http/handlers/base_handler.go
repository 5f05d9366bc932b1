// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/service"
)

const dateLayout = time.DateOnly

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// parseDates reads a YYYY-MM-DD pair.
func parseDates(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start_date, expected YYYY-MM-DD")
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end_date, expected YYYY-MM-DD")
	}
	return s, e, nil
}

func writeTripError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoCandidates), errors.Is(err, service.ErrNoFeasibleTrips):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNoSuggestions):
		writeError(c, http.StatusBadGateway, service.ErrNoSuggestions.Error()+". Please try again later.")
	case errors.Is(err, service.ErrItineraryUnavailable):
		writeError(c, http.StatusBadGateway, service.ErrItineraryUnavailable.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "request timed out")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
