// README: API gateway; registers HTTP routes and delegates to the trip planner.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripplanner/internal/http/handlers"
	"tripplanner/internal/http/middleware"
)

type ServerDeps struct {
	Planner  handlers.TripPlanner
	Logger   *zap.Logger
	Currency string
	Timeout  time.Duration
}

type Server struct {
	trips  *handlers.TripHandler
	logger *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		trips:  handlers.NewTripHandler(deps.Planner, deps.Currency, deps.Timeout),
		logger: logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(s.logger), middleware.Recovery(s.logger))

	api := r.Group("/api/trips")
	api.POST("/plan", s.trips.Plan)
	api.POST("/select", s.trips.Select)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}
