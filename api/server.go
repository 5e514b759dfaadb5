package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"weather-dashboard/models"
	"weather-dashboard/scheduler"
)

// Server represents the read-only status API server
type Server struct {
	store  *Store
	engine *gin.Engine
	server *http.Server
}

// NewServer creates a new API server listening on addr. The middleware runs
// after gin's panic recovery.
func NewServer(store *Store, addr string, middleware ...gin.HandlerFunc) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware...)

	server := &Server{
		store:  store,
		engine: engine,
		server: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	g := engine.Group("/api")
	g.GET("/status", server.handleGetStatus)
	g.GET("/weather", server.handleGetWeather)
	g.GET("/forecast", server.handleGetForecast)
	g.GET("/forecast/:day", server.handleGetForecastDay)

	// Health check
	g.GET("/health", server.handleHealthCheck)

	return server
}

// Handler exposes the router, e.g. for httptest
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve status API: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// snapshot loads the current snapshot, answering 503 itself when there is none
func (s *Server) snapshot(ctx *gin.Context) (scheduler.Snapshot, bool) {
	snapshot, ok := s.store.Snapshot()
	if !ok {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "no data published yet"})
	}
	return snapshot, ok
}

// handleGetStatus reports the refresh state without the weather records
func (s *Server) handleGetStatus(ctx *gin.Context) {
	snapshot, ok := s.snapshot(ctx)
	if !ok {
		return
	}

	response := gin.H{
		"location":        snapshot.Location,
		"status":          snapshot.Status,
		"intervalSeconds": int(snapshot.Interval.Seconds()),
		"observation":     snapshot.Observation.IsReady(),
		"forecastDays":    readyDays(snapshot.Forecast),
		"timestamp":       snapshot.Now,
	}
	if snapshot.Updated() {
		response["updatedAt"] = snapshot.UpdatedAt
	}
	if !snapshot.LastAttempt.IsZero() {
		response["lastAttempt"] = snapshot.LastAttempt
	}
	if snapshot.Err != "" {
		response["error"] = snapshot.Err
	}

	ctx.JSON(http.StatusOK, response)
}

// handleGetWeather returns the current observation
func (s *Server) handleGetWeather(ctx *gin.Context) {
	snapshot, ok := s.snapshot(ctx)
	if !ok {
		return
	}
	if !snapshot.Observation.IsReady() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "observation not available yet", "status": snapshot.Status})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"location":  snapshot.Location,
		"data":      snapshot.Observation,
		"status":    snapshot.Status,
		"updatedAt": snapshot.UpdatedAt,
	})
}

// handleGetForecast returns every ready forecast day
func (s *Server) handleGetForecast(ctx *gin.Context) {
	snapshot, ok := s.snapshot(ctx)
	if !ok {
		return
	}
	if !snapshot.Forecast.Ready() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "forecast not available yet", "status": snapshot.Status})
		return
	}

	days := make([]models.ForecastDay, 0, len(snapshot.Forecast.Days))
	for _, day := range snapshot.Forecast.Days {
		if day.Ready() {
			days = append(days, day)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"location":  snapshot.Location,
		"id":        snapshot.Forecast.ID,
		"days":      days,
		"count":     len(days),
		"status":    snapshot.Status,
		"updatedAt": snapshot.UpdatedAt,
	})
}

// handleGetForecastDay returns a single day by index, 0 being today
func (s *Server) handleGetForecastDay(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("day"))
	if err != nil || index < 0 || index >= models.MaxForecastDays {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("day must be between 0 and %d", models.MaxForecastDays-1),
		})
		return
	}

	snapshot, ok := s.snapshot(ctx)
	if !ok {
		return
	}
	if !snapshot.Forecast.Ready() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "forecast not available yet", "status": snapshot.Status})
		return
	}

	day := snapshot.Forecast.Day(index)
	if !day.Ready() {
		ctx.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no forecast for day %d", index)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"location": snapshot.Location,
		"day":      index,
		"data":     day,
	})
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func readyDays(f models.Forecast) int {
	n := 0
	for _, day := range f.Days {
		if day.Ready() {
			n++
		}
	}
	return n
}
