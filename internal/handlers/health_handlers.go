package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// checkTimeout bounds each dependency probe.
const checkTimeout = 2 * time.Second

// HealthCheckFunc probes one dependency.
type HealthCheckFunc func(ctx context.Context) error

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	database HealthCheckFunc
	redis    HealthCheckFunc
	storage  HealthCheckFunc
	version  string
	started  time.Time
}

// NewHealthHandlers creates a new health handlers instance. A nil check reports healthy.
func NewHealthHandlers(database, redis, storage HealthCheckFunc, version string) *HealthHandlers {
	return &HealthHandlers{
		database: database,
		redis:    redis,
		storage:  storage,
		version:  version,
		started:  time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

func (h *HealthHandlers) runChecks(ctx context.Context, checks map[string]HealthCheckFunc) map[string]error {
	var (
		mu      sync.Mutex
		results = make(map[string]error, len(checks))
	)
	g, ctx := errgroup.WithContext(ctx)
	for name, check := range checks {
		g.Go(func() error {
			var err error
			if check != nil {
				cctx, cancel := context.WithTimeout(ctx, checkTimeout)
				err = check(cctx)
				cancel()
			}
			mu.Lock()
			results[name] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// HealthCheck probes every dependency
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} HealthStatus
// @Success 206 {object} HealthStatus
// @Router /health [get]
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
		Uptime:    time.Since(h.started).Truncate(time.Second).String(),
	}

	results := h.runChecks(c.Request().Context(), map[string]HealthCheckFunc{
		"database": h.database,
		"redis":    h.redis,
		"storage":  h.storage,
	})
	for name, err := range results {
		if err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services[name] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck reports ready only when the database answers. Redis and
// storage outages degrade features but do not stop listings.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	results := h.runChecks(c.Request().Context(), map[string]HealthCheckFunc{"database": h.database})
	if results["database"] != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running (basic liveness probe)
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
