package handlers

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"fleethvac/internal/jobs/background"

	"github.com/labstack/echo/v4"
)

const checkTimeout = 3 * time.Second

// Checker probes one dependency
type Checker func(ctx context.Context) error

// JobStatusProvider exposes the background scheduler state
type JobStatusProvider interface {
	Status() background.JobStatus
}

type dependency struct {
	name     string
	critical bool
	check    Checker
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	version string
	started time.Time
	deps    []dependency
	jobs    JobStatusProvider
}

func NewHealthHandlers(version string, jobs JobStatusProvider) *HealthHandlers {
	return &HealthHandlers{version: version, started: time.Now(), jobs: jobs}
}

// AddCheck registers a dependency; critical ones gate readiness
func (h *HealthHandlers) AddCheck(name string, critical bool, check Checker) {
	h.deps = append(h.deps, dependency{name: name, critical: critical, check: check})
}

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
}

type CheckResult struct {
	Status    string `json:"status"`
	Critical  bool   `json:"critical"`
	Message   string `json:"message,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

type DetailedHealth struct {
	Status     string                 `json:"status"`
	Timestamp  string                 `json:"timestamp"`
	Version    string                 `json:"version"`
	Uptime     string                 `json:"uptime"`
	Goroutines int                    `json:"goroutines"`
	Checks     map[string]CheckResult `json:"checks"`
	Jobs       *background.JobStatus  `json:"jobs,omitempty"`
}

// HealthCheck godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthStatus
// @Router /health [get]
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	})
}

// ReadinessCheck godoc
// @Summary Readiness probe over critical dependencies
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health/ready [get]
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	results := h.run(c.Request().Context())
	for _, dep := range h.deps {
		if dep.critical && results[dep.name].Status != "healthy" {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":  "not_ready",
				"message": dep.name + " unavailable",
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// DetailedHealthCheck godoc
// @Summary Per-dependency status, latency and background jobs
// @Tags health
// @Produce json
// @Success 200 {object} DetailedHealth
// @Failure 503 {object} DetailedHealth
// @Router /health/detailed [get]
func (h *HealthHandlers) DetailedHealthCheck(c echo.Context) error {
	detail := DetailedHealth{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Version:    h.version,
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		Checks:     h.run(c.Request().Context()),
	}
	if h.jobs != nil {
		status := h.jobs.Status()
		detail.Jobs = &status
	}

	code := http.StatusOK
	for _, res := range detail.Checks {
		if res.Status == "healthy" {
			continue
		}
		if res.Critical {
			detail.Status = "unhealthy"
			code = http.StatusServiceUnavailable
			break
		}
		detail.Status = "degraded"
	}
	return c.JSON(code, detail)
}

func (h *HealthHandlers) run(ctx context.Context) map[string]CheckResult {
	results := make(map[string]CheckResult, len(h.deps))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, dep := range h.deps {
		wg.Add(1)
		go func(dep dependency) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			start := time.Now()
			err := dep.check(checkCtx)
			res := CheckResult{
				Status:    "healthy",
				Critical:  dep.critical,
				LatencyMS: time.Since(start).Milliseconds(),
			}
			if err != nil {
				res.Status = "unhealthy"
				res.Message = err.Error()
			}

			mu.Lock()
			results[dep.name] = res
			mu.Unlock()
		}(dep)
	}
	wg.Wait()
	return results
}
