package handler

import (
	"context"
	"net/http"
	"time"
)

// RedisPinger defines the interface for checking session store connectivity
type RedisPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	redis RedisPinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(redis RedisPinger) *HealthHandler {
	return &HealthHandler{redis: redis}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
	Uptime string            `json:"uptime,omitempty"`
}

var startTime = time.Now()

// GetHealth handles GET /health
// Basic health check - returns 200 OK if service is running
func GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, HealthResponse{
		Status: "ok",
		Uptime: time.Since(startTime).String(),
	}, http.StatusOK)
}

// GetLiveness handles GET /health/live
func GetLiveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, HealthResponse{Status: "alive"}, http.StatusOK)
}

// GetReadiness handles GET /health/ready
// Checks session store connectivity
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := "ok"
	httpStatus := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.redis.Ping(ctx); err != nil {
		checks["redis"] = "unhealthy: " + err.Error()
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["redis"] = "healthy"
	}

	respondJSON(w, HealthResponse{
		Status: status,
		Checks: checks,
		Uptime: time.Since(startTime).String(),
	}, httpStatus)
}
