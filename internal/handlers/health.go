package handlers

import (
	"context"
	"net/http"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
)

// HealthChecker is the slice of the storage the health endpoint needs.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	storage HealthChecker
}

func NewHealthHandler(storage HealthChecker) HealthHandler {
	return HealthHandler{storage: storage}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: health check")

	if err := h.storage.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: storage unhealthy", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "DOWN"),
			toPayload("error", err.Error()),
		)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("status", "UP"))
}
