package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/service"
)

// handleBusinessError writes the mapped response for a *service.BusinessError
// and reports whether it handled the error. Plain errors stay with the caller.
func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: business error",
			zap.String("error_code", businessErr.Code),
			zap.String("error_message", businessErr.Message),
			zap.Int("http_status", statusCode))

		payloads := []Payload{
			toPayload("error", businessErr.Code),
			toPayload("message", businessErr.Message),
		}
		if len(businessErr.Details) > 0 {
			payloads = append(payloads, toPayload("details", businessErr.Details))
		}
		responseWithJSON(w, statusCode, payloads...)
		return true
	}
	return false
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeConflict:
		return http.StatusConflict
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	case service.CodeForbidden:
		return http.StatusForbidden
	case service.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
