package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"gollmf-backend/internal/middleware"
	"gollmf-backend/internal/models"
	"gollmf-backend/internal/services"
)

// Fixed messages returned for provider failures. Provider detail is logged,
// never returned.
const (
	msgInvalidBody   = "Invalid request body"
	msgAuthFailed    = "Invalid API key. Please check your OpenAI configuration."
	msgQuotaExceeded = "API quota exceeded. Please check your OpenAI account."
	msgUpstreamError = "Failed to get response from AI. Please try again."
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorResp(e.Message))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp(e.Message))
	case *services.AuthError:
		logProviderError(r, err)
		writeJSON(w, http.StatusUnauthorized, errorResp(msgAuthFailed))
	case *services.QuotaExceededError:
		logProviderError(r, err)
		writeJSON(w, http.StatusPaymentRequired, errorResp(msgQuotaExceeded))
	default:
		logProviderError(r, err)
		writeJSON(w, http.StatusInternalServerError, errorResp(msgUpstreamError))
	}
}

func logProviderError(r *http.Request, err error) {
	log.Printf("OpenAI API error (request_id=%s): %v", middleware.GetRequestID(r.Context()), err)
}
