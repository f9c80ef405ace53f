package handler

import (
	"errors"
	"net/http"

	"medassist/internal/delivery/http/middleware"
	"medassist/internal/infrastructure/ai"
	"medassist/internal/service"
	"medassist/internal/usecase"
	"medassist/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// pathUUID reads a uuid route variable, writing a 400 when it is malformed
func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, false
	}
	return userID, true
}

// writeAIError maps failures of a model-backed operation onto the envelope
func writeAIError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ai.ErrRateLimited):
		response.Error(w, http.StatusTooManyRequests, err.Error(), nil)
	case errors.Is(err, ai.ErrPaymentRequired):
		response.Error(w, http.StatusPaymentRequired, err.Error(), nil)
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrUnusableModelOutput),
		errors.Is(err, service.ErrNoAnalysis),
		errors.Is(err, service.ErrNoTreatment),
		errors.Is(err, service.ErrNoSummary),
		errors.Is(err, ai.ErrMalformedToolCall):
		response.Error(w, http.StatusBadGateway, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
