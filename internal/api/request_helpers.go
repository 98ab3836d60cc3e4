package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/custom-cars-api/internal/api/shared"
	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/service"
)

// getPathID extracts a positive integer id from the URL path parameter
// paramName. A missing or non-numeric value is a validation error.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// decodeCarRequest decodes and validates a car payload, writing a 400
// response on failure. It reports whether the handler should continue.
func decodeCarRequest(w http.ResponseWriter, r *http.Request) (service.Proposal, bool) {
	var req CarRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		msg := "Invalid request format"
		if errors.Is(err, shared.ErrEmptyBody) {
			msg = "Request body is required"
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msg, err)
		return service.Proposal{}, false
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return service.Proposal{}, false
	}

	return req.Proposal(), true
}
