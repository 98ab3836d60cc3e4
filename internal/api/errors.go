package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/custom-cars-api/internal/api/shared"
	"github.com/phrazzld/custom-cars-api/internal/domain"
	"github.com/phrazzld/custom-cars-api/internal/engine"
	"github.com/phrazzld/custom-cars-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, engine.ErrRuleViolation),
		errors.Is(err, engine.ErrFeatureOptionMismatch),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
//
// Validation messages are built by the domain and engine from ids and names
// the client sent, so they are returned as is. Everything else gets a fixed
// message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var mismatchErr *engine.FeatureOptionMismatchError

	switch {
	case errors.Is(err, store.ErrConfigurationNotFound):
		return "Custom item not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.As(err, &mismatchErr):
		return mismatchErr.Error()

	case errors.As(err, &validationErr):
		if errors.Is(validationErr, domain.ErrInvalidID) {
			return "Invalid ID"
		}
		return validationErr.Error()

	case errors.Is(err, engine.ErrRuleViolation):
		if rv, ok := engine.AsRuleViolation(err); ok {
			return rv.Error()
		}
		return "Selection violates a configuration rule"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid custom item data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation error"
	}

	fe := fieldErrs[0]
	return fmt.Sprintf("Invalid %s: %s", jsonFieldName(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// jsonFieldName maps request struct fields, including element paths such as
// OptionIDs[2], to their JSON names.
func jsonFieldName(field string) string {
	base, index, hasIndex := strings.Cut(field, "[")

	var name string
	switch base {
	case "OptionIDs":
		name = "optionIds"
	case "IsConvertible":
		name = "isConvertible"
	default:
		name = strings.ToLower(base)
	}
	if hasIndex {
		name += "[" + index
	}
	return name
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "must not be empty"
	case "max":
		return "too long"
	case "gt":
		return "must be a positive id"
	default:
		return "validation failed"
	}
}

// handleServiceError writes the error response for an error returned by a
// service call. Rule violations carry the violation details in the body.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	var opts []shared.ResponseOption
	if rv, ok := engine.AsRuleViolation(err); ok {
		opts = append(opts, shared.WithViolation(rv))
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
