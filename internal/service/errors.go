package service

import (
	"fmt"
)

// ServiceError wraps an unexpected failure with the operation that hit it.
// Expected outcomes (validation failures, rule violations, not found) are
// returned unwrapped so callers can match them with errors.Is/errors.As.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewCatalogServiceError creates a ServiceError for the catalog service.
func NewCatalogServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "catalog", Operation: operation, Message: message, Err: err}
}

// NewConfigurationServiceError creates a ServiceError for the configuration service.
func NewConfigurationServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "configuration", Operation: operation, Message: message, Err: err}
}
