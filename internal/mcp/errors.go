package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/project"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var verr *project.ValidationError
	switch {
	case errors.As(err, &verr):
		return &APIError{Code: "INVALID_INPUT", Message: "validation failed", Details: verr.Fields, RecoveryHint: "Fix the listed fields and retry"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Fix the input and retry"}
	case errors.Is(err, dashboard.ErrInvalidState):
		return &APIError{Code: "INVALID_STATE", Message: err.Error(), RecoveryHint: "Use a known status, sort key and direction"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid IDs"}
	case errors.Is(err, dashboard.ErrSourceUnavailable):
		return &APIError{Code: "SOURCE_UNAVAILABLE", Message: err.Error(), RecoveryHint: "Retry once the record store is reachable"}
	case errors.Is(err, dashboard.ErrMutationFailed):
		return &APIError{Code: "MUTATION_FAILED", Message: err.Error(), RecoveryHint: "Reload the dashboard before retrying"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
