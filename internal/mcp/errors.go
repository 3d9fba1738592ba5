package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/reworkdesk/internal/domain/activity"
	"github.com/rpggio/reworkdesk/internal/domain/record"
	"github.com/rpggio/reworkdesk/internal/domain/upsert"
	"github.com/rpggio/reworkdesk/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for current ids"}
	case errors.Is(err, upsert.ErrIDCollision):
		return &APIError{Code: "ID_COLLISION", Message: err.Error(), RecoveryHint: "Retry the save"}
	case errors.Is(err, repository.ErrIDSpaceExhausted):
		return &APIError{Code: "ID_SPACE_EXHAUSTED", Message: err.Error()}
	case errors.Is(err, record.ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
