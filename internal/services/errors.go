package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable   = errors.New("backend unavailable")
	ErrServer        = errors.New("backend rejected request")
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
	ErrState         = errors.New("session state error")
	ErrNotFound      = errors.New("not found")
)

// Wrap builds an error message that includes action context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, action, operation, message string, err error) error {
	detail := buildDetail(action, operation, message)
	if marker == nil {
		marker = ErrServer
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureKind maps an error to the short label used in logs and CLI hints.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrServer):
		return "server"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrState):
		return "state"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func buildDetail(action, operation, message string) string {
	parts := make([]string, 0, 3)
	if action = strings.TrimSpace(action); action != "" {
		parts = append(parts, action)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "request failure"
	}
	return strings.Join(parts, ": ")
}
