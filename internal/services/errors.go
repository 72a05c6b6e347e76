package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDependencyMissing = errors.New("missing dependency")
	ErrOverwriteRefused  = errors.New("refusing to overwrite")
	ErrNoData            = errors.New("no data available")
	ErrExternalTool      = errors.New("external tool error")
	ErrValidation        = errors.New("validation error")
	ErrConfiguration     = errors.New("configuration error")
	ErrNotFound          = errors.New("not found")
)

// Wrap builds an error message that includes command context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, command, operation, message string, err error) error {
	detail := buildDetail(command, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind maps an error to the short event type used in structured logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDependencyMissing):
		return "dependency_missing"
	case errors.Is(err, ErrOverwriteRefused):
		return "overwrite_refused"
	case errors.Is(err, ErrNoData):
		return "no_data"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "external_tool"
	}
}

func buildDetail(command, operation, message string) string {
	parts := make([]string, 0, 3)
	if command = strings.TrimSpace(command); command != "" {
		parts = append(parts, command)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "command failure"
	}
	return strings.Join(parts, ": ")
}
