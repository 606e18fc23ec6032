package templates

import (
	"errors"
	"net/http"
)

// Domain errors for template operations.
var (
	ErrNotFound        = errors.New("template version not found")
	ErrConflict        = errors.New("concurrent template write detected, retry the operation")
	ErrInvalidKind     = errors.New("kind must be conceptMentor, assessmentPrompt, or defaultTemplateValues")
	ErrOwnerRequired   = errors.New("owner is required")
	ErrEmptyContent    = errors.New("template content must not be empty")
	ErrContentTooLarge = errors.New("template content exceeds the size limit")
	ErrInvalidVersion  = errors.New("version must be an integer")
	ErrDefaultMissing  = errors.New("no default content exists for this kind")
)

// MapHTTPStatus maps template domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDefaultMissing):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidKind),
		errors.Is(err, ErrOwnerRequired),
		errors.Is(err, ErrEmptyContent),
		errors.Is(err, ErrContentTooLarge),
		errors.Is(err, ErrInvalidVersion):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
