package assembly

import (
	"errors"
	"net/http"
)

// Domain errors for prompt assembly.
var (
	ErrOwnerRequired        = errors.New("owner is required")
	ErrInvalidPromptKind    = errors.New("kind must be conceptMentor or assessmentPrompt")
	ErrTemplateUnavailable  = errors.New("no template content exists for this owner and kind")
	ErrInvalidVariables     = errors.New("template variables must be a JSON object")
	ErrProviderUnknown      = errors.New("provider is not configured and no default provider exists")
	ErrShapeUnavailable     = errors.New("no prompt shape is configured")
	ErrProvidersUnavailable = errors.New("no provider configuration exists")
)

// MapHTTPStatus maps assembly domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrTemplateUnavailable),
		errors.Is(err, ErrShapeUnavailable),
		errors.Is(err, ErrProvidersUnavailable):
		return http.StatusNotFound
	case errors.Is(err, ErrOwnerRequired),
		errors.Is(err, ErrInvalidPromptKind),
		errors.Is(err, ErrInvalidVariables),
		errors.Is(err, ErrProviderUnknown):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
