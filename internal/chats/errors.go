package chats

import (
	"errors"
	"net/http"
)

// Domain errors for chat session operations.
var (
	ErrNotFound            = errors.New("chat session not found")
	ErrConflict            = errors.New("concurrent session write detected, retry the operation")
	ErrUserRequired        = errors.New("userId is required")
	ErrInvalidStatus       = errors.New("status must be incomplete, paused, stopped, completed, or archived")
	ErrInvalidConversation = errors.New("conversation must contain at least one message with a role")
)

// MapHTTPStatus maps chat domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUserRequired),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidConversation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
