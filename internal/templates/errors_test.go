package templates

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrDefaultMissing, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrInvalidKind, http.StatusBadRequest},
		{ErrOwnerRequired, http.StatusBadRequest},
		{ErrEmptyContent, http.StatusBadRequest},
		{ErrContentTooLarge, http.StatusBadRequest},
		{ErrInvalidVersion, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
	}

	for _, tc := range tests {
		if got := MapHTTPStatus(tc.err); got != tc.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
