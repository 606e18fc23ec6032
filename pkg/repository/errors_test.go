package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tmeadows/templar/pkg/repository"
)

var (
	errNotFound = errors.New("not found")
	errConflict = errors.New("conflict")
)

func TestMapError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		if got := repository.MapError(nil, errNotFound, errConflict); got != nil {
			t.Errorf("MapError(nil) = %v", got)
		}
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		got := repository.MapError(sql.ErrNoRows, errNotFound, errConflict)
		if !errors.Is(got, errNotFound) {
			t.Errorf("got %v, want errNotFound", got)
		}
	})

	t.Run("wrapped no rows maps to not found", func(t *testing.T) {
		wrapped := fmt.Errorf("query: %w", sql.ErrNoRows)
		got := repository.MapError(wrapped, errNotFound, errConflict)
		if !errors.Is(got, errNotFound) {
			t.Errorf("got %v, want errNotFound", got)
		}
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505"}
		got := repository.MapError(pgErr, errNotFound, errConflict)
		if !errors.Is(got, errConflict) {
			t.Errorf("got %v, want errConflict", got)
		}
	})

	t.Run("other pg errors pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503"}
		got := repository.MapError(pgErr, errNotFound, errConflict)
		if !errors.Is(got, pgErr) {
			t.Errorf("got %v, want original error", got)
		}
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		got := repository.MapError(boom, errNotFound, errConflict)
		if !errors.Is(got, boom) {
			t.Errorf("got %v, want original error", got)
		}
	})
}
