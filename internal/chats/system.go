package chats

import (
	"context"

	"github.com/google/uuid"

	"github.com/tmeadows/templar/pkg/pagination"
)

// History filter values accepted alongside the status names.
const (
	FilterAll    = "all"
	FilterActive = "active"
)

// System defines the public contract for chat session operations.
type System interface {
	Handler() *Handler

	// Create saves a new session. Saving in a terminal status archives the
	// user's other live sessions in the same transaction.
	Create(ctx context.Context, cmd SaveCommand) (*SaveResult, error)
	// Update replaces a session's conversation and status. Transitioning to
	// a terminal status archives the user's other live sessions.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*SaveResult, error)

	// SessionStatus reports whether the user has a live session to resume,
	// and how many concluded sessions precede a fresh start.
	SessionStatus(ctx context.Context, userID string) (*SessionState, error)
	// Counts aggregates the user's sessions by status.
	Counts(ctx context.Context, userID string) (*StatusCounts, error)
	// History returns a page of the user's sessions, newest first. The
	// filter is "all", "active", or a specific status name.
	History(ctx context.Context, userID, filter string, req pagination.PageRequest) (*pagination.PageResult[ChatSession], error)

	Find(ctx context.Context, id uuid.UUID) (*ChatSession, error)
	// Delete removes a session, returning what was removed.
	Delete(ctx context.Context, id uuid.UUID) (*DeletedChat, error)
}
