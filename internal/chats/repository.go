package chats

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tmeadows/templar/pkg/pagination"
	"github.com/tmeadows/templar/pkg/query"
	"github.com/tmeadows/templar/pkg/repository"
)

type repo struct {
	db      *sql.DB
	logger  *slog.Logger
	pageCfg pagination.Config
}

// New creates a chat session repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pageCfg pagination.Config) System {
	return &repo{
		db:      db,
		logger:  logger.With("system", "chats"),
		pageCfg: pageCfg,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.pageCfg, r.logger)
}

func (r *repo) Create(ctx context.Context, cmd SaveCommand) (*SaveResult, error) {
	cmd.normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(cmd.Conversation)
	if err != nil {
		return nil, fmt.Errorf("encode conversation: %w", err)
	}

	session, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ChatSession, error) {
		if cmd.Status.Terminal() {
			if err := archiveLive(ctx, tx, cmd.UserID, uuid.Nil); err != nil {
				return ChatSession{}, err
			}
		}

		insert := `
			INSERT INTO public.chat_sessions(user_id, conversation, status)
			VALUES ($1, $2, $3)
			RETURNING ` + returningColumns

		return repository.QueryOne(ctx, tx, insert, []any{cmd.UserID, raw, cmd.Status}, scanChatSession)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info(
		"chat session created",
		"id", session.ID,
		"user", session.UserID,
		"status", session.Status,
	)

	return &SaveResult{
		Session:          &session,
		ShouldStartFresh: session.Status.Terminal(),
	}, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*SaveResult, error) {
	cmd.normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(cmd.Conversation)
	if err != nil {
		return nil, fmt.Errorf("encode conversation: %w", err)
	}

	session, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (ChatSession, error) {
		findQ, findArgs := query.NewBuilder(projection).BuildSingle("ID", id)
		target, err := repository.QueryOne(ctx, tx, findQ, findArgs, scanChatSession)
		if err != nil {
			return ChatSession{}, err
		}

		if cmd.Status.Terminal() {
			if err := archiveLive(ctx, tx, target.UserID, id); err != nil {
				return ChatSession{}, err
			}
		}

		update := `
			UPDATE public.chat_sessions
			SET conversation = $1, status = $2, updated_at = now()
			WHERE id = $3
			RETURNING ` + returningColumns

		return repository.QueryOne(ctx, tx, update, []any{raw, cmd.Status, id}, scanChatSession)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info(
		"chat session updated",
		"id", session.ID,
		"user", session.UserID,
		"status", session.Status,
	)

	return &SaveResult{
		Session:          &session,
		ShouldStartFresh: session.Status.Terminal(),
	}, nil
}

// archiveLive archives every live session for a user except the one being
// saved. Running inside the caller's transaction keeps the single-live
// invariant atomic with the save itself.
func archiveLive(ctx context.Context, tx *sql.Tx, userID string, exclude uuid.UUID) error {
	_, err := tx.ExecContext(
		ctx,
		`UPDATE public.chat_sessions
		SET status = $1, updated_at = now()
		WHERE user_id = $2 AND id <> $3 AND status IN ($4, $5, $6)`,
		StatusArchived, userID, exclude,
		StatusIncomplete, StatusPaused, StatusStopped,
	)
	if err != nil {
		return fmt.Errorf("archive live sessions: %w", err)
	}
	return nil
}

func (r *repo) SessionStatus(ctx context.Context, userID string) (*SessionState, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	q, args := query.NewBuilder(projection, recentSort).
		WhereEquals("UserID", userID).
		WhereIn("Status", statusArgs(liveStatuses)).
		BuildSingleOrNull()

	session, err := repository.QueryOne(ctx, r.db, q, args, scanChatSession)
	if err == nil {
		return &SessionState{
			SessionType:      SessionResume,
			HasActiveSession: true,
			Chat:             &session,
		}, nil
	}

	if mapped := repository.MapError(err, ErrNotFound, ErrConflict); mapped != ErrNotFound {
		return nil, mapped
	}

	countQ, countArgs := query.NewBuilder(projection).
		WhereEquals("UserID", userID).
		WhereIn("Status", statusArgs([]Status{StatusCompleted, StatusArchived})).
		BuildCount()

	prior, err := repository.QueryOne(ctx, r.db, countQ, countArgs, scanCount)
	if err != nil {
		return nil, fmt.Errorf("count prior sessions: %w", err)
	}

	return &SessionState{
		SessionType:   SessionFresh,
		PriorSessions: prior,
	}, nil
}

func (r *repo) Counts(ctx context.Context, userID string) (*StatusCounts, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	type statusCount struct {
		status Status
		count  int
	}

	rows, err := repository.QueryMany(
		ctx, r.db,
		"SELECT status, COUNT(*) FROM public.chat_sessions WHERE user_id = $1 GROUP BY status",
		[]any{userID},
		func(s repository.Scanner) (statusCount, error) {
			var sc statusCount
			err := s.Scan(&sc.status, &sc.count)
			return sc, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	var counts StatusCounts
	for _, sc := range rows {
		switch sc.status {
		case StatusIncomplete:
			counts.Incomplete = sc.count
		case StatusPaused:
			counts.Paused = sc.count
		case StatusStopped:
			counts.Stopped = sc.count
		case StatusCompleted:
			counts.Completed = sc.count
		case StatusArchived:
			counts.Archived = sc.count
		}
		counts.Total += sc.count
	}
	counts.Active = counts.Incomplete + counts.Paused + counts.Stopped

	return &counts, nil
}

func (r *repo) History(
	ctx context.Context,
	userID, filter string,
	req pagination.PageRequest,
) (*pagination.PageResult[ChatSession], error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	b := query.NewBuilder(projection, recentSort).
		WhereEquals("UserID", userID)

	switch filter {
	case "", FilterAll:
	case FilterActive:
		b.WhereIn("Status", statusArgs(liveStatuses))
	default:
		status, err := ParseStatus(filter)
		if err != nil {
			return nil, err
		}
		b.WhereEquals("Status", status)
	}

	req.Normalize(r.pageCfg)

	countQ, countArgs := b.BuildCount()
	total, err := repository.QueryOne(ctx, r.db, countQ, countArgs, scanCount)
	if err != nil {
		return nil, fmt.Errorf("count session history: %w", err)
	}

	pageQ, pageArgs := b.BuildPage(req.Page, req.PageSize)
	sessions, err := repository.QueryMany(ctx, r.db, pageQ, pageArgs, scanChatSession)
	if err != nil {
		return nil, fmt.Errorf("query session history: %w", err)
	}

	result := pagination.NewPageResult(sessions, total, req.Page, req.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*ChatSession, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	session, err := repository.QueryOne(ctx, r.db, q, args, scanChatSession)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return &session, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) (*DeletedChat, error) {
	deleted, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (DeletedChat, error) {
		return repository.QueryOne(
			ctx, tx,
			"DELETE FROM public.chat_sessions WHERE id = $1 RETURNING id, user_id, status",
			[]any{id},
			func(s repository.Scanner) (DeletedChat, error) {
				var d DeletedChat
				err := s.Scan(&d.ID, &d.UserID, &d.Status)
				return d, err
			},
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info("chat session deleted", "id", deleted.ID, "user", deleted.UserID)
	return &deleted, nil
}

func statusArgs(statuses []Status) []any {
	args := make([]any, len(statuses))
	for i, s := range statuses {
		args[i] = s
	}
	return args
}

func scanCount(s repository.Scanner) (int, error) {
	var n int
	err := s.Scan(&n)
	return n, err
}
