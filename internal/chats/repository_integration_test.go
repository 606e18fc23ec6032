//go:build integration

package chats_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tmeadows/templar/internal/chats"
	"github.com/tmeadows/templar/pkg/pagination"
)

var chatSchema = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
	`CREATE TABLE IF NOT EXISTS chat_sessions (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id text NOT NULL,
		conversation jsonb NOT NULL,
		status text NOT NULL CHECK (status IN ('incomplete', 'paused', 'stopped', 'completed', 'archived')),
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEMPLAR_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEMPLAR_TEST_DB_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, stmt := range chatSchema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return db
}

func newSystem(t *testing.T) (chats.System, string) {
	t.Helper()

	db := testDB(t)
	userID := "it-" + uuid.NewString()
	t.Cleanup(func() {
		db.Exec("DELETE FROM public.chat_sessions WHERE user_id = $1", userID)
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pagination.Config{DefaultPageSize: 25, MaxPageSize: 50}
	return chats.New(db, logger, cfg), userID
}

func seedConversation() chats.Conversation {
	return chats.Conversation{
		{Role: "user", Content: "What is a closure?"},
		{Role: "assistant", Content: "Start with how functions capture scope."},
	}
}

func TestCreateDefaultsToIncomplete(t *testing.T) {
	sys, userID := newSystem(t)

	res, err := sys.Create(context.Background(), chats.SaveCommand{
		UserID:       userID,
		Conversation: seedConversation(),
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if res.Session.Status != chats.StatusIncomplete {
		t.Errorf("status = %q, want %q", res.Session.Status, chats.StatusIncomplete)
	}
	if res.ShouldStartFresh {
		t.Error("ShouldStartFresh = true, want false for an in-progress session")
	}
}

func TestTerminalCreateArchivesLiveSessions(t *testing.T) {
	sys, userID := newSystem(t)
	ctx := context.Background()

	prior, err := sys.Create(ctx, chats.SaveCommand{
		UserID:       userID,
		Conversation: seedConversation(),
		Status:       chats.StatusPaused,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	res, err := sys.Create(ctx, chats.SaveCommand{
		UserID:       userID,
		Conversation: seedConversation(),
		Status:       chats.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if !res.ShouldStartFresh {
		t.Error("ShouldStartFresh = false, want true for a completed save")
	}

	swept, err := sys.Find(ctx, prior.Session.ID)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if swept.Status != chats.StatusArchived {
		t.Errorf("prior session status = %q, want %q", swept.Status, chats.StatusArchived)
	}
}

func TestTerminalUpdateSparesUpdatedRow(t *testing.T) {
	sys, userID := newSystem(t)
	ctx := context.Background()

	first, err := sys.Create(ctx, chats.SaveCommand{
		UserID:       userID,
		Conversation: seedConversation(),
		Status:       chats.StatusIncomplete,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	second, err := sys.Create(ctx, chats.SaveCommand{
		UserID:       userID,
		Conversation: seedConversation(),
		Status:       chats.StatusIncomplete,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	res, err := sys.Update(ctx, second.Session.ID, chats.UpdateCommand{
		Conversation: seedConversation(),
		Status:       chats.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if res.Session.Status != chats.StatusCompleted {
		t.Errorf("updated status = %q, want %q (sweep must spare the saved row)", res.Session.Status, chats.StatusCompleted)
	}
	if !res.ShouldStartFresh {
		t.Error("ShouldStartFresh = false, want true for a completed save")
	}

	swept, err := sys.Find(ctx, first.Session.ID)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if swept.Status != chats.StatusArchived {
		t.Errorf("other session status = %q, want %q", swept.Status, chats.StatusArchived)
	}

	state, err := sys.SessionStatus(ctx, userID)
	if err != nil {
		t.Fatalf("SessionStatus() error: %v", err)
	}
	if state.SessionType != chats.SessionFresh {
		t.Errorf("session type = %q, want %q after terminal save", state.SessionType, chats.SessionFresh)
	}
	if state.PriorSessions != 2 {
		t.Errorf("prior sessions = %d, want 2 (completed + archived)", state.PriorSessions)
	}
}
