package chats

import (
	"encoding/json"
	"fmt"

	"github.com/tmeadows/templar/pkg/query"
	"github.com/tmeadows/templar/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "chat_sessions", "cs").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("conversation", "Conversation").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var recentSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

const returningColumns = "id, user_id, conversation, status, created_at, updated_at"

func scanChatSession(s repository.Scanner) (ChatSession, error) {
	var (
		c   ChatSession
		raw []byte
	)

	err := s.Scan(
		&c.ID,
		&c.UserID,
		&raw,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}

	if err := json.Unmarshal(raw, &c.Conversation); err != nil {
		return c, fmt.Errorf("decode conversation: %w", err)
	}
	return c, nil
}
