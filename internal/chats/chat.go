package chats

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is the ordered message history of a session, persisted as a
// single JSON document.
type Conversation []Message

// Validate checks that the conversation is non-empty and every message
// carries a role.
func (c Conversation) Validate() error {
	if len(c) == 0 {
		return ErrInvalidConversation
	}
	for _, m := range c {
		if m.Role == "" {
			return ErrInvalidConversation
		}
	}
	return nil
}

// ChatSession represents a persisted chat session.
type ChatSession struct {
	ID           uuid.UUID    `json:"id"`
	UserID       string       `json:"userId"`
	Conversation Conversation `json:"conversation"`
	Status       Status       `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// SaveCommand carries the fields needed to create a session.
type SaveCommand struct {
	UserID       string       `json:"userId"`
	Conversation Conversation `json:"conversation"`
	Status       Status       `json:"status"`
}

// normalize fills defaults before validation. An omitted status means a
// session in progress.
func (c *SaveCommand) normalize() {
	if c.Status == "" {
		c.Status = StatusIncomplete
	}
}

// Validate checks session creation input. Archived is rejected as a
// creation status.
func (c SaveCommand) Validate() error {
	if c.UserID == "" {
		return ErrUserRequired
	}
	if err := c.Conversation.Validate(); err != nil {
		return err
	}
	if !c.Status.Creatable() {
		return ErrInvalidStatus
	}
	return nil
}

// UpdateCommand carries the fields needed to update an existing session.
type UpdateCommand struct {
	Conversation Conversation `json:"conversation"`
	Status       Status       `json:"status"`
}

// normalize fills defaults before validation. An omitted status means a
// session in progress.
func (c *UpdateCommand) normalize() {
	if c.Status == "" {
		c.Status = StatusIncomplete
	}
}

// Validate checks session update input.
func (c UpdateCommand) Validate() error {
	if err := c.Conversation.Validate(); err != nil {
		return err
	}
	if !c.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// SaveResult pairs a saved session with the fresh-start signal derived
// from its status.
type SaveResult struct {
	Session          *ChatSession `json:"session"`
	ShouldStartFresh bool         `json:"shouldStartFresh"`
}

// Session type values reported by SessionState.
const (
	SessionResume = "resume"
	SessionFresh  = "fresh"
)

// SessionState describes whether a user has a session worth resuming.
type SessionState struct {
	SessionType      string       `json:"sessionType"`
	HasActiveSession bool         `json:"hasActiveSession"`
	Chat             *ChatSession `json:"chat,omitempty"`
	PriorSessions    int          `json:"priorSessions"`
}

// StatusCounts aggregates a user's sessions by status. Active counts the
// live statuses; Total counts everything.
type StatusCounts struct {
	Incomplete int `json:"incomplete"`
	Paused     int `json:"paused"`
	Stopped    int `json:"stopped"`
	Completed  int `json:"completed"`
	Archived   int `json:"archived"`
	Active     int `json:"active"`
	Total      int `json:"total"`
}

// DeletedChat identifies a session removed by Delete.
type DeletedChat struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"userId"`
	Status Status    `json:"status"`
}
