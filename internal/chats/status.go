package chats

import (
	"encoding/json"
	"slices"
)

// Status identifies a chat session's lifecycle state.
type Status string

// Valid session statuses.
const (
	StatusIncomplete Status = "incomplete"
	StatusPaused     Status = "paused"
	StatusStopped    Status = "stopped"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

var statuses = []Status{
	StatusIncomplete,
	StatusPaused,
	StatusStopped,
	StatusCompleted,
	StatusArchived,
}

// liveStatuses are the states eligible to be a user's current session.
var liveStatuses = []Status{
	StatusIncomplete,
	StatusPaused,
	StatusStopped,
}

// Statuses returns the list of valid session statuses.
func Statuses() []Status {
	return statuses
}

// Valid reports whether the status is a known session status.
func (s Status) Valid() bool {
	return slices.Contains(statuses, s)
}

// Live reports whether a session in this status can still be resumed or
// considered current.
func (s Status) Live() bool {
	return slices.Contains(liveStatuses, s)
}

// Terminal reports whether a save in this status concludes the user's
// current run. Saving a terminal session archives the user's other live
// sessions and signals that the next session should start fresh.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusStopped
}

// Creatable reports whether a new session may be created directly in this
// status. Sessions only become archived through terminal transitions.
func (s Status) Creatable() bool {
	return s.Valid() && s != StatusArchived
}

// UnmarshalJSON validates that the decoded string is a known status value.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Status(raw)
	if !v.Valid() {
		return ErrInvalidStatus
	}
	*s = v
	return nil
}

// ParseStatus validates a string as a known session status.
// Returns ErrInvalidStatus if the value is not recognized.
func ParseStatus(s string) (Status, error) {
	v := Status(s)
	if !v.Valid() {
		return "", ErrInvalidStatus
	}
	return v, nil
}
