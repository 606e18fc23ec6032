package chats

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}

	for _, input := range []string{"", "Completed", "deleted"} {
		if _, err := ParseStatus(input); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidStatus", input, err)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		status    Status
		live      bool
		terminal  bool
		creatable bool
	}{
		{StatusIncomplete, true, false, true},
		{StatusPaused, true, false, true},
		{StatusStopped, true, true, true},
		{StatusCompleted, false, true, true},
		{StatusArchived, false, false, false},
	}

	for _, tc := range tests {
		if got := tc.status.Live(); got != tc.live {
			t.Errorf("%s.Live() = %v, want %v", tc.status, got, tc.live)
		}
		if got := tc.status.Terminal(); got != tc.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tc.status, got, tc.terminal)
		}
		if got := tc.status.Creatable(); got != tc.creatable {
			t.Errorf("%s.Creatable() = %v, want %v", tc.status, got, tc.creatable)
		}
	}
}

func TestStatusUnmarshalJSON(t *testing.T) {
	t.Run("accepts valid status", func(t *testing.T) {
		var s Status
		if err := json.Unmarshal([]byte(`"paused"`), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != StatusPaused {
			t.Errorf("status = %q, want paused", s)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		var s Status
		if err := json.Unmarshal([]byte(`"running"`), &s); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("error = %v, want ErrInvalidStatus", err)
		}
	})
}
