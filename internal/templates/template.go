// Package templates implements the versioned prompt-template domain for
// templar. It provides types, data access, and HTTP handlers for managing
// template versions per (owner, kind), where exactly one version per pair
// may be active at a time.
package templates

import (
	"time"

	"github.com/google/uuid"
)

// TemplateVersion represents one immutable version of an owner's template
// content for a given kind. Rows are never edited in place; superseding
// content inserts a new version and flips the active flag.
type TemplateVersion struct {
	ID        uuid.UUID `json:"id"`
	Owner     string    `json:"owner"`
	Kind      Kind      `json:"kind"`
	Content   string    `json:"content"`
	Version   int       `json:"version"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertCommand carries the data needed to publish a new template version.
type UpsertCommand struct {
	Owner   string `json:"owner"`
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
}

// Validate checks the command against input constraints before any storage
// access. maxContentBytes bounds the template body size.
func (c UpsertCommand) Validate(maxContentBytes int64) error {
	if c.Owner == "" {
		return ErrOwnerRequired
	}
	if !c.Kind.Valid() {
		return ErrInvalidKind
	}
	if c.Content == "" {
		return ErrEmptyContent
	}
	if int64(len(c.Content)) > maxContentBytes {
		return ErrContentTooLarge
	}
	return nil
}

// OwnerResult reports the outcome of a single owner within a bulk reset.
// On success, Template is populated and Error is empty.
type OwnerResult struct {
	Owner    string           `json:"owner"`
	Template *TemplateVersion `json:"template,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// BatchResult aggregates per-owner outcomes of a bulk default reset.
// A batch with failures still reports overall success; callers inspect
// FailureCount and Results to identify the owners that failed.
type BatchResult struct {
	SuccessCount int           `json:"success_count"`
	FailureCount int           `json:"failure_count"`
	Results      []OwnerResult `json:"results"`
}
