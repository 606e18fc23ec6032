package assembly

import (
	"time"

	"github.com/tmeadows/templar/internal/templates"
)

// Message is one turn of the assembled prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Source identifies where the assembled template content came from.
type Source string

const (
	// SourceDatabase indicates the owner's active template version was used.
	SourceDatabase Source = "database"
	// SourceDefault indicates the canonical default content was used.
	SourceDefault Source = "default"
)

// AssembleCommand carries the inputs for prompt assembly.
type AssembleCommand struct {
	Owner     string         `json:"owner"`
	Kind      templates.Kind `json:"kind"`
	Provider  string         `json:"provider"`
	UserInput string         `json:"userInput"`
}

// Validate checks assembly input. The variables kind holds substitution
// data, not prompt text, so it cannot be assembled directly.
func (c AssembleCommand) Validate() error {
	if c.Owner == "" {
		return ErrOwnerRequired
	}
	if !c.Kind.Valid() || c.Kind == templates.KindDefaultValues {
		return ErrInvalidPromptKind
	}
	return nil
}

// Assembled is a fully rendered prompt ready to send to a model provider.
type Assembled struct {
	Messages       []Message      `json:"messages"`
	TemplateSource Source         `json:"templateSource"`
	Provider       string         `json:"provider"`
	ProviderConfig map[string]any `json:"providerConfig"`
	AssembledAt    time.Time      `json:"assembledAt"`
}
