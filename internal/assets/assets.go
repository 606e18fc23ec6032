package assets

import "context"

// ShapeMessage is one slot in the static prompt shape. The role determines
// how assembly fills the slot; content is the slot's default text.
type ShapeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProviderConfigs maps lowercase provider names to their model settings.
type ProviderConfigs map[string]map[string]any

// System supplies the static assets that back template defaults and
// prompt assembly: canonical default content per kind, the prompt message
// shape, and per-provider model configuration.
type System interface {
	// DefaultTemplate returns the canonical default content for a template
	// kind. Returns ErrNotFound when no default exists for the kind.
	DefaultTemplate(ctx context.Context, kind string) (string, error)
	// PromptShape returns the static message shape used to assemble prompts.
	PromptShape(ctx context.Context) ([]ShapeMessage, error)
	// ProviderConfigs returns model configuration keyed by provider name.
	ProviderConfigs(ctx context.Context) (ProviderConfigs, error)
}
