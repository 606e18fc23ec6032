package assembly

import "context"

// System defines the public contract for prompt assembly.
type System interface {
	Handler() *Handler

	// Assemble renders the owner's active template (or the canonical
	// default) through the static prompt shape, substituting template
	// variables and attaching the resolved provider configuration.
	Assemble(ctx context.Context, cmd AssembleCommand) (*Assembled, error)
}
