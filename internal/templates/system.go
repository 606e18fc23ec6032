package templates

import "context"

// System defines the public contract for template domain operations.
type System interface {
	Handler() *Handler

	// Active returns the single active version for an owner and kind.
	Active(ctx context.Context, owner string, kind Kind) (*TemplateVersion, error)
	// FindVersion returns one exact version for an owner and kind.
	FindVersion(ctx context.Context, owner string, kind Kind, version int) (*TemplateVersion, error)
	// History returns every version for an owner and kind, newest first.
	History(ctx context.Context, owner string, kind Kind) ([]TemplateVersion, error)
	// List returns all of an owner's versions grouped by kind, newest first
	// within each kind.
	List(ctx context.Context, owner string) (map[Kind][]TemplateVersion, error)

	// Upsert publishes new content as the next version for an owner and
	// kind, deactivating the prior active version in the same transaction.
	Upsert(ctx context.Context, cmd UpsertCommand) (*TemplateVersion, error)
	// Restore makes an existing version the active one without creating a
	// new version. Restoring the already-active version is a no-op.
	Restore(ctx context.Context, owner string, kind Kind, version int) (*TemplateVersion, error)

	DeleteVersion(ctx context.Context, owner string, kind Kind, version int) error
	DeleteActive(ctx context.Context, owner string, kind Kind) error
	// DeleteAll removes every version for an owner and kind, returning the
	// number of rows removed.
	DeleteAll(ctx context.Context, owner string, kind Kind) (int64, error)

	// Default returns the canonical default content for a kind from the
	// asset provider.
	Default(ctx context.Context, kind Kind) (string, error)
	// ResetToDefault publishes the canonical default content as a new
	// version for one owner.
	ResetToDefault(ctx context.Context, owner string, kind Kind) (*TemplateVersion, error)
	// ResetAllOwners applies ResetToDefault for every distinct owner
	// holding template rows, reporting per-owner outcomes instead of
	// aborting on the first failure.
	ResetAllOwners(ctx context.Context, kind Kind) (*BatchResult, error)
}
