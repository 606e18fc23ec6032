package templates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tmeadows/templar/internal/assets"
	"github.com/tmeadows/templar/pkg/query"
	"github.com/tmeadows/templar/pkg/repository"
)

type repo struct {
	db              *sql.DB
	defaults        assets.System
	logger          *slog.Logger
	maxContentBytes int64
}

// New creates a template repository implementing the System interface.
// The asset system supplies canonical default content for reset operations.
func New(
	db *sql.DB,
	defaults assets.System,
	logger *slog.Logger,
	maxContentBytes int64,
) System {
	return &repo{
		db:              db,
		defaults:        defaults,
		logger:          logger.With("system", "templates"),
		maxContentBytes: maxContentBytes,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Active(ctx context.Context, owner string, kind Kind) (*TemplateVersion, error) {
	q, args := query.NewBuilder(projection).
		WhereEquals("Owner", owner).
		WhereEquals("Kind", kind).
		WhereTrue("Active").
		BuildSingleOrNull()

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTemplateVersion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return &t, nil
}

func (r *repo) FindVersion(ctx context.Context, owner string, kind Kind, version int) (*TemplateVersion, error) {
	q, args := query.NewBuilder(projection).
		WhereEquals("Owner", owner).
		WhereEquals("Kind", kind).
		WhereEquals("Version", version).
		BuildSingleOrNull()

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTemplateVersion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return &t, nil
}

func (r *repo) History(ctx context.Context, owner string, kind Kind) ([]TemplateVersion, error) {
	q, args := query.NewBuilder(projection, historySort).
		WhereEquals("Owner", owner).
		WhereEquals("Kind", kind).
		Build()

	versions, err := repository.QueryMany(ctx, r.db, q, args, scanTemplateVersion)
	if err != nil {
		return nil, fmt.Errorf("query template history: %w", err)
	}

	if len(versions) == 0 {
		return nil, ErrNotFound
	}
	return versions, nil
}

func (r *repo) List(ctx context.Context, owner string) (map[Kind][]TemplateVersion, error) {
	q, args := query.NewBuilder(projection, query.SortField{Field: "Kind"}, historySort).
		WhereEquals("Owner", owner).
		Build()

	versions, err := repository.QueryMany(ctx, r.db, q, args, scanTemplateVersion)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}

	grouped := make(map[Kind][]TemplateVersion)
	for _, v := range versions {
		grouped[v.Kind] = append(grouped[v.Kind], v)
	}
	return grouped, nil
}

func (r *repo) Upsert(ctx context.Context, cmd UpsertCommand) (*TemplateVersion, error) {
	if err := cmd.Validate(r.maxContentBytes); err != nil {
		return nil, err
	}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (TemplateVersion, error) {
		return insertNextVersion(ctx, tx, cmd)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info(
		"template version published",
		"owner", t.Owner,
		"kind", t.Kind,
		"version", t.Version,
	)
	return &t, nil
}

// insertNextVersion implements the deactivate-then-insert protocol: the
// new version number is max(existing)+1, the prior active row (if any) is
// deactivated, and the new row is inserted active. The partial unique
// index on (owner, kind) WHERE active is the authoritative race guard; a
// concurrent writer surfaces as a unique violation, not corrupted state.
func insertNextVersion(ctx context.Context, tx *sql.Tx, cmd UpsertCommand) (TemplateVersion, error) {
	var current int
	err := tx.QueryRowContext(
		ctx,
		"SELECT COALESCE(MAX(version), 0) FROM public.template_versions WHERE owner = $1 AND kind = $2",
		cmd.Owner, cmd.Kind,
	).Scan(&current)
	if err != nil {
		return TemplateVersion{}, fmt.Errorf("resolve next version: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		"UPDATE public.template_versions SET active = false, updated_at = now() WHERE owner = $1 AND kind = $2 AND active",
		cmd.Owner, cmd.Kind,
	)
	if err != nil {
		return TemplateVersion{}, fmt.Errorf("deactivate current version: %w", err)
	}

	insert := `
		INSERT INTO public.template_versions(owner, kind, content, version, active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING ` + returningColumns

	args := []any{cmd.Owner, cmd.Kind, cmd.Content, current + 1}
	return repository.QueryOne(ctx, tx, insert, args, scanTemplateVersion)
}

func (r *repo) Restore(ctx context.Context, owner string, kind Kind, version int) (*TemplateVersion, error) {
	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (TemplateVersion, error) {
		findQ, findArgs := query.NewBuilder(projection).
			WhereEquals("Owner", owner).
			WhereEquals("Kind", kind).
			WhereEquals("Version", version).
			BuildSingleOrNull()

		target, err := repository.QueryOne(ctx, tx, findQ, findArgs, scanTemplateVersion)
		if err != nil {
			return TemplateVersion{}, err
		}

		_, err = tx.ExecContext(
			ctx,
			"UPDATE public.template_versions SET active = false, updated_at = now() WHERE owner = $1 AND kind = $2 AND active",
			owner, kind,
		)
		if err != nil {
			return TemplateVersion{}, fmt.Errorf("deactivate current version: %w", err)
		}

		activate := `
			UPDATE public.template_versions
			SET active = true, updated_at = now()
			WHERE id = $1
			RETURNING ` + returningColumns

		return repository.QueryOne(ctx, tx, activate, []any{target.ID}, scanTemplateVersion)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info(
		"template version restored",
		"owner", t.Owner,
		"kind", t.Kind,
		"version", t.Version,
	)
	return &t, nil
}

func (r *repo) DeleteVersion(ctx context.Context, owner string, kind Kind, version int) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM public.template_versions WHERE owner = $1 AND kind = $2 AND version = $3",
			owner, kind, version,
		)
		return struct{}{}, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info("template version deleted", "owner", owner, "kind", kind, "version", version)
	return nil
}

func (r *repo) DeleteActive(ctx context.Context, owner string, kind Kind) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM public.template_versions WHERE owner = $1 AND kind = $2 AND active",
			owner, kind,
		)
		return struct{}{}, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info("active template version deleted", "owner", owner, "kind", kind)
	return nil
}

func (r *repo) DeleteAll(ctx context.Context, owner string, kind Kind) (int64, error) {
	count, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		return repository.ExecCount(
			ctx, tx,
			"DELETE FROM public.template_versions WHERE owner = $1 AND kind = $2",
			owner, kind,
		)
	})

	if err != nil {
		return 0, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	if count == 0 {
		return 0, ErrNotFound
	}

	r.logger.Info("template versions deleted", "owner", owner, "kind", kind, "count", count)
	return count, nil
}

func (r *repo) Default(ctx context.Context, kind Kind) (string, error) {
	if !kind.Valid() {
		return "", ErrInvalidKind
	}

	content, err := r.defaults.DefaultTemplate(ctx, string(kind))
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return "", ErrDefaultMissing
		}
		return "", fmt.Errorf("read default template: %w", err)
	}
	return content, nil
}

func (r *repo) ResetToDefault(ctx context.Context, owner string, kind Kind) (*TemplateVersion, error) {
	content, err := r.Default(ctx, kind)
	if err != nil {
		return nil, err
	}

	return r.Upsert(ctx, UpsertCommand{
		Owner:   owner,
		Kind:    kind,
		Content: content,
	})
}

// ResetAllOwners publishes the latest default content for kind to every
// distinct owner holding template rows. Each owner runs in its own
// transaction so one failure cannot abort the batch; outcomes aggregate
// into a BatchResult.
func (r *repo) ResetAllOwners(ctx context.Context, kind Kind) (*BatchResult, error) {
	content, err := r.Default(ctx, kind)
	if err != nil {
		return nil, err
	}

	owners, err := repository.QueryMany(
		ctx, r.db,
		"SELECT DISTINCT owner FROM public.template_versions ORDER BY owner",
		nil,
		func(s repository.Scanner) (string, error) {
			var owner string
			err := s.Scan(&owner)
			return owner, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query template owners: %w", err)
	}

	results := make([]OwnerResult, len(owners))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resetWorkerCount(len(owners)))

	for i, owner := range owners {
		g.Go(func() error {
			t, err := r.Upsert(gctx, UpsertCommand{
				Owner:   owner,
				Kind:    kind,
				Content: content,
			})
			if err != nil {
				results[i] = OwnerResult{Owner: owner, Error: err.Error()}
				return nil
			}
			results[i] = OwnerResult{Owner: owner, Template: t}
			return nil
		})
	}

	// Workers never return errors; failures land in their result slot.
	g.Wait()

	batch := &BatchResult{Results: results}
	for _, res := range results {
		if res.Error == "" {
			batch.SuccessCount++
		} else {
			batch.FailureCount++
		}
	}

	r.logger.Info(
		"bulk default reset complete",
		"kind", kind,
		"owners", len(owners),
		"succeeded", batch.SuccessCount,
		"failed", batch.FailureCount,
	)
	return batch, nil
}

func resetWorkerCount(ownerCount int) int {
	return max(min(runtime.NumCPU(), ownerCount), 1)
}
