package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/tmeadows/templar/pkg/storage"
)

type blobSystem struct {
	store  storage.System
	prefix string
	logger *slog.Logger
}

// NewBlobSystem creates an asset system reading from blob storage. Keys
// follow the same layout as the file system provider, optionally nested
// under a prefix.
func NewBlobSystem(store storage.System, prefix string, logger *slog.Logger) System {
	return &blobSystem{
		store:  store,
		prefix: prefix,
		logger: logger.With("system", "assets"),
	}
}

func (b *blobSystem) DefaultTemplate(ctx context.Context, kind string) (string, error) {
	data, err := b.read(ctx, path.Join(defaultsDir, kind+".txt"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (b *blobSystem) PromptShape(ctx context.Context) ([]ShapeMessage, error) {
	data, err := b.read(ctx, shapeAsset)
	if err != nil {
		return nil, err
	}
	return parseShape(data)
}

func (b *blobSystem) ProviderConfigs(ctx context.Context) (ProviderConfigs, error) {
	data, err := b.read(ctx, providersAsset)
	if err != nil {
		return nil, err
	}
	return parseProviders(data)
}

func (b *blobSystem) read(ctx context.Context, key string) ([]byte, error) {
	if b.prefix != "" {
		key = path.Join(b.prefix, key)
	}

	body, err := b.store.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download asset %s: %w", key, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", key, err)
	}
	return data, nil
}
