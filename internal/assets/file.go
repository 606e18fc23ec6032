package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
)

const (
	defaultsDir    = "defaults"
	shapeAsset     = "prompt_shape.json"
	providersAsset = "llm_providers.json"
)

type fileSystem struct {
	fsys   fs.FS
	logger *slog.Logger
}

// NewFileSystem creates an asset system reading from the given filesystem.
// Defaults live at defaults/<kind>.txt; the prompt shape and provider
// configuration are JSON documents at the filesystem root.
func NewFileSystem(fsys fs.FS, logger *slog.Logger) System {
	return &fileSystem{
		fsys:   fsys,
		logger: logger.With("system", "assets"),
	}
}

func (f *fileSystem) DefaultTemplate(ctx context.Context, kind string) (string, error) {
	data, err := fs.ReadFile(f.fsys, path.Join(defaultsDir, kind+".txt"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read default template %s: %w", kind, err)
	}

	return string(data), nil
}

func (f *fileSystem) PromptShape(ctx context.Context) ([]ShapeMessage, error) {
	data, err := fs.ReadFile(f.fsys, shapeAsset)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read prompt shape: %w", err)
	}

	return parseShape(data)
}

func (f *fileSystem) ProviderConfigs(ctx context.Context) (ProviderConfigs, error) {
	data, err := fs.ReadFile(f.fsys, providersAsset)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read provider configs: %w", err)
	}

	return parseProviders(data)
}

func parseShape(data []byte) ([]ShapeMessage, error) {
	var shape []ShapeMessage
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("parse prompt shape: %w", err)
	}
	if len(shape) == 0 {
		return nil, fmt.Errorf("prompt shape must contain at least one message")
	}
	return shape, nil
}

// parseProviders lowercases provider names so lookups are case-insensitive.
func parseProviders(data []byte) (ProviderConfigs, error) {
	var raw ProviderConfigs
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse provider configs: %w", err)
	}

	configs := make(ProviderConfigs, len(raw))
	for name, cfg := range raw {
		configs[strings.ToLower(name)] = cfg
	}
	return configs, nil
}
