package assembly

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/tmeadows/templar/internal/assets"
	"github.com/tmeadows/templar/internal/templates"
)

const defaultProvider = "default"

// variablePattern matches {{name}} substitution markers.
var variablePattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

type service struct {
	templates templates.System
	assets    assets.System
	logger    *slog.Logger
}

// New creates an assembly service implementing the System interface.
func New(tmpl templates.System, ast assets.System, logger *slog.Logger) System {
	return &service{
		templates: tmpl,
		assets:    ast,
		logger:    logger.With("system", "assembly"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Assemble(ctx context.Context, cmd AssembleCommand) (*Assembled, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	content, source, err := s.resolveContent(ctx, cmd.Owner, cmd.Kind)
	if err != nil {
		return nil, err
	}

	vars, err := s.resolveVariables(ctx, cmd.Owner)
	if err != nil {
		return nil, err
	}

	shape, err := s.assets.PromptShape(ctx)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return nil, ErrShapeUnavailable
		}
		return nil, fmt.Errorf("load prompt shape: %w", err)
	}

	provider, config, err := s.resolveProvider(ctx, cmd.Provider)
	if err != nil {
		return nil, err
	}

	rendered := render(content, vars)

	messages := make([]Message, len(shape))
	for i, slot := range shape {
		msg := Message{Role: slot.Role, Content: slot.Content}
		switch slot.Role {
		case "system":
			msg.Content = rendered
		case "user":
			msg.Content = cmd.UserInput
		}
		messages[i] = msg
	}

	s.logger.Info(
		"prompt assembled",
		"owner", cmd.Owner,
		"kind", cmd.Kind,
		"source", source,
		"provider", provider,
	)

	return &Assembled{
		Messages:       messages,
		TemplateSource: source,
		Provider:       provider,
		ProviderConfig: config,
		AssembledAt:    time.Now().UTC(),
	}, nil
}

// resolveContent prefers the owner's active version and falls back to the
// canonical default when no version exists.
func (s *service) resolveContent(ctx context.Context, owner string, kind templates.Kind) (string, Source, error) {
	active, err := s.templates.Active(ctx, owner, kind)
	if err == nil {
		return active.Content, SourceDatabase, nil
	}
	if !errors.Is(err, templates.ErrNotFound) {
		return "", "", fmt.Errorf("load active template: %w", err)
	}

	content, err := s.templates.Default(ctx, kind)
	if err != nil {
		if errors.Is(err, templates.ErrDefaultMissing) {
			return "", "", ErrTemplateUnavailable
		}
		return "", "", fmt.Errorf("load default template: %w", err)
	}
	return content, SourceDefault, nil
}

// resolveVariables loads substitution values from the owner's active
// variables row, falling back to the canonical default. Missing variables
// are not an error; assembly proceeds with an empty set.
func (s *service) resolveVariables(ctx context.Context, owner string) (map[string]any, error) {
	raw, err := s.variableContent(ctx, owner)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return map[string]any{}, nil
	}

	var vars map[string]any
	if err := json.Unmarshal([]byte(raw), &vars); err != nil {
		return nil, ErrInvalidVariables
	}
	return vars, nil
}

func (s *service) variableContent(ctx context.Context, owner string) (string, error) {
	active, err := s.templates.Active(ctx, owner, templates.KindDefaultValues)
	if err == nil {
		return active.Content, nil
	}
	if !errors.Is(err, templates.ErrNotFound) {
		return "", fmt.Errorf("load template variables: %w", err)
	}

	content, err := s.templates.Default(ctx, templates.KindDefaultValues)
	if err != nil {
		if errors.Is(err, templates.ErrDefaultMissing) {
			return "", nil
		}
		return "", fmt.Errorf("load default variables: %w", err)
	}
	return content, nil
}

// resolveProvider looks up the requested provider case-insensitively,
// falling back to the default provider configuration.
func (s *service) resolveProvider(ctx context.Context, requested string) (string, map[string]any, error) {
	configs, err := s.assets.ProviderConfigs(ctx)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return "", nil, ErrProvidersUnavailable
		}
		return "", nil, fmt.Errorf("load provider configs: %w", err)
	}

	name := strings.ToLower(requested)
	if name == "" {
		name = defaultProvider
	}

	if config, ok := configs[name]; ok {
		return name, config, nil
	}
	if config, ok := configs[defaultProvider]; ok {
		return defaultProvider, config, nil
	}
	return "", nil, ErrProviderUnknown
}

// render substitutes {{name}} markers with their variable values.
// Unknown markers render as empty strings.
func render(content string, vars map[string]any) string {
	return variablePattern.ReplaceAllStringFunc(content, func(match string) string {
		name := variablePattern.FindStringSubmatch(match)[1]
		value, ok := vars[name]
		if !ok || value == nil {
			return ""
		}
		if s, ok := value.(string); ok {
			return s
		}
		return fmt.Sprint(value)
	})
}
