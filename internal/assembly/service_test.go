package assembly_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/tmeadows/templar/internal/assembly"
	"github.com/tmeadows/templar/internal/assets"
	"github.com/tmeadows/templar/internal/templates"
)

// fakeTemplates serves active content and defaults from in-memory maps.
type fakeTemplates struct {
	templates.System
	active   map[string]string
	defaults map[templates.Kind]string
}

func (f *fakeTemplates) Active(_ context.Context, owner string, kind templates.Kind) (*templates.TemplateVersion, error) {
	content, ok := f.active[owner+"/"+string(kind)]
	if !ok {
		return nil, templates.ErrNotFound
	}
	return &templates.TemplateVersion{
		Owner:   owner,
		Kind:    kind,
		Content: content,
		Version: 1,
		Active:  true,
	}, nil
}

func (f *fakeTemplates) Default(_ context.Context, kind templates.Kind) (string, error) {
	content, ok := f.defaults[kind]
	if !ok {
		return "", templates.ErrDefaultMissing
	}
	return content, nil
}

type fakeAssets struct {
	shape     []assets.ShapeMessage
	providers assets.ProviderConfigs
}

func (f *fakeAssets) DefaultTemplate(_ context.Context, kind string) (string, error) {
	return "", assets.ErrNotFound
}

func (f *fakeAssets) PromptShape(_ context.Context) ([]assets.ShapeMessage, error) {
	if f.shape == nil {
		return nil, assets.ErrNotFound
	}
	return f.shape, nil
}

func (f *fakeAssets) ProviderConfigs(_ context.Context) (assets.ProviderConfigs, error) {
	if f.providers == nil {
		return nil, assets.ErrNotFound
	}
	return f.providers, nil
}

func defaultShape() []assets.ShapeMessage {
	return []assets.ShapeMessage{
		{Role: "system", Content: ""},
		{Role: "user", Content: ""},
	}
}

func defaultProviders() assets.ProviderConfigs {
	return assets.ProviderConfigs{
		"default": {"model": "base-model"},
		"openai":  {"model": "gpt-4o"},
	}
}

func newService(tmpl *fakeTemplates, ast *fakeAssets) assembly.System {
	return assembly.New(tmpl, ast, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAssembleSubstitution(t *testing.T) {
	tmpl := &fakeTemplates{
		active: map[string]string{
			"course-101/conceptMentor":         "Mentor {{studentName}} on {{conceptName}} for {{minutes}} minutes. Missing: [{{unknown}}]",
			"course-101/defaultTemplateValues": `{"studentName":"Ada","conceptName":"recursion","minutes":15}`,
		},
	}
	svc := newService(tmpl, &fakeAssets{shape: defaultShape(), providers: defaultProviders()})

	result, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
		Owner:     "course-101",
		Kind:      templates.KindConceptMentor,
		UserInput: "Why does the base case matter?",
	})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	if result.TemplateSource != assembly.SourceDatabase {
		t.Errorf("source = %q, want database", result.TemplateSource)
	}
	if len(result.Messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(result.Messages))
	}

	want := "Mentor Ada on recursion for 15 minutes. Missing: []"
	if result.Messages[0].Content != want {
		t.Errorf("system content = %q, want %q", result.Messages[0].Content, want)
	}
	if result.Messages[1].Content != "Why does the base case matter?" {
		t.Errorf("user content = %q, want verbatim input", result.Messages[1].Content)
	}
}

func TestAssembleContentFallback(t *testing.T) {
	t.Run("falls back to default content", func(t *testing.T) {
		tmpl := &fakeTemplates{
			active: map[string]string{},
			defaults: map[templates.Kind]string{
				templates.KindConceptMentor: "Default mentor for {{conceptName}}.",
			},
		}
		svc := newService(tmpl, &fakeAssets{shape: defaultShape(), providers: defaultProviders()})

		result, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner: "course-101",
			Kind:  templates.KindConceptMentor,
		})
		if err != nil {
			t.Fatalf("Assemble() error: %v", err)
		}

		if result.TemplateSource != assembly.SourceDefault {
			t.Errorf("source = %q, want default", result.TemplateSource)
		}
		if result.Messages[0].Content != "Default mentor for ." {
			t.Errorf("system content = %q", result.Messages[0].Content)
		}
	})

	t.Run("nothing available maps to not found", func(t *testing.T) {
		tmpl := &fakeTemplates{active: map[string]string{}, defaults: map[templates.Kind]string{}}
		svc := newService(tmpl, &fakeAssets{shape: defaultShape(), providers: defaultProviders()})

		_, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner: "course-101",
			Kind:  templates.KindConceptMentor,
		})
		if !errors.Is(err, assembly.ErrTemplateUnavailable) {
			t.Errorf("error = %v, want ErrTemplateUnavailable", err)
		}
	})
}

func TestAssembleVariables(t *testing.T) {
	t.Run("missing variables assemble with empty set", func(t *testing.T) {
		tmpl := &fakeTemplates{
			active: map[string]string{
				"course-101/conceptMentor": "Hello {{studentName}}",
			},
			defaults: map[templates.Kind]string{},
		}
		svc := newService(tmpl, &fakeAssets{shape: defaultShape(), providers: defaultProviders()})

		result, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner: "course-101",
			Kind:  templates.KindConceptMentor,
		})
		if err != nil {
			t.Fatalf("Assemble() error: %v", err)
		}
		if result.Messages[0].Content != "Hello " {
			t.Errorf("system content = %q", result.Messages[0].Content)
		}
	})

	t.Run("invalid variable JSON is rejected", func(t *testing.T) {
		tmpl := &fakeTemplates{
			active: map[string]string{
				"course-101/conceptMentor":         "Hello {{studentName}}",
				"course-101/defaultTemplateValues": "not json",
			},
		}
		svc := newService(tmpl, &fakeAssets{shape: defaultShape(), providers: defaultProviders()})

		_, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner: "course-101",
			Kind:  templates.KindConceptMentor,
		})
		if !errors.Is(err, assembly.ErrInvalidVariables) {
			t.Errorf("error = %v, want ErrInvalidVariables", err)
		}
	})

	t.Run("default variables fill in when owner has none", func(t *testing.T) {
		tmpl := &fakeTemplates{
			active: map[string]string{
				"course-101/conceptMentor": "Hello {{studentName}}",
			},
			defaults: map[templates.Kind]string{
				templates.KindDefaultValues: `{"studentName":"the student"}`,
			},
		}
		svc := newService(tmpl, &fakeAssets{shape: defaultShape(), providers: defaultProviders()})

		result, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner: "course-101",
			Kind:  templates.KindConceptMentor,
		})
		if err != nil {
			t.Fatalf("Assemble() error: %v", err)
		}
		if result.Messages[0].Content != "Hello the student" {
			t.Errorf("system content = %q", result.Messages[0].Content)
		}
	})
}

func TestAssembleProviderSelection(t *testing.T) {
	tmpl := &fakeTemplates{
		active: map[string]string{"course-101/conceptMentor": "content"},
	}

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		svc := newService(tmpl, &fakeAssets{shape: defaultShape(), providers: defaultProviders()})

		result, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner:    "course-101",
			Kind:     templates.KindConceptMentor,
			Provider: "OpenAI",
		})
		if err != nil {
			t.Fatalf("Assemble() error: %v", err)
		}
		if result.Provider != "openai" {
			t.Errorf("provider = %q, want openai", result.Provider)
		}
		if result.ProviderConfig["model"] != "gpt-4o" {
			t.Errorf("model = %v", result.ProviderConfig["model"])
		}
	})

	t.Run("unknown provider falls back to default", func(t *testing.T) {
		svc := newService(tmpl, &fakeAssets{shape: defaultShape(), providers: defaultProviders()})

		result, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner:    "course-101",
			Kind:     templates.KindConceptMentor,
			Provider: "anthropic",
		})
		if err != nil {
			t.Fatalf("Assemble() error: %v", err)
		}
		if result.Provider != "default" {
			t.Errorf("provider = %q, want default", result.Provider)
		}
	})

	t.Run("no match and no default fails", func(t *testing.T) {
		svc := newService(tmpl, &fakeAssets{
			shape:     defaultShape(),
			providers: assets.ProviderConfigs{"openai": {"model": "gpt-4o"}},
		})

		_, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner:    "course-101",
			Kind:     templates.KindConceptMentor,
			Provider: "anthropic",
		})
		if !errors.Is(err, assembly.ErrProviderUnknown) {
			t.Errorf("error = %v, want ErrProviderUnknown", err)
		}
	})

	t.Run("missing provider configuration file", func(t *testing.T) {
		svc := newService(tmpl, &fakeAssets{shape: defaultShape()})

		_, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner: "course-101",
			Kind:  templates.KindConceptMentor,
		})
		if !errors.Is(err, assembly.ErrProvidersUnavailable) {
			t.Errorf("error = %v, want ErrProvidersUnavailable", err)
		}
	})
}

func TestAssembleMissingShape(t *testing.T) {
	tmpl := &fakeTemplates{
		active: map[string]string{"course-101/conceptMentor": "content"},
	}
	svc := newService(tmpl, &fakeAssets{providers: defaultProviders()})

	_, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
		Owner: "course-101",
		Kind:  templates.KindConceptMentor,
	})
	if !errors.Is(err, assembly.ErrShapeUnavailable) {
		t.Errorf("error = %v, want ErrShapeUnavailable", err)
	}
}

func TestAssembleValidation(t *testing.T) {
	tmpl := &fakeTemplates{active: map[string]string{}}
	svc := newService(tmpl, &fakeAssets{shape: defaultShape(), providers: defaultProviders()})

	t.Run("requires owner", func(t *testing.T) {
		_, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Kind: templates.KindConceptMentor,
		})
		if !errors.Is(err, assembly.ErrOwnerRequired) {
			t.Errorf("error = %v, want ErrOwnerRequired", err)
		}
	})

	t.Run("rejects the variables kind", func(t *testing.T) {
		_, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner: "course-101",
			Kind:  templates.KindDefaultValues,
		})
		if !errors.Is(err, assembly.ErrInvalidPromptKind) {
			t.Errorf("error = %v, want ErrInvalidPromptKind", err)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
			Owner: "course-101",
			Kind:  "bogus",
		})
		if !errors.Is(err, assembly.ErrInvalidPromptKind) {
			t.Errorf("error = %v, want ErrInvalidPromptKind", err)
		}
	})
}

func TestAssembleShapePassthrough(t *testing.T) {
	tmpl := &fakeTemplates{
		active: map[string]string{"course-101/conceptMentor": "system text"},
	}
	ast := &fakeAssets{
		shape: []assets.ShapeMessage{
			{Role: "system", Content: ""},
			{Role: "assistant", Content: "I am ready to help."},
			{Role: "user", Content: ""},
		},
		providers: defaultProviders(),
	}
	svc := newService(tmpl, ast)

	result, err := svc.Assemble(context.Background(), assembly.AssembleCommand{
		Owner:     "course-101",
		Kind:      templates.KindConceptMentor,
		UserInput: "go",
	})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	if len(result.Messages) != 3 {
		t.Fatalf("len(messages) = %d, want 3", len(result.Messages))
	}
	if result.Messages[1].Content != "I am ready to help." {
		t.Errorf("assistant slot = %q, want passthrough", result.Messages[1].Content)
	}
}
