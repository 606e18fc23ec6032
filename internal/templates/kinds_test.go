package templates

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"conceptMentor", KindConceptMentor, false},
		{"assessmentPrompt", KindAssessmentPrompt, false},
		{"defaultTemplateValues", KindDefaultValues, false},
		{"ConceptMentor", "", true},
		{"unknown", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := ParseKind(tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidKind) {
				t.Errorf("ParseKind(%q) error = %v, want ErrInvalidKind", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestKindUnmarshalJSON(t *testing.T) {
	t.Run("accepts valid kind", func(t *testing.T) {
		var k Kind
		if err := json.Unmarshal([]byte(`"conceptMentor"`), &k); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if k != KindConceptMentor {
			t.Errorf("kind = %q, want %q", k, KindConceptMentor)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		var k Kind
		err := json.Unmarshal([]byte(`"unknownKind"`), &k)
		if !errors.Is(err, ErrInvalidKind) {
			t.Errorf("error = %v, want ErrInvalidKind", err)
		}
	})

	t.Run("rejects non-string", func(t *testing.T) {
		var k Kind
		if err := json.Unmarshal([]byte(`42`), &k); err == nil {
			t.Error("expected error for non-string kind")
		}
	})
}

func TestKinds(t *testing.T) {
	all := Kinds()
	if len(all) != 3 {
		t.Fatalf("len(Kinds()) = %d, want 3", len(all))
	}
	for _, k := range all {
		if !k.Valid() {
			t.Errorf("kind %q reported invalid", k)
		}
	}
}
