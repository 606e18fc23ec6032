package templates

import (
	"encoding/json"
	"slices"
)

// Kind identifies which template a version belongs to.
type Kind string

// Valid template kinds.
const (
	KindConceptMentor    Kind = "conceptMentor"
	KindAssessmentPrompt Kind = "assessmentPrompt"
	KindDefaultValues    Kind = "defaultTemplateValues"
)

var kinds = []Kind{
	KindConceptMentor,
	KindAssessmentPrompt,
	KindDefaultValues,
}

// Kinds returns the list of valid template kinds.
func Kinds() []Kind {
	return kinds
}

// Valid reports whether the kind is a known template kind.
func (k Kind) Valid() bool {
	return slices.Contains(kinds, k)
}

// UnmarshalJSON validates that the decoded string is a known kind value.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Kind(raw)
	if !v.Valid() {
		return ErrInvalidKind
	}
	*k = v
	return nil
}

// ParseKind validates a string as a known template kind.
// Returns ErrInvalidKind if the value is not recognized.
func ParseKind(s string) (Kind, error) {
	v := Kind(s)
	if !v.Valid() {
		return "", ErrInvalidKind
	}
	return v, nil
}
