// Package fields manages the custom extraction field definitions a labeling
// session is built around: named, typed slots a custom model will be trained
// to extract.
//
// Field keys are unique case-insensitively and trim-insensitively; every
// mutation enforces this. Definitions persist to a JSON config file in the
// trainer's field list format.
package fields

import (
	"fmt"
	"strings"
)

// FormatNotSpecified is the only field format this toolkit emits.
const FormatNotSpecified = "not-specified"

// Definition is one named, typed extraction field.
type Definition struct {
	Key    string `json:"fieldKey"`
	Type   string `json:"fieldType"`
	Format string `json:"fieldFormat"`
}

// Types lists the supported field value types.
var Types = []string{
	"string", "number", "integer", "date", "time", "phoneNumber",
	"currency", "address", "boolean", "selectionMark", "countryRegion",
	"signature", "array", "object", "voucher",
}

// ValidType reports whether t names a supported field type.
func ValidType(t string) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Set is the ordered collection of configured field definitions.
type Set struct {
	defs []Definition
}

// NewSet creates an empty field set.
func NewSet() *Set {
	return &Set{}
}

// Add appends a new field definition. The key is trimmed; it must be
// non-empty and must not conflict case-insensitively with an existing key.
func (s *Set) Add(key, fieldType string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("field key must not be empty")
	}
	if !ValidType(fieldType) {
		return fmt.Errorf("unknown field type %q", fieldType)
	}
	if s.contains(key) {
		return fmt.Errorf("field %q already exists", key)
	}
	s.defs = append(s.defs, Definition{
		Key:    key,
		Type:   fieldType,
		Format: FormatNotSpecified,
	})
	return nil
}

// Edit updates the key and type of an existing field. Renaming to a key that
// conflicts with a different field is rejected; a case-only rename of the
// same field is allowed.
func (s *Set) Edit(key, newKey, newType string) error {
	idx := s.index(key)
	if idx < 0 {
		return fmt.Errorf("field %q not found", key)
	}
	newKey = strings.TrimSpace(newKey)
	if newKey == "" {
		return fmt.Errorf("field key must not be empty")
	}
	if !ValidType(newType) {
		return fmt.Errorf("unknown field type %q", newType)
	}
	if other := s.index(newKey); other >= 0 && other != idx {
		return fmt.Errorf("field %q conflicts with an existing field", newKey)
	}
	format := s.defs[idx].Format
	if format == "" {
		format = FormatNotSpecified
	}
	s.defs[idx] = Definition{Key: newKey, Type: newType, Format: format}
	return nil
}

// Remove deletes a field by key.
func (s *Set) Remove(key string) error {
	idx := s.index(key)
	if idx < 0 {
		return fmt.Errorf("field %q not found", key)
	}
	s.defs = append(s.defs[:idx], s.defs[idx+1:]...)
	return nil
}

// Get returns the definition for key, matched case-insensitively.
func (s *Set) Get(key string) (Definition, bool) {
	idx := s.index(key)
	if idx < 0 {
		return Definition{}, false
	}
	return s.defs[idx], true
}

// List returns the definitions in configuration order.
func (s *Set) List() []Definition {
	out := make([]Definition, len(s.defs))
	copy(out, s.defs)
	return out
}

// Len returns the number of configured fields.
func (s *Set) Len() int {
	return len(s.defs)
}

func (s *Set) contains(key string) bool {
	return s.index(key) >= 0
}

func (s *Set) index(key string) int {
	needle := strings.ToLower(strings.TrimSpace(key))
	for i, def := range s.defs {
		if strings.ToLower(def.Key) == needle {
			return i
		}
	}
	return -1
}
