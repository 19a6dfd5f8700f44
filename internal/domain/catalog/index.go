package catalog

import (
	"fmt"
	"strings"
)

// IndexKind is the kind of key an index is built on
type IndexKind string

const (
	IndexKindAscending IndexKind = "asc"
	IndexKindText      IndexKind = "text"
)

// IndexKey is one field of an index declaration
type IndexKey struct {
	Field string
	Kind  IndexKind
}

// IndexSpec declares a persisted index on the games collection
type IndexSpec struct {
	Keys   []IndexKey
	Unique bool
}

// Name returns the name the store assigns by default, e.g. "platform_1_genre_1"
func (s IndexSpec) Name() string {
	parts := make([]string, 0, len(s.Keys)*2)
	for _, k := range s.Keys {
		parts = append(parts, k.Field)
		switch k.Kind {
		case IndexKindText:
			parts = append(parts, "text")
		default:
			parts = append(parts, "1")
		}
	}
	return strings.Join(parts, "_")
}

// Fields returns the indexed field names in declaration order
func (s IndexSpec) Fields() []string {
	fields := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		fields[i] = k.Field
	}
	return fields
}

// Describe returns a short human readable form of the declaration
func (s IndexSpec) Describe() string {
	kind := "ascending"
	if len(s.Keys) > 0 && s.Keys[0].Kind == IndexKindText {
		kind = "text"
	}
	desc := fmt.Sprintf("%s (%s", strings.Join(s.Fields(), ", "), kind)
	if s.Unique {
		desc += ", unique"
	}
	return desc + ")"
}

// Validate rejects empty or malformed declarations
func (s IndexSpec) Validate() error {
	if len(s.Keys) == 0 {
		return fmt.Errorf("index has no keys")
	}
	seen := make(map[string]bool, len(s.Keys))
	for _, k := range s.Keys {
		if k.Field == "" {
			return fmt.Errorf("index %s has an empty field name", s.Name())
		}
		if seen[k.Field] {
			return fmt.Errorf("index %s repeats field %s", s.Name(), k.Field)
		}
		seen[k.Field] = true
		if k.Kind != IndexKindAscending && k.Kind != IndexKindText {
			return fmt.Errorf("index %s: unknown kind %q for field %s", s.Name(), k.Kind, k.Field)
		}
	}
	if s.Unique && s.Keys[0].Kind == IndexKindText {
		return fmt.Errorf("index %s: text indexes cannot be unique", s.Name())
	}
	return nil
}

// GameIndexes returns the indexes of the games collection in declaration order
func GameIndexes() []IndexSpec {
	return []IndexSpec{
		{
			Keys:   []IndexKey{{Field: "sku", Kind: IndexKindAscending}},
			Unique: true,
		},
		{
			Keys: []IndexKey{
				{Field: "platform", Kind: IndexKindAscending},
				{Field: "genre", Kind: IndexKindAscending},
			},
		},
		{
			Keys: []IndexKey{{Field: "title", Kind: IndexKindText}},
		},
	}
}
