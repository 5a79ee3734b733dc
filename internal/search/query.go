package search

import "strings"

// NestedFields are sub-entity fields stored as arrays of objects. They need a
// nested query scoped to the parent path so matches stay within one element.
var NestedFields = map[string]struct{}{
	"actors.name":    {},
	"directors.name": {},
	"writers.name":   {},
}

// IsNested reports whether field lives inside a nested array.
func IsNested(field string) bool {
	_, ok := NestedFields[field]
	return ok
}

// nestedPath returns the array path that owns a nested field.
func nestedPath(field string) string {
	path, _, _ := strings.Cut(field, ".")
	return path
}

// MultiMatchQuery builds the free-text request body.
func MultiMatchQuery(query string, w Window) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"*"},
			},
		},
		"from": w.From,
		"size": w.Size,
	}
}

// FieldQuery builds the single-field request body: a nested match for nested
// fields, a fuzzy match for everything else.
func FieldQuery(field, query string, w Window) map[string]any {
	var q map[string]any
	if IsNested(field) {
		q = map[string]any{
			"nested": map[string]any{
				"path": nestedPath(field),
				"query": map[string]any{
					"match": map[string]any{field: query},
				},
			},
		}
	} else {
		q = map[string]any{
			"fuzzy": map[string]any{field: query},
		}
	}

	return map[string]any{
		"query": q,
		"from":  w.From,
		"size":  w.Size,
	}
}
