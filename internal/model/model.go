// Package model holds the catalog entities served by the search API.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingAttribute is returned when a document lacks a required attribute.
var ErrMissingAttribute = errors.New("missing required attribute")

// decode unmarshals a raw document into v and runs its validation.
func decode[T interface{ validate() error }](raw json.RawMessage, kind string) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", kind, err)
	}
	if err := v.validate(); err != nil {
		return v, fmt.Errorf("decode %s: %w", kind, err)
	}
	return v, nil
}

func missing(attr string) error {
	return fmt.Errorf("%w %q", ErrMissingAttribute, attr)
}
