// Package search reaches the full-text engine through three fixed query shapes.
package search

import (
	"context"
	"encoding/json"
	"fmt"
)

// Gateway runs point lookups and searches against an index and returns the
// raw source document of every hit, in engine order.
type Gateway interface {
	// GetByID returns zero or one document. A missing document is not an error.
	GetByID(ctx context.Context, index, id string) ([]json.RawMessage, error)

	// Search matches query across all indexed fields.
	Search(ctx context.Context, index, query string, w Window) ([]json.RawMessage, error)

	// SearchField matches query against a single field.
	SearchField(ctx context.Context, index, field, query string, w Window) ([]json.RawMessage, error)

	// Ping checks that the engine is reachable.
	Ping(ctx context.Context) error
}

// Window is the (from, size) slice of hits requested from the engine.
type Window struct {
	From int
	Size int
}

// NewWindow converts a 1-indexed page into an offset window.
// Callers guarantee page >= 1 and size >= 1.
func NewWindow(page, size int) Window {
	return Window{From: (page - 1) * size, Size: size}
}

// ResponseError is an error status reported by the engine.
type ResponseError struct {
	StatusCode int
	Type       string
	Reason     string
}

func (e *ResponseError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("search engine returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("search engine returned status %d: %s: %s", e.StatusCode, e.Type, e.Reason)
}

// IsBadRequest reports whether the engine rejected the query itself.
func (e *ResponseError) IsBadRequest() bool {
	return e.StatusCode == 400
}
