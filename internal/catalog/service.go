// Package catalog loads the embedded block samples and serves them by id.
package catalog

import (
	"context"
	"errors"

	"github.com/a-h/templ"

	"finitefield.org/hanko-blocks/internal/blocks"
)

var (
	// ErrNotFound is returned when no entry has the requested id.
	ErrNotFound = errors.New("catalog: entry not found")
	// ErrUnknownKind is returned when a document names a kind with no block.
	ErrUnknownKind = errors.New("catalog: unknown block kind")
	// ErrDuplicateID is returned when two documents share an id.
	ErrDuplicateID = errors.New("catalog: duplicate id")
)

// Service exposes the block catalog to the HTTP server and the CLI.
type Service interface {
	// List returns entries matching filter, ordered by category then id.
	List(ctx context.Context, filter Filter) ([]Entry, error)

	// Get returns a single entry.
	Get(ctx context.Context, id string) (Entry, error)

	// Render returns the block markup for id as a component.
	Render(ctx context.Context, id string) (templ.Component, error)

	// Categories returns the distinct categories in display order.
	Categories(ctx context.Context) ([]string, error)
}

// Entry is one sample block instance.
type Entry struct {
	ID          string
	Kind        blocks.Kind
	Title       string
	Category    string
	Description string
	Props       blocks.Props
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Category string
	Kind     blocks.Kind
	Query    string
}
