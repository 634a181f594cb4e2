// Package lookup resolves book metadata for an ISBN against external
// bibliographic services, trying an ordered list of sources with fallback.
package lookup

import (
	"context"
	"errors"
)

// Metadata is the title/author pair a source resolved for an ISBN. Author
// may be empty; not every source knows it.
type Metadata struct {
	Title  string
	Author string
}

// Source is one external bibliographic lookup service.
type Source interface {
	// Name returns the human-readable name of the source.
	Name() string

	// Ping tests the connection to the source and returns an error if it
	// cannot be reached for whatever reason.
	Ping(ctx context.Context) error

	// Lookup retrieves metadata for a canonical 13-digit ISBN.
	// Returns nil, nil if the source has no match (allows the next source
	// to try). Returns nil, error only for transport-level failures.
	Lookup(ctx context.Context, isbn13 string) (*Metadata, error)
}

// ErrInvalidISBN is returned when the input cannot be normalized into a
// canonical 13-digit ISBN.
var ErrInvalidISBN = errors.New("invalid ISBN")
