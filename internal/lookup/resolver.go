package lookup

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/booktracer/internal/isbn"
)

// Resolver tries an ordered list of sources until one yields metadata. The
// active source set is fixed at construction for the life of the process;
// the startup prober decides whether the keyed source is included.
type Resolver struct {
	sources []Source
}

// NewResolver creates a resolver trying the given sources in order.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Lookup normalizes the raw identifier and queries each source in turn.
// Individual source failures are absorbed and logged; a nil, nil return
// means no source had a match. The only error is ErrInvalidISBN for input
// that cannot be normalized.
func (r *Resolver) Lookup(ctx context.Context, rawISBN string) (*Metadata, error) {
	canonical := isbn.Normalize(rawISBN)
	if canonical == "" {
		return nil, ErrInvalidISBN
	}

	for _, src := range r.sources {
		meta, err := src.Lookup(ctx, canonical)
		if err != nil {
			slog.Debug("Lookup source failed", "source", src.Name(), "isbn", canonical, "error", err)
			continue
		}
		if meta != nil {
			slog.Debug("Lookup source matched", "source", src.Name(), "isbn", canonical)
			return meta, nil
		}
		slog.Debug("Lookup source had no match", "source", src.Name(), "isbn", canonical)
	}

	return nil, nil
}
