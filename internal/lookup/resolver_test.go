package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource is a scripted Source for resolver tests.
type stubSource struct {
	name   string
	meta   *Metadata
	err    error
	called bool
}

func (s *stubSource) Name() string                   { return s.name }
func (s *stubSource) Ping(ctx context.Context) error { return nil }
func (s *stubSource) Lookup(ctx context.Context, isbn13 string) (*Metadata, error) {
	s.called = true
	return s.meta, s.err
}

func TestResolverFirstSourceWins(t *testing.T) {
	first := &stubSource{name: "A", meta: &Metadata{Title: "From A"}}
	second := &stubSource{name: "B", meta: &Metadata{Title: "From B"}}
	r := NewResolver(first, second)

	meta, err := r.Lookup(context.Background(), "9780618260300")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "From A", meta.Title)
	assert.False(t, second.called, "fallback must not run after a hit")
}

func TestResolverFallsThroughOnMiss(t *testing.T) {
	first := &stubSource{name: "A"}
	second := &stubSource{name: "B", meta: &Metadata{Title: "From B", Author: "Author B"}}
	r := NewResolver(first, second)

	meta, err := r.Lookup(context.Background(), "9780618260300")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "From B", meta.Title)
}

func TestResolverAbsorbsSourceErrors(t *testing.T) {
	first := &stubSource{name: "A", err: errors.New("connection refused")}
	second := &stubSource{name: "B", meta: &Metadata{Title: "From B"}}
	r := NewResolver(first, second)

	meta, err := r.Lookup(context.Background(), "9780618260300")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "From B", meta.Title)
}

func TestResolverTotalMissIsNotAnError(t *testing.T) {
	first := &stubSource{name: "A", err: errors.New("unreachable")}
	second := &stubSource{name: "B", err: errors.New("also unreachable")}
	r := NewResolver(first, second)

	meta, err := r.Lookup(context.Background(), "9780618260300")
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestResolverRejectsInvalidISBN(t *testing.T) {
	src := &stubSource{name: "A", meta: &Metadata{Title: "never"}}
	r := NewResolver(src)

	meta, err := r.Lookup(context.Background(), "12345")
	require.ErrorIs(t, err, ErrInvalidISBN)
	assert.Nil(t, meta)
	assert.False(t, src.called)
}

func TestResolverNormalizesBeforeQuerying(t *testing.T) {
	var gotISBN string
	src := &recordingSource{onLookup: func(isbn13 string) { gotISBN = isbn13 }}
	r := NewResolver(src)

	_, err := r.Lookup(context.Background(), "0-306-40615-2")
	require.NoError(t, err)
	assert.Equal(t, "9780306406157", gotISBN)
}

type recordingSource struct {
	onLookup func(isbn13 string)
}

func (s *recordingSource) Name() string                   { return "recorder" }
func (s *recordingSource) Ping(ctx context.Context) error { return nil }
func (s *recordingSource) Lookup(ctx context.Context, isbn13 string) (*Metadata, error) {
	s.onLookup(isbn13)
	return nil, nil
}
