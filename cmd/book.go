package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/booktracer/internal/config"
	"github.com/lepinkainen/booktracer/internal/isbn"
	"github.com/lepinkainen/booktracer/internal/lookup"
	"github.com/lepinkainen/booktracer/internal/store"
	"github.com/lepinkainen/booktracer/internal/tui"
)

// errAborted signals that the user backed out at a decision point.
var errAborted = errors.New("aborted")

// AddCmd represents the add command
type AddCmd struct {
	Title  string `help:"Book title (required unless --fetch finds one)"`
	Author string `help:"Author, may be left empty"`
	Pages  int    `help:"Total pages, 0 means unknown length"`
	Page   int    `help:"Current page"`
	Status string `help:"Status (to-read/reading/finished); derived from the page position when omitted"`
	ISBN   string `help:"ISBN-10 or ISBN-13"`
	Fetch  bool   `help:"Fetch title/author from the lookup sources by ISBN"`
}

func (a *AddCmd) Run() error {
	b := store.Book{
		Title:  a.Title,
		Author: a.Author,
	}

	if a.Pages < 0 || a.Page < 0 {
		return fmt.Errorf("page counts must not be negative")
	}
	if a.Pages > 0 && a.Page > a.Pages {
		return fmt.Errorf("current page %d is past the last page %d", a.Page, a.Pages)
	}
	b.TotalPages = a.Pages
	b.CurrentPage = a.Page

	if a.ISBN != "" {
		canonical := isbn.Normalize(a.ISBN)
		if canonical == "" {
			return fmt.Errorf("invalid ISBN %q", a.ISBN)
		}
		b.ISBN = canonical
	}

	if a.Fetch {
		if b.ISBN == "" {
			return fmt.Errorf("--fetch requires --isbn")
		}

		ctx := context.Background()
		resolver, err := buildResolver(ctx)
		if err != nil {
			return err
		}

		meta, err := resolver.Lookup(ctx, b.ISBN)
		if err != nil {
			return err
		}
		if meta == nil {
			slog.Info("No metadata found, using the provided fields", "isbn", b.ISBN)
		} else {
			slog.Info("Metadata found", "title", meta.Title, "author", meta.Author)
			if b.Title == "" {
				b.Title = meta.Title
			}
			if b.Author == "" {
				b.Author = meta.Author
			}
		}
	}

	if b.Title == "" {
		return fmt.Errorf("a title is required (pass --title or --fetch with a known ISBN)")
	}

	if a.Status != "" {
		st, ok := store.ParseStatus(a.Status)
		if !ok {
			return fmt.Errorf("unknown status %q", a.Status)
		}
		b.Status = st
	} else {
		b.Status = store.DeriveStatus(b.CurrentPage, b.TotalPages)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	id, err := s.Add(b)
	if err != nil {
		return err
	}

	slog.Info("Added book", "id", id, "title", b.Title, "status", b.Status.String())
	return nil
}

// LookupCmd represents the lookup command
type LookupCmd struct {
	ISBN string `arg:"" help:"ISBN-10 or ISBN-13 to resolve"`
}

func (l *LookupCmd) Run() error {
	ctx := context.Background()

	resolver, err := buildResolver(ctx)
	if err != nil {
		return err
	}

	meta, err := resolver.Lookup(ctx, l.ISBN)
	if err != nil {
		return err
	}
	if meta == nil {
		// A total miss is an answer, not a failure.
		slog.Info("No metadata found", "isbn", l.ISBN)
		return nil
	}

	title := meta.Title
	if title == "" {
		title = "(unknown)"
	}
	author := meta.Author
	if author == "" {
		author = "(unknown)"
	}
	slog.Info("Metadata found", "title", title, "author", author)
	return nil
}

// UpdateCmd represents the update command
type UpdateCmd struct {
	ID   int64 `arg:"" help:"Book id"`
	Page int   `required:"" help:"New current page"`
}

func (u *UpdateCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	b, err := s.Get(u.ID)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("book %d not found", u.ID)
	}

	if u.Page < 0 {
		return fmt.Errorf("page must not be negative")
	}
	if b.TotalPages > 0 && u.Page > b.TotalPages {
		return fmt.Errorf("page %d is past the last page %d", u.Page, b.TotalPages)
	}

	status := store.DeriveStatus(u.Page, b.TotalPages)
	if err := s.UpdateProgress(u.ID, u.Page, status); err != nil {
		return err
	}

	slog.Info("Updated progress", "id", u.ID, "page", u.Page, "status", status.String())
	return nil
}

// MarkCmd represents the mark command
type MarkCmd struct {
	ID     int64  `arg:"" help:"Book id"`
	Status string `arg:"" help:"New status (to-read/reading/finished)"`
}

func (m *MarkCmd) Run() error {
	st, ok := store.ParseStatus(m.Status)
	if !ok {
		return fmt.Errorf("unknown status %q", m.Status)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.UpdateStatus(m.ID, st); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("book %d not found", m.ID)
		}
		return err
	}

	slog.Info("Status updated", "id", m.ID, "status", st.String())
	return nil
}

// RmCmd represents the rm command
type RmCmd struct {
	ID int64 `arg:"" help:"Book id to delete"`
}

func (r *RmCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Remove(r.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("book %d not found", r.ID)
		}
		return err
	}

	slog.Info("Deleted book", "id", r.ID)
	return nil
}

// chooseDegraded asks the operator whether to continue with OpenLibrary
// only. Swappable for tests.
var chooseDegraded = func() (tui.ChoiceResult, error) {
	return tui.Choose(
		"Google Books is not ready (key/network). OpenLibrary is available.",
		[]string{"Continue with OpenLibrary only", "Abort"},
	)
}

// buildResolver runs the startup readiness checks once and assembles the
// resolver with the usable source set, OpenLibrary first. The Google Books
// decision holds for the rest of the process.
func buildResolver(ctx context.Context) (*lookup.Resolver, error) {
	ol := lookup.NewOpenLibrary()
	gb := lookup.NewGoogleBooks(config.GoogleBooksAPIKey)

	report := lookup.NewProber(ol, gb).Probe(ctx)
	slog.Info("Startup checks",
		"internet", report.Internet,
		"google_key", report.KeyPresent,
		"google_books", report.GoogleBooks,
		"openlibrary", report.OpenLibrary,
	)

	switch {
	case !report.Internet:
		slog.Warn("No internet connection; lookups will find nothing")
	case !report.GoogleBooks && !report.OpenLibrary:
		slog.Warn("Neither Google Books nor OpenLibrary is reachable right now")
	case !report.GoogleBooks && report.OpenLibrary:
		result, err := chooseDegraded()
		if err != nil {
			return nil, err
		}
		if result.Action != tui.ActionChosen || result.Index != 0 {
			return nil, errAborted
		}
	}

	sources := []lookup.Source{ol}
	if report.GoogleBooks {
		sources = append(sources, gb)
	}
	return lookup.NewResolver(sources...), nil
}
