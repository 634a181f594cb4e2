package cmd

import (
	"fmt"
	"log/slog"

	"github.com/lepinkainen/booktracer/internal/store"
)

// ListCmd represents the list command
type ListCmd struct {
	Status string `help:"Only show books with this status (to-read/reading/finished)"`
}

func (l *ListCmd) Run() error {
	var filter *store.Status
	if l.Status != "" {
		st, ok := store.ParseStatus(l.Status)
		if !ok {
			return fmt.Errorf("unknown status %q", l.Status)
		}
		filter = &st
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	books, err := s.List(filter)
	if err != nil {
		return err
	}

	rate, err := s.DailyRate()
	if err != nil {
		return err
	}

	printBookTable(books, rate)
	return nil
}

// SearchCmd represents the search command
type SearchCmd struct {
	Query string `arg:"" help:"Substring to match against title or author"`
}

func (c *SearchCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	books, err := s.Search(c.Query)
	if err != nil {
		return err
	}

	rate, err := s.DailyRate()
	if err != nil {
		return err
	}

	printBookTable(books, rate)
	return nil
}

// RateCmd represents the rate command
type RateCmd struct {
	Pages *int `arg:"" optional:"" help:"Pages read per day; omit to show the current rate"`
}

func (r *RateCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if r.Pages == nil {
		rate, err := s.DailyRate()
		if err != nil {
			return err
		}
		slog.Info("Current reading rate", "pages_per_day", rate)
		return nil
	}

	if *r.Pages < 0 {
		return fmt.Errorf("rate must not be negative")
	}

	if err := s.SetDailyRate(*r.Pages); err != nil {
		return err
	}

	slog.Info("Reading rate updated", "pages_per_day", *r.Pages)
	return nil
}

// ExportCmd represents the export command
type ExportCmd struct {
	File string `arg:"" help:"Path of the CSV file to write"`
}

func (e *ExportCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.ExportCSV(e.File); err != nil {
		return err
	}

	slog.Info("Exported library", "file", e.File)
	return nil
}

// ImportCmd represents the import command
type ImportCmd struct {
	File string `arg:"" help:"Path of the CSV file to read"`
}

func (i *ImportCmd) Run() error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.ImportCSV(i.File); err != nil {
		return err
	}

	slog.Info("Imported library", "file", i.File)
	return nil
}
