package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/lepinkainen/booktracer/internal/csvutil"
)

// csvFieldCount is the number of columns in an exported row.
const csvFieldCount = 7

var csvHeader = []string{"id", "title", "author", "totalPages", "currentPage", "status", "isbn"}

// ExportCSV writes every book, ordered by ascending id, to a CSV file with
// a header row. Fields containing commas, quotes or newlines are quoted
// with doubled inner quotes.
func (s *Store) ExportCSV(path string) error {
	books, err := s.List(nil)
	if err != nil {
		return fmt.Errorf("failed to load books for export: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, b := range books {
		row := []string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			b.Author,
			strconv.Itoa(b.TotalPages),
			strconv.Itoa(b.CurrentPage),
			strconv.Itoa(int(b.Status)),
			b.ISBN,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return f.Close()
}

// ImportCSV reads book rows from a CSV file and inserts them in a single
// transaction: either every well-formed row commits or none do. A header
// row is detected and skipped, rows with fewer than seven fields are
// skipped, page and status values are clamped into range, and ids are
// always assigned fresh.
func (s *Store) ImportCSV(path string) error {
	books, err := csvutil.ProcessCSV(path, parseBookRow, csvutil.ProcessorOptions{
		MinFields:    csvFieldCount,
		DetectHeader: true,
	})
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback()
	}()

	stmt, err := tx.Prepare("INSERT INTO books(title, author, total_pages, current_page, status, isbn) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare import statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, b := range books {
		if _, err := stmt.Exec(b.Title, b.Author, b.TotalPages, b.CurrentPage, int(b.Status), b.ISBN); err != nil {
			return fmt.Errorf("failed to insert imported book: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// parseBookRow builds a Book from an exported CSV row. The id field is
// ignored; numeric fields fall back to zero and are clamped into range.
func parseBookRow(record []string) (Book, error) {
	totalPages := max(0, atoiSafe(record[3]))
	currentPage := clamp(atoiSafe(record[4]), 0, totalPages)
	status := clamp(atoiSafe(record[5]), 0, 2)

	return Book{
		Title:       record[1],
		Author:      record[2],
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		Status:      Status(status),
		ISBN:        record[6],
	}, nil
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
