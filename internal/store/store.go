// Package store owns the durable collection of book records and the daily
// reading rate setting, backed by a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an operation targets an id that does not
// exist.
var ErrNotFound = errors.New("book not found")

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	author TEXT,
	total_pages INTEGER NOT NULL,
	current_page INTEGER NOT NULL,
	status INTEGER NOT NULL,
	isbn TEXT
);
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_books_title ON books(title);
CREATE INDEX IF NOT EXISTS idx_books_author ON books(author);
CREATE INDEX IF NOT EXISTS idx_books_status ON books(status);
`

const bookColumns = "id, title, author, total_pages, current_page, status, isbn"

// Store provides CRUD, search and settings access over a single SQLite
// database. It is built for one process with no concurrent writers.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add persists a new book and returns its assigned id. The id field of the
// argument is ignored.
func (s *Store) Add(b Book) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO books(title, author, total_pages, current_page, status, isbn) VALUES(?, ?, ?, ?, ?, ?)",
		b.Title, b.Author, b.TotalPages, b.CurrentPage, int(b.Status), b.ISBN,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new book id: %w", err)
	}
	return id, nil
}

// Get returns the book with the given id, or nil if it does not exist.
func (s *Store) Get(id int64) (*Book, error) {
	row := s.db.QueryRow("SELECT "+bookColumns+" FROM books WHERE id = ?", id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load book %d: %w", id, err)
	}
	return &b, nil
}

// List returns all books ordered by ascending id. A non-nil filter
// restricts the result to one status.
func (s *Store) List(filter *Status) ([]Book, error) {
	query := "SELECT " + bookColumns + " FROM books"
	var args []any
	if filter != nil {
		query += " WHERE status = ?"
		args = append(args, int(*filter))
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return collectBooks(rows)
}

// Search returns books whose title or author contains the query substring,
// case-insensitively, ordered by ascending id.
func (s *Store) Search(query string) ([]Book, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.Query(
		"SELECT "+bookColumns+" FROM books WHERE lower(title) LIKE ? OR lower(author) LIKE ? ORDER BY id ASC",
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return collectBooks(rows)
}

// UpdateProgress overwrites the page position and status of a book. The
// caller is responsible for keeping the two consistent; use UpdateStatus to
// mark a book Finished.
func (s *Store) UpdateProgress(id int64, currentPage int, status Status) error {
	res, err := s.db.Exec(
		"UPDATE books SET current_page = ?, status = ? WHERE id = ?",
		currentPage, int(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return requireRow(res)
}

// UpdateStatus sets the status of a book. Marking a book Finished also
// snaps the current page to the total page count in the same statement, so
// the finished-implies-last-page invariant cannot be observed broken.
func (s *Store) UpdateStatus(id int64, status Status) error {
	res, err := s.db.Exec(
		"UPDATE books SET status = ?, current_page = CASE WHEN ? = 2 THEN total_pages ELSE current_page END WHERE id = ?",
		int(status), int(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return requireRow(res)
}

// Remove deletes a book. Deleting an unknown id reports ErrNotFound.
func (s *Store) Remove(id int64) error {
	res, err := s.db.Exec("DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return requireRow(res)
}

// DailyRate returns the configured pages-per-day reading rate, 0 when
// unset.
func (s *Store) DailyRate() (int, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = 'daily_rate'").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load daily rate: %w", err)
	}
	rate, err := strconv.Atoi(value)
	if err != nil || rate < 0 {
		return 0, nil
	}
	return rate, nil
}

// SetDailyRate persists the pages-per-day reading rate, clamped to zero or
// above.
func (s *Store) SetDailyRate(rate int) error {
	if rate < 0 {
		rate = 0
	}
	_, err := s.db.Exec(
		"INSERT INTO settings(key, value) VALUES('daily_rate', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		strconv.Itoa(rate),
	)
	if err != nil {
		return fmt.Errorf("failed to save daily rate: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (Book, error) {
	var b Book
	var status int
	var author, isbn sql.NullString
	if err := s.Scan(&b.ID, &b.Title, &author, &b.TotalPages, &b.CurrentPage, &status, &isbn); err != nil {
		return Book{}, err
	}
	b.Author = author.String
	b.ISBN = isbn.String
	b.Status = Status(status)
	return b, nil
}

func collectBooks(rows *sql.Rows) ([]Book, error) {
	defer func() { _ = rows.Close() }()

	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read book rows: %w", err)
	}
	return books, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
