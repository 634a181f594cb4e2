package store

import "strings"

// Status is the reading state of a tracked book.
type Status int

const (
	StatusToRead Status = iota
	StatusReading
	StatusFinished
)

// String returns the display name of the status.
func (s Status) String() string {
	switch s {
	case StatusReading:
		return "Reading"
	case StatusFinished:
		return "Finished"
	default:
		return "To-Read"
	}
}

// ParseStatus converts user input into a Status. It accepts the display
// names, common aliases and the numeric codes used in CSV files.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "to-read", "toread", "todo", "0":
		return StatusToRead, true
	case "reading", "1":
		return StatusReading, true
	case "finished", "done", "2":
		return StatusFinished, true
	}
	return StatusToRead, false
}

// DeriveStatus picks a status from the page position: at or past the last
// page means Finished, partway in means Reading, untouched means To-Read.
func DeriveStatus(currentPage, totalPages int) Status {
	switch {
	case totalPages > 0 && currentPage >= totalPages:
		return StatusFinished
	case currentPage > 0:
		return StatusReading
	default:
		return StatusToRead
	}
}

// Book is one tracked book. Instances are plain values; the store hands out
// copies, so mutating one never affects persisted state.
type Book struct {
	ID          int64
	Title       string
	Author      string
	TotalPages  int
	CurrentPage int
	Status      Status
	ISBN        string
}
