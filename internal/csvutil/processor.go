// Package csvutil provides shared CSV reading helpers.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
)

// ProcessorOptions configures CSV processing behavior.
type ProcessorOptions struct {
	// MinFields is the minimum number of fields a data row must have.
	// Shorter rows are skipped.
	MinFields int

	// DetectHeader controls header handling. When set, the first row is
	// treated as a header and skipped unless its first field parses as an
	// integer id, in which case it is processed as data.
	DetectHeader bool
}

// ProcessCSV reads a CSV file and parses each record into type T using the
// given parser. Malformed rows are logged and skipped; only file-level
// failures return an error.
func ProcessCSV[T any](filename string, parser func([]string) (T, error), opts ProcessorOptions) ([]T, error) {
	csvFile, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = csvFile.Close() }()

	if fi, err := csvFile.Stat(); err != nil || fi.Size() == 0 {
		return nil, fmt.Errorf("CSV file is empty or cannot be read")
	}

	reader := csv.NewReader(csvFile)
	// Rows may have ragged field counts; MinFields filters them below.
	reader.FieldsPerRecord = -1

	var items []T
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Error reading record", "error", err)
			continue
		}

		if first {
			first = false
			if opts.DetectHeader && isHeaderRow(record) {
				continue
			}
		}

		if len(record) < opts.MinFields {
			slog.Warn("Skipping short record", "fields", len(record), "want", opts.MinFields)
			continue
		}

		item, err := parser(record)
		if err != nil {
			slog.Warn("Skipping invalid record", "error", err)
			continue
		}

		items = append(items, item)
	}

	return items, nil
}

// isHeaderRow reports whether the first row looks like a header: a data row
// always starts with an integer id.
func isHeaderRow(record []string) bool {
	if len(record) == 0 {
		return true
	}
	_, err := strconv.Atoi(record[0])
	return err != nil
}
