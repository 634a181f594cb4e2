package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lepinkainen/booktracer/internal/ratelimit"
)

const openLibraryBaseURL = "https://openlibrary.org"

// OpenLibrary looks up books on the OpenLibrary edition API. No key is
// required.
type OpenLibrary struct {
	baseURL string
	client  *http.Client
	limiter *ratelimit.Limiter
}

// Compile-time check that OpenLibrary implements Source.
var _ Source = (*OpenLibrary)(nil)

// NewOpenLibrary creates an OpenLibrary source.
func NewOpenLibrary() *OpenLibrary {
	return &OpenLibrary{
		baseURL: openLibraryBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: ratelimit.New("OpenLibrary", 1),
	}
}

// Name returns the human-readable name of this source.
func (s *OpenLibrary) Name() string {
	return "OpenLibrary"
}

// Ping tests the connection to OpenLibrary.
func (s *OpenLibrary) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return fmt.Errorf("creating ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("OpenLibrary ping failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("OpenLibrary returned status %d", resp.StatusCode)
	}

	return nil
}

// openLibraryEditionResponse matches the edition API response. The
// by_statement field is the only author information available without a
// second request; it may legitimately be missing.
type openLibraryEditionResponse struct {
	Title       string `json:"title"`
	ByStatement string `json:"by_statement"`
}

// Lookup fetches the edition record for an ISBN. A missing edition, a
// non-2xx status or an unparseable body all mean "no match here", never an
// error; the next source gets to try.
func (s *OpenLibrary) Lookup(ctx context.Context, isbn13 string) (*Metadata, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/isbn/%s.json", s.baseURL, isbn13)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenLibrary request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Debug("OpenLibrary miss", "isbn", isbn13, "status", resp.StatusCode)
		return nil, nil
	}

	var edition openLibraryEditionResponse
	if err := json.NewDecoder(resp.Body).Decode(&edition); err != nil {
		slog.Debug("OpenLibrary returned unparseable body", "isbn", isbn13, "error", err)
		return nil, nil
	}

	if edition.Title == "" {
		return nil, nil
	}

	return &Metadata{Title: edition.Title, Author: edition.ByStatement}, nil
}
