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

const googleBooksBaseURL = "https://www.googleapis.com/books/v1"

// probeISBN is a deliberately nonexistent identifier used for key
// verification; a zero-result response still proves the key works.
const probeISBN = "0000000000000"

// GoogleBooks looks up books on the Google Books volumes API. An API key is
// optional but improves reliability.
type GoogleBooks struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *ratelimit.Limiter
}

// Compile-time check that GoogleBooks implements Source.
var _ Source = (*GoogleBooks)(nil)

// NewGoogleBooks creates a Google Books source with the given API key
// (empty disables keyed requests).
func NewGoogleBooks(apiKey string) *GoogleBooks {
	return &GoogleBooks{
		baseURL: googleBooksBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: ratelimit.New("GoogleBooks", 1),
	}
}

// Name returns the human-readable name of this source.
func (s *GoogleBooks) Name() string {
	return "Google Books"
}

// HasKey reports whether an API key is configured. Key presence says
// nothing about validity; VerifyKey checks that.
func (s *GoogleBooks) HasKey() bool {
	return s.apiKey != ""
}

// Ping tests the connection to the Google Books API.
func (s *GoogleBooks) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/volumes?q=isbn:%s&maxResults=1", s.baseURL, probeISBN)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("google books ping failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("google books returned status %d", resp.StatusCode)
	}

	return nil
}

// VerifyKey issues one minimal authorized request and checks the response
// for an explicit error member, which Google uses to flag an invalid or
// blocked key even on a 200 response.
func (s *GoogleBooks) VerifyKey(ctx context.Context) error {
	if s.apiKey == "" {
		return fmt.Errorf("no API key configured")
	}

	url := fmt.Sprintf("%s/volumes?q=isbn:%s&maxResults=1&fields=totalItems&key=%s", s.baseURL, probeISBN, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating key verification request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("key verification request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("key verification returned status %d", resp.StatusCode)
	}

	var body struct {
		Error *json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("key verification returned unparseable body: %w", err)
	}
	if body.Error != nil {
		return fmt.Errorf("API key rejected")
	}

	return nil
}

// googleBooksResponse matches the volumes search response.
type googleBooksResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title   string   `json:"title"`
			Authors []string `json:"authors"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Lookup searches volumes by ISBN and extracts the first result's title and
// first listed author. Empty results, non-2xx statuses and unparseable
// bodies mean "no match here", never an error.
func (s *GoogleBooks) Lookup(ctx context.Context, isbn13 string) (*Metadata, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/volumes?q=isbn:%s&maxResults=1", s.baseURL, isbn13)
	if s.apiKey != "" {
		url += "&key=" + s.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google books request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Debug("Google Books miss", "isbn", isbn13, "status", resp.StatusCode)
		return nil, nil
	}

	var result googleBooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Debug("Google Books returned unparseable body", "isbn", isbn13, "error", err)
		return nil, nil
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	vol := result.Items[0].VolumeInfo
	meta := &Metadata{Title: vol.Title}
	if len(vol.Authors) > 0 {
		meta.Author = vol.Authors[0]
	}

	if meta.Title == "" && meta.Author == "" {
		return nil, nil
	}
	return meta, nil
}
