package lookup

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// connectivityProbeURL is a low-cost endpoint answering 204 on success; any
// 2xx counts as "online".
const connectivityProbeURL = "https://www.google.com/generate_204"

// Report holds the outcome of the one-time startup readiness checks. The
// booleans feed the operator's decision when the keyed source is unready
// but the open one works.
type Report struct {
	// Internet is true when the connectivity probe got any 2xx response.
	Internet bool

	// KeyPresent is true when a Google Books API key is configured.
	// Presence alone does not imply validity.
	KeyPresent bool

	// GoogleBooks is true when the key was verified against the live API.
	GoogleBooks bool

	// OpenLibrary is true when OpenLibrary answered its ping.
	OpenLibrary bool
}

// Prober runs the startup readiness checks, once, before any lookups.
type Prober struct {
	probeURL    string
	client      *http.Client
	openLibrary *OpenLibrary
	googleBooks *GoogleBooks
}

// NewProber creates a prober for the two lookup sources.
func NewProber(ol *OpenLibrary, gb *GoogleBooks) *Prober {
	return &Prober{
		probeURL:    connectivityProbeURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		openLibrary: ol,
		googleBooks: gb,
	}
}

// Probe checks internet reachability, key presence and both sources.
// Source checks are skipped when the internet is unreachable, and key
// verification additionally requires a configured key.
func (p *Prober) Probe(ctx context.Context) Report {
	var r Report

	r.Internet = p.internetReachable(ctx) == nil
	r.KeyPresent = p.googleBooks.HasKey()

	if r.Internet && r.KeyPresent {
		r.GoogleBooks = p.googleBooks.VerifyKey(ctx) == nil
	}
	if r.Internet {
		r.OpenLibrary = p.openLibrary.Ping(ctx) == nil
	}

	return r
}

func (p *Prober) internetReachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.probeURL, nil)
	if err != nil {
		return fmt.Errorf("creating connectivity probe: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("connectivity probe failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("connectivity probe returned status %d", resp.StatusCode)
	}

	return nil
}
