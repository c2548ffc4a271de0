// Package source retrieves the raw spreadsheet ranges the board mirrors.
// The default transport fetches the document's CSV export through a
// CORS-relay prefix; an authenticated Google Sheets API transport is
// available as an alternative for deployments with credentials.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"codename_board/internal/csvtext"

	"github.com/rs/zerolog/log"
)

// CSVRange fetches one exported range of the spreadsheet as CSV text.
type CSVRange struct {
	client      *http.Client
	proxyPrefix string
	exportURL   string
	gid         string
	now         func() time.Time
}

// NewCSVRange builds a range reader for the given export endpoint and
// range id (gid), relayed through proxyPrefix.
func NewCSVRange(exportURL, gid, proxyPrefix string, timeout time.Duration) *CSVRange {
	return &CSVRange{
		client: &http.Client{
			Timeout: timeout,
		},
		proxyPrefix: proxyPrefix,
		exportURL:   exportURL,
		gid:         gid,
		now:         time.Now,
	}
}

// address builds the relayed URL. The cache-busting parameter changes
// per call so neither the relay nor any intermediate cache can serve a
// stale export.
func (r *CSVRange) address() string {
	target := fmt.Sprintf("%s?format=csv&gid=%s&_=%d", r.exportURL, r.gid, r.now().UnixMilli())
	return r.proxyPrefix + url.QueryEscape(target)
}

// FetchText performs one GET round-trip and returns the full response
// body. There is no retry here: the next scheduled refresh is the only
// retry mechanism.
func (r *CSVRange) FetchText(ctx context.Context) (string, error) {
	address := r.address()

	req, err := http.NewRequestWithContext(ctx, "GET", address, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("range request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("gid", r.gid).
		Int("body_length", len(body)).
		Msg("Fetched range export")

	return string(body), nil
}

// Document fetches the range and parses it as a headed CSV table.
func (r *CSVRange) Document(ctx context.Context) (csvtext.Document, error) {
	text, err := r.FetchText(ctx)
	if err != nil {
		return csvtext.Document{}, err
	}
	return csvtext.Parse(text), nil
}

// Rows fetches the range and scans every line positionally, for ranges
// that hold unheaded key/value pairs.
func (r *CSVRange) Rows(ctx context.Context) ([][]string, error) {
	text, err := r.FetchText(ctx)
	if err != nil {
		return nil, err
	}
	return csvtext.Rows(text), nil
}
