package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultMaxBodySize bounds every response body read by an HTTPFetcher
const DefaultMaxBodySize = 100 * 1024

// ErrResponseTooLarge is returned when a response body exceeds the fetcher's capacity
var ErrResponseTooLarge = errors.New("response body exceeds capacity")

// TransportError describes a failed GET. StatusCode is zero when no response
// was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPFetcher performs plain GET requests with a bounded body size
type HTTPFetcher struct {
	httpClient  *http.Client
	maxBodySize int64
}

// NewHTTPFetcher creates a new fetcher. A non-positive maxBodySize selects
// DefaultMaxBodySize.
func NewHTTPFetcher(timeout time.Duration, maxBodySize int64) *HTTPFetcher {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBodySize: maxBodySize,
	}
}

// Fetch issues a GET against rawURL and returns the whole body. Redirects are
// followed by the client's default policy.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	redacted := redact(rawURL)

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{URL: redacted, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	// Execute request
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: redacted, Err: fmt.Errorf("failed to execute request: %w", stripURL(err))}
	}
	defer resp.Body.Close()

	// Check for error status code
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: redacted, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	// Read one byte past the capacity so an overflow is detected, not truncated
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, &TransportError{URL: redacted, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, &TransportError{URL: redacted, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w (%d bytes)", ErrResponseTooLarge, f.maxBodySize)}
	}

	return body, nil
}

// redact drops the query string, which carries the API key
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

// stripURL unwraps *url.Error so the full request URL does not end up in logs
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// Ensure HTTPFetcher implements Fetcher
var _ Fetcher = (*HTTPFetcher)(nil)
