package datasource

import (
	"context"
)

// Fetcher defines the transport used by every weather source: a single GET
// that returns the raw response body
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
