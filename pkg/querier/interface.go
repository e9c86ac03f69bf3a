package querier

import (
	"context"
	"encoding/json"
)

//go:generate go run github.com/vektra/mockery/v2 --name Fetcher --output ../mocks/

// Raw is a response body exactly as the service sent it. It is nil when the
// body was empty.
type Raw = json.RawMessage

type Fetcher interface {
	FetchWithRetry(ctx context.Context, rawURL string, opts RequestOptions) (Raw, error)
	Close(ctx context.Context) error
}
