// Package sozluk is a client for the dictionaries published by the Turkish
// Language Association (TDK) at sozluk.gov.tr.
//
// Every lookup validates the term, fetches the dictionary endpoint with
// retries and maps the response to a typed result. Failures are one of
// *ValidationError, *NotFoundError or *NetworkError.
package sozluk

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"sync"

	"github.com/gammazero/workerpool"
	"go.uber.org/zap"

	"github.com/clydeofficial/tdk-sozluk/pkg/dicterr"
	"github.com/clydeofficial/tdk-sozluk/pkg/normalize"
	"github.com/clydeofficial/tdk-sozluk/pkg/querier"
)

// Version of the module, also sent in the default User-Agent.
const Version = querier.Version

const defaultRetries = 3

// ErrClosed is returned by SearchAll once the client is closed.
var ErrClosed = errors.New("sozluk: client is closed")

type (
	CurrentTurkish = normalize.CurrentTurkish
	Meaning        = normalize.Meaning
	Proverb        = normalize.Proverb
	ForeignWord    = normalize.ForeignWord
	ETMSEntry      = normalize.ETMSEntry
	EtymologyEntry = normalize.EtymologyEntry
	DialectEntry   = normalize.DialectEntry
	Dialects       = normalize.Dialects
	MetrologyTerm  = normalize.MetrologyTerm
	RawEntry       = normalize.RawEntry

	ValidationError = dicterr.ValidationError
	NotFoundError   = dicterr.NotFoundError
	NetworkError    = dicterr.NetworkError
)

type Config struct {
	querier.Config
	// Retries is the number of retries per lookup when no option overrides
	// it. Zero means the default of 3, a negative value disables retries
	Retries int
	// MaxWorkers bounds how many dictionaries SearchAll queries at once
	// Zero value mean that it will be equal to number of logical CPU
	MaxWorkers int
}

func (c *Config) withDefaults() Config {
	conf := Config{}
	if c != nil {
		conf = *c
	}
	if conf.Retries == 0 {
		conf.Retries = defaultRetries
	}
	if conf.MaxWorkers < 1 {
		conf.MaxWorkers = runtime.NumCPU()
	}
	if conf.Timeout <= 0 {
		conf.Timeout = querier.DefaultTimeout
	}
	return conf
}

type Client struct {
	fetcher querier.Fetcher
	urls    querier.Endpoints
	config  Config
	pool    *workerpool.WorkerPool

	mu     sync.RWMutex
	closed bool
}

// New returns a client talking to the service over client. Nil arguments
// are replaced by defaults.
func New(client *http.Client, logger *zap.Logger, config *Config) *Client {
	conf := config.withDefaults()
	remote := querier.NewRemote(client, logger, &conf.Config)
	return NewWithFetcher(remote, remote.Endpoints(), &conf)
}

// NewWithFetcher returns a client that sends its requests through fetcher
// and builds URLs with urls.
func NewWithFetcher(fetcher querier.Fetcher, urls querier.Endpoints, config *Config) *Client {
	conf := config.withDefaults()
	return &Client{
		fetcher: fetcher,
		urls:    urls,
		config:  conf,
		pool:    workerpool.New(conf.MaxWorkers),
	}
}

// Close waits for running SearchAll calls, stops the workers and releases
// idle connections. Closing twice is a no-op.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.pool.StopWait()
	return c.fetcher.Close(ctx)
}
