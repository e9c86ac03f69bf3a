package sozluk

import (
	"time"

	"github.com/clydeofficial/tdk-sozluk/pkg/querier"
)

// SearchOptions are the settings of one lookup. They are built from the
// client's configuration and the Option values passed to the call.
type SearchOptions struct {
	// IncludeCompounds, IncludeProverbs and IncludeSignLanguage only affect
	// the Current Turkish Dictionary
	IncludeCompounds    bool
	IncludeProverbs     bool
	IncludeSignLanguage bool

	Timeout time.Duration
	Retries int
	Debug   bool
}

type Option func(*SearchOptions)

func WithCompounds(include bool) Option {
	return func(o *SearchOptions) { o.IncludeCompounds = include }
}

func WithProverbs(include bool) Option {
	return func(o *SearchOptions) { o.IncludeProverbs = include }
}

func WithSignLanguage(include bool) Option {
	return func(o *SearchOptions) { o.IncludeSignLanguage = include }
}

// WithTimeout bounds every attempt, not the lookup as a whole.
func WithTimeout(timeout time.Duration) Option {
	return func(o *SearchOptions) { o.Timeout = timeout }
}

// WithRetries sets how many times a failed request is repeated.
func WithRetries(retries int) Option {
	return func(o *SearchOptions) { o.Retries = retries }
}

// WithDebug logs every request attempt.
func WithDebug(debug bool) Option {
	return func(o *SearchOptions) { o.Debug = debug }
}

func (c *Client) options(opts []Option) SearchOptions {
	o := SearchOptions{
		IncludeCompounds:    true,
		IncludeProverbs:     true,
		IncludeSignLanguage: true,
		Timeout:             c.config.Timeout,
		Retries:             c.config.Retries,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Timeout <= 0 {
		o.Timeout = c.config.Timeout
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	return o
}

func (o SearchOptions) request() querier.RequestOptions {
	return querier.RequestOptions{
		Timeout: o.Timeout,
		Retries: o.Retries,
		Debug:   o.Debug,
	}
}
