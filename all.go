package sozluk

import (
	"context"
	"sync"

	"github.com/clydeofficial/tdk-sozluk/pkg/validate"
)

// Result is the outcome of one dictionary in SearchAll. Err is set when the
// lookup failed.
type Result struct {
	Dictionary string `json:"dictionary"`
	Endpoint   string `json:"endpoint"`
	Value      any    `json:"result,omitempty"`
	Err        error  `json:"error,omitempty"`
}

// SearchAll looks term up in every dictionary, at most Config.MaxWorkers at
// a time. Results follow the order of Dictionaries. A term that does not
// validate fails the whole call before any request is sent; any other
// failure is reported in the Result of its dictionary. A closed client
// returns ErrClosed.
func (c *Client) SearchAll(ctx context.Context, term string, opts ...Option) ([]Result, error) {
	term, err := validate.Word(term, termField)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClosed
	}
	dictionaries := c.Dictionaries()
	results := make([]Result, len(dictionaries))

	var wg sync.WaitGroup
	for i, d := range dictionaries {
		i, d := i, d
		wg.Add(1)
		c.pool.Submit(func() {
			defer wg.Done()
			value, err := d.Search(ctx, term, opts...)
			results[i] = Result{
				Dictionary: d.Name(),
				Endpoint:   d.Endpoint(),
			}
			if err != nil {
				results[i].Err = err
				return
			}
			results[i].Value = value
		})
	}
	wg.Wait()
	return results, nil
}
