package querier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clydeofficial/tdk-sozluk/pkg/dicterr"
)

const (
	defaultHost     = "sozluk.gov.tr"
	defaultProtocol = "https"
	DefaultTimeout  = 10 * time.Second
	defaultBackoff  = time.Second
	searchParam     = "ara"
)

// Version is reported in the default User-Agent.
const Version = "4.0.0"

var errMalformedBody = errors.New("response body is not valid JSON")

type Config struct {
	// ExtraHeader specifies what header will be added to each request
	ExtraHeader map[string]string
	// Timeout bounds a single attempt when RequestOptions.Timeout is zero
	Timeout time.Duration
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
	// AssetHost serves audio files and sign-language images, defaults to Host
	AssetHost string
	UserAgent string
	// BaseBackoff is the wait after the first failed attempt; it doubles
	// after each further failure
	BaseBackoff time.Duration
}

func (c *Config) withDefaults() Config {
	conf := Config{}
	if c != nil {
		conf = *c
	}
	if conf.Host == "" {
		conf.Host = defaultHost
	}
	if conf.Protocol == "" {
		conf.Protocol = defaultProtocol
	}
	if conf.AssetHost == "" {
		conf.AssetHost = conf.Host
	}
	if conf.Timeout <= 0 {
		conf.Timeout = DefaultTimeout
	}
	if conf.BaseBackoff <= 0 {
		conf.BaseBackoff = defaultBackoff
	}
	if conf.UserAgent == "" {
		conf.UserAgent = "tdk-sozluk-go/" + Version + " (+https://github.com/clydeofficial/tdk-sozluk)"
	}
	return conf
}

// Endpoints returns the URL builder for this configuration.
func (c *Config) Endpoints() Endpoints {
	conf := c.withDefaults()
	return Endpoints{
		Protocol:  conf.Protocol,
		Host:      conf.Host,
		AssetHost: conf.AssetHost,
	}
}

// RequestOptions apply to one FetchWithRetry call.
type RequestOptions struct {
	// Timeout bounds each attempt, not the whole call
	Timeout time.Duration
	// Retries is the number of attempts after the first one
	Retries int
	// Debug logs every attempt and its outcome
	Debug bool
}

// Endpoints builds URLs for the dictionary service and its static assets.
type Endpoints struct {
	Protocol  string
	Host      string
	AssetHost string
}

// Search returns the URL of endpoint queried for term. Empty values in
// params are skipped.
func (e Endpoints) Search(endpoint, term string, params url.Values) string {
	searchURL := &url.URL{
		Scheme: e.Protocol,
		Host:   e.Host,
		Path:   path.Join("/", endpoint),
	}
	v := url.Values{}
	v.Set(searchParam, term)
	for key, values := range params {
		for _, value := range values {
			if value != "" {
				v.Add(key, value)
			}
		}
	}
	searchURL.RawQuery = v.Encode()
	return searchURL.String()
}

// Asset returns the URL of a static file served next to the dictionary.
func (e Endpoints) Asset(elem ...string) string {
	assetURL := &url.URL{
		Scheme: e.Protocol,
		Host:   e.AssetHost,
		Path:   path.Join(append([]string{"/"}, elem...)...),
	}
	return assetURL.String()
}

type Remote struct {
	client *http.Client
	config Config
	logger *zap.Logger
	// sleep waits between attempts, replaced in tests
	sleep func(ctx context.Context, d time.Duration) error

	debugOnce   sync.Once
	debugLogger *zap.Logger
}

func NewRemote(client *http.Client, logger *zap.Logger, config *Config) *Remote {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Remote{
		client: client,
		config: config.withDefaults(),
		logger: logger,
		sleep:  sleepContext,
	}
}

// Endpoints returns the URL builder for the remote's host.
func (q *Remote) Endpoints() Endpoints {
	return q.config.Endpoints()
}

// FetchWithRetry performs a GET against rawURL and returns the body. Failed
// attempts are retried with exponential backoff unless Classify says stop.
// Every returned error is a *dicterr.NetworkError, except validation
// failures which are returned unchanged.
func (q *Remote) FetchWithRetry(ctx context.Context, rawURL string, opts RequestOptions) (Raw, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = q.config.Timeout
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	logger := q.attemptLogger(opts.Debug).With(zap.String("url", rawURL))

	var lastErr error
	for attempt := 0; attempt <= opts.Retries; attempt++ {
		fields := []zap.Field{
			zap.Int("attempt", attempt+1),
			zap.Int("attempts", opts.Retries+1),
		}
		raw, err := q.attempt(ctx, rawURL, opts.Timeout)
		if err == nil {
			logger.Info("request succeeded", append(fields, zap.Int("bytes", len(raw)))...)
			return raw, nil
		}
		lastErr = err

		if Classify(err) == Stop {
			logger.Info("request failed, not retrying", append(fields, zap.Error(err))...)
			break
		}
		if attempt == opts.Retries {
			logger.Info("request failed, attempts exhausted", append(fields, zap.Error(err))...)
			break
		}
		delay := Backoff(q.config.BaseBackoff, attempt)
		logger.Info("request failed, will retry", append(fields, zap.Error(err), zap.Duration("delay", delay))...)
		if err := q.sleep(ctx, delay); err != nil {
			return nil, dicterr.NewNetwork(0, err, "request cancelled while waiting to retry")
		}
	}
	return nil, Failure(lastErr, opts.Timeout)
}

// attempt performs one GET. Statuses in [200,500) carry data: the body is
// returned when it is empty or valid JSON.
func (q *Remote) attempt(ctx context.Context, rawURL string, timeout time.Duration) (Raw, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request, err := q.newRequest(ctx, rawURL)
	if err != nil {
		return nil, dicterr.NewValidation("url", "can not assemble request: %v", err)
	}
	response, err := q.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()

	if !dataBearing(response.StatusCode) {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil, &StatusError{Status: response.StatusCode}
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &StatusError{Status: response.StatusCode, Err: fmt.Errorf("can not read body: %w", err)}
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, &StatusError{Status: response.StatusCode, Err: errMalformedBody}
	}
	return Raw(body), nil
}

func (q *Remote) newRequest(ctx context.Context, urlRequest string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlRequest, nil)
	if err != nil {
		return nil, fmt.Errorf("can not form request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", q.config.UserAgent)
	for key, value := range q.config.ExtraHeader {
		req.Header.Add(key, value)
	}
	return req, nil
}

// attemptLogger returns the logger used for attempt traces. Without debug
// nothing is logged; with debug and a logger that drops Info, a development
// logger on stderr is used instead.
func (q *Remote) attemptLogger(debug bool) *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	if q.logger.Core().Enabled(zap.InfoLevel) {
		return q.logger
	}
	q.debugOnce.Do(func() {
		logger, err := zap.NewDevelopment()
		if err != nil {
			logger = zap.NewNop()
		}
		q.debugLogger = logger.Named("sozluk")
	})
	return q.debugLogger
}

func (q *Remote) Close(ctx context.Context) error {
	q.client.CloseIdleConnections()
	return nil
}

func dataBearing(status int) bool {
	return status >= http.StatusOK && status < http.StatusInternalServerError
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
