package querier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/clydeofficial/tdk-sozluk/pkg/dicterr"
)

// sleepRecorder replaces the real backoff sleep and remembers every delay.
type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return ctx.Err()
}

type testRemote struct {
	*Remote
	sleeps *sleepRecorder
	calls  *atomic.Int32
	server *httptest.Server
}

func (r *testRemote) url(endpoint, term string) string {
	return r.Endpoints().Search(endpoint, term, nil)
}

func newTestRemote(t *testing.T, logger *zap.Logger, handler http.HandlerFunc) *testRemote {
	t.Helper()
	calls := new(atomic.Int32)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	remote := NewRemote(server.Client(), logger, &Config{
		Host:     server.Listener.Addr().String(),
		Protocol: "http",
	})
	sleeps := &sleepRecorder{}
	remote.sleep = sleeps.sleep
	t.Cleanup(func() {
		server.Close()
		_ = remote.Close(context.TODO())
	})
	return &testRemote{Remote: remote, sleeps: sleeps, calls: calls, server: server}
}

func writeBody(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestRemoteFetchSuccess(t *testing.T) {
	var header http.Header
	var query url.Values
	remote := newTestRemote(t, nil, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		query = r.URL.Query()
		writeBody(http.StatusOK, `[{"madde":"çay"}]`)(w, r)
	})

	raw, err := remote.FetchWithRetry(context.TODO(), remote.url("gts", "çay"), RequestOptions{Retries: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"madde":"çay"}]`, string(raw))
	assert.Equal(t, int32(1), remote.calls.Load())
	assert.Empty(t, remote.sleeps.delays)

	assert.Equal(t, "application/json", header.Get("Accept"))
	assert.True(t, strings.HasPrefix(header.Get("User-Agent"), "tdk-sozluk-go/"))
	assert.Equal(t, "çay", query.Get("ara"))
}

func TestRemoteFetchDataBearingStatuses(t *testing.T) {
	testCases := map[string]struct {
		status   int
		body     string
		expected string
	}{
		"ok":                  {status: http.StatusOK, body: `{"a":1}`, expected: `{"a":1}`},
		"bad request json":    {status: http.StatusBadRequest, body: `{"error":"x"}`, expected: `{"error":"x"}`},
		"not found json":      {status: http.StatusNotFound, body: `[]`, expected: `[]`},
		"ok empty body":       {status: http.StatusOK, body: ""},
		"ok whitespace body":  {status: http.StatusOK, body: " \n"},
		"not found empty":     {status: http.StatusNotFound, body: ""},
		"too many requests":   {status: http.StatusTooManyRequests, body: `[]`, expected: `[]`},
		"accepted with array": {status: http.StatusAccepted, body: `[1,2]`, expected: `[1,2]`},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			remote := newTestRemote(t, nil, writeBody(tc.status, tc.body))

			raw, err := remote.FetchWithRetry(context.TODO(), remote.url("gts", "ev"), RequestOptions{Retries: 2})
			require.NoError(t, err)
			if tc.expected == "" {
				assert.Nil(t, raw)
			} else {
				assert.JSONEq(t, tc.expected, string(raw))
			}
			assert.Equal(t, int32(1), remote.calls.Load())
		})
	}
}

func TestRemoteFetchRetryCount(t *testing.T) {
	testCases := map[string]struct {
		retries int
		delays  []time.Duration
	}{
		"no retries":    {retries: 0, delays: nil},
		"one retry":     {retries: 1, delays: []time.Duration{time.Second}},
		"default":       {retries: 3, delays: []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}},
		"five":          {retries: 5, delays: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}},
		"negative is 0": {retries: -2, delays: nil},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			remote := newTestRemote(t, nil, writeBody(http.StatusServiceUnavailable, "down"))

			raw, err := remote.FetchWithRetry(context.TODO(), remote.url("gts", "ev"), RequestOptions{Retries: tc.retries})
			assert.Nil(t, raw)
			require.Error(t, err)

			var network *dicterr.NetworkError
			require.ErrorAs(t, err, &network)
			assert.Equal(t, http.StatusServiceUnavailable, network.StatusCode)
			assert.Equal(t, tc.delays, remote.sleeps.delays)
			expectedCalls := tc.retries + 1
			if tc.retries < 0 {
				expectedCalls = 1
			}
			assert.Equal(t, int32(expectedCalls), remote.calls.Load())
		})
	}
}

func TestRemoteFetchNotFoundShortCircuits(t *testing.T) {
	remote := newTestRemote(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html>not here</html>"))
	})

	_, err := remote.FetchWithRetry(context.TODO(), remote.url("gts", "ev"), RequestOptions{Retries: 3})
	var network *dicterr.NetworkError
	require.ErrorAs(t, err, &network)
	assert.Equal(t, http.StatusNotFound, network.StatusCode)
	assert.Equal(t, int32(1), remote.calls.Load())
	assert.Empty(t, remote.sleeps.delays)
}

func TestRemoteFetchValidationShortCircuits(t *testing.T) {
	remote := newTestRemote(t, nil, writeBody(http.StatusOK, `[]`))

	_, err := remote.FetchWithRetry(context.TODO(), "http://[::1", RequestOptions{Retries: 3})
	require.Error(t, err)
	assert.Equal(t, dicterr.CodeValidation, dicterr.CodeOf(err))
	assert.Equal(t, int32(0), remote.calls.Load())
	assert.Empty(t, remote.sleeps.delays)
}

func TestRemoteFetchRecoversAfterMalformedBody(t *testing.T) {
	var n atomic.Int32
	remote := newTestRemote(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1) == 1 {
			writeBody(http.StatusOK, "{,}")(w, r)
			return
		}
		writeBody(http.StatusOK, `[{"madde":"ev"}]`)(w, r)
	})

	raw, err := remote.FetchWithRetry(context.TODO(), remote.url("gts", "ev"), RequestOptions{Retries: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"madde":"ev"}]`, string(raw))
	assert.Equal(t, int32(2), remote.calls.Load())
	assert.Equal(t, []time.Duration{time.Second}, remote.sleeps.delays)
}

func TestRemoteFetchMalformedBodyKeepsStatus(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusForbidden, http.StatusTooManyRequests} {
		status := status
		t.Run(http.StatusText(status), func(t *testing.T) {
			remote := newTestRemote(t, nil, writeBody(status, "<html>"))

			_, err := remote.FetchWithRetry(context.TODO(), remote.url("gts", "ev"), RequestOptions{Retries: 1})
			var network *dicterr.NetworkError
			require.ErrorAs(t, err, &network)
			assert.Equal(t, status, network.StatusCode)
			assert.True(t, errors.Is(err, errMalformedBody))
			assert.Equal(t, int32(2), remote.calls.Load())
		})
	}
}

func TestRemoteFetchTimeout(t *testing.T) {
	remote := newTestRemote(t, nil, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	_, err := remote.FetchWithRetry(context.TODO(), remote.url("gts", "ev"), RequestOptions{
		Timeout: 20 * time.Millisecond,
		Retries: 1,
	})
	var network *dicterr.NetworkError
	require.ErrorAs(t, err, &network)
	assert.False(t, network.HasStatus())
	assert.Contains(t, network.Message, "timed out")
	assert.Equal(t, []time.Duration{time.Second}, remote.sleeps.delays)
}

func TestRemoteFetchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.Listener.Addr().String()
	server.Close()

	remote := NewRemote(nil, nil, &Config{Host: addr, Protocol: "http"})
	sleeps := &sleepRecorder{}
	remote.sleep = sleeps.sleep

	_, err := remote.FetchWithRetry(context.TODO(), remote.Endpoints().Search("gts", "ev", nil), RequestOptions{Retries: 2})
	var network *dicterr.NetworkError
	require.ErrorAs(t, err, &network)
	assert.False(t, network.HasStatus())
	assert.Equal(t, "unable to connect to dictionary service", network.Message)
	assert.Len(t, sleeps.delays, 2)
}

func TestRemoteFetchCancelled(t *testing.T) {
	remote := newTestRemote(t, nil, writeBody(http.StatusOK, `[]`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := remote.FetchWithRetry(ctx, remote.url("gts", "ev"), RequestOptions{Retries: 3})
	require.Error(t, err)
	assert.Equal(t, dicterr.CodeNetwork, dicterr.CodeOf(err))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, remote.sleeps.delays)
}

func TestRemoteFetchCancelledWhileWaiting(t *testing.T) {
	remote := newTestRemote(t, nil, writeBody(http.StatusBadGateway, ""))
	ctx, cancel := context.WithCancel(context.Background())
	remote.sleep = func(context.Context, time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := remote.FetchWithRetry(ctx, remote.url("gts", "ev"), RequestOptions{Retries: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int32(1), remote.calls.Load())
}

func TestRemoteDebugLogging(t *testing.T) {
	var n atomic.Int32
	core, logs := observer.New(zap.DebugLevel)
	remote := newTestRemote(t, zap.New(core), func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1) == 1 {
			writeBody(http.StatusInternalServerError, "")(w, r)
			return
		}
		writeBody(http.StatusOK, `[]`)(w, r)
	})
	target := remote.url("atasozu", "göz")

	_, err := remote.FetchWithRetry(context.TODO(), target, RequestOptions{Retries: 2, Debug: true})
	require.NoError(t, err)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "request failed, will retry", entries[0].Message)
	assert.Equal(t, int64(1), entries[0].ContextMap()["attempt"])
	assert.Equal(t, target, entries[0].ContextMap()["url"])
	assert.Equal(t, "request succeeded", entries[1].Message)
	assert.Equal(t, int64(2), entries[1].ContextMap()["attempt"])
}

func TestRemoteNoLoggingWithoutDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	remote := newTestRemote(t, zap.New(core), writeBody(http.StatusOK, `[]`))

	_, err := remote.FetchWithRetry(context.TODO(), remote.url("gts", "ev"), RequestOptions{})
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestEndpoints(t *testing.T) {
	endpoints := (&Config{}).Endpoints()
	testCases := map[string]struct {
		got      string
		expected string
	}{
		"plain": {
			got:      endpoints.Search("gts", "araba", nil),
			expected: "https://sozluk.gov.tr/gts?ara=araba",
		},
		"turkish and space": {
			got:      endpoints.Search("atasozu", "göz ağrısı", nil),
			expected: "https://sozluk.gov.tr/atasozu?ara=g%C3%B6z+a%C4%9Fr%C4%B1s%C4%B1",
		},
		"extra params": {
			got:      endpoints.Search("kilavuz", "computer", url.Values{"prm": {"ysk"}}),
			expected: "https://sozluk.gov.tr/kilavuz?ara=computer&prm=ysk",
		},
		"empty params skipped": {
			got:      endpoints.Search("kilavuz", "computer", url.Values{"prm": {""}}),
			expected: "https://sozluk.gov.tr/kilavuz?ara=computer",
		},
		"reserved characters": {
			got:      endpoints.Search("gts", "a&b=c?", nil),
			expected: "https://sozluk.gov.tr/gts?ara=a%26b%3Dc%3F",
		},
		"asset": {
			got:      endpoints.Asset("ses", "11462.wav"),
			expected: "https://sozluk.gov.tr/ses/11462.wav",
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.got)
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	conf := (*Config)(nil).withDefaults()
	assert.Equal(t, "sozluk.gov.tr", conf.Host)
	assert.Equal(t, "https", conf.Protocol)
	assert.Equal(t, "sozluk.gov.tr", conf.AssetHost)
	assert.Equal(t, 10*time.Second, conf.Timeout)
	assert.Equal(t, time.Second, conf.BaseBackoff)

	custom := (&Config{Host: "localhost:8080", Protocol: "http", AssetHost: "cdn.example"}).Endpoints()
	assert.Equal(t, "http://cdn.example/assets/img/isaret/a.gif", custom.Asset("assets", "img", "isaret", "a.gif"))
}
