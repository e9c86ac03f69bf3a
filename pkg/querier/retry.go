package querier

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/clydeofficial/tdk-sozluk/pkg/dicterr"
)

// StatusError is an attempt that got a response the fetcher could not use.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("unexpected response code: %d", e.Status)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Decision tells the retry loop what to do after a failed attempt.
type Decision int

const (
	Retry Decision = iota
	Stop
)

func (d Decision) String() string {
	if d == Stop {
		return "stop"
	}
	return "retry"
}

// Classify decides whether a failed attempt is worth repeating. Validation
// failures, HTTP 404 and cancellation by the caller stop the loop; anything
// else is retried.
func Classify(err error) Decision {
	var validation *dicterr.ValidationError
	switch {
	case err == nil:
		return Stop
	case errors.As(err, &validation):
		return Stop
	case errors.Is(err, context.Canceled):
		return Stop
	case statusOf(err) == http.StatusNotFound:
		return Stop
	default:
		return Retry
	}
}

// MaxBackoff caps the wait between attempts.
const MaxBackoff = time.Duration(math.MaxInt64 / 2)

// Backoff is the wait after the failed attempt with the given zero-based
// index: base, 2*base, 4*base, ... up to MaxBackoff.
func Backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	delay := base
	for i := 0; i < attempt; i++ {
		if delay > MaxBackoff/2 {
			return MaxBackoff
		}
		delay *= 2
	}
	return delay
}

// Failure turns the last attempt error into the error returned to callers:
// dictionary errors pass through unchanged, timeouts and connectivity
// problems lose any status code, everything else keeps it.
func Failure(err error, timeout time.Duration) error {
	var validation *dicterr.ValidationError
	if errors.As(err, &validation) {
		return validation
	}
	var network *dicterr.NetworkError
	if errors.As(err, &network) {
		return network
	}
	switch {
	case isTimeout(err):
		return dicterr.NewNetwork(0, err, "request timed out after %s", timeout)
	case isConnectivity(err):
		return dicterr.NewNetwork(0, err, "unable to connect to dictionary service")
	}
	if status := statusOf(err); status != 0 {
		return dicterr.NewNetwork(status, err, "request failed with status %d", status)
	}
	return dicterr.NewNetwork(0, err, "request failed")
}

func statusOf(err error) int {
	var status *StatusError
	if errors.As(err, &status) {
		return status.Status
	}
	return 0
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectivity(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) || errors.Is(err, syscall.ECONNREFUSED)
}
