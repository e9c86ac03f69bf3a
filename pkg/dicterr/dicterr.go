// Package dicterr defines the errors returned by every dictionary lookup.
//
// There are three kinds of failure and each has its own type:
//
//   - [ValidationError]: the caller passed a bad term; no request was made
//   - [NotFoundError]: the service answered, but with no data for the term
//   - [NetworkError]: the request itself failed after all retries
//
// All of them carry a stable machine-readable [Code] and the time they were
// created, so callers can branch with [CodeOf] instead of matching messages:
//
//	switch dicterr.CodeOf(err) {
//	case dicterr.CodeNotFound:
//	    // show "no results"
//	case dicterr.CodeNetwork:
//	    // try again later
//	}
package dicterr

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeNotFound   Code = "NOT_FOUND"
	CodeNetwork    Code = "NETWORK_ERROR"
)

// isoLayout is JavaScript's Date.toISOString layout, kept for clients that
// compare timestamps across implementations.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// now is replaced in tests.
var now = time.Now

// Error is implemented by all dictionary errors.
type Error interface {
	error
	Code() Code
	Timestamp() time.Time
}

// ValidationError reports a term or option that was rejected before any
// network call.
type ValidationError struct {
	Field   string
	Message string
	at      time.Time
}

// NewValidation creates a ValidationError for field.
func NewValidation(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		at:      now(),
	}
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Code() Code           { return CodeValidation }
func (e *ValidationError) Timestamp() time.Time { return e.at }

func (e *ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code      Code   `json:"code"`
		Message   string `json:"message"`
		Field     string `json:"field,omitempty"`
		Timestamp string `json:"timestamp"`
	}{CodeValidation, e.Message, e.Field, ISOTimestamp(e)})
}

// NotFoundError reports a successful exchange whose body carried no data.
type NotFoundError struct {
	Word       string
	Dictionary string
	at         time.Time
}

// NewNotFound creates a NotFoundError for word in the named dictionary.
// An empty dictionary name is reported as "unknown".
func NewNotFound(word, dictionary string) *NotFoundError {
	if dictionary == "" {
		dictionary = "unknown"
	}
	return &NotFoundError{
		Word:       word,
		Dictionary: dictionary,
		at:         now(),
	}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("word %q not found in %s dictionary", e.Word, e.Dictionary)
}
func (e *NotFoundError) Code() Code           { return CodeNotFound }
func (e *NotFoundError) Timestamp() time.Time { return e.at }

func (e *NotFoundError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code       Code   `json:"code"`
		Message    string `json:"message"`
		Word       string `json:"word"`
		Dictionary string `json:"dictionaryType"`
		Timestamp  string `json:"timestamp"`
	}{CodeNotFound, e.Error(), e.Word, e.Dictionary, ISOTimestamp(e)})
}

// NetworkError reports a failed HTTP exchange. StatusCode is 0 when no
// response was received.
type NetworkError struct {
	StatusCode int
	Message    string
	Cause      error
	at         time.Time
}

// NewNetwork creates a NetworkError. Pass status 0 when there was no response.
func NewNetwork(status int, cause error, format string, args ...interface{}) *NetworkError {
	return &NetworkError{
		StatusCode: status,
		Message:    fmt.Sprintf(format, args...),
		Cause:      cause,
		at:         now(),
	}
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}
func (e *NetworkError) Unwrap() error        { return e.Cause }
func (e *NetworkError) Code() Code           { return CodeNetwork }
func (e *NetworkError) Timestamp() time.Time { return e.at }

// HasStatus reports whether a response status was recorded.
func (e *NetworkError) HasStatus() bool { return e.StatusCode != 0 }

func (e *NetworkError) MarshalJSON() ([]byte, error) {
	var status *int
	if e.HasStatus() {
		status = &e.StatusCode
	}
	return json.Marshal(struct {
		Code       Code   `json:"code"`
		Message    string `json:"message"`
		StatusCode *int   `json:"statusCode"`
		Timestamp  string `json:"timestamp"`
	}{CodeNetwork, e.Error(), status, ISOTimestamp(e)})
}

// CodeOf returns the code of the first dictionary error in err's chain, or
// an empty Code if there is none.
func CodeOf(err error) Code {
	var e Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return ""
}

// Is reports whether err's chain holds a dictionary error with the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// ISOTimestamp renders the creation time of e as ISO-8601 in UTC with
// millisecond precision.
func ISOTimestamp(e Error) string {
	return e.Timestamp().UTC().Format(isoLayout)
}
