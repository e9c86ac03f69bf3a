// Package normalize turns the dictionary service's loosely shaped JSON into
// the stable result types of this module.
//
// Every normalizer first calls [Query.Entries], which decides whether a body
// carries data at all. Field mapping after that never fails: missing or
// mistyped optional fields become nil or empty slices.
package normalize

import (
	"bytes"
	"encoding/json"

	"github.com/clydeofficial/tdk-sozluk/pkg/dicterr"
)

// missKey is the only key of the object the service returns for a miss.
const missKey = "error"

// Query identifies a lookup so that not-found errors can name it.
type Query struct {
	Term       string
	Dictionary string
}

func (q Query) notFound() error {
	return dicterr.NewNotFound(q.Term, q.Dictionary)
}

// Entries splits raw into entries. An array yields its elements and an
// object yields itself. A body that is empty, null, a scalar, an empty array,
// an object without keys, or the service's {"error": ...} miss marker is
// reported as not found.
func (q Query) Entries(raw json.RawMessage) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, q.notFound()
	}
	switch raw[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
			return nil, q.notFound()
		}
		return entries, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
			return nil, q.notFound()
		}
		if _, miss := fields[missKey]; miss && len(fields) == 1 {
			return nil, q.notFound()
		}
		return []json.RawMessage{raw}, nil
	default:
		return nil, q.notFound()
	}
}

// objects decodes every entry that is a JSON object into T and drops the
// rest. It reports not found when nothing usable is left.
func objects[T any](q Query, raw json.RawMessage) ([]T, error) {
	entries, err := q.Entries(raw)
	if err != nil {
		return nil, err
	}
	decoded := make([]T, 0, len(entries))
	for _, entry := range entries {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 || entry[0] != '{' {
			continue
		}
		var v T
		if err := json.Unmarshal(entry, &v); err != nil {
			continue
		}
		decoded = append(decoded, v)
	}
	if len(decoded) == 0 {
		return nil, q.notFound()
	}
	return decoded, nil
}

// first is objects limited to the first usable entry.
func first[T any](q Query, raw json.RawMessage) (T, error) {
	var zero T
	decoded, err := objects[T](q, raw)
	if err != nil {
		return zero, err
	}
	return decoded[0], nil
}
