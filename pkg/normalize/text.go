package normalize

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is a scalar field the service may send as a string, a number or null.
// Any other JSON value decodes to an empty Text instead of failing.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = ""
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = Text(s)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*t = Text(n.String())
		}
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Or returns the first non-empty value among t and alternatives.
func (t Text) Or(alternatives ...Text) Text {
	if t != "" {
		return t
	}
	for _, alt := range alternatives {
		if alt != "" {
			return alt
		}
	}
	return ""
}

// Ptr returns nil for an empty Text.
func (t Text) Ptr() *string {
	if t == "" {
		return nil
	}
	s := string(t)
	return &s
}

// Map returns nil for an empty Text and f(t) otherwise.
func (t Text) Map(f func(string) string) *string {
	if t == "" {
		return nil
	}
	s := f(string(t))
	return &s
}

// List is a JSON array decoded leniently: a non-array value gives an empty
// list and elements that fail to decode are skipped.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(data []byte) error {
	*l = nil
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	out := make(List[T], 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// Words is a list field that arrives either as a comma separated string or
// as an array of scalars. Items are trimmed and empty ones dropped.
type Words []string

func (w *Words) UnmarshalJSON(data []byte) error {
	*w = Words{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	var parts []string
	switch data[0] {
	case '[':
		var items List[Text]
		_ = json.Unmarshal(data, &items)
		for _, item := range items {
			parts = append(parts, item.String())
		}
	default:
		var s Text
		_ = json.Unmarshal(data, &s)
		parts = strings.Split(s.String(), ",")
	}
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			*w = append(*w, part)
		}
	}
	return nil
}

// present reports whether a raw field carries a value the way the service
// means it: not absent, null, false, zero or an empty string.
func present(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}
