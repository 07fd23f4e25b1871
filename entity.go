package surge

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Params is the loosely-typed key/value mapping exchanged with the API,
// used both for request parameters and for raw response records.
type Params = map[string]any

const (
	// reprTimeLayout renders timestamps in debug projections.
	reprTimeLayout = "2006-01-02 15:04:05.000000-07:00"
	// isoTimeLayout renders timestamps in exported mappings.
	isoTimeLayout = "2006-01-02T15:04:05.000000-07:00"
)

// attrPair is one attribute in an entity's ordered debug projection.
type attrPair struct {
	name  string
	value any
}

// attrsRepr renders attribute pairs as space-joined name="value" tokens,
// preserving the given order and skipping names in the forbid list.
func attrsRepr(pairs []attrPair, forbid []string) string {
	forbidden := make(map[string]bool, len(forbid))
	for _, name := range forbid {
		forbidden[name] = true
	}
	tokens := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if forbidden[pair.name] {
			continue
		}
		tokens = append(tokens, fmt.Sprintf("%s=%q", pair.name, formatAttrValue(pair.value)))
	}
	return strings.Join(tokens, " ")
}

func formatAttrValue(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(reprTimeLayout)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseTimestamp converts a server timestamp value into a time.Time.
// Returns false when the value is absent or not a parseable timestamp.
func parseTimestamp(value any) (time.Time, bool) {
	text, ok := value.(string)
	if !ok || text == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02 15:04:05.999999-07:00",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// isoTimestamp renders a timestamp for exported mappings.
func isoTimestamp(t time.Time) string {
	return t.Format(isoTimeLayout)
}

// recordString reads a string field from a raw record, tolerating absence.
func recordString(rec Params, key string) string {
	if value, ok := rec[key].(string); ok {
		return value
	}
	return ""
}

// recordBool reads a bool field from a raw record with a default.
func recordBool(rec Params, key string, def bool) bool {
	if value, ok := rec[key].(bool); ok {
		return value
	}
	return def
}

// recordInt reads a numeric field from a raw record. JSON numbers decode
// as float64, so both representations are accepted.
func recordInt(rec Params, key string) int {
	switch value := rec[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	}
	return 0
}

// stringSlice coerces a decoded JSON array into a string slice.
func stringSlice(value any) []string {
	raw, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		out = append(out, fmt.Sprintf("%v", item))
	}
	return out
}

// recordSlice coerces a decoded JSON array into a slice of records,
// skipping elements that are not objects.
func recordSlice(value any) []Params {
	raw, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]Params, 0, len(raw))
	for _, item := range raw {
		if rec, ok := item.(Params); ok {
			out = append(out, rec)
		}
	}
	return out
}

// asRecord coerces a decoded JSON value into a record.
func asRecord(value any) (Params, bool) {
	rec, ok := value.(Params)
	return rec, ok
}

// copyParams shallow-copies a parameter mapping. Always returns a fresh
// map so payloads never share state across calls.
func copyParams(params Params) Params {
	out := make(Params, len(params))
	for key, value := range params {
		out[key] = value
	}
	return out
}

// sortedKeys returns a record's keys in lexical order, for stable exports
// of captured extra attributes.
func sortedKeys(rec Params) []string {
	keys := make([]string, 0, len(rec))
	for key := range rec {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// marshalParams renders an exported mapping as a JSON string.
func marshalParams(params Params) (string, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
