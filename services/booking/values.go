package booking

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Raw booking documents arrive decoded by whichever backend stored them: Firestore yields
// plain Go maps and slices, Mongo and the in-memory store yield bson primitives.

func str(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case primitive.ObjectID:
		return t.Hex()
	}
	return ""
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case primitive.M:
		return map[string]interface{}(t), true
	case primitive.D:
		return map[string]interface{}(t.Map()), true
	}
	return nil, false
}

func asSlice(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case primitive.A:
		return []interface{}(t), true
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out, true
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func num(v interface{}) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case float64:
		return t
	}
	return 0
}

func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case primitive.DateTime:
		return t.Time()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0)
	case string:
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// asDate renders a booking date as YYYY-MM-DD when it is a timestamp or an RFC 3339 string,
// and returns any other string unchanged.
func asDate(v interface{}) string {
	switch t := v.(type) {
	case string:
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts.UTC().Format(dateLayout)
		}
		return strings.TrimSpace(t)
	case time.Time, primitive.DateTime:
		if ts := asTime(t); !ts.IsZero() {
			return ts.UTC().Format(dateLayout)
		}
	}
	return ""
}
