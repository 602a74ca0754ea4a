package tasklist

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

// DecodeSubmissions reads a JSON array of objects and turns each object into
// form values, as if it had been posted by the task form.
//
// String values are used as-is, true becomes "on" (a checked checkbox),
// false and null are omitted, and other scalars are formatted with %v.
func DecodeSubmissions(r io.Reader) ([]url.Values, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}

	out := make([]url.Values, 0, len(raw))
	for _, item := range raw {
		values := url.Values{}
		for k, v := range item {
			switch v := v.(type) {
			case nil:
			case string:
				values.Set(k, v)
			case bool:
				if v {
					values.Set(k, "on")
				}
			default:
				values.Set(k, fmt.Sprintf("%v", v))
			}
		}
		out = append(out, values)
	}

	return out, nil
}
