package yahoo

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// decodeAny decodes a raw JSON fragment keeping numbers as json.Number.
func decodeAny(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeObject(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// unwrap turns a quote summary field into a plain value. Formatted numbers
// such as {"raw": 1.5, "fmt": "1.50"} become their raw value; null and empty
// objects report ok == false.
func unwrap(v gjson.Result) (any, bool) {
	switch {
	case v.Type == gjson.Null:
		return nil, false
	case v.IsObject():
		if raw := v.Get("raw"); raw.Exists() {
			return unwrap(raw)
		}
		fields := v.Map()
		if len(fields) == 0 {
			return nil, false
		}
		if f, ok := fields["fmt"]; ok && len(fields) <= 2 {
			return f.String(), true
		}
		out, err := decodeAny(v.Raw)
		if err != nil {
			return nil, false
		}
		return out, true
	case v.IsArray():
		out, err := decodeAny(v.Raw)
		if err != nil {
			return nil, false
		}
		return out, true
	case v.Type == gjson.Number:
		return json.Number(v.Raw), true
	case v.Type == gjson.True, v.Type == gjson.False:
		return v.Bool(), true
	default:
		return v.String(), true
	}
}
