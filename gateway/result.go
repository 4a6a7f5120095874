package gateway

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
)

// Result is one entry of the service's answer. Fields flattens the top
// level of an object entry to strings.
type Result struct {
	Raw    string
	Fields map[string]string
}

// Get reads a gjson path from the entry.
func (r Result) Get(path string) gjson.Result {
	return gjson.Get(r.Raw, path)
}

// Parse decodes a response body that is either a JSON array, a single JSON
// value, or newline delimited JSON values.
func Parse(body []byte) ([]Result, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	var out []Result
	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		if !doc.IsArray() {
			return []Result{newResult(doc)}, nil
		}
		doc.ForEach(func(_, v gjson.Result) bool {
			out = append(out, newResult(v))
			return true
		})
		return out, nil
	}

	var bad int
	line := 0
	gjson.ForEachLine(string(body), func(v gjson.Result) bool {
		line++
		if !gjson.Valid(v.Raw) {
			bad = line
			return false
		}
		out = append(out, newResult(v))
		return true
	})
	if bad > 0 {
		return nil, fmt.Errorf("decode response: entry %d is not JSON", bad)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("decode response: no JSON entries")
	}
	return out, nil
}

func newResult(v gjson.Result) Result {
	r := Result{Raw: v.Raw}
	if v.IsObject() {
		r.Fields = make(map[string]string)
		v.ForEach(func(k, val gjson.Result) bool {
			r.Fields[k.String()] = val.String()
			return true
		})
	}
	return r
}
