// Package json provides a JSON transcoder for binstruct instances.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/zoobzio/binstruct"
)

// jsonTranscoder implements binstruct.Transcoder for JSON.
type jsonTranscoder struct{}

// New returns a JSON transcoder.
func New() binstruct.Transcoder {
	return &jsonTranscoder{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonTranscoder) ContentType() string {
	return "application/json"
}

// Marshal encodes the instance's values as a JSON object.
func (c *jsonTranscoder) Marshal(inst *binstruct.Instance) ([]byte, error) {
	return json.Marshal(inst.Values())
}

// Unmarshal decodes a JSON object and assigns it to inst. Numbers are
// decoded exactly, so 64-bit fields keep every bit.
func (c *jsonTranscoder) Unmarshal(data []byte, inst *binstruct.Instance) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	return inst.SetValues(numbers(doc).(map[string]any))
}

// numbers turns json.Number into int64 or uint64 where it fits. Other
// numbers are left for the packer to reject.
func numbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = numbers(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = numbers(item)
		}
		return x
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return u
		}
		return x
	default:
		return v
	}
}
