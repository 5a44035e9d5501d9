// Package msgpack provides a MessagePack transcoder for binstruct instances.
package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/binstruct"
)

// msgpackTranscoder implements binstruct.Transcoder for MessagePack.
type msgpackTranscoder struct{}

// New returns a MessagePack transcoder.
func New() binstruct.Transcoder {
	return &msgpackTranscoder{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackTranscoder) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes the instance's values as a MessagePack map. Keys are
// sorted so equal instances encode to equal bytes.
func (c *msgpackTranscoder) Marshal(inst *binstruct.Instance) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(inst.Values()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a MessagePack map and assigns it to inst.
func (c *msgpackTranscoder) Unmarshal(data []byte, inst *binstruct.Instance) error {
	var doc map[string]any
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("msgpack: %w", err)
	}
	return inst.SetValues(doc)
}
