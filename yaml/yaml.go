// Package yaml provides a YAML transcoder for binstruct instances.
package yaml

import (
	"fmt"

	"github.com/zoobzio/binstruct"
	"gopkg.in/yaml.v3"
)

// yamlTranscoder implements binstruct.Transcoder for YAML.
type yamlTranscoder struct{}

// New returns a YAML transcoder.
func New() binstruct.Transcoder {
	return &yamlTranscoder{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlTranscoder) ContentType() string {
	return "application/yaml"
}

// Marshal encodes the instance as a YAML mapping. Keys follow the field
// order of the schema.
func (c *yamlTranscoder) Marshal(inst *binstruct.Instance) ([]byte, error) {
	node, err := toNode(inst)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// Unmarshal decodes a YAML mapping and assigns it to inst.
func (c *yamlTranscoder) Unmarshal(data []byte, inst *binstruct.Instance) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return inst.SetValues(doc)
}

func toNode(inst *binstruct.Instance) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range inst.Schema().Fields() {
		v, err := inst.Get(f.Name())
		if err != nil {
			return nil, err
		}
		val, err := valueNode(v)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name()},
			val,
		)
	}
	return node, nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case *binstruct.Instance:
		return toNode(x)
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range x {
			n, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, n)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(x); err != nil {
			return nil, err
		}
		return node, nil
	}
}
