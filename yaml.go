package strif

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PropEntry names a property and its options.
type PropEntry struct {
	Name string
	PropOptions
}

// PropList is an ordered set of property registrations. Order matters: when
// two entries share a name, the later one wins at render time.
//
// In YAML a PropList is written as a mapping from name to options and keeps
// document order:
//
//	props:
//	  name: {}
//	  city:
//	    accessor: address[city]
//	    transformers: [upper]
type PropList []PropEntry

// UnmarshalYAML decodes a mapping of property name to options.
func (l *PropList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: props must be a mapping, line %d", ErrInvalidArgument, node.Line)
	}
	out := make(PropList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var entry PropEntry
		if err := key.Decode(&entry.Name); err != nil {
			return err
		}
		if val.Tag != "!!null" {
			if err := val.Decode(&entry.PropOptions); err != nil {
				return fmt.Errorf("prop %q: %w", entry.Name, err)
			}
		}
		out = append(out, entry)
	}
	*l = out
	return nil
}

// MarshalYAML encodes the list as a mapping in list order.
func (l PropList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range l {
		var key, val yaml.Node
		if err := key.Encode(entry.Name); err != nil {
			return nil, err
		}
		if err := val.Encode(entry.PropOptions); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}

// ParseTemplateOptions decodes template options from YAML (or JSON) bytes.
func ParseTemplateOptions(data []byte) (TemplateOptions, error) {
	var opts TemplateOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return TemplateOptions{}, fmt.Errorf("%w: template options: %w", ErrInvalidArgument, err)
	}
	return opts, nil
}
