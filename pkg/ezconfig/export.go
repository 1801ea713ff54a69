// File: pkg/ezconfig/export.go
package ezconfig

import (
	"fmt"
	"io"
	"math"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// ExportFormat selects the encoding used by Export.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Export writes the non-virtual fields as a name -> value mapping. None
// becomes null. YAML output keeps the field order; JSON keys are sorted.
// JSON has no NaN or infinity, so those floats are written as the strings
// "NaN", "+Inf" and "-Inf"; YAML uses its native .nan and .inf.
func (c *Config) Export(w io.Writer, format ExportFormat) error {
	switch format {
	case FormatJSON:
		values := make(map[string]any, len(c.order))
		for _, name := range c.order {
			if f := c.fields[name]; !f.virtual {
				values[name] = jsonValue(f.value)
			}
		}
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode config as json: %w", err)
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write json: %w", err)
		}
		return nil

	case FormatYAML:
		doc := &yaml.Node{Kind: yaml.MappingNode}
		for _, name := range c.order {
			f := c.fields[name]
			if f.virtual {
				continue
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
			val := &yaml.Node{}
			if err := val.Encode(f.value.Any()); err != nil {
				return fmt.Errorf("failed to encode field %q: %w", name, err)
			}
			if f.comment != "" {
				key.HeadComment = f.comment
			}
			doc.Content = append(doc.Content, key, val)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode config as yaml: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func jsonValue(v Value) any {
	if f, ok := v.Float(); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return formatFloat(f)
	}
	return v.Any()
}
