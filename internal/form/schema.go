package form

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema types understood by the engine.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// Schema is one node of a template schema. Only the subset of JSON Schema the
// form engine understands is decoded; unknown keys are ignored.
type Schema struct {
	Type             string     `json:"type" yaml:"type"`
	Title            string     `json:"title,omitempty" yaml:"title"`
	Description      string     `json:"description,omitempty" yaml:"description"`
	ShortDescription string     `json:"short_description,omitempty" yaml:"short_description"`
	Question         string     `json:"question,omitempty" yaml:"question"`
	Format           string     `json:"format,omitempty" yaml:"format"`
	Default          any        `json:"default,omitempty" yaml:"default"`
	Properties       Properties `json:"properties,omitempty" yaml:"properties"`
	Required         []string   `json:"required,omitempty" yaml:"required"`
	Items            *Schema    `json:"items,omitempty" yaml:"items"`
}

// Property is a named object member. Properties keep declaration order.
type Property struct {
	Name   string  `json:"name"`
	Schema *Schema `json:"schema"`
}

// Properties is the ordered property list of an object schema.
type Properties []Property

// UnmarshalYAML decodes a mapping node pair by pair so the declaration order
// of the source document survives.
func (p *Properties) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("properties: expected mapping, got %s", nodeKind(value.Kind))
	}
	out := make(Properties, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var name string
		if err := value.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("properties: key at line %d: %w", value.Content[i].Line, err)
		}
		s := &Schema{}
		if err := value.Content[i+1].Decode(s); err != nil {
			return fmt.Errorf("properties.%s: %w", name, err)
		}
		out = append(out, Property{Name: name, Schema: s})
	}
	*p = out
	return nil
}

// Lookup returns the schema of the named property.
func (p Properties) Lookup(name string) (*Schema, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// IsRequired reports whether name is listed in the schema's required set.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// ParseSchema decodes a template schema. JSON documents are accepted as they
// are valid YAML.
func ParseSchema(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if s.Type == "" {
		return nil, fmt.Errorf("parse schema: %w: missing root type", ErrUnknownSchemaType)
	}
	return s, nil
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
