package templates

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/sbenjam1n/docbot/internal/form"
)

// ValidationError carries the structural validator's message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return "structural validation: " + e.Message }

// JSONSchema converts a form schema into a JSON Schema document. Formats are
// dropped; they are enforced by the form engine at input time.
func JSONSchema(s *form.Schema) *jsonschema.Schema {
	if s == nil {
		return nil
	}
	js := &jsonschema.Schema{
		Type:        s.Type,
		Title:       s.Title,
		Description: s.Description,
	}
	if len(s.Properties) > 0 {
		js.Properties = make(map[string]*jsonschema.Schema, len(s.Properties))
		for _, p := range s.Properties {
			js.Properties[p.Name] = JSONSchema(p.Schema)
		}
	}
	if len(s.Required) > 0 {
		js.Required = append([]string(nil), s.Required...)
	}
	if s.Items != nil {
		js.Items = JSONSchema(s.Items)
	}
	return js
}

// Validate checks a generated value tree against the template schema. The
// tree is compacted first.
func Validate(s *form.Schema, data any) error {
	resolved, err := JSONSchema(s).Resolve(nil)
	if err != nil {
		return fmt.Errorf("resolve schema: %w", err)
	}
	raw, err := json.Marshal(Compact(data))
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// Compact drops absent values from a generated tree: unset optional fields
// disappear from their object and unfilled array items from their list, the
// way they would be missing from a hand-written JSON document.
func Compact(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			if child == nil {
				continue
			}
			out[k] = Compact(child)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, child := range v {
			if child == nil {
				continue
			}
			out = append(out, Compact(child))
		}
		return out
	}
	return v
}
