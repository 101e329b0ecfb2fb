package form

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// StateVersion is bumped when the persisted layout changes incompatibly.
const StateVersion = 1

var errStateVersion = errors.New("unsupported state version")

// Display strings are stored as rendered so that later template edits do not
// alter sessions already in flight.
type nodeState struct {
	Kind        string          `json:"kind"`
	Required    bool            `json:"required,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Question    string          `json:"question,omitempty"`
	Label       string          `json:"label"`
	Type        string          `json:"type,omitempty"`
	Format      string          `json:"format,omitempty"`
	Value       json.RawMessage `json:"value,omitempty"`
	Fields      []fieldState    `json:"fields,omitempty"`
	Items       []nodeState     `json:"items,omitempty"`
	ItemSchema  *Schema         `json:"item_schema,omitempty"`
}

type fieldState struct {
	Name string    `json:"name"`
	Node nodeState `json:"node"`
}

type rootState struct {
	Version int       `json:"version"`
	Path    []string  `json:"path,omitempty"`
	Tree    nodeState `json:"tree"`
}

// Marshal serializes the whole root, active path included.
func Marshal(r *Root) ([]byte, error) {
	tree, err := encodeNode(r.tree)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(rootState{Version: StateVersion, Path: r.path, Tree: tree})
	if err != nil {
		return nil, fmt.Errorf("marshal form state: %w", err)
	}
	return data, nil
}

// Unmarshal restores a root produced by Marshal. Parent links are rebuilt
// while descending.
func Unmarshal(data []byte) (*Root, error) {
	var st rootState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshal form state: %w", err)
	}
	if st.Version > StateVersion {
		return nil, fmt.Errorf("%w: %d", errStateVersion, st.Version)
	}
	tree, err := decodeNode(st.Tree, nil)
	if err != nil {
		return nil, err
	}
	return &Root{tree: tree, path: st.Path}, nil
}

func encodeNode(n Node) (nodeState, error) {
	h := n.meta()
	st := nodeState{
		Kind:        n.Kind().String(),
		Required:    h.required,
		Title:       h.title,
		Description: h.description,
		Question:    h.question,
		Label:       h.label,
	}
	switch n := n.(type) {
	case *Object:
		st.Fields = make([]fieldState, 0, len(n.fields))
		for _, f := range n.fields {
			child, err := encodeNode(f.Node)
			if err != nil {
				return nodeState{}, fmt.Errorf("%s: %w", f.Name, err)
			}
			st.Fields = append(st.Fields, fieldState{Name: f.Name, Node: child})
		}
	case *Array:
		st.ItemSchema = n.itemSchema
		st.Items = make([]nodeState, 0, len(n.items))
		for i, item := range n.items {
			child, err := encodeNode(item)
			if err != nil {
				return nodeState{}, fmt.Errorf("%d: %w", i, err)
			}
			st.Items = append(st.Items, child)
		}
	case *Primitive:
		st.Type = n.typ
		st.Format = n.format
		if n.value != nil {
			raw, err := json.Marshal(n.value)
			if err != nil {
				return nodeState{}, fmt.Errorf("encode value: %w", err)
			}
			st.Value = raw
		}
	}
	return st, nil
}

func decodeNode(st nodeState, parent Node) (Node, error) {
	kind, ok := parseKind(st.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: stored kind %q", ErrUnknownSchemaType, st.Kind)
	}
	h := header{
		parent:      parent,
		required:    st.Required,
		title:       st.Title,
		description: st.Description,
		question:    st.Question,
		label:       st.Label,
	}
	switch kind {
	case KindObject:
		o := &Object{header: h}
		o.fields = make([]Field, 0, len(st.Fields))
		for _, f := range st.Fields {
			child, err := decodeNode(f.Node, o)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Name, err)
			}
			o.fields = append(o.fields, Field{Name: f.Name, Node: child})
		}
		return o, nil
	case KindArray:
		if st.ItemSchema == nil {
			return nil, fmt.Errorf("%w: stored array without item schema", ErrUnknownSchemaType)
		}
		a := &Array{header: h, itemSchema: st.ItemSchema}
		for i, item := range st.Items {
			child, err := decodeNode(item, a)
			if err != nil {
				return nil, fmt.Errorf("%d: %w", i, err)
			}
			a.items = append(a.items, child)
		}
		return a, nil
	default:
		p := &Primitive{header: h, typ: st.Type, format: st.Format}
		if len(st.Value) > 0 {
			v, err := decodeValue(st.Type, st.Value)
			if err != nil {
				return nil, err
			}
			p.value = v
		}
		return p, nil
	}
}

func decodeValue(typ string, raw json.RawMessage) (any, error) {
	var (
		v   any
		err error
	)
	switch typ {
	case TypeInteger:
		var n int64
		err = json.Unmarshal(raw, &n)
		v = n
	case TypeNumber:
		var f float64
		err = json.Unmarshal(raw, &f)
		v = f
	case TypeBoolean:
		var b bool
		err = json.Unmarshal(raw, &b)
		v = b
	case TypeString:
		var s string
		err = json.Unmarshal(raw, &s)
		v = s
	default:
		err = json.Unmarshal(raw, &v)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s value: %w", typ, err)
	}
	return v, nil
}
