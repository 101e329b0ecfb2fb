package form

import (
	"fmt"
	"slices"
	"strconv"
)

// Kind tags the three context shapes.
type Kind uint8

const (
	KindObject Kind = iota + 1
	KindArray
	KindPrimitive
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindPrimitive:
		return "primitive"
	}
	return "unknown"
}

func parseKind(s string) (Kind, bool) {
	switch s {
	case "object":
		return KindObject, true
	case "array":
		return KindArray, true
	case "primitive":
		return KindPrimitive, true
	}
	return 0, false
}

const (
	defaultTitle       = "No title"
	defaultDescription = "No description"
	defaultLabel       = "No button name"
)

// Node is a runtime context mirroring one schema element. The concrete types
// are *Object, *Array and *Primitive.
//
// A parent owns its children; Parent is a navigation aid only.
type Node interface {
	Kind() Kind
	Parent() Node
	Required() bool

	// Title, Description and Question are MarkdownV2-escaped. Label is the
	// raw button caption.
	Title() string
	Description() string
	Question() string
	Label() string

	// Value assembles the collected data: map[string]any for objects, []any
	// for arrays, the typed scalar or nil for primitives.
	Value() any
	FilledRequired() bool
	// Property resolves one navigation step.
	Property(step string) (Node, bool)
	// SetValue coerces and stores user text. Only primitives accept it.
	SetValue(raw string) error
	Clear()

	meta() *header
}

type header struct {
	parent      Node
	required    bool
	title       string
	description string
	question    string
	label       string
}

func newHeader(s *Schema, parent Node, required bool, labelFallback string) header {
	h := header{
		parent:      parent,
		required:    required,
		title:       orDefault(s.Title, defaultTitle),
		description: orDefault(s.Description, defaultDescription),
		label:       s.ShortDescription,
	}
	if s.Question != "" {
		h.question = EscapeMarkdown(s.Question)
	}
	if h.label == "" {
		h.label = orDefault(labelFallback, defaultLabel)
	}
	h.title = EscapeMarkdown(h.title)
	h.description = EscapeMarkdown(h.description)
	return h
}

func (h *header) Parent() Node        { return h.parent }
func (h *header) Required() bool      { return h.required }
func (h *header) Title() string       { return h.title }
func (h *header) Description() string { return h.description }
func (h *header) Question() string    { return h.question }
func (h *header) Label() string       { return h.label }
func (h *header) meta() *header       { return h }

// Field is one named child of an object.
type Field struct {
	Name string
	Node Node
}

// Object is the context of an object schema; children keep declaration order.
type Object struct {
	header
	fields []Field
}

// Array is the context of an array schema. Items are all built from the same
// item schema.
type Array struct {
	header
	items      []Node
	itemSchema *Schema
}

// Primitive is a leaf accepting direct user input.
type Primitive struct {
	header
	typ    string
	format string
	value  any
}

// Build creates the context tree for s. parent is nil for a root.
func Build(s *Schema, parent Node, required bool) (Node, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrUnknownSchemaType)
	}
	switch s.Type {
	case TypeObject:
		o := &Object{header: newHeader(s, parent, required, s.Title)}
		o.fields = make([]Field, 0, len(s.Properties))
		for _, p := range s.Properties {
			child, err := Build(p.Schema, o, s.IsRequired(p.Name))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Name, err)
			}
			o.fields = append(o.fields, Field{Name: p.Name, Node: child})
		}
		return o, nil
	case TypeArray:
		if s.Items == nil {
			return nil, fmt.Errorf("%w: array without items", ErrUnknownSchemaType)
		}
		return &Array{header: newHeader(s, parent, required, s.Title), itemSchema: s.Items}, nil
	case TypeString, TypeInteger, TypeNumber, TypeBoolean:
		p := &Primitive{
			header: newHeader(s, parent, required, s.Description),
			typ:    s.Type,
			format: s.Format,
		}
		if s.Default != nil {
			v, err := defaultValue(s.Type, s.Format, s.Default)
			if err != nil {
				return nil, fmt.Errorf("%w: default %v: %v", ErrUnknownSchemaType, s.Default, err)
			}
			p.value = v
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSchemaType, s.Type)
}

// CanGenerate reports whether n is a root whose required data is complete.
func CanGenerate(n Node) bool {
	return n.Parent() == nil && n.FilledRequired()
}

// GenerateContext returns the value tree handed to document rendering.
func GenerateContext(n Node) (any, error) {
	if !CanGenerate(n) {
		return nil, ErrIncompleteData
	}
	return n.Value(), nil
}

// ---- Object ----

func (o *Object) Kind() Kind { return KindObject }

// Fields returns the children in declaration order.
func (o *Object) Fields() []Field { return slices.Clone(o.fields) }

func (o *Object) Value() any {
	out := make(map[string]any, len(o.fields))
	for _, f := range o.fields {
		out[f.Name] = f.Node.Value()
	}
	return out
}

func (o *Object) FilledRequired() bool {
	for _, f := range o.fields {
		if f.Node.Required() && !f.Node.FilledRequired() {
			return false
		}
	}
	return true
}

func (o *Object) Property(step string) (Node, bool) {
	for _, f := range o.fields {
		if f.Name == step {
			return f.Node, true
		}
	}
	return nil, false
}

func (o *Object) SetValue(string) error {
	return fmt.Errorf("%w: object does not accept a value", ErrInvalidOperation)
}

func (o *Object) Clear() {
	for _, f := range o.fields {
		f.Node.Clear()
	}
}

// ---- Array ----

func (a *Array) Kind() Kind { return KindArray }

// Items returns the current items in order.
func (a *Array) Items() []Node { return slices.Clone(a.items) }

// Len returns the number of items.
func (a *Array) Len() int { return len(a.items) }

// ItemSchema returns the schema new items are built from.
func (a *Array) ItemSchema() *Schema { return a.itemSchema }

func (a *Array) Value() any {
	out := make([]any, len(a.items))
	for i, item := range a.items {
		out[i] = item.Value()
	}
	return out
}

func (a *Array) FilledRequired() bool {
	if a.required && len(a.items) == 0 {
		return false
	}
	for _, item := range a.items {
		if !item.FilledRequired() {
			return false
		}
	}
	return true
}

func (a *Array) Property(step string) (Node, bool) {
	i, err := strconv.Atoi(step)
	if err != nil || strconv.Itoa(i) != step || i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

func (a *Array) SetValue(string) error {
	return fmt.Errorf("%w: array does not accept a value", ErrInvalidOperation)
}

// AddItem appends a new item; the array's required flag carries over.
func (a *Array) AddItem() (Node, error) {
	item, err := Build(a.itemSchema, a, a.required)
	if err != nil {
		return nil, err
	}
	a.items = append(a.items, item)
	return item, nil
}

// Remove deletes child by identity. Sibling order is preserved.
func (a *Array) Remove(child Node) error {
	i := slices.Index(a.items, child)
	if i < 0 {
		return fmt.Errorf("%w: node is not an item of this array", ErrInvalidOperation)
	}
	a.items = slices.Delete(a.items, i, i+1)
	return nil
}

func (a *Array) Clear() { a.items = nil }

// ---- Primitive ----

func (p *Primitive) Kind() Kind { return KindPrimitive }

// Type returns the declared schema type.
func (p *Primitive) Type() string { return p.typ }

// Format returns the declared format, possibly empty.
func (p *Primitive) Format() string { return p.format }

// IsSet reports whether a value is stored.
func (p *Primitive) IsSet() bool { return p.value != nil }

func (p *Primitive) Value() any { return p.value }

func (p *Primitive) FilledRequired() bool { return !p.required || p.value != nil }

func (p *Primitive) Property(string) (Node, bool) { return nil, false }

// SetValue runs format then validate; the stored value only changes when
// both succeed.
func (p *Primitive) SetValue(raw string) error {
	v, err := Format(p.typ, raw)
	if err != nil {
		return err
	}
	if err := Validate(p.format, v); err != nil {
		return err
	}
	p.value = v
	return nil
}

func (p *Primitive) Clear() { p.value = nil }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
