package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const personSchema = `{
  "type": "object",
  "title": "Person",
  "description": "Basic data",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "description": "Full name"},
    "age": {"type": "integer", "description": "Age"}
  }
}`

const orderSchema = `
type: object
title: Order
required: [number, lines]
properties:
  number:
    type: integer
    description: Order number
  date:
    type: string
    format: date
    description: Order date
  lines:
    type: array
    title: Lines
    items:
      type: object
      title: Line
      required: [sku]
      properties:
        sku: {type: string, description: SKU}
        qty: {type: integer, description: Quantity, default: 1}
  notes:
    type: array
    title: Notes
    items: {type: string, description: Note}
`

func mustSchema(t *testing.T, src string) *Schema {
	t.Helper()
	s, err := ParseSchema([]byte(src))
	if err != nil {
		t.Fatalf("ParseSchema: %v", err)
	}
	return s
}

func mustRoot(t *testing.T, src string) *Root {
	t.Helper()
	r, err := NewRoot(mustSchema(t, src))
	if err != nil {
		t.Fatalf("NewRoot: %v", err)
	}
	return r
}

func TestParseSchemaKeepsPropertyOrder(t *testing.T) {
	s := mustSchema(t, orderSchema)
	var names []string
	for _, p := range s.Properties {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"number", "date", "lines", "notes"}, names); diff != "" {
		t.Errorf("property order mismatch (-want +got):\n%s", diff)
	}
	if !s.IsRequired("lines") || s.IsRequired("notes") {
		t.Errorf("required set decoded wrong: %v", s.Required)
	}
}

func TestBuildUnknownType(t *testing.T) {
	_, err := NewRoot(mustSchema(t, `{"type": "object", "properties": {"x": {"type": "null"}}}`))
	if !errors.Is(err, ErrUnknownSchemaType) {
		t.Fatalf("NewRoot error = %v, want ErrUnknownSchemaType", err)
	}
	_, err = NewRoot(mustSchema(t, `{"type": "array"}`))
	if !errors.Is(err, ErrUnknownSchemaType) {
		t.Fatalf("array without items error = %v, want ErrUnknownSchemaType", err)
	}
}

func TestBuildDisplayDefaults(t *testing.T) {
	r := mustRoot(t, `{"type": "object", "properties": {"a": {"type": "string"}, "b": {"type": "string", "title": "B.1", "short_description": "b-btn"}}}`)
	obj := r.Tree().(*Object)
	if obj.Title() != defaultTitle || obj.Label() != defaultLabel {
		t.Errorf("object defaults: title=%q label=%q", obj.Title(), obj.Label())
	}
	a, _ := obj.Property("a")
	if a.Description() != defaultDescription || a.Label() != defaultLabel {
		t.Errorf("primitive defaults: description=%q label=%q", a.Description(), a.Label())
	}
	b, _ := obj.Property("b")
	if b.Title() != `B\.1` {
		t.Errorf("title not escaped: %q", b.Title())
	}
	if b.Label() != "b-btn" {
		t.Errorf("label = %q, want raw short_description", b.Label())
	}
}

func TestPersonScenario(t *testing.T) {
	r := mustRoot(t, personSchema)
	if r.CanGenerate() {
		t.Fatal("CanGenerate before name is set")
	}
	name, err := r.Forward("name")
	if err != nil {
		t.Fatalf("Forward(name): %v", err)
	}
	if err := name.SetValue("Alice"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if !r.CanGenerate() {
		t.Fatal("CanGenerate = false with required name set")
	}
	got, err := r.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := map[string]any{"name": "Alice", "age": nil}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestSetValueIsAtomic(t *testing.T) {
	r := mustRoot(t, orderSchema)
	number, _ := r.Tree().Property("number")
	err := number.SetValue("abc")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("SetValue(abc) = %v, want ErrInvalidInput", err)
	}
	if number.Value() != nil {
		t.Fatalf("value changed after failed set: %#v", number.Value())
	}

	date, _ := r.Tree().Property("date")
	if err := date.SetValue("01.01.2024"); err != nil {
		t.Fatalf("SetValue(date): %v", err)
	}
	err = date.SetValue("31.02.2024")
	if !errors.Is(err, ErrFormatMismatch) {
		t.Fatalf("SetValue(31.02.2024) = %v, want ErrFormatMismatch", err)
	}
	if date.Value() != "01.01.2024" {
		t.Fatalf("value changed after failed set: %#v", date.Value())
	}
}

func TestSetValueOnContainers(t *testing.T) {
	r := mustRoot(t, orderSchema)
	if err := r.Tree().SetValue("x"); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("object SetValue = %v, want ErrInvalidOperation", err)
	}
	lines, _ := r.Tree().Property("lines")
	if err := lines.SetValue("x"); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("array SetValue = %v, want ErrInvalidOperation", err)
	}
}

func TestObjectFilledRequiredIgnoresOptionalChildren(t *testing.T) {
	r := mustRoot(t, orderSchema)
	tree := r.Tree()
	number, _ := tree.Property("number")
	_ = number.SetValue("7")
	lines, _ := tree.Property("lines")
	line, _ := lines.(*Array).AddItem()
	sku, _ := line.Property("sku")
	_ = sku.SetValue("A-1")

	// An optional array holding an incomplete item does not block the object.
	notes, _ := tree.Property("notes")
	if _, err := notes.(*Array).AddItem(); err != nil {
		t.Fatal(err)
	}
	if notes.FilledRequired() != true {
		t.Fatal("optional notes array with optional items should be filled")
	}
	if !tree.FilledRequired() {
		t.Fatal("tree should be filled")
	}
}

func TestRequiredArray(t *testing.T) {
	r := mustRoot(t, orderSchema)
	lines, _ := r.Tree().Property("lines")
	arr := lines.(*Array)
	if arr.FilledRequired() {
		t.Fatal("empty required array reported filled")
	}
	item, err := arr.AddItem()
	if err != nil {
		t.Fatal(err)
	}
	if !item.Required() {
		t.Error("array item should inherit required flag")
	}
	if arr.FilledRequired() {
		t.Fatal("array with unfilled item reported filled")
	}
	sku, _ := item.Property("sku")
	_ = sku.SetValue("A-1")
	if !arr.FilledRequired() {
		t.Fatal("array with filled item reported unfilled")
	}
	qty, _ := item.Property("qty")
	if qty.Value() != int64(1) {
		t.Errorf("default qty = %#v, want int64(1)", qty.Value())
	}
}

func TestArrayAddAndDelete(t *testing.T) {
	r := mustRoot(t, `{"type": "array", "items": {"type": "string"}}`)
	arr := r.Tree().(*Array)
	first, _ := arr.AddItem()
	second, _ := arr.AddItem()
	if err := arr.Remove(second); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if arr.Len() != 1 || arr.Items()[0] != first {
		t.Fatalf("array after delete = %v, want only the first item", arr.Items())
	}
	if err := arr.Remove(second); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("second Remove = %v, want ErrInvalidOperation", err)
	}

	second, _ = arr.AddItem()
	third, _ := arr.AddItem()
	if err := arr.Remove(second); err != nil {
		t.Fatalf("Remove middle: %v", err)
	}
	if diff := cmp.Diff([]Node{first, third}, arr.Items(), cmp.Comparer(func(a, b Node) bool { return a == b })); diff != "" {
		t.Errorf("order after middle delete (-want +got):\n%s", diff)
	}
}

func TestArrayPropertySteps(t *testing.T) {
	r := mustRoot(t, `{"type": "array", "items": {"type": "string"}}`)
	arr := r.Tree().(*Array)
	_, _ = arr.AddItem()
	for _, step := range []string{"-1", "1", "+0", "00", "x", AppendStep} {
		if _, ok := arr.Property(step); ok {
			t.Errorf("Property(%q) resolved, want miss", step)
		}
	}
	if _, ok := arr.Property("0"); !ok {
		t.Error("Property(0) missed")
	}
}

func TestClear(t *testing.T) {
	r := mustRoot(t, orderSchema)
	tree := r.Tree()
	number, _ := tree.Property("number")
	_ = number.SetValue("1")
	lines, _ := tree.Property("lines")
	_, _ = lines.(*Array).AddItem()

	tree.Clear()
	if number.Value() != nil {
		t.Error("primitive not cleared")
	}
	if lines.(*Array).Len() != 0 {
		t.Error("array not cleared")
	}
}

func TestCanGenerateOnlyAtRoot(t *testing.T) {
	r := mustRoot(t, `{"type": "object", "properties": {"inner": {"type": "object", "required": ["v"], "properties": {"v": {"type": "string"}}}}}`)
	inner, _ := r.Tree().Property("inner")
	v, _ := inner.Property("v")
	_ = v.SetValue("filled")

	st, err := encodeNode(inner)
	if err != nil {
		t.Fatal(err)
	}
	clone, err := decodeNode(st, r.Tree())
	if err != nil {
		t.Fatal(err)
	}
	if !clone.FilledRequired() {
		t.Fatal("clone should be filled")
	}
	if CanGenerate(clone) {
		t.Fatal("non-root clone reported CanGenerate")
	}
	if _, err := GenerateContext(clone); !errors.Is(err, ErrIncompleteData) {
		t.Fatalf("GenerateContext on non-root = %v, want ErrIncompleteData", err)
	}

	detached, err := decodeNode(st, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !CanGenerate(detached) {
		t.Fatal("detached filled subtree should be generatable")
	}
}
