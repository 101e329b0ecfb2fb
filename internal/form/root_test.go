package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestForwardBackwardSymmetry(t *testing.T) {
	r := mustRoot(t, orderSchema)
	lines, err := r.Forward("lines")
	if err != nil {
		t.Fatalf("Forward(lines): %v", err)
	}
	if _, err := r.Forward(AppendStep); err != nil {
		t.Fatalf("Forward(append): %v", err)
	}
	back, err := r.Backward()
	if err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if back != lines {
		t.Fatal("Backward after append did not return to the array")
	}

	// Plain steps return to the exact prior node.
	before, _ := r.Active()
	if _, err := r.Forward("0"); err != nil {
		t.Fatalf("Forward(0): %v", err)
	}
	if _, err := r.Forward("sku"); err != nil {
		t.Fatalf("Forward(sku): %v", err)
	}
	if _, err := r.Backward(); err != nil {
		t.Fatal(err)
	}
	after, err := r.Backward()
	if err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Fatal("forward/backward is not symmetric")
	}
}

func TestAppendThenDeleteRemovesNewItem(t *testing.T) {
	r := mustRoot(t, `{"type": "object", "properties": {"tags": {"type": "array", "items": {"type": "string"}}}}`)
	arr, _ := r.Forward("tags")
	first, _ := r.Forward(AppendStep)
	_ = first.SetValue("one")
	_, _ = r.Backward()

	second, err := r.Forward(AppendStep)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"tags", "1"}, r.Path()); diff != "" {
		t.Fatalf("path after append (-want +got):\n%s", diff)
	}
	_ = second.SetValue("two")

	active, err := r.DeleteActive()
	if err != nil {
		t.Fatalf("DeleteActive: %v", err)
	}
	if active != arr {
		t.Fatal("DeleteActive should activate the array")
	}
	a := arr.(*Array)
	if a.Len() != 1 || a.Items()[0] != first {
		t.Fatalf("items after delete = %v", a.Value())
	}
	if diff := cmp.Diff([]string{"tags"}, r.Path()); diff != "" {
		t.Fatalf("path after delete (-want +got):\n%s", diff)
	}
}

func TestForwardInvalidStep(t *testing.T) {
	r := mustRoot(t, personSchema)
	if _, err := r.Forward("missing"); !errors.Is(err, ErrNoSuchStep) {
		t.Fatalf("Forward(missing) = %v, want ErrNoSuchStep", err)
	}
	if _, err := r.Forward(AppendStep); !errors.Is(err, ErrNoSuchStep) {
		t.Fatalf("append on object = %v, want ErrNoSuchStep", err)
	}
	if _, err := r.Forward("name"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Forward("x"); !errors.Is(err, ErrNoSuchStep) {
		t.Fatalf("Forward on primitive = %v, want ErrNoSuchStep", err)
	}
	if r.Depth() != 1 {
		t.Fatalf("failed forward changed the path: %v", r.Path())
	}
}

func TestBackwardAtRoot(t *testing.T) {
	r := mustRoot(t, personSchema)
	if _, err := r.Backward(); !errors.Is(err, ErrAtRoot) {
		t.Fatalf("Backward at root = %v, want ErrAtRoot", err)
	}
}

func TestDeleteActiveOutsideArray(t *testing.T) {
	r := mustRoot(t, personSchema)
	if _, err := r.DeleteActive(); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("DeleteActive at root = %v, want ErrInvalidOperation", err)
	}
	_, _ = r.Forward("name")
	if _, err := r.DeleteActive(); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("DeleteActive on object child = %v, want ErrInvalidOperation", err)
	}
	if r.Depth() != 1 {
		t.Fatal("failed delete changed the path")
	}
}

func TestActiveBrokenPath(t *testing.T) {
	r := mustRoot(t, personSchema)
	r.path = []string{"nope"}
	if _, err := r.Active(); !errors.Is(err, ErrBrokenPath) {
		t.Fatalf("Active = %v, want ErrBrokenPath", err)
	}
}

func TestRequiredPrimitiveArrayScenario(t *testing.T) {
	r := mustRoot(t, `{"type": "object", "required": ["phones"], "properties": {"phones": {"type": "array", "items": {"type": "string"}}}}`)
	phones, _ := r.Tree().Property("phones")
	arr := phones.(*Array)
	first, _ := arr.AddItem()
	second, _ := arr.AddItem()
	if err := arr.Remove(second); err != nil {
		t.Fatal(err)
	}
	if arr.Len() != 1 || arr.Items()[0] != first {
		t.Fatal("expected only the first item to remain")
	}
	if r.CanGenerate() {
		t.Fatal("required item without value should block generation")
	}
	_ = first.SetValue("+1 555")
	if !r.CanGenerate() {
		t.Fatal("filled array should allow generation")
	}
}
