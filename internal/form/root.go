package form

import (
	"fmt"
	"slices"
	"strconv"
)

// AppendStep is the reserved step that appends a new item to the active
// array and opens it.
const AppendStep = "+"

// Root owns a context tree and the active path into it. Navigation state only
// exists here, never on inner nodes.
type Root struct {
	tree Node
	path []string
}

// NewRoot builds the context tree of a template schema.
func NewRoot(s *Schema) (*Root, error) {
	tree, err := Build(s, nil, false)
	if err != nil {
		return nil, err
	}
	return &Root{tree: tree}, nil
}

// Tree returns the root context.
func (r *Root) Tree() Node { return r.tree }

// Path returns a copy of the active path.
func (r *Root) Path() []string { return slices.Clone(r.path) }

// Depth returns the number of steps between the root and the active node.
func (r *Root) Depth() int { return len(r.path) }

// Reset makes the root context active again.
func (r *Root) Reset() { r.path = nil }

// Active replays the path from the root.
func (r *Root) Active() (Node, error) {
	return resolve(r.tree, r.path)
}

func resolve(n Node, path []string) (Node, error) {
	for i, step := range path {
		next, ok := n.Property(step)
		if !ok {
			return nil, fmt.Errorf("%w: step %d (%q)", ErrBrokenPath, i, step)
		}
		n = next
	}
	return n, nil
}

// Forward opens the child step of the active node. On an array, AppendStep
// appends a new item and opens it.
func (r *Root) Forward(step string) (Node, error) {
	active, err := r.Active()
	if err != nil {
		return nil, err
	}
	if child, ok := active.Property(step); ok {
		r.path = append(r.path, step)
		return child, nil
	}
	if arr, ok := active.(*Array); ok && step == AppendStep {
		item, err := arr.AddItem()
		if err != nil {
			return nil, err
		}
		r.path = append(r.path, strconv.Itoa(arr.Len()-1))
		return item, nil
	}
	return nil, fmt.Errorf("%w: %q on %s", ErrNoSuchStep, step, active.Kind())
}

// Backward closes the active node and returns its parent.
func (r *Root) Backward() (Node, error) {
	if len(r.path) == 0 {
		return nil, ErrAtRoot
	}
	prev := r.path
	r.path = r.path[:len(r.path)-1]
	n, err := r.Active()
	if err != nil {
		r.path = prev
		return nil, err
	}
	return n, nil
}

// DeleteActive removes the active array item and makes its array active.
func (r *Root) DeleteActive() (Node, error) {
	active, err := r.Active()
	if err != nil {
		return nil, err
	}
	arr, ok := active.Parent().(*Array)
	if !ok || len(r.path) == 0 {
		return nil, fmt.Errorf("%w: active node is not an array item", ErrInvalidOperation)
	}
	if err := arr.Remove(active); err != nil {
		return nil, err
	}
	r.path = r.path[:len(r.path)-1]
	return arr, nil
}

// CanGenerate reports whether all required data of the tree is filled.
func (r *Root) CanGenerate() bool { return CanGenerate(r.tree) }

// Generate returns the collected value tree.
func (r *Root) Generate() (any, error) { return GenerateContext(r.tree) }
