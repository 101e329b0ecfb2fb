package view

import (
	"strconv"
	"strings"

	"github.com/sbenjam1n/docbot/internal/form"
)

// FormatTree prints the context tree as plain text with box-drawing
// connectors, one node per line: name, kind or type, required marker and the
// current value.
func FormatTree(n form.Node) string {
	var sb strings.Builder
	sb.WriteString(describe(n.Label(), n) + "\n")
	writeChildren(&sb, n, "")
	return sb.String()
}

func writeChildren(sb *strings.Builder, n form.Node, prefix string) {
	type child struct {
		name string
		node form.Node
	}
	var children []child
	switch n := n.(type) {
	case *form.Object:
		for _, f := range n.Fields() {
			children = append(children, child{f.Name, f.Node})
		}
	case *form.Array:
		for i, item := range n.Items() {
			children = append(children, child{"[" + strconv.Itoa(i) + "]", item})
		}
	}

	for i, c := range children {
		last := i == len(children)-1
		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}
		sb.WriteString(prefix + connector + describe(c.name, c.node) + "\n")
		writeChildren(sb, c.node, childPrefix)
	}
}

func describe(name string, n form.Node) string {
	var sb strings.Builder
	sb.WriteString(name)
	switch n := n.(type) {
	case *form.Primitive:
		sb.WriteString(" (" + n.Type())
		if n.Format() != "" {
			sb.WriteString(", " + n.Format())
		}
		sb.WriteString(")")
	default:
		sb.WriteString(" (" + n.Kind().String() + ")")
	}
	if n.Required() {
		sb.WriteString(" *")
	}
	if p, ok := n.(*form.Primitive); ok && p.IsSet() {
		sb.WriteString(" = " + FormatValue(p.Value(), nil))
	}
	return sb.String()
}
