package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sbenjam1n/docbot/internal/form"
	"github.com/sbenjam1n/docbot/internal/i18n"
)

const (
	requiredMark = `\* `
	doneMark     = " ✅"
)

// RenderView renders n and its descendants as MarkdownV2 text. A hint line
// explaining the required marker is added when the subtree has required
// fields.
func RenderView(n form.Node, tr i18n.Translator) string {
	text := renderNode(n, tr)
	if hasRequired(n) {
		text += "\n\n_" + requiredMark + `\- ` + form.EscapeMarkdown(tr.Message(i18n.KeyRequiredHint, nil)) + "_"
	}
	return text
}

func renderNode(n form.Node, tr i18n.Translator) string {
	switch n := n.(type) {
	case *form.Object:
		parts := []string{heading(n)}
		for _, f := range n.Fields() {
			line := `\- `
			if f.Node.Kind() != form.KindPrimitive && f.Node.Required() {
				line += requiredMark
			}
			parts = append(parts, line+renderNode(f.Node, tr))
		}
		return strings.Join(parts, "\n")
	case *form.Array:
		parts := []string{heading(n)}
		for i, item := range n.Items() {
			parts = append(parts, fmt.Sprintf(`%d\. %s`, i+1, renderNode(item, tr)))
		}
		return strings.Join(parts, "\n\n")
	case *form.Primitive:
		text := n.Description() + ": "
		if n.Required() && !n.IsSet() {
			text = requiredMark + text
		}
		if n.IsSet() {
			text += "`" + form.EscapeCode(FormatValue(n.Value(), tr)) + "`"
		}
		return text
	}
	return ""
}

func heading(n form.Node) string {
	return "*" + n.Title() + "*\n_" + n.Description() + "_"
}

func hasRequired(n form.Node) bool {
	if n.Required() {
		return true
	}
	switch n := n.(type) {
	case *form.Object:
		for _, f := range n.Fields() {
			if hasRequired(f.Node) {
				return true
			}
		}
	case *form.Array:
		for _, item := range n.Items() {
			if hasRequired(item) {
				return true
			}
		}
	}
	return false
}

// FormatValue renders a primitive value for display. A nil translator prints
// booleans as true/false.
func FormatValue(v any, tr i18n.Translator) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		if tr == nil {
			return strconv.FormatBool(v)
		}
		if v {
			return tr.Message(i18n.KeyYes, nil)
		}
		return tr.Message(i18n.KeyNo, nil)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	}
	return fmt.Sprint(v)
}

// Question returns the prompt shown while a primitive waits for input.
func Question(n form.Node, tr i18n.Translator) string {
	if q := n.Question(); q != "" {
		return q
	}
	return tr.Message(i18n.KeyQuestionDefault, map[string]string{"description": n.Description()})
}

// ActionMenu lists the actions available on n. The root offers generation
// once the data is complete; inner nodes offer back, and array items delete.
func ActionMenu(n form.Node, tr i18n.Translator) []Button {
	var out []Button
	if n.Kind() == form.KindArray {
		out = append(out, Button{Text: tr.Message(i18n.KeyAddItem, nil), Data: ActionKey(ActionAddItem)})
	}
	parent := n.Parent()
	if parent == nil {
		if form.CanGenerate(n) {
			out = append(out, Button{Text: tr.Message(i18n.KeyGenerate, nil), Data: ActionKey(ActionGenerate)})
		}
		return out
	}
	out = append(out, Button{Text: tr.Message(i18n.KeyBack, nil), Data: ActionKey(ActionBack)})
	if parent.Kind() == form.KindArray {
		out = append(out, Button{Text: tr.Message(i18n.KeyDelete, nil), Data: ActionKey(ActionDelete)})
	}
	return out
}

// DataMenu lists one entry per child of n, marked once its required data is
// filled.
func DataMenu(n form.Node) []Button {
	var out []Button
	switch n := n.(type) {
	case *form.Object:
		for _, f := range n.Fields() {
			out = append(out, Button{Text: label(f.Node.Label(), f.Node), Data: DataKey(f.Name)})
		}
	case *form.Array:
		for i, item := range n.Items() {
			text := fmt.Sprintf("%d - %s", i+1, item.Label())
			out = append(out, Button{Text: label(text, item), Data: DataKey(strconv.Itoa(i))})
		}
	}
	return out
}

func label(text string, n form.Node) string {
	if n.FilledRequired() {
		return text + doneMark
	}
	return text
}

// Menu builds the full keyboard of n: the paginated data menu followed by a
// row of actions.
func Menu(n form.Node, page int, layout Layout, tr i18n.Translator) Keyboard {
	kb := Paginate(DataMenu(n), page, layout)
	if actions := ActionMenu(n, tr); len(actions) > 0 {
		kb = append(kb, actions)
	}
	return kb
}
