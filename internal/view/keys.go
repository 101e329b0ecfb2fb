package view

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback data lives in disjoint namespaces so that a schema property can
// never be mistaken for an action.
const (
	KeyNoop = "noop"

	prefixData     = "d:"
	prefixAction   = "a:"
	prefixPage     = "p:"
	prefixTemplate = "t:"
)

// Actions exposed by the action menu.
const (
	ActionBack     = "back"
	ActionDelete   = "delete"
	ActionAddItem  = "add"
	ActionGenerate = "generate"
)

// CallbackKind classifies a button press.
type CallbackKind int

const (
	CallbackNoop CallbackKind = iota
	CallbackData
	CallbackAction
	CallbackPage
	CallbackTemplate
)

// Callback is decoded button data.
type Callback struct {
	Kind  CallbackKind
	Value string
	Page  int
}

// DataKey encodes a navigation step.
func DataKey(step string) string { return prefixData + step }

// ActionKey encodes an action.
func ActionKey(action string) string { return prefixAction + action }

// PageKey encodes a page switch.
func PageKey(page int) string { return prefixPage + strconv.Itoa(page) }

// TemplateKey encodes a template choice.
func TemplateKey(name string) string { return prefixTemplate + name }

// ParseCallback decodes button data produced by the key functions above.
func ParseCallback(data string) (Callback, error) {
	switch {
	case data == KeyNoop:
		return Callback{Kind: CallbackNoop}, nil
	case strings.HasPrefix(data, prefixData):
		return Callback{Kind: CallbackData, Value: data[len(prefixData):]}, nil
	case strings.HasPrefix(data, prefixAction):
		return Callback{Kind: CallbackAction, Value: data[len(prefixAction):]}, nil
	case strings.HasPrefix(data, prefixTemplate):
		return Callback{Kind: CallbackTemplate, Value: data[len(prefixTemplate):]}, nil
	case strings.HasPrefix(data, prefixPage):
		n, err := strconv.Atoi(data[len(prefixPage):])
		if err != nil || n < 0 {
			return Callback{}, fmt.Errorf("bad page callback %q", data)
		}
		return Callback{Kind: CallbackPage, Page: n}, nil
	}
	return Callback{}, fmt.Errorf("unknown callback %q", data)
}
