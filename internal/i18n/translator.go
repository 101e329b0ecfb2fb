package i18n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Translator retrieves localized messages by key. args fill "{name}"
// placeholders.
type Translator interface {
	Message(key string, args map[string]string) string
}

// dictTranslator looks a key up in the chosen language, then in English.
type dictTranslator struct {
	lang     string
	messages map[string]string
	fallback map[string]string
}

// New returns the built-in dictionary for lang ("ru" or "en").
func New(lang string) Translator {
	msgs, ok := builtin[lang]
	if !ok {
		lang, msgs = "en", builtin["en"]
	}
	return dictTranslator{lang: lang, messages: msgs, fallback: builtin["en"]}
}

// Load reads <dir>/<lang>.yaml, a flat key: message mapping, over the
// built-in dictionary. A missing file yields the built-in dictionary.
func Load(dir, lang string) (Translator, error) {
	base := New(lang).(dictTranslator)
	data, err := os.ReadFile(filepath.Join(dir, lang+".yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read locale %s: %w", lang, err)
	}
	var file map[string]string
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse locale %s: %w", lang, err)
	}
	merged := make(map[string]string, len(base.messages)+len(file))
	for k, v := range base.messages {
		merged[k] = v
	}
	for k, v := range file {
		merged[k] = v
	}
	return dictTranslator{lang: lang, messages: merged, fallback: base.fallback}, nil
}

func (t dictTranslator) Message(key string, args map[string]string) string {
	msg, ok := t.messages[key]
	if !ok {
		if msg, ok = t.fallback[key]; !ok {
			return key
		}
	}
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args)*2)
	for k, v := range args {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
