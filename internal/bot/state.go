package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/sbenjam1n/docbot/internal/form"
)

type stage string

const (
	stageChoose stage = "choose"
	stageView   stage = "view"
	stageInput  stage = "input"
)

// state is the per-user session envelope persisted between updates.
type state struct {
	Stage    stage           `json:"stage"`
	Template string          `json:"template,omitempty"`
	Page     int             `json:"page"`
	Form     json.RawMessage `json:"form,omitempty"`

	root *form.Root
}

func stageOf(n form.Node) stage {
	if n.Kind() == form.KindPrimitive {
		return stageInput
	}
	return stageView
}

// errCorruptSession marks a stored session that no longer decodes.
var errCorruptSession = errors.New("corrupt session")

func decodeState(blob []byte) (*state, error) {
	var st state
	if err := json.Unmarshal(blob, &st); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorruptSession, err)
	}
	if len(st.Form) > 0 {
		root, err := form.Unmarshal(st.Form)
		if err != nil {
			return nil, fmt.Errorf("%w: form: %w", errCorruptSession, err)
		}
		st.root = root
	}
	return &st, nil
}

func (b *Bot) loadState(ctx context.Context, u Update) (*state, error) {
	blob, err := b.store.Load(ctx, u.Key())
	if err != nil {
		return nil, err
	}
	st, err := decodeState(blob)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", u.Key(), err)
	}
	return st, nil
}

func (b *Bot) saveState(ctx context.Context, u Update, st *state) error {
	st.Form = nil
	if st.root != nil {
		raw, err := form.Marshal(st.root)
		if err != nil {
			return fmt.Errorf("encode form: %w", err)
		}
		st.Form = raw
	}
	blob, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := b.store.Save(ctx, u.Key(), blob); err != nil {
		return fmt.Errorf("save session %s: %w", u.Key(), err)
	}
	return nil
}

// Snapshot is a read-only view of a stored session.
type Snapshot struct {
	Stage    string
	Template string
	Page     int
	// Form is nil while a template is being chosen.
	Form *form.Root
}

// Inspect decodes a session blob as stored by the bot.
func Inspect(blob []byte) (Snapshot, error) {
	st, err := decodeState(blob)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Stage: string(st.Stage), Template: st.Template, Page: st.Page, Form: st.root}, nil
}
