// Package bot turns chat updates into form engine operations and replies.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbenjam1n/docbot/internal/form"
	"github.com/sbenjam1n/docbot/internal/i18n"
	"github.com/sbenjam1n/docbot/internal/journal"
	"github.com/sbenjam1n/docbot/internal/logger"
	"github.com/sbenjam1n/docbot/internal/session"
	"github.com/sbenjam1n/docbot/internal/templates"
	"github.com/sbenjam1n/docbot/internal/view"
)

// Commands understood by the bot.
const (
	CommandStart  = "start"
	CommandCreate = "create_document"
	CommandCancel = "cancel"
)

// Recorder stores generated documents. *journal.Journal implements it.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) (journal.Entry, error)
}

// Options configures a Bot. Journal and Logger are optional.
type Options struct {
	Store      session.Store
	Catalog    *templates.Catalog
	Translator i18n.Translator
	Journal    Recorder
	Logger     *logger.Logger
	Layout     view.Layout
}

// Bot is the event handler. It keeps no per-user state in memory: every
// update loads the session, mutates it and stores it back.
type Bot struct {
	store   session.Store
	catalog *templates.Catalog
	tr      i18n.Translator
	journal Recorder
	log     *logger.Logger
	layout  view.Layout
	handler HandlerFunc
}

func New(opts Options) *Bot {
	b := &Bot{
		store:   opts.Store,
		catalog: opts.Catalog,
		tr:      opts.Translator,
		journal: opts.Journal,
		log:     opts.Logger,
		layout:  opts.Layout,
	}
	if b.log == nil {
		b.log = logger.Nop()
	}
	if b.tr == nil {
		b.tr = i18n.New("en")
	}
	b.handler = Chain(b.dispatch, Logging(b.log), DropNoop(), PerUser())
	return b
}

// Handle processes one update through the middleware chain.
func (b *Bot) Handle(ctx context.Context, u Update) ([]Reply, error) {
	return b.handler(ctx, u)
}

func (b *Bot) dispatch(ctx context.Context, u Update) ([]Reply, error) {
	switch {
	case u.IsCallback():
		return b.onCallback(ctx, u)
	case u.IsCommand():
		return b.onCommand(ctx, u)
	}
	return b.onText(ctx, u)
}

func (b *Bot) onCommand(ctx context.Context, u Update) ([]Reply, error) {
	switch u.Command() {
	case CommandStart:
		return b.text(i18n.KeyStart, nil), nil
	case CommandCreate:
		st := &state{Stage: stageChoose}
		if err := b.saveState(ctx, u, st); err != nil {
			return nil, err
		}
		return b.templateList(st.Page)
	case CommandCancel:
		if err := b.store.Delete(ctx, u.Key()); err != nil {
			return nil, fmt.Errorf("delete session %s: %w", u.Key(), err)
		}
		return b.text(i18n.KeyCancelled, nil), nil
	}
	return b.text(i18n.KeyUnknownCommand, nil), nil
}

func (b *Bot) onCallback(ctx context.Context, u Update) ([]Reply, error) {
	cb, err := view.ParseCallback(u.Data)
	if err != nil {
		b.log.Warn("unknown callback", "data", u.Data)
		return b.alert(i18n.KeyUseButtons), nil
	}
	st, err := b.loadState(ctx, u)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return b.alert(i18n.KeySomethingWrong), nil
	case errors.Is(err, errCorruptSession):
		return b.reset(ctx, u, &state{}, err)
	case err != nil:
		return nil, err
	}

	switch cb.Kind {
	case view.CallbackPage:
		st.Page = cb.Page
		if err := b.saveState(ctx, u, st); err != nil {
			return nil, err
		}
		return b.screen(ctx, u, st)
	case view.CallbackTemplate:
		if st.Stage != stageChoose {
			return b.alert(i18n.KeyUseButtons), nil
		}
		return b.chooseTemplate(ctx, u, st, cb.Value)
	case view.CallbackData, view.CallbackAction:
		if st.root == nil {
			return b.alert(i18n.KeyUseButtons), nil
		}
		if cb.Kind == view.CallbackAction && cb.Value == view.ActionGenerate {
			return b.generate(ctx, u, st)
		}
		return b.navigate(ctx, u, st, cb)
	}
	return nil, nil
}

func (b *Bot) chooseTemplate(ctx context.Context, u Update, st *state, name string) ([]Reply, error) {
	schema, err := b.catalog.Schema(name)
	if errors.Is(err, templates.ErrNotFound) {
		return b.alert(i18n.KeySchemaNotFound), nil
	}
	if err != nil {
		return nil, err
	}
	root, err := form.NewRoot(schema)
	if err != nil {
		b.log.Error("cannot build form", "template", name, "error", err)
		return b.alert(i18n.KeySomethingWrong), nil
	}
	st.Template, st.root, st.Page = name, root, 0
	st.Stage = stageOf(root.Tree())
	if err := b.saveState(ctx, u, st); err != nil {
		return nil, err
	}
	return b.screen(ctx, u, st)
}

func (b *Bot) navigate(ctx context.Context, u Update, st *state, cb view.Callback) ([]Reply, error) {
	var err error
	switch {
	case cb.Kind == view.CallbackData:
		_, err = st.root.Forward(cb.Value)
	case cb.Value == view.ActionBack:
		_, err = st.root.Backward()
	case cb.Value == view.ActionAddItem:
		_, err = st.root.Forward(form.AppendStep)
	case cb.Value == view.ActionDelete:
		_, err = st.root.DeleteActive()
	default:
		return b.alert(i18n.KeyUseButtons), nil
	}
	switch {
	case errors.Is(err, form.ErrBrokenPath):
		return b.reset(ctx, u, st, err)
	case errors.Is(err, form.ErrAtRoot), errors.Is(err, form.ErrNoSuchStep), errors.Is(err, form.ErrInvalidOperation):
		b.log.Warn("stale button", "session", u.Key().String(), "data", u.Data, "error", err)
		return b.screen(ctx, u, st)
	case err != nil:
		return nil, err
	}

	active, err := st.root.Active()
	if err != nil {
		return b.reset(ctx, u, st, err)
	}
	st.Stage, st.Page = stageOf(active), 0
	if err := b.saveState(ctx, u, st); err != nil {
		return nil, err
	}
	return b.screen(ctx, u, st)
}

func (b *Bot) onText(ctx context.Context, u Update) ([]Reply, error) {
	st, err := b.loadState(ctx, u)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return b.text(i18n.KeyUseButtons, nil), nil
	case errors.Is(err, errCorruptSession):
		return b.reset(ctx, u, &state{}, err)
	case err != nil:
		return nil, err
	}
	if st.Stage != stageInput || st.root == nil {
		return b.text(i18n.KeyUseButtons, nil), nil
	}
	active, err := st.root.Active()
	if err != nil {
		return b.reset(ctx, u, st, err)
	}

	if err := active.SetValue(u.Text); err != nil {
		ie, ok := form.AsInputError(err)
		if !ok {
			return nil, err
		}
		replies := b.text(ie.Code, nil)
		screen, err := b.screen(ctx, u, st)
		return append(replies, screen...), err
	}

	if _, err := st.root.Backward(); err != nil && !errors.Is(err, form.ErrAtRoot) {
		return b.reset(ctx, u, st, err)
	}
	if active, err = st.root.Active(); err != nil {
		return b.reset(ctx, u, st, err)
	}
	st.Stage, st.Page = stageOf(active), 0
	if err := b.saveState(ctx, u, st); err != nil {
		return nil, err
	}
	return b.screen(ctx, u, st)
}

func (b *Bot) generate(ctx context.Context, u Update, st *state) ([]Reply, error) {
	if !st.root.CanGenerate() {
		return b.alert(i18n.KeyIncompleteData), nil
	}
	data, err := st.root.Generate()
	if err != nil {
		return b.alert(i18n.KeyIncompleteData), nil
	}
	data = templates.Compact(data)
	schema, err := b.catalog.Schema(st.Template)
	if errors.Is(err, templates.ErrNotFound) {
		return b.alert(i18n.KeySchemaNotFound), nil
	}
	if err != nil {
		return nil, err
	}
	if err := templates.Validate(schema, data); err != nil {
		var ve *templates.ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		return b.text(i18n.KeyValidationFailed, map[string]string{"message": form.EscapeMarkdown(ve.Message)}), nil
	}
	doc, err := b.catalog.Render(st.Template, data)
	if err != nil {
		return nil, err
	}

	if b.journal != nil {
		entry := journal.Entry{
			ChatID:    u.ChatID,
			UserID:    u.UserID,
			Username:  u.Username,
			Template:  st.Template,
			SizeBytes: len(doc),
		}
		if _, err := b.journal.Record(ctx, entry); err != nil {
			b.log.Warn("journal record failed", "template", st.Template, "error", err)
		}
	}
	if err := b.store.Delete(ctx, u.Key()); err != nil {
		return nil, fmt.Errorf("delete session %s: %w", u.Key(), err)
	}
	b.log.Info("document generated", "template", st.Template, "user", u.UserID, "bytes", len(doc))

	return []Reply{{
		Text:     b.tr.Message(i18n.KeyDocumentReady, map[string]string{"template": form.EscapeMarkdown(st.Template)}),
		Document: &Document{Name: st.Template + ".txt", Content: doc},
	}}, nil
}

// reset drops a session whose path no longer resolves.
func (b *Bot) reset(ctx context.Context, u Update, st *state, cause error) ([]Reply, error) {
	b.log.Error("session state is corrupt, resetting",
		"session", u.Key().String(), "template", st.Template, "path", pathOf(st), "error", cause)
	if err := b.store.Delete(ctx, u.Key()); err != nil {
		return nil, fmt.Errorf("delete session %s: %w", u.Key(), err)
	}
	return b.alert(i18n.KeySomethingWrong), nil
}

func pathOf(st *state) []string {
	if st.root == nil {
		return nil
	}
	return st.root.Path()
}

// screen renders the current state of st.
func (b *Bot) screen(ctx context.Context, u Update, st *state) ([]Reply, error) {
	if st.Stage == stageChoose || st.root == nil {
		return b.templateList(st.Page)
	}
	active, err := st.root.Active()
	if err != nil {
		return b.reset(ctx, u, st, err)
	}
	if active.Kind() == form.KindPrimitive {
		var kb view.Keyboard
		if actions := view.ActionMenu(active, b.tr); len(actions) > 0 {
			kb = view.Keyboard{actions}
		}
		text := view.RenderView(active, b.tr) + "\n\n" + view.Question(active, b.tr)
		return []Reply{{Text: text, Keyboard: kb}}, nil
	}
	return []Reply{{
		Text:     view.RenderView(active, b.tr),
		Keyboard: view.Menu(active, st.Page, b.layout, b.tr),
	}}, nil
}

func (b *Bot) templateList(page int) ([]Reply, error) {
	names, err := b.catalog.List()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return b.text(i18n.KeyNoTemplates, nil), nil
	}
	buttons := make([]view.Button, len(names))
	for i, name := range names {
		buttons[i] = view.Button{Text: name, Data: view.TemplateKey(name)}
	}
	return []Reply{{
		Text:     b.tr.Message(i18n.KeyChooseTemplate, nil),
		Keyboard: view.Paginate(buttons, page, b.layout),
	}}, nil
}

func (b *Bot) text(key string, args map[string]string) []Reply {
	return []Reply{{Text: b.tr.Message(key, args)}}
}

func (b *Bot) alert(key string) []Reply {
	return []Reply{{Text: b.tr.Message(key, nil), Alert: true}}
}
