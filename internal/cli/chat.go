package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sbenjam1n/docbot/internal/bot"
	"github.com/sbenjam1n/docbot/internal/journal"
	"github.com/sbenjam1n/docbot/internal/logger"
	"github.com/sbenjam1n/docbot/internal/session"
	"github.com/sbenjam1n/docbot/internal/view"
)

var (
	chatUserID  int64
	chatChatID  int64
	chatName    string
	chatMemory  bool
	chatOutDir  string
	chatLogFile string
)

var chatCmd = &cobra.Command{
	Use:     "chat",
	Aliases: []string{"i"},
	Short:   "Talk to the bot in the terminal",
	Long: `Runs the bot against a terminal chat window. Type messages and commands
(/create_document, /cancel) in the input line; press tab to move to the
buttons. Generated documents are saved to --out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		tr, err := newTranslator()
		if err != nil {
			return err
		}

		var store session.Store
		if chatMemory {
			store = session.NewMemoryStore()
		} else {
			rs, rdb, err := openRedisStore(ctx)
			if err != nil {
				return fmt.Errorf("%w\nUse --memory to keep sessions in memory", err)
			}
			defer rdb.Close()
			store = rs
		}

		// Log lines would tear the alternate screen, so they go to a file.
		botLog := logger.Nop()
		if chatLogFile != "" {
			if botLog, err = logger.NewWithOutput(cfg.LogMode, chatLogFile); err != nil {
				return err
			}
			defer botLog.Sync()
		}

		var rec bot.Recorder
		if cfg.DatabaseURL != "" {
			pool, err := connectDB(ctx)
			if err != nil {
				log.Warn("journal disabled", "error", err)
			} else {
				defer pool.Close()
				rec = journal.New(pool)
			}
		}

		b := bot.New(bot.Options{
			Store:      store,
			Catalog:    newCatalog(),
			Translator: tr,
			Journal:    rec,
			Logger:     botLog,
			Layout:     pageLayout(),
		})

		m := newChatModel(ctx, b, chatChatID, chatUserID, chatName, chatOutDir)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

// --- Styles ---

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("236")).Foreground(lipgloss.Color("15"))
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	userStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	alertStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type entryKind int

const (
	entryUser entryKind = iota
	entryBot
	entryAlert
	entryDocument
	entryError
)

type chatEntry struct {
	kind entryKind
	text string
}

type repliesMsg struct {
	replies []bot.Reply
	err     error
}

type chatModel struct {
	ctx      context.Context
	bot      *bot.Bot
	chatID   int64
	userID   int64
	username string
	outDir   string

	history  []chatEntry
	keyboard view.Keyboard
	row, col int
	buttons  bool
	input    textinput.Model
	width    int
	height   int
}

func newChatModel(ctx context.Context, b *bot.Bot, chatID, userID int64, username, outDir string) chatModel {
	input := textinput.New()
	input.Placeholder = "message or /command"
	input.Prompt = "> "
	input.CharLimit = 1024
	input.Focus()

	return chatModel{
		ctx:      ctx,
		bot:      b,
		chatID:   chatID,
		userID:   userID,
		username: username,
		outDir:   outDir,
		input:    input,
		width:    80,
		height:   24,
	}
}

func (m chatModel) send(u bot.Update) tea.Cmd {
	u.ChatID, u.UserID, u.Username = m.chatID, m.userID, m.username
	return func() tea.Msg {
		replies, err := m.bot.Handle(m.ctx, u)
		return repliesMsg{replies: replies, err: err}
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.send(bot.Update{Text: "/" + bot.CommandStart}))
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case repliesMsg:
		m.receive(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.toggleFocus()
			return m, nil
		}
		if m.buttons {
			return m.handleButtonKey(msg)
		}
		if msg.String() == "enter" {
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.history = append(m.history, chatEntry{kind: entryUser, text: text})
			return m, m.send(bot.Update{Text: text})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) receive(msg repliesMsg) {
	if msg.err != nil {
		m.history = append(m.history, chatEntry{kind: entryError, text: msg.err.Error()})
		return
	}
	for _, r := range msg.replies {
		switch {
		case r.Alert:
			m.history = append(m.history, chatEntry{kind: entryAlert, text: r.Text})
			continue
		case r.Document != nil:
			m.history = append(m.history, chatEntry{kind: entryBot, text: view.PlainText(r.Text)})
			m.history = append(m.history, m.saveDocument(r.Document))
		default:
			m.history = append(m.history, chatEntry{kind: entryBot, text: view.PlainText(r.Text)})
		}
		m.keyboard = r.Keyboard
		m.row, m.col = 0, 0
	}
	if len(m.keyboard) == 0 && m.buttons {
		m.toggleFocus()
	}
}

func (m chatModel) saveDocument(doc *bot.Document) chatEntry {
	path := filepath.Join(m.outDir, doc.Name)
	if err := os.WriteFile(path, doc.Content, 0644); err != nil {
		return chatEntry{kind: entryError, text: fmt.Sprintf("save %s: %v", path, err)}
	}
	return chatEntry{kind: entryDocument, text: fmt.Sprintf("saved %s (%d bytes)", path, len(doc.Content))}
}

func (m *chatModel) toggleFocus() {
	if !m.buttons && len(m.keyboard) == 0 {
		return
	}
	m.buttons = !m.buttons
	if m.buttons {
		m.input.Blur()
	} else {
		m.input.Focus()
	}
}

func (m chatModel) handleButtonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.row > 0 {
			m.row--
			m.col = min(m.col, len(m.keyboard[m.row])-1)
		}
	case "down", "j":
		if m.row < len(m.keyboard)-1 {
			m.row++
			m.col = min(m.col, len(m.keyboard[m.row])-1)
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if m.col < len(m.keyboard[m.row])-1 {
			m.col++
		}
	case "enter", " ":
		btn := m.keyboard[m.row][m.col]
		m.history = append(m.history, chatEntry{kind: entryUser, text: "[" + btn.Text + "]"})
		return m, m.send(bot.Update{Data: btn.Data})
	}
	return m, nil
}

func (m chatModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("docbot") + "  " + dimStyle.Render(fmt.Sprintf("chat %d, user %d", m.chatID, m.userID)) + "\n")
	b.WriteString(strings.Repeat("─", min(m.width, 80)) + "\n")

	kb := m.renderKeyboard()
	kbLines := strings.Count(kb, "\n")
	maxLines := m.height - kbLines - 6 // header + divider + divider + input + help

	lines := m.historyLines()
	if len(lines) > maxLines && maxLines > 0 {
		lines = lines[len(lines)-maxLines:]
	}
	for _, line := range lines {
		b.WriteString(line + "\n")
	}

	b.WriteString(strings.Repeat("─", min(m.width, 80)) + "\n")
	b.WriteString(kb)
	b.WriteString(m.input.View() + "\n")
	b.WriteString(helpStyle.Render("enter:send  tab:buttons/input  arrows:select  esc:quit"))
	return b.String()
}

func (m chatModel) historyLines() []string {
	var lines []string
	for _, e := range m.history {
		var prefix string
		style := lipgloss.NewStyle()
		switch e.kind {
		case entryUser:
			prefix, style = "you: ", userStyle
		case entryBot:
			prefix = "bot: "
		case entryAlert:
			prefix, style = "(!) ", alertStyle
		case entryDocument:
			prefix, style = "📄 ", dimStyle
		case entryError:
			prefix, style = "error: ", errorStyle
		}
		for i, line := range strings.Split(e.text, "\n") {
			if i > 0 {
				prefix = strings.Repeat(" ", len([]rune(prefix)))
			}
			lines = append(lines, style.Render(prefix+line))
		}
	}
	return lines
}

func (m chatModel) renderKeyboard() string {
	var b strings.Builder
	for r, row := range m.keyboard {
		cells := make([]string, len(row))
		for c, btn := range row {
			cell := "[ " + btn.Text + " ]"
			if m.buttons && r == m.row && c == m.col {
				cells[c] = selectedStyle.Render(cell)
			} else {
				cells[c] = buttonStyle.Render(cell)
			}
		}
		b.WriteString(strings.Join(cells, " ") + "\n")
	}
	return b.String()
}

func init() {
	user := os.Getenv("USER")
	chatCmd.Flags().Int64Var(&chatUserID, "user", 1, "User id to chat as")
	chatCmd.Flags().Int64Var(&chatChatID, "chat", 1, "Chat id to chat in")
	chatCmd.Flags().StringVar(&chatName, "name", user, "Username recorded in the journal")
	chatCmd.Flags().BoolVar(&chatMemory, "memory", false, "Keep sessions in memory instead of Redis")
	chatCmd.Flags().StringVarP(&chatOutDir, "out", "o", ".", "Directory for generated documents")
	chatCmd.Flags().StringVar(&chatLogFile, "log-file", "", "Write bot logs to this file")
}
