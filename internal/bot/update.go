package bot

import (
	"strings"

	"github.com/sbenjam1n/docbot/internal/session"
	"github.com/sbenjam1n/docbot/internal/view"
)

// Update is one incoming chat event: either a text message or a button press.
type Update struct {
	ChatID   int64
	UserID   int64
	Username string
	Text     string
	Data     string
}

// IsCallback reports whether u is a button press.
func (u Update) IsCallback() bool { return u.Data != "" }

// IsCommand reports whether u is a slash command.
func (u Update) IsCommand() bool {
	return !u.IsCallback() && strings.HasPrefix(u.Text, "/")
}

// Command returns the command name without the leading slash and any
// "@botname" suffix.
func (u Update) Command() string {
	if !u.IsCommand() {
		return ""
	}
	cmd, _, _ := strings.Cut(strings.TrimPrefix(u.Text, "/"), " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd
}

// Key identifies the session of the user in this chat.
func (u Update) Key() session.Key {
	return session.Key{ChatID: u.ChatID, UserID: u.UserID}
}

// Document is a generated file sent back to the user.
type Document struct {
	Name    string
	Content []byte
}

// Reply is one outgoing message. Text is MarkdownV2 unless Alert is set, in
// which case it is a plain-text popup answering the button press.
type Reply struct {
	Text     string
	Keyboard view.Keyboard
	Alert    bool
	Document *Document
}
