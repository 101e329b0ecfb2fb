package form

import "strings"

var (
	markdownEscaper = strings.NewReplacer(
		`\`, `\\`,
		"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
		"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
		"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
	)
	codeEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")
)

// EscapeMarkdown escapes s for Telegram MarkdownV2 text.
func EscapeMarkdown(s string) string { return markdownEscaper.Replace(s) }

// EscapeCode escapes s for use inside a MarkdownV2 inline code span.
func EscapeCode(s string) string { return codeEscaper.Replace(s) }
