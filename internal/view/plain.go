package view

import "strings"

// PlainText strips MarkdownV2 markup for transports that cannot render it:
// escaped characters are kept literally, unescaped bold/italic/code markers
// are dropped.
func PlainText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '*' || r == '_' || r == '`':
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
