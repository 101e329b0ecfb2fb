package view

import "fmt"

// Button is one inline button.
type Button struct {
	Text string `json:"text"`
	Data string `json:"data"`
}

// Keyboard is a list of button rows.
type Keyboard [][]Button

// Layout is the page grid of a paginated menu.
type Layout struct {
	Columns int
	Rows    int
}

// DefaultLayout is 2 columns by 5 rows.
var DefaultLayout = Layout{Columns: 2, Rows: 5}

func (l Layout) perPage() int {
	if l.Columns <= 0 || l.Rows <= 0 {
		return DefaultLayout.perPage()
	}
	return l.Columns * l.Rows
}

func (l Layout) columns() int {
	if l.Columns <= 0 {
		return DefaultLayout.Columns
	}
	return l.Columns
}

// Pages returns the number of pages n entries occupy.
func (l Layout) Pages(n int) int {
	per := l.perPage()
	return (n + per - 1) / per
}

// Paginate lays out one page of entries. When there is more than one page a
// navigation row is appended: previous, a "page X/Y" no-op marker, next.
// Out of range pages are clamped.
func Paginate(entries []Button, page int, layout Layout) Keyboard {
	if len(entries) == 0 {
		return nil
	}
	per := layout.perPage()
	pages := layout.Pages(len(entries))
	page = clampPage(page, pages)

	start := page * per
	end := min(start+per, len(entries))
	slice := entries[start:end]

	cols := layout.columns()
	var kb Keyboard
	for i := 0; i < len(slice); i += cols {
		kb = append(kb, append([]Button(nil), slice[i:min(i+cols, len(slice))]...))
	}
	if pages == 1 {
		return kb
	}

	var nav []Button
	if page > 0 {
		nav = append(nav, Button{Text: "<", Data: PageKey(page - 1)})
	}
	nav = append(nav, Button{Text: fmt.Sprintf("·%d/%d·", page+1, pages), Data: KeyNoop})
	if page+1 < pages {
		nav = append(nav, Button{Text: ">", Data: PageKey(page + 1)})
	}
	return append(kb, nav)
}

func clampPage(page, pages int) int {
	if page >= pages {
		page = pages - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}
