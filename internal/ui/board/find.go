package board

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/deskline/deskline/internal/ui/layout"
	"github.com/deskline/deskline/internal/ui/render"
	"github.com/sahilm/fuzzy"
)

const maxFindResults = 6

type foundMsg struct {
	index int
}

type finderStyles struct {
	text    lipgloss.Style
	matched lipgloss.Style
	dimmed  lipgloss.Style
}

// finder is the body of the find dialog. It fuzzy matches ticket ids and
// titles while the query changes.
type finder struct {
	tickets func() []Ticket
	input   textinput.Model
	matches fuzzy.Matches
	cursor  int
	apply   key.Binding
	styles  finderStyles
}

func newFinder(tickets func() []Ticket, apply key.Binding) *finder {
	styles := finderStyles{
		text:    lipgloss.NewStyle(),
		matched: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		dimmed:  lipgloss.NewStyle().Faint(true),
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = styles.dimmed
	ti.TextStyle = styles.text
	ti.CharLimit = 0
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &finder{tickets: tickets, input: ti, apply: apply, styles: styles}
}

// Init runs every time the dialog opens.
func (f *finder) Init() tea.Cmd {
	f.input.Reset()
	f.search("")
	return nil
}

func (f *finder) Len() int {
	return len(f.tickets())
}

func (f *finder) String(i int) string {
	t := f.tickets()[i]
	return t.ID + " " + t.Title
}

func (f *finder) Matches() fuzzy.Matches {
	return f.matches
}

// search lists every ticket for an empty query.
func (f *finder) search(query string) {
	f.cursor = 0
	query = strings.TrimSpace(query)
	if query == "" {
		f.matches = make(fuzzy.Matches, f.Len())
		for i := range f.matches {
			f.matches[i] = fuzzy.Match{Str: f.String(i), Index: i}
		}
		return
	}
	f.matches = fuzzy.FindFrom(query, f)
}

func (f *finder) visible() fuzzy.Matches {
	return f.matches[:min(len(f.matches), maxFindResults)]
}

func (f *finder) moveCursor(delta int) {
	n := len(f.visible())
	if n == 0 {
		return
	}
	f.cursor = (f.cursor + delta + n) % n
}

func (f *finder) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, f.apply):
			if f.cursor >= len(f.matches) {
				return nil
			}
			index := f.matches[f.cursor].Index
			return func() tea.Msg { return foundMsg{index: index} }
		case msg.Type == tea.KeyUp, msg.Type == tea.KeyCtrlP:
			f.moveCursor(-1)
			return nil
		case msg.Type == tea.KeyDown, msg.Type == tea.KeyCtrlN:
			f.moveCursor(1)
			return nil
		}
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		f.search(f.input.Value())
		return cmd
	}
	return nil
}

func (f *finder) Height(int) int {
	return 1 + max(len(f.visible()), 1)
}

func (f *finder) ViewLayer(dl *render.DisplayContext, box layout.Box, z int) {
	if box.R.Dx() <= 0 || box.R.Dy() <= 0 {
		return
	}
	inputBox, listBox := box.CutTop(1)
	f.input.Width = max(inputBox.R.Dx()-lipgloss.Width(f.input.Prompt)-1, 1)
	dl.AddDraw(inputBox.R, f.input.View(), z)

	if len(f.matches) == 0 {
		dl.AddDraw(listBox.R, f.styles.dimmed.Render("no matching tickets"), z)
		return
	}
	for i, match := range f.visible() {
		rect := cellbuf.Rect(listBox.R.Min.X, listBox.R.Min.Y+i, listBox.R.Dx(), 1)
		if rect.Min.Y >= listBox.R.Max.Y {
			break
		}
		line := highlight(match.Str, match.MatchedIndexes, f.styles.text, f.styles.matched)
		dl.AddDraw(rect, ansi.Truncate(line, rect.Dx(), "…"), z)
		if i == f.cursor {
			dl.AddReverse(rect, z+1)
		}
		dl.AddInteraction(rect, foundMsg{index: match.Index}, render.InteractionClick, z)
	}
}

// highlight styles the bytes at matched with hit. The width of s is kept.
func highlight(s string, matched []int, base, hit lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(s)
	}
	hits := make(map[int]bool, len(matched))
	for _, i := range matched {
		hits[i] = true
	}
	var b strings.Builder
	start, inHit := 0, hits[0]
	flush := func(end int) {
		if end <= start {
			return
		}
		style := base
		if inHit {
			style = hit
		}
		b.WriteString(style.Render(s[start:end]))
	}
	for i := range s {
		if hits[i] != inHit {
			flush(i)
			start, inHit = i, hits[i]
		}
	}
	flush(len(s))
	return b.String()
}
