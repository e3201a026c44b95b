package board

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/deskline/deskline/internal/ui/confirmation"
	"github.com/deskline/deskline/internal/ui/layout"
	"github.com/deskline/deskline/internal/ui/render"
)

// detail is the body of the ticket dialog.
type detail struct {
	ticket     *Ticket
	now        func() time.Time
	closeKey   key.Binding
	labelStyle lipgloss.Style
}

type line struct {
	label string
	text  string
}

func (d *detail) lines() []line {
	if d.ticket == nil {
		return nil
	}
	assignee := d.ticket.Assignee
	if assignee == "" {
		assignee = "unassigned"
	}
	lines := []line{
		{label: "Title    ", text: d.ticket.Title},
		{label: "Status   ", text: string(d.ticket.Status)},
		{label: "Assignee ", text: assignee},
		{label: "Opened   ", text: d.ticket.Age(d.now())},
		{},
		{text: d.ticket.Body},
		{},
	}
	if d.ticket.Status != StatusClosed {
		lines = append(lines, line{label: d.closeKey.Help().Key + " ", text: d.closeKey.Help().Desc})
	}
	return lines
}

func (d *detail) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, d.closeKey) {
		return func() tea.Msg { return requestConfirmMsg{} }
	}
	return nil
}

func (d *detail) Height(int) int {
	return len(d.lines())
}

func (d *detail) ViewLayer(dl *render.DisplayContext, box layout.Box, z int) {
	width := box.R.Dx()
	if width <= 0 {
		return
	}
	tb := dl.Text(box.R.Min.X, box.R.Min.Y, z)
	for i, l := range d.lines() {
		if i >= box.R.Dy() {
			break
		}
		if i > 0 {
			tb.NewLine()
		}
		label := ansi.Truncate(l.label, width, "")
		tb.Styled(label, d.labelStyle)
		if rest := width - ansi.StringWidth(label); rest > 0 {
			tb.Write(ansi.Truncate(l.text, rest, "…"))
		}
	}
	tb.Done()
}

// prompt lets the board swap the confirmation shown inside one host.
type prompt struct {
	model *confirmation.Model
}

func (p *prompt) Update(msg tea.Msg) tea.Cmd {
	if p.model == nil {
		return nil
	}
	return p.model.Update(msg)
}

func (p *prompt) Height(width int) int {
	if p.model == nil {
		return 0
	}
	return p.model.Height(width)
}

func (p *prompt) ViewLayer(dl *render.DisplayContext, box layout.Box, z int) {
	if p.model != nil {
		p.model.ViewLayer(dl, box, z)
	}
}
