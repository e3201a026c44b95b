// Package board is a small ticket list that opens its dialogs and tooltip
// through the overlay stack.
package board

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/deskline/deskline/internal/config"
	"github.com/deskline/deskline/internal/ui/common"
	"github.com/deskline/deskline/internal/ui/common/list"
	"github.com/deskline/deskline/internal/ui/confirmation"
	"github.com/deskline/deskline/internal/ui/layout"
	"github.com/deskline/deskline/internal/ui/modal"
	"github.com/deskline/deskline/internal/ui/popover"
	"github.com/deskline/deskline/internal/ui/render"
)

type (
	closeDetailMsg    struct{}
	closeConfirmMsg   struct{}
	closeFindMsg      struct{}
	requestConfirmMsg struct{}
	confirmedMsg      struct {
		id string
	}
	selectRowMsg struct {
		index int
	}
	scrollMsg struct {
		delta int
	}
)

func (m scrollMsg) SetDelta(delta int) tea.Msg {
	m.delta = delta
	return m
}

var _ common.ImmediateModel = (*Model)(nil)

// Deps are the services the board shares with the rest of the program.
type Deps struct {
	Coordinator modal.Coordinator
	Listeners   modal.Listeners
	Lock        *PageLock
	Logger      *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type styles struct {
	header   lipgloss.Style
	row      lipgloss.Style
	label    lipgloss.Style
	position lipgloss.Style
}

const positionWidth = 9

type Model struct {
	tickets []Ticket
	cursor  int
	first   int
	keys    config.KeyMappings
	help    help.Model
	lock    *PageLock
	now     func() time.Time
	logger  *slog.Logger
	styles  styles

	tooltip    *popover.Model
	detailView *detail
	detail     *modal.Host
	promptView *prompt
	confirm    *modal.Host
	finder     *finder
	find       *modal.Host
	listBox    layout.Box
	screen     cellbuf.Rectangle
}

func New(cfg config.Config, deps Deps, tickets []Ticket) *Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	keys := cfg.KeyMap()

	side, err := popover.ParseSide(cfg.Overlay.TooltipSide)
	if err != nil {
		side = popover.Top
	}
	size, err := modal.ParseSize(cfg.Overlay.DialogSize)
	if err != nil {
		size = modal.SizeMedium
	}

	m := &Model{
		tickets: tickets,
		keys:    keys,
		help:    help.New(),
		lock:    deps.Lock,
		now:     now,
		logger:  logger,
		styles: styles{
			header:   lipgloss.NewStyle().Bold(true),
			row:      lipgloss.NewStyle(),
			label:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			position: lipgloss.NewStyle().Width(positionWidth).Align(lipgloss.Right),
		},
		tooltip: popover.New("", side, popover.Options{
			Gap:   cfg.Overlay.PopoverGap,
			Inset: cfg.Overlay.PopoverInset,
		}),
	}

	opts := func(title string) []modal.Option {
		return []modal.Option{
			modal.WithTitle(title),
			modal.WithSize(size),
			modal.WithCloseOnEscape(cfg.Overlay.CloseOnEscape),
			modal.WithCloseOnBackdropClick(cfg.Overlay.CloseOnBackdropClick),
			modal.WithLogger(logger),
		}
	}

	m.detailView = &detail{now: now, closeKey: keys.CloseTicket, labelStyle: m.styles.label}
	m.detail = modal.New(deps.Coordinator, deps.Listeners, m.detailView, func() tea.Cmd {
		return func() tea.Msg { return closeDetailMsg{} }
	}, opts("Ticket")...)

	m.promptView = &prompt{}
	m.confirm = modal.New(deps.Coordinator, deps.Listeners, m.promptView, func() tea.Cmd {
		return func() tea.Msg { return closeConfirmMsg{} }
	}, append(opts("Confirm"), modal.WithSize(modal.SizeSmall))...)

	m.finder = newFinder(func() []Ticket { return m.tickets }, keys.Apply)
	m.find = modal.New(deps.Coordinator, deps.Listeners, m.finder, func() tea.Cmd {
		return func() tea.Msg { return closeFindMsg{} }
	}, opts("Find ticket")...)

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Len() int {
	return len(m.tickets)
}

func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) SetCursor(index int) {
	if index < 0 || index >= len(m.tickets) {
		return
	}
	m.cursor = index
}

func (m *Model) VisibleRange() (int, int) {
	return m.first, m.first + max(m.listBox.R.Dy(), 1) - 1
}

func (m *Model) ListName() string {
	return "tickets"
}

func (m *Model) Tickets() []Ticket {
	return m.tickets
}

func (m *Model) Tooltip() *popover.Model {
	return m.tooltip
}

func (m *Model) Detail() *modal.Host {
	return m.detail
}

func (m *Model) Confirm() *modal.Host {
	return m.confirm
}

func (m *Model) Find() *modal.Host {
	return m.find
}

// HasOverlay reports whether a dialog is open.
func (m *Model) HasOverlay() bool {
	return m.detail.IsOpen() || m.confirm.IsOpen() || m.find.IsOpen()
}

func (m *Model) ShortHelp() []key.Binding {
	switch {
	case m.find.IsOpen():
		return []key.Binding{m.keys.Cancel, m.keys.Apply}
	case m.HasOverlay():
		return []key.Binding{m.keys.Cancel, m.keys.CloseTicket}
	}
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.CloseTicket, m.keys.Tooltip, m.keys.Find, m.keys.Quit}
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.HasOverlay() {
			return m.updateOverlays(msg)
		}
		return m.handleKey(msg)
	case closeDetailMsg:
		m.detail.SetOpen(false)
		return nil
	case closeConfirmMsg:
		m.confirm.SetOpen(false)
		return nil
	case closeFindMsg:
		m.find.SetOpen(false)
		return nil
	case foundMsg:
		m.find.SetOpen(false)
		m.SetCursor(msg.index)
		m.ensureCursorView()
		return nil
	case requestConfirmMsg:
		return m.openConfirm()
	case confirmedMsg:
		return m.closeTicket(msg.id)
	case selectRowMsg:
		m.SetCursor(msg.index)
		m.tooltip.SetOpen(false)
		return nil
	case scrollMsg:
		return m.move(msg.delta)
	}
	return m.updateOverlays(msg)
}

func (m *Model) updateOverlays(msg tea.Msg) tea.Cmd {
	return tea.Batch(m.detail.Update(msg), m.confirm.Update(msg), m.find.Update(msg))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		return m.move(-1)
	case key.Matches(msg, m.keys.Down):
		return m.move(1)
	case key.Matches(msg, m.keys.Open):
		return m.openDetail()
	case key.Matches(msg, m.keys.CloseTicket):
		return m.openConfirm()
	case key.Matches(msg, m.keys.Find):
		m.tooltip.SetOpen(false)
		return m.find.SetOpen(true)
	case key.Matches(msg, m.keys.Tooltip):
		m.toggleTooltip()
	case key.Matches(msg, m.keys.Cancel):
		m.tooltip.SetOpen(false)
	}
	return nil
}

// move ignores scrolling while an overlay holds the page lock.
func (m *Model) move(delta int) tea.Cmd {
	if m.lock.Engaged() {
		return nil
	}
	result := list.Scroll(m, delta, false)
	if result.NewCursor != m.cursor {
		m.tooltip.SetOpen(false)
	}
	m.cursor = result.NewCursor
	if result.EnsureCursorView {
		m.ensureCursorView()
	}
	if result.NavigateMessage != nil {
		status := *result.NavigateMessage
		return func() tea.Msg { return status }
	}
	return nil
}

func (m *Model) ensureCursorView() {
	visible := max(m.listBox.R.Dy(), 1)
	if m.cursor < m.first {
		m.first = m.cursor
	}
	if m.cursor >= m.first+visible {
		m.first = m.cursor - visible + 1
	}
}

func (m *Model) selected() *Ticket {
	if m.cursor < 0 || m.cursor >= len(m.tickets) {
		return nil
	}
	return &m.tickets[m.cursor]
}

func (m *Model) openDetail() tea.Cmd {
	t := m.selected()
	if t == nil {
		return nil
	}
	m.tooltip.SetOpen(false)
	m.detailView.ticket = t
	return m.detail.SetOpen(true)
}

func (m *Model) openConfirm() tea.Cmd {
	t := m.selected()
	if t == nil {
		return nil
	}
	if t.Status == StatusClosed {
		return common.Status(fmt.Sprintf("%s is already closed", t.ID))
	}
	m.tooltip.SetOpen(false)
	id := t.ID
	m.promptView.model = confirmation.New(
		[]string{fmt.Sprintf("Close %s?", id)},
		confirmation.WithOption("Yes", func() tea.Msg { return confirmedMsg{id: id} }, yes),
		confirmation.WithOption("No", common.Close, no),
		confirmation.WithApplyKey(m.keys.Apply),
	)
	return m.confirm.SetOpen(true)
}

var (
	yes = key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes"))
	no  = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no"))
)

func (m *Model) closeTicket(id string) tea.Cmd {
	m.confirm.SetOpen(false)
	m.detail.SetOpen(false)
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			m.tickets[i].Status = StatusClosed
			m.logger.Debug("ticket closed", "id", id)
			return common.Status(fmt.Sprintf("Closed %s", id))
		}
	}
	return common.StatusError(fmt.Errorf("ticket %s not found", id))
}

func (m *Model) toggleTooltip() {
	t := m.selected()
	if t == nil {
		return
	}
	if m.tooltip.IsOpen() {
		m.tooltip.SetOpen(false)
		return
	}
	assignee := t.Assignee
	if assignee == "" {
		assignee = "unassigned"
	}
	m.tooltip.SetContent(fmt.Sprintf("%s · %s\nopened %s", t.ID, assignee, t.Age(m.now())))
	m.tooltip.SetAnchor(m.rowRect(m.cursor), m.screen)
	m.tooltip.SetOpen(true)
}

// rowRect is where row i was drawn in the last frame.
func (m *Model) rowRect(i int) cellbuf.Rectangle {
	r := m.listBox.R
	return cellbuf.Rect(r.Min.X, r.Min.Y+i-m.first, r.Dx(), 1)
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	m.screen = box.R
	rows := box.V(layout.Fixed(1), layout.Fill(1), layout.Fixed(1))
	if len(rows) < 3 {
		return
	}
	header, body, footer := rows[0], rows[1], rows[2]
	m.listBox = body
	m.ensureCursorView()

	open := 0
	for _, t := range m.tickets {
		if t.Status != StatusClosed {
			open++
		}
	}
	dl.Text(header.R.Min.X, header.R.Min.Y, render.ZBase).
		Styled("Tickets", m.styles.header).
		Write(fmt.Sprintf("  %d open of %d", open, len(m.tickets))).
		Done()

	now := m.now()
	width := body.R.Dx()
	for i := m.first; i < len(m.tickets) && i < m.first+body.R.Dy(); i++ {
		t := m.tickets[i]
		rect := m.rowRect(i)
		text := fmt.Sprintf(" %-4s %-8s %-36s %-6s %s", t.ID, t.Status, t.Title, t.Assignee, t.Age(now))
		text = ansi.Truncate(text, width, "…")
		dl.AddDraw(rect, m.styles.row.Render(text), render.ZBase)
		if t.Status == StatusClosed {
			dl.AddDim(rect, render.ZBase+1)
		}
		if i == m.cursor {
			dl.AddReverse(rect, render.ZBase+1)
		}
		dl.AddInteraction(rect, selectRowMsg{index: i}, render.InteractionClick, render.ZBase)
	}
	dl.AddInteraction(body.R, scrollMsg{}, render.InteractionScroll, render.ZBase)

	cols := footer.H(layout.Fill(1), layout.Fixed(positionWidth))
	helpBox, positionBox := cols[0], cols[1]
	m.help.Width = helpBox.R.Dx()
	dl.AddDraw(helpBox.R, m.help.ShortHelpView(m.ShortHelp()), render.ZBase)
	if len(m.tickets) > 0 {
		position := fmt.Sprintf("%d/%d", m.cursor+1, len(m.tickets))
		dl.AddDraw(positionBox.R, m.styles.position.Render(position), render.ZBase)
	}

	m.tooltip.View(dl, render.ZPopover)
	m.detail.ViewRect(dl, box)
	m.confirm.ViewRect(dl, box)
	m.find.ViewRect(dl, box)
}
