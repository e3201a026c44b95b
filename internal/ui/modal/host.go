// Package modal is the dialog shell every overlay runs in.
//
// A Host reacts to a caller-owned open flag. Opening registers with the stack
// coordinator and then installs global key and pointer listeners; closing
// removes the listeners and then unregisters. The listeners only act while
// the host is frontmost, so background dialogs ignore Escape and backdrop
// presses meant for the dialog in front of them.
package modal

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/deskline/deskline/internal/ui/common"
	"github.com/deskline/deskline/internal/ui/events"
	"github.com/deskline/deskline/internal/ui/layout"
	"github.com/deskline/deskline/internal/ui/render"
	"github.com/deskline/deskline/internal/ui/stack"
)

// Coordinator is the part of stack.Coordinator a host needs.
type Coordinator interface {
	Register(id stack.ID) int
	Unregister(id stack.ID) int
	DepthOf(id stack.ID) int
	IsFrontmost(id stack.ID) bool
	PaintLayer(depth int) int
}

// Listeners installs global input listeners.
type Listeners interface {
	OnKey(fn events.KeyListener) events.Handle
	OnPointer(fn events.PointerListener) events.Handle
}

// CloseRequestMsg is sent when the close affordance of a dialog is clicked,
// and stands in for a common.CloseViewMsg returned by the content.
type CloseRequestMsg struct {
	ID stack.ID
}

type styles struct {
	border lipgloss.Style
	title  lipgloss.Style
	close  lipgloss.Style
}

type Host struct {
	coordinator Coordinator
	listeners   Listeners
	content     common.LayeredModel
	onClose     func() tea.Cmd
	opts        options
	styles      styles
	logger      *slog.Logger

	state   State
	id      stack.ID
	layer   int
	key     events.Handle
	pointer events.Handle

	// geometry from the last frame; dropped on close
	rendered bool
	screen   cellbuf.Rectangle
	frame    cellbuf.Rectangle
}

// New creates a closed host. onClose is the caller's close callback; it is
// expected to eventually call SetOpen(false).
func New(coordinator Coordinator, listeners Listeners, content common.LayeredModel, onClose func() tea.Cmd, opts ...Option) *Host {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Host{
		coordinator: coordinator,
		listeners:   listeners,
		content:     content,
		onClose:     onClose,
		opts:        o,
		logger:      logger,
		styles: styles{
			border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")),
			title:  lipgloss.NewStyle().Bold(true),
			close:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		},
	}
}

func (h *Host) State() State { return h.state }

// ID is the stack id of the current mount; it changes on every open.
func (h *Host) ID() stack.ID { return h.id }

func (h *Host) Depth() int { return h.coordinator.DepthOf(h.id) }

// PaintLayer is the z the dialog renders at, derived from its current depth.
func (h *Host) PaintLayer() int { return h.layer }

func (h *Host) Frame() cellbuf.Rectangle { return h.frame }

func (h *Host) IsOpen() bool { return h.state == Open }

func (h *Host) IsFrontmost() bool {
	return h.state == Open && h.coordinator.IsFrontmost(h.id)
}

// SetOpen feeds the caller's open flag into the state machine.
func (h *Host) SetOpen(open bool) tea.Cmd {
	if open {
		return h.open()
	}
	h.close()
	return nil
}

func (h *Host) transition(sig signal) bool {
	from := h.state
	to := next(from, sig)
	if to == from {
		return false
	}
	h.state = to
	h.logger.Debug("overlay transition", "id", h.id, "from", from, "to", to)
	if h.opts.onTransition != nil {
		h.opts.onTransition(from, to)
	}
	return true
}

func (h *Host) open() tea.Cmd {
	if !h.transition(signalOpen) {
		return nil
	}

	h.id = stack.NewID()
	depth := h.coordinator.Register(h.id)
	h.layer = h.coordinator.PaintLayer(depth)

	h.key = h.listeners.OnKey(h.handleKey)
	h.pointer = h.listeners.OnPointer(h.handlePointer)
	h.transition(signalSettle)

	if initer, ok := h.content.(interface{ Init() tea.Cmd }); ok {
		return h.scope(initer.Init())
	}
	return nil
}

// scope turns a common.CloseViewMsg produced by cmd into a close request for
// this host only.
func (h *Host) scope(cmd tea.Cmd) tea.Cmd {
	return scopeTo(h.id, cmd)
}

func scopeTo(id stack.ID, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case common.CloseViewMsg:
			return CloseRequestMsg{ID: id}
		case tea.BatchMsg:
			scoped := make(tea.BatchMsg, len(msg))
			for i, c := range msg {
				scoped[i] = scopeTo(id, c)
			}
			return scoped
		default:
			return msg
		}
	}
}

func (h *Host) close() {
	if !h.transition(signalClose) {
		return
	}

	h.key.Remove()
	h.pointer.Remove()
	h.key, h.pointer = events.Handle{}, events.Handle{}
	h.coordinator.Unregister(h.id)

	h.rendered = false
	h.screen, h.frame = cellbuf.Rectangle{}, cellbuf.Rectangle{}
	h.layer = 0
	h.transition(signalSettle)
}

func (h *Host) requestClose() tea.Cmd {
	if h.onClose == nil {
		return nil
	}
	return h.onClose()
}

func (h *Host) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type != tea.KeyEsc || !h.opts.closeOnEscape {
		return nil
	}
	if !h.IsFrontmost() {
		return nil
	}
	return h.requestClose()
}

// handlePointer closes on a press that lands on the backdrop itself, not on
// the dialog frame or anything inside it.
func (h *Host) handlePointer(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if !h.opts.closeOnBackdropClick || !h.rendered {
		return nil
	}
	p := cellbuf.Pos(msg.X, msg.Y)
	if !p.In(h.screen) || p.In(h.frame) {
		return nil
	}
	if !h.IsFrontmost() {
		return nil
	}
	return h.requestClose()
}

// Update forwards messages to the content. Keys only reach the frontmost
// dialog.
func (h *Host) Update(msg tea.Msg) tea.Cmd {
	if h.state != Open {
		return nil
	}
	switch msg := msg.(type) {
	case CloseRequestMsg:
		if msg.ID == h.id {
			return h.requestClose()
		}
		return nil
	}
	if common.IsInputMessage(msg) && !h.IsFrontmost() {
		return nil
	}
	return h.scope(h.content.Update(msg))
}

// ViewRect renders the dialog into a portal covering box, regardless of
// where the caller is in the layout. box is normally the whole screen.
func (h *Host) ViewRect(dl *render.DisplayContext, box layout.Box) {
	if h.state != Open || box.R.Dx() <= 0 || box.R.Dy() <= 0 {
		return
	}
	depth := h.Depth()
	h.layer = h.coordinator.PaintLayer(depth)
	z := h.layer
	portal := dl.Portal(box.R, z)
	portal.AddBackdrop(box.R, stack.BackdropOpacity(depth), z+render.LayerBackdrop)

	width := h.opts.size.Width(box.R.Dx())
	frameX := h.styles.border.GetHorizontalFrameSize()
	frameY := h.styles.border.GetVerticalFrameSize()
	innerWidth := max(width-frameX, 0)
	// title row plus content
	height := h.content.Height(innerWidth) + 1 + frameY

	frame := box.Center(width, height)
	h.screen = box.R
	h.frame = frame.R
	h.rendered = true

	shell := h.styles.border.
		Width(max(frame.R.Dx()-frameX, 0)).
		Height(max(frame.R.Dy()-frameY, 0)).
		Render("")
	portal.AddDraw(frame.R, shell, z+render.LayerFrame)

	inner := layout.NewBox(cellbuf.Rect(
		frame.R.Min.X+h.styles.border.GetBorderLeftSize(),
		frame.R.Min.Y+h.styles.border.GetBorderTopSize(),
		max(frame.R.Dx()-frameX, 0),
		max(frame.R.Dy()-frameY, 0),
	))
	titleRow, body := inner.CutTop(1)
	if h.opts.title != "" {
		portal.Text(titleRow.R.Min.X, titleRow.R.Min.Y, z+render.LayerChrome).
			Styled(h.opts.title, h.styles.title).
			Done()
	}
	if h.opts.closeAffordance && titleRow.R.Dx() > 0 {
		portal.Text(titleRow.R.Max.X-1, titleRow.R.Min.Y, z+render.LayerChrome).
			Clickable("×", h.styles.close, CloseRequestMsg{ID: h.id}).
			Done()
	}
	h.content.ViewLayer(portal, body, z+render.LayerContent)
}
