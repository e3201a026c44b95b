package ui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/deskline/deskline/internal/config"
	"github.com/deskline/deskline/internal/ui/board"
	"github.com/deskline/deskline/internal/ui/events"
	"github.com/deskline/deskline/internal/ui/flash"
	"github.com/deskline/deskline/internal/ui/layout"
	"github.com/deskline/deskline/internal/ui/render"
	"github.com/deskline/deskline/internal/ui/stack"
)

const appName = "deskline"

var forceQuit = key.NewBinding(key.WithKeys("ctrl+c"))

type Model struct {
	coordinator    *stack.Coordinator
	subscription   stack.Subscription
	dispatcher     *events.Dispatcher
	lock           *board.PageLock
	board          *board.Model
	flash          *flash.Model
	keyMap         config.KeyMappings
	logger         *slog.Logger
	displayContext *render.DisplayContext
	width          int
	height         int
	titleDirty     bool
}

type Option func(*settings)

type settings struct {
	logger  *slog.Logger
	now     func() time.Time
	tickets []board.Ticket
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithClock replaces time.Now for ticket ages.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func WithTickets(tickets []board.Ticket) Option {
	return func(s *settings) { s.tickets = tickets }
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(m.title()), m.board.Init())
}

func (m *Model) title() string {
	if n := m.coordinator.Len(); n > 0 {
		return fmt.Sprintf("%s (%d)", appName, n)
	}
	return appName
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	cmd := m.update(msg)
	if m.titleDirty {
		m.titleDirty = false
		return tea.Batch(cmd, tea.SetWindowTitle(m.title()))
	}
	return cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil
	case tea.KeyMsg:
		if key.Matches(msg, forceQuit) {
			return tea.Quit
		}
		// open overlays see every key first
		if cmd := m.dispatcher.DispatchKey(msg); cmd != nil {
			return cmd
		}
		if key.Matches(msg, m.keyMap.Quit) && m.isSafeToQuit() {
			return tea.Quit
		}
		return m.board.Update(msg)
	case tea.MouseMsg:
		cmd := m.dispatcher.DispatchPointer(msg)
		if m.displayContext != nil {
			if interactionMsg, handled := m.displayContext.ProcessMouseEvent(msg); handled {
				if interactionMsg != nil {
					// Send the interaction message back through Update
					return tea.Batch(cmd, func() tea.Msg { return interactionMsg })
				}
			}
		}
		return cmd
	}
	return tea.Batch(m.flash.Update(msg), m.board.Update(msg))
}

func (m *Model) isSafeToQuit() bool {
	return m.coordinator.Len() == 0
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.displayContext == nil {
		m.displayContext = render.NewDisplayContext()
	} else {
		m.displayContext.Clear()
	}

	box := layout.NewBox(cellbuf.Rect(0, 0, m.width, m.height))
	screenBuf := cellbuf.NewBuffer(m.width, m.height)

	m.board.ViewRect(m.displayContext, box)
	rest, _ := box.CutBottom(1)
	m.flash.ViewRect(m.displayContext, rest)

	m.displayContext.Render(screenBuf)
	finalView := cellbuf.Render(screenBuf)
	return strings.ReplaceAll(finalView, "\r", "")
}

// Close detaches the model from the stack coordinator.
func (m *Model) Close() {
	m.subscription.Unsubscribe()
}

var _ tea.Model = (*wrapper)(nil)

type (
	frameTickMsg struct{}
	wrapper      struct {
		ui                 *Model
		scheduledNextFrame bool
		render             bool
		cachedFrame        string
	}
)

func (w *wrapper) Init() tea.Cmd {
	return w.ui.Init()
}

func (w *wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(frameTickMsg); ok {
		w.render = true
		w.scheduledNextFrame = false
		return w, nil
	}
	var cmd tea.Cmd
	cmd = w.ui.Update(msg)
	if !w.scheduledNextFrame {
		w.scheduledNextFrame = true
		return w, tea.Batch(cmd, tea.Tick(time.Millisecond*8, func(t time.Time) tea.Msg {
			return frameTickMsg{}
		}))
	}
	return w, cmd
}

func (w *wrapper) View() string {
	if w.render {
		w.cachedFrame = w.ui.View()
		w.render = false
	}
	return w.cachedFrame
}

func NewUI(cfg config.Config, opts ...Option) *Model {
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.tickets == nil {
		s.tickets = board.SampleTickets(s.now())
	}

	lock := &board.PageLock{}
	coordinator := stack.New(
		stack.WithScrollLock(lock),
		stack.WithPaintLayers(cfg.Overlay.PaintBase, cfg.Overlay.PaintIncrement),
		stack.WithLogger(s.logger),
	)
	dispatcher := events.NewDispatcher()

	ui := &Model{
		coordinator: coordinator,
		dispatcher:  dispatcher,
		lock:        lock,
		flash:       flash.New(),
		keyMap:      cfg.KeyMap(),
		logger:      s.logger,
		board: board.New(cfg, board.Deps{
			Coordinator: coordinator,
			Listeners:   dispatcher,
			Lock:        lock,
			Logger:      s.logger,
			Now:         s.now,
		}, s.tickets),
	}
	ui.subscription = coordinator.Subscribe(func(stack.Event) {
		ui.titleDirty = true
	})
	return ui
}

func New(cfg config.Config, opts ...Option) tea.Model {
	return &wrapper{ui: NewUI(cfg, opts...)}
}
