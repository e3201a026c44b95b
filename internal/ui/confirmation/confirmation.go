// Package confirmation is a yes/no style prompt meant to be hosted in a
// modal.
package confirmation

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deskline/deskline/internal/ui/layout"
	"github.com/deskline/deskline/internal/ui/render"
)

var (
	right = key.NewBinding(key.WithKeys("right", "l", "tab"))
	left  = key.NewBinding(key.WithKeys("left", "h", "shift+tab"))
)

type SelectOptionMsg struct {
	Index int
}

type option struct {
	label      string
	cmd        tea.Cmd
	keyBinding key.Binding
}

type Styles struct {
	Selected lipgloss.Style
	Dimmed   lipgloss.Style
	Text     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Text:     lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1),
		Selected: lipgloss.NewStyle().Reverse(true).PaddingLeft(2).PaddingRight(2),
		Dimmed:   lipgloss.NewStyle().Faint(true).PaddingLeft(2).PaddingRight(2),
	}
}

type Model struct {
	options  []option
	selected int
	apply    key.Binding
	Styles   Styles
	messages []string
}

func (m *Model) ShortHelp() []key.Binding {
	var bindings []key.Binding
	for _, option := range m.options {
		bindings = append(bindings, option.keyBinding)
	}
	bindings = append(bindings,
		key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		m.apply,
	)
	return bindings
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

// Option is a function that configures a Model
type Option func(*Model)

// WithOption adds an option to the confirmation dialog
func WithOption(label string, cmd tea.Cmd, keyBinding key.Binding) Option {
	return func(m *Model) {
		m.options = append(m.options, option{label, cmd, keyBinding})
	}
}

// WithApplyKey replaces the key that picks the highlighted option.
func WithApplyKey(binding key.Binding) Option {
	return func(m *Model) {
		m.apply = binding
	}
}

func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.Styles = styles
	}
}

func (m *Model) Selected() int {
	return m.selected
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SelectOptionMsg:
		if msg.Index >= 0 && msg.Index < len(m.options) {
			m.selected = msg.Index
			return m.options[m.selected].cmd
		}
		return nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, left):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, right):
			if m.selected < len(m.options)-1 {
				m.selected++
			}
		case key.Matches(msg, m.apply):
			if len(m.options) == 0 {
				return nil
			}
			return m.options[m.selected].cmd
		default:
			for _, option := range m.options {
				if key.Matches(msg, option.keyBinding) {
					return option.cmd
				}
			}
		}
	}
	return nil
}

// Height is one row per message plus the row of options.
func (m *Model) Height(int) int {
	return len(m.messages) + 1
}

func (m *Model) ViewLayer(dl *render.DisplayContext, box layout.Box, z int) {
	if box.R.Dx() <= 0 || box.R.Dy() <= 0 {
		return
	}
	tb := dl.Text(box.R.Min.X, box.R.Min.Y, z)
	m.buildContent(tb)
	tb.Done()
}

func New(messages []string, opts ...Option) *Model {
	m := Model{
		messages: messages,
		options:  []option{},
		apply:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select")),
		Styles:   DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return &m
}

func (m *Model) buildContent(tb *render.TextBuilder) {
	for _, message := range m.messages {
		tb.Styled(message, m.Styles.Text)
		tb.NewLine()
	}

	for idx, option := range m.options {
		style := m.Styles.Dimmed
		if idx == m.selected {
			style = m.Styles.Selected
		}
		tb.Clickable(option.label, style, SelectOptionMsg{Index: idx})
	}
}
