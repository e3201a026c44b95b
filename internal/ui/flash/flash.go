// Package flash shows short-lived status notices in the bottom-right corner.
package flash

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/deskline/deskline/internal/ui/common"
	"github.com/deskline/deskline/internal/ui/layout"
	"github.com/deskline/deskline/internal/ui/render"
)

const expiringMessageTimeout = 4 * time.Second

type expireMessageMsg struct {
	id uint64
}

type flashMessage struct {
	text  string
	error error
	id    uint64
}

type FlashMessageView struct {
	// Content might contain ANSI colour codes
	Content string
	Rect    cellbuf.Rectangle
}

type Model struct {
	messages     []flashMessage
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	currentId    uint64
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case expireMessageMsg:
		for i, message := range m.messages {
			if message.id == msg.id {
				m.messages = append(m.messages[:i], m.messages[i+1:]...)
				break
			}
		}
		return nil
	case common.StatusMsg:
		id := m.add(msg.Text, msg.Err)
		if msg.Err == nil && id != 0 {
			return tea.Tick(expiringMessageTimeout, func(t time.Time) tea.Msg {
				return expireMessageMsg{id: id}
			})
		}
	}
	return nil
}

// View lays the messages out from the bottom-right corner of box upwards,
// oldest at the bottom.
func (m *Model) View(box layout.Box) []FlashMessageView {
	if len(m.messages) == 0 {
		return nil
	}

	y := box.R.Max.Y
	var messageBoxes []FlashMessageView
	for _, message := range m.messages {
		var content string
		if message.error != nil {
			content = m.errorStyle.Render(message.error.Error())
		} else {
			content = m.successStyle.Render(message.text)
		}
		w, h := lipgloss.Size(content)
		y -= h
		messageBoxes = append(messageBoxes, FlashMessageView{
			Content: content,
			Rect:    cellbuf.Rect(box.R.Max.X-w, y, w, h),
		})
	}
	return messageBoxes
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	for _, v := range m.View(box) {
		dl.AddDraw(v.Rect, v.Content, render.ZStatus)
	}
}

func (m *Model) add(text string, error error) uint64 {
	text = strings.TrimSpace(text)
	if text == "" && error == nil {
		return 0
	}

	msg := flashMessage{
		id:    m.nextId(),
		text:  text,
		error: error,
	}

	m.messages = append(m.messages, msg)
	return msg.id
}

func (m *Model) Any() bool {
	return len(m.messages) > 0
}

func (m *Model) DeleteOldest() {
	if len(m.messages) > 0 {
		m.messages = m.messages[1:]
	}
}

func (m *Model) nextId() uint64 {
	m.currentId = m.currentId + 1
	return m.currentId
}

func New() *Model {
	successStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("2")).PaddingLeft(1).PaddingRight(1)
	errorStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("1")).PaddingLeft(1).PaddingRight(1)
	return &Model{
		messages:     make([]flashMessage, 0),
		successStyle: successStyle,
		errorStyle:   errorStyle,
	}
}
