package common

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/deskline/deskline/internal/ui/layout"
	"github.com/deskline/deskline/internal/ui/render"
)

type ImmediateModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	ViewRect(dl *render.DisplayContext, box layout.Box)
}

// LayeredModel is content hosted inside an overlay. The host decides the
// rectangle and the base z; the content reports how tall it wants to be for a
// given width and draws at or above z.
type LayeredModel interface {
	Update(msg tea.Msg) tea.Cmd
	Height(width int) int
	ViewLayer(dl *render.DisplayContext, box layout.Box, z int)
}
