package popover

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/deskline/deskline/internal/ui/render"
	"github.com/rivo/uniseg"
)

// Model is a tooltip anchored to a trigger rectangle. The placement is
// computed once when the popover opens and kept until it closes, so the
// content does not jump while it is shown.
type Model struct {
	content  string
	side     Side
	opts     Options
	style    lipgloss.Style
	arrow    lipgloss.Style
	trigger  cellbuf.Rectangle
	viewport cellbuf.Rectangle

	open      bool
	placement Placement
}

func New(content string, side Side, opts Options) *Model {
	return &Model{
		content: content,
		side:    side,
		opts:    opts,
		style:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		arrow:   lipgloss.NewStyle(),
	}
}

func (m *Model) SetContent(content string) {
	m.content = content
}

// SetAnchor updates the trigger and viewport used by the next open.
func (m *Model) SetAnchor(trigger, viewport cellbuf.Rectangle) {
	m.trigger = trigger
	m.viewport = viewport
}

func (m *Model) SetOpen(open bool) {
	if open && !m.open {
		w, h := m.Size()
		m.placement = ComputePlacementWith(m.opts, m.trigger, cellbuf.Rect(0, 0, w, h), m.viewport, m.side)
	}
	m.open = open
}

func (m *Model) Toggle() {
	m.SetOpen(!m.open)
}

func (m *Model) IsOpen() bool {
	return m.open
}

// Placement is the placement resolved by the last open.
func (m *Model) Placement() Placement {
	return m.placement
}

// Size is the outer size of the content box in cells.
func (m *Model) Size() (int, int) {
	lines := strings.Split(m.content, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, uniseg.StringWidth(line))
	}
	return width + m.style.GetHorizontalFrameSize(), len(lines) + m.style.GetVerticalFrameSize()
}

// Rect is the box occupied by the content at the current placement.
func (m *Model) Rect() cellbuf.Rectangle {
	w, h := m.Size()
	return m.placement.Rect(w, h)
}

func (m *Model) View(dl *render.DisplayContext, z int) {
	if !m.open {
		return
	}
	rect := m.Rect()
	box := m.style.
		Width(max(rect.Dx()-m.style.GetHorizontalBorderSize(), 0)).
		Render(m.content)
	dl.AddDraw(rect, box, z)

	x, y := m.arrowAt(rect)
	dl.AddDraw(cellbuf.Rect(x, y, 1, 1), m.arrow.Render(m.placement.Side.Arrow()), z+1)
}

// arrowAt returns the cell of the arrow glyph. It sits in the gap between
// content and trigger, lined up with the trigger's center and kept within the
// content's span. Without a gap it replaces a border cell.
func (m *Model) arrowAt(rect cellbuf.Rectangle) (int, int) {
	step := 0
	if m.opts.Gap > 0 {
		step = 1
	}
	switch m.placement.Side {
	case Top:
		return alongX(m.trigger, rect), rect.Max.Y - 1 + step
	case Bottom:
		return alongX(m.trigger, rect), rect.Min.Y - step
	case Left:
		return rect.Max.X - 1 + step, alongY(m.trigger, rect)
	default:
		return rect.Min.X - step, alongY(m.trigger, rect)
	}
}

func alongX(trigger, rect cellbuf.Rectangle) int {
	center := trigger.Min.X + trigger.Dx()/2
	return max(rect.Min.X+1, min(center, rect.Max.X-2))
}

func alongY(trigger, rect cellbuf.Rectangle) int {
	center := trigger.Min.Y + trigger.Dy()/2
	return max(rect.Min.Y+1, min(center, rect.Max.Y-2))
}
