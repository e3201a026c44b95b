package render

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// TextBuilder lays out styled runs of text line by line starting at (x, y).
// Runs with an onClick message also register a click interaction, in the
// portal of the context the builder was created from.
type TextBuilder struct {
	dl   *DisplayContext
	runs []textRun
	x    int
	y    int
	z    int
}

type textRun struct {
	text    string
	style   lipgloss.Style
	onClick tea.Msg
}

type placedRun struct {
	col, row int
	width    int
	rendered string
	onClick  tea.Msg
}

func (dl *DisplayContext) Text(x, y, z int) *TextBuilder {
	return &TextBuilder{dl: dl, x: x, y: y, z: z}
}

func (tb *TextBuilder) Write(text string) *TextBuilder {
	tb.runs = append(tb.runs, textRun{text: text})
	return tb
}

func (tb *TextBuilder) NewLine() *TextBuilder {
	tb.runs = append(tb.runs, textRun{text: "\n"})
	return tb
}

func (tb *TextBuilder) Styled(text string, style lipgloss.Style) *TextBuilder {
	tb.runs = append(tb.runs, textRun{text: text, style: style})
	return tb
}

func (tb *TextBuilder) Clickable(text string, style lipgloss.Style, onClick tea.Msg) *TextBuilder {
	tb.runs = append(tb.runs, textRun{text: text, style: style, onClick: onClick})
	return tb
}

func (tb *TextBuilder) Done() {
	placed := tb.layout()
	for _, run := range placed {
		rect := cellbuf.Rect(tb.x+run.col, tb.y+run.row, run.width, 1)
		tb.dl.AddDraw(rect, run.rendered, tb.z)
		if run.onClick != nil {
			tb.dl.AddInteraction(rect, run.onClick, InteractionClick, tb.z)
		}
	}
}

func (tb *TextBuilder) layout() []placedRun {
	var placed []placedRun
	row, col := 0, 0

	for _, run := range tb.runs {
		for i, part := range strings.Split(run.text, "\n") {
			if i > 0 {
				row++
				col = 0
			}
			if part == "" {
				continue
			}
			rendered := run.style.Render(part)
			width := lipgloss.Width(rendered)
			if width == 0 {
				continue
			}
			placed = append(placed, placedRun{
				col:      col,
				row:      row,
				width:    width,
				rendered: rendered,
				onClick:  run.onClick,
			})
			col += width
		}
	}
	return placed
}
