package render

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/lucasb-eyer/go-colorful"
)

// Effect modifies cells that were already drawn.
type Effect interface {
	Apply(buf *cellbuf.Buffer)
	// GetZ returns the Z-index for layering (higher Z renders later)
	GetZ() int
	GetRect() cellbuf.Rectangle
}

// ReverseEffect reverses foreground and background colors.
type ReverseEffect struct {
	Rect cellbuf.Rectangle
	Z    int
}

func (e ReverseEffect) Apply(buf *cellbuf.Buffer) {
	iterateCells(buf, e.Rect, func(cell *cellbuf.Cell) *cellbuf.Cell {
		if cell == nil {
			return nil
		}
		newCell := cell.Clone()
		newCell.Style.Reverse(true)
		return newCell
	})
}

func (e ReverseEffect) GetZ() int                  { return e.Z }
func (e ReverseEffect) GetRect() cellbuf.Rectangle { return e.Rect }

// DimEffect dims the content by setting the Faint attribute.
type DimEffect struct {
	Rect cellbuf.Rectangle
	Z    int
}

func (e DimEffect) Apply(buf *cellbuf.Buffer) {
	iterateCells(buf, e.Rect, func(cell *cellbuf.Cell) *cellbuf.Cell {
		if cell == nil {
			return nil
		}
		newCell := cell.Clone()
		newCell.Style.Faint(true)
		return newCell
	})
}

func (e DimEffect) GetZ() int                  { return e.Z }
func (e DimEffect) GetRect() cellbuf.Rectangle { return e.Rect }

// BackdropEffect is the shade behind a modal. Every covered cell is made faint
// and any explicit colors are blended toward black by Opacity.
type BackdropEffect struct {
	Rect    cellbuf.Rectangle
	Opacity float64
	Z       int
}

func (e BackdropEffect) Apply(buf *cellbuf.Buffer) {
	if e.Opacity <= 0 {
		return
	}
	iterateCells(buf, e.Rect, func(cell *cellbuf.Cell) *cellbuf.Cell {
		if cell == nil {
			return nil
		}
		newCell := cell.Clone()
		newCell.Style.Faint(true)
		newCell.Style.Fg = darken(newCell.Style.Fg, e.Opacity)
		newCell.Style.Bg = darken(newCell.Style.Bg, e.Opacity)
		return newCell
	})
}

func (e BackdropEffect) GetZ() int                  { return e.Z }
func (e BackdropEffect) GetRect() cellbuf.Rectangle { return e.Rect }

func darken(c ansi.Color, opacity float64) ansi.Color {
	if c == nil {
		return nil
	}
	col, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	return col.BlendRgb(colorful.Color{}, min(opacity, 1)).Clamped()
}

// iterateCells applies transform to every cell of rect that lies inside buf.
func iterateCells(buf *cellbuf.Buffer, rect cellbuf.Rectangle, transform func(*cellbuf.Cell) *cellbuf.Cell) {
	rect = rect.Intersect(buf.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if newCell := transform(buf.Cell(x, y)); newCell != nil {
				buf.SetCell(x, y, newCell)
			}
		}
	}
}
