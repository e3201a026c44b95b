package render

import (
	"github.com/charmbracelet/x/cellbuf"
)

// Draw places rendered content at a rectangle. Draws are sorted by Z before
// effects at the same Z are applied.
type Draw struct {
	Rect    cellbuf.Rectangle // target area in screen coordinates
	Content string            // ANSI string from lipgloss
	Z       int
}
