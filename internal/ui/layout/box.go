package layout

import "github.com/charmbracelet/x/cellbuf"

// Box is a screen rectangle with helpers for splitting and placing content.
type Box struct {
	R cellbuf.Rectangle
}

func NewBox(r cellbuf.Rectangle) Box {
	return Box{R: r}
}

// Spec decides how much of an axis a slot gets.
type Spec interface {
	calc(total, remaining int, fillWeight float64) int
}

// Fixed is a size in cells.
type Fixed int

// FillSpec takes a weighted share of what Fixed leaves over.
type FillSpec float64

func (f Fixed) calc(total, _ int, _ float64) int {
	return max(0, min(int(f), total))
}

func (f FillSpec) calc(_, remaining int, fillWeight float64) int {
	if remaining <= 0 || fillWeight <= 0 || f <= 0 {
		return 0
	}
	return int(float64(remaining) * float64(f) / fillWeight)
}

func Fill(weight float64) Spec {
	return FillSpec(weight)
}

func (b Box) Inset(n int) Box {
	return Box{R: b.R.Inset(n)}
}

// V splits the box top to bottom.
func (b Box) V(specs ...Spec) []Box {
	if len(specs) == 0 {
		return []Box{b}
	}
	sizes := allocate(b.R.Dy(), specs)
	result := make([]Box, len(specs))
	y := b.R.Min.Y
	for i, size := range sizes {
		next := min(y+size, b.R.Max.Y)
		result[i] = Box{R: cellbuf.Rectangle{
			Min: cellbuf.Pos(b.R.Min.X, y),
			Max: cellbuf.Pos(b.R.Max.X, next),
		}}
		y = next
	}
	return result
}

// H splits the box left to right.
func (b Box) H(specs ...Spec) []Box {
	if len(specs) == 0 {
		return []Box{b}
	}
	sizes := allocate(b.R.Dx(), specs)
	result := make([]Box, len(specs))
	x := b.R.Min.X
	for i, size := range sizes {
		next := min(x+size, b.R.Max.X)
		result[i] = Box{R: cellbuf.Rectangle{
			Min: cellbuf.Pos(x, b.R.Min.Y),
			Max: cellbuf.Pos(next, b.R.Max.Y),
		}}
		x = next
	}
	return result
}

// allocate sizes every slot; rounding leftovers go to the last Fill slot.
func allocate(total int, specs []Spec) []int {
	sizes := make([]int, len(specs))
	if total <= 0 {
		return sizes
	}

	consumed := 0
	fillWeight := 0.0
	lastFill := -1
	for i, spec := range specs {
		if f, ok := spec.(FillSpec); ok {
			fillWeight += float64(f)
			lastFill = i
			continue
		}
		sizes[i] = spec.calc(total, 0, 0)
		consumed += sizes[i]
	}

	remaining := max(total-consumed, 0)
	allocated := 0
	for i, spec := range specs {
		if _, ok := spec.(FillSpec); ok {
			sizes[i] = spec.calc(total, remaining, fillWeight)
			allocated += sizes[i]
		}
	}
	if lastFill >= 0 && fillWeight > 0 && remaining > allocated {
		sizes[lastFill] += remaining - allocated
	}
	return sizes
}

// CutTop cuts h cells from the top, returning the top box and the rest.
func (b Box) CutTop(h int) (top, rest Box) {
	h = max(0, min(h, b.R.Dy()))
	split := b.R.Min.Y + h
	top = Box{R: cellbuf.Rectangle{Min: b.R.Min, Max: cellbuf.Pos(b.R.Max.X, split)}}
	rest = Box{R: cellbuf.Rectangle{Min: cellbuf.Pos(b.R.Min.X, split), Max: b.R.Max}}
	return
}

// CutBottom cuts h cells from the bottom, returning the rest and the bottom box.
func (b Box) CutBottom(h int) (rest, bottom Box) {
	h = max(0, min(h, b.R.Dy()))
	split := b.R.Max.Y - h
	rest = Box{R: cellbuf.Rectangle{Min: b.R.Min, Max: cellbuf.Pos(b.R.Max.X, split)}}
	bottom = Box{R: cellbuf.Rectangle{Min: cellbuf.Pos(b.R.Min.X, split), Max: b.R.Max}}
	return
}

// Center returns a w×h box centered within b, clamped to b's size.
func (b Box) Center(w, h int) Box {
	w = max(0, min(w, b.R.Dx()))
	h = max(0, min(h, b.R.Dy()))
	x := b.R.Min.X + (b.R.Dx()-w)/2
	y := b.R.Min.Y + (b.R.Dy()-h)/2
	return Box{R: cellbuf.Rect(x, y, w, h)}
}
