package popover

import "github.com/charmbracelet/x/cellbuf"

const (
	// DefaultGap separates the content's anchor edge from the trigger.
	DefaultGap = 8
	// DefaultInset keeps the content away from the viewport edge on the free axis.
	DefaultInset = 10
)

// Placement is the resolved position of anchored content. Side may differ
// from the requested side when the request would not fit.
type Placement struct {
	Side Side
	Top  int
	Left int
}

// Rect returns the box the content occupies at this placement.
func (p Placement) Rect(width, height int) cellbuf.Rectangle {
	return cellbuf.Rect(p.Left, p.Top, width, height)
}

type Options struct {
	Gap   int
	Inset int
}

func DefaultOptions() Options {
	return Options{Gap: DefaultGap, Inset: DefaultInset}
}

// ComputePlacement positions content next to trigger inside viewport using
// the default gap and inset. Only the size of content is used.
func ComputePlacement(trigger, content, viewport cellbuf.Rectangle, requested Side) Placement {
	return ComputePlacementWith(DefaultOptions(), trigger, content, viewport, requested)
}

// ComputePlacementWith is ComputePlacement with an explicit gap and inset.
//
// The requested side wins when it fits on its constrained axis, then its
// opposite, then the first fitting side of bottom, top, right, left. When
// nothing fits the requested side is used and the content may be clipped.
// The free axis is clamped afterwards.
func ComputePlacementWith(opts Options, trigger, content, viewport cellbuf.Rectangle, requested Side) Placement {
	w, h := content.Dx(), content.Dy()
	if requested < Top || requested > Right {
		requested = Top
	}

	var candidates [4]Placement
	for _, side := range fallbackOrder {
		candidates[side] = candidate(side, trigger, w, h, opts.Gap)
	}

	resolved := requested
	switch {
	case fits(candidates[requested], w, h, viewport):
	case fits(candidates[requested.Opposite()], w, h, viewport):
		resolved = requested.Opposite()
	default:
		for _, side := range fallbackOrder {
			if side == requested || side == requested.Opposite() {
				continue
			}
			if fits(candidates[side], w, h, viewport) {
				resolved = side
				break
			}
		}
	}

	p := candidates[resolved]
	if resolved.Vertical() {
		p.Left = clamp(p.Left, w, viewport.Min.X, viewport.Max.X, opts.Inset)
	} else {
		p.Top = clamp(p.Top, h, viewport.Min.Y, viewport.Max.Y, opts.Inset)
	}
	return p
}

func candidate(side Side, trigger cellbuf.Rectangle, w, h, gap int) Placement {
	centerLeft := trigger.Min.X + (trigger.Dx()-w)/2
	centerTop := trigger.Min.Y + (trigger.Dy()-h)/2
	switch side {
	case Top:
		return Placement{Side: Top, Top: trigger.Min.Y - gap - h, Left: centerLeft}
	case Bottom:
		return Placement{Side: Bottom, Top: trigger.Max.Y + gap, Left: centerLeft}
	case Left:
		return Placement{Side: Left, Top: centerTop, Left: trigger.Min.X - gap - w}
	default:
		return Placement{Side: Right, Top: centerTop, Left: trigger.Max.X + gap}
	}
}

// fits checks only the axis the side constrains.
func fits(p Placement, w, h int, viewport cellbuf.Rectangle) bool {
	if p.Side.Vertical() {
		return p.Top >= viewport.Min.Y && p.Top+h <= viewport.Max.Y
	}
	return p.Left >= viewport.Min.X && p.Left+w <= viewport.Max.X
}

// clamp shifts pos so [pos, pos+size) stays within [lo+inset, hi-inset].
// Content larger than that span is pinned to the near edge.
func clamp(pos, size, lo, hi, inset int) int {
	if far := hi - inset - size; pos > far {
		pos = far
	}
	if near := lo + inset; pos < near {
		pos = near
	}
	return pos
}
