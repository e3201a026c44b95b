package render

import (
	"image"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/cellbuf"
)

// InteractionType defines what kinds of input an interactive region responds to.
// Multiple types can be combined using bitwise OR.
type InteractionType int

const (
	InteractionClick InteractionType = 1 << iota
	InteractionScroll
)

// InteractionOp is a region that turns a mouse press into a message.
type InteractionOp struct {
	Rect cellbuf.Rectangle // absolute coordinates
	Msg  tea.Msg
	Type InteractionType
	Z    int // higher wins when regions overlap
}

// ScrollDeltaCarrier is implemented by messages that want the wheel delta.
type ScrollDeltaCarrier interface {
	SetDelta(delta int) tea.Msg
}

func contains(r cellbuf.Rectangle, x, y int) bool {
	return image.Pt(x, y).In(r)
}

func sortInteractions(interactions []interactionOp) []interactionOp {
	sorted := make([]interactionOp, len(interactions))
	copy(sorted, interactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Z != sorted[j].Z {
			return sorted[i].Z > sorted[j].Z
		}
		return sorted[i].order < sorted[j].order
	})
	return sorted
}

func match(interactions []interactionOp, msg tea.MouseMsg, allowed func(interactionOp) bool) (tea.Msg, bool) {
	if msg.Action != tea.MouseActionPress {
		return nil, false
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		for _, op := range interactions {
			if op.Type&InteractionClick == 0 || !allowed(op) || !contains(op.Rect, msg.X, msg.Y) {
				continue
			}
			return op.Msg, true
		}
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := -3
		if msg.Button == tea.MouseButtonWheelDown {
			delta = 3
		}
		for _, op := range interactions {
			if op.Type&InteractionScroll == 0 || !allowed(op) || !contains(op.Rect, msg.X, msg.Y) {
				continue
			}
			if carrier, ok := op.Msg.(ScrollDeltaCarrier); ok {
				return carrier.SetDelta(delta), true
			}
			return op.Msg, true
		}
	}
	return nil, false
}

func processWithPortals(interactions []interactionOp, portals []portalOp, msg tea.MouseMsg) (tea.Msg, bool) {
	portalID, portalHit := topPortalAt(portals, msg.X, msg.Y)
	if msg.Action != tea.MouseActionPress {
		return nil, portalHit
	}

	result, handled := match(sortInteractions(interactions), msg, func(op interactionOp) bool {
		return portalAllows(op.portalID, portalID, portalHit, len(portals) > 0)
	})
	if handled {
		return result, true
	}
	return nil, portalHit
}

func topPortalAt(portals []portalOp, x, y int) (int, bool) {
	sorted := make([]portalOp, len(portals))
	copy(sorted, portals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Z != sorted[j].Z {
			return sorted[i].Z > sorted[j].Z
		}
		return sorted[i].Order > sorted[j].Order
	})
	for _, p := range sorted {
		if contains(p.Rect, x, y) {
			return p.ID, true
		}
	}
	return 0, false
}

// portalAllows blocks page interactions while any portal is open, and routes a
// press inside a portal only to that portal's interactions.
func portalAllows(interactionPortal, hitPortal int, hit, portalsOpen bool) bool {
	if portalsOpen && !hit {
		return false
	}
	if hit {
		return interactionPortal == hitPortal
	}
	return interactionPortal == 0
}
