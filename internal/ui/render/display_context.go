package render

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/cellbuf"
)

// DisplayContext collects everything drawn in one frame. Components add draws,
// effects and interactions while laying out; Render then applies them sorted
// by Z and insertion order.
//
// Portal returns a child context that writes into the same root. Overlays use
// it so their output never depends on where the caller sits in the layout, and
// so that mouse input inside the portal is routed only to the portal.
type DisplayContext struct {
	draws         []drawOp
	effects       []effectOp
	interactions  []interactionOp
	portals       []portalOp
	orderCounter  int
	portalCounter int
	parent        *DisplayContext
	portalID      int
}

func NewDisplayContext() *DisplayContext {
	return &DisplayContext{
		draws:        make([]drawOp, 0, 16),
		effects:      make([]effectOp, 0, 8),
		interactions: make([]interactionOp, 0, 8),
		portals:      make([]portalOp, 0, 4),
	}
}

// Portal opens a detached render target covering rect at z. Interactions added
// through the returned context only receive mouse presses that land inside
// rect when no higher portal covers the same point.
func (dl *DisplayContext) Portal(rect cellbuf.Rectangle, z int) *DisplayContext {
	root := dl.root()
	root.portalCounter++
	id := root.portalCounter
	root.portals = append(root.portals, portalOp{
		ID:    id,
		Rect:  rect,
		Z:     z,
		Order: root.nextOrder(),
	})
	return &DisplayContext{parent: root, portalID: id}
}

func (dl *DisplayContext) root() *DisplayContext {
	if dl.parent == nil {
		return dl
	}
	return dl.parent
}

func (dl *DisplayContext) nextOrder() int {
	root := dl.root()
	root.orderCounter++
	return root.orderCounter
}

func (dl *DisplayContext) currentPortalID() int {
	if dl.parent == nil {
		return 0
	}
	return dl.portalID
}

func (dl *DisplayContext) AddDraw(rect cellbuf.Rectangle, content string, z int) {
	root := dl.root()
	root.draws = append(root.draws, drawOp{
		Draw:  Draw{Rect: rect, Content: content, Z: z},
		order: dl.nextOrder(),
	})
}

func (dl *DisplayContext) AddEffect(effect Effect) {
	root := dl.root()
	root.effects = append(root.effects, effectOp{
		effect: effect,
		order:  dl.nextOrder(),
		z:      effect.GetZ(),
	})
}

func (dl *DisplayContext) AddReverse(rect cellbuf.Rectangle, z int) {
	dl.AddEffect(ReverseEffect{Rect: rect, Z: z})
}

func (dl *DisplayContext) AddDim(rect cellbuf.Rectangle, z int) {
	dl.AddEffect(DimEffect{Rect: rect, Z: z})
}

// AddBackdrop darkens rect by opacity (0..1).
func (dl *DisplayContext) AddBackdrop(rect cellbuf.Rectangle, opacity float64, z int) {
	dl.AddEffect(BackdropEffect{Rect: rect, Opacity: opacity, Z: z})
}

func (dl *DisplayContext) AddInteraction(rect cellbuf.Rectangle, msg tea.Msg, typ InteractionType, z int) {
	root := dl.root()
	root.interactions = append(root.interactions, interactionOp{
		InteractionOp: InteractionOp{Rect: rect, Msg: msg, Type: typ, Z: z},
		portalID:      dl.currentPortalID(),
		order:         dl.nextOrder(),
	})
}

// Clear drops all operations so the context can be reused for the next frame.
func (dl *DisplayContext) Clear() {
	root := dl.root()
	root.draws = root.draws[:0]
	root.effects = root.effects[:0]
	root.interactions = root.interactions[:0]
	root.portals = root.portals[:0]
	root.orderCounter = 0
	root.portalCounter = 0
}

// Render applies all operations to buf. Draws and effects share one ordering:
// lower Z first, then insertion order, so a dialog's backdrop darkens the page
// drawn below it but not the dialog drawn above it.
func (dl *DisplayContext) Render(buf *cellbuf.Buffer) {
	root := dl.root()
	if root != dl {
		root.Render(buf)
		return
	}
	if len(root.draws) == 0 && len(root.effects) == 0 {
		return
	}

	ops := make([]renderOp, 0, len(root.draws)+len(root.effects))
	for _, op := range root.draws {
		ops = append(ops, renderOp{z: op.Z, order: op.order, draw: op.Draw, isDraw: true})
	}
	for _, op := range root.effects {
		ops = append(ops, renderOp{z: op.z, order: op.order, effect: op.effect})
	}

	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].z != ops[j].z {
			return ops[i].z < ops[j].z
		}
		return ops[i].order < ops[j].order
	})

	for _, op := range ops {
		if op.isDraw {
			cellbuf.SetContentRect(buf, op.draw.Content, op.draw.Rect)
			continue
		}
		op.effect.Apply(buf)
	}
}

// RenderToString renders into a fresh buffer of the given size.
func (dl *DisplayContext) RenderToString(width, height int) string {
	buf := cellbuf.NewBuffer(width, height)
	dl.Render(buf)
	return cellbuf.Render(buf)
}

// DrawList returns a copy of all draws in insertion order.
func (dl *DisplayContext) DrawList() []Draw {
	root := dl.root()
	result := make([]Draw, len(root.draws))
	for i, op := range root.draws {
		result[i] = op.Draw
	}
	return result
}

func (dl *DisplayContext) EffectsList() []Effect {
	root := dl.root()
	result := make([]Effect, len(root.effects))
	for i, op := range root.effects {
		result[i] = op.effect
	}
	return result
}

// InteractionsList returns all interactions, highest Z first.
func (dl *DisplayContext) InteractionsList() []InteractionOp {
	root := dl.root()
	sorted := sortInteractions(root.interactions)
	result := make([]InteractionOp, len(sorted))
	for i, op := range sorted {
		result[i] = op.InteractionOp
	}
	return result
}

// Len returns the total number of operations in the display context.
func (dl *DisplayContext) Len() int {
	root := dl.root()
	return len(root.draws) + len(root.effects) + len(root.interactions)
}

// ProcessMouseEvent routes a mouse event through the portals. The second
// result is true when the event landed inside any portal, even if nothing in
// it was interactive.
func (dl *DisplayContext) ProcessMouseEvent(msg tea.MouseMsg) (tea.Msg, bool) {
	root := dl.root()
	return processWithPortals(root.interactions, root.portals, msg)
}

type drawOp struct {
	Draw
	order int
}

type effectOp struct {
	effect Effect
	order  int
	z      int
}

type interactionOp struct {
	InteractionOp
	portalID int
	order    int
}

type renderOp struct {
	z      int
	order  int
	draw   Draw
	effect Effect
	isDraw bool
}

type portalOp struct {
	ID    int
	Rect  cellbuf.Rectangle
	Z     int
	Order int
}
