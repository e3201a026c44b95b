package render

import (
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/lucasb-eyer/go-colorful"
)

func TestDisplayContext_AddDraw(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 10, 1), "test", 0)

	if len(dl.draws) != 1 {
		t.Errorf("AddDraw: expected 1 draw op, got %d", len(dl.draws))
	}
	if dl.draws[0].Content != "test" {
		t.Errorf("AddDraw: expected content 'test', got '%s'", dl.draws[0].Content)
	}
}

func TestDisplayContext_LayeredRender(t *testing.T) {
	dl := NewDisplayContext()

	// added first but on top
	dl.AddDraw(cellbuf.Rect(0, 0, 5, 1), "Front", 1)
	dl.AddDraw(cellbuf.Rect(0, 0, 10, 1), "Background", 0)

	output := dl.RenderToString(10, 1)
	if !strings.HasPrefix(output, "Front") {
		t.Errorf("Expected 'Front' over the background, got: %q", output)
	}
}

func TestDisplayContext_PortalDrawsLandOnRoot(t *testing.T) {
	dl := NewDisplayContext()
	portal := dl.Portal(cellbuf.Rect(0, 0, 10, 1), 100)
	portal.AddDraw(cellbuf.Rect(0, 0, 6, 1), "Dialog", 100)

	if dl.Len() != 1 {
		t.Fatalf("expected portal draw on the root context, got %d ops", dl.Len())
	}
	if output := portal.RenderToString(10, 1); !strings.Contains(output, "Dialog") {
		t.Errorf("expected 'Dialog' in output, got: %q", output)
	}
}

func TestDisplayContext_PortalBlocksPageInteractions(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddInteraction(cellbuf.Rect(0, 0, 10, 1), testClickMsg{ID: 1}, InteractionClick, ZBase)
	dl.Portal(cellbuf.Rect(0, 0, 20, 5), 1010)

	press := tea.MouseMsg{X: 2, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	msg, handled := dl.ProcessMouseEvent(press)
	if msg != nil {
		t.Errorf("expected page click to be blocked by the portal, got %#v", msg)
	}
	if !handled {
		t.Error("expected press inside the portal to be reported as handled")
	}

	outside := tea.MouseMsg{X: 30, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	if msg, handled := dl.ProcessMouseEvent(outside); msg != nil || handled {
		t.Errorf("expected press outside all portals to be dropped, got %#v %v", msg, handled)
	}
}

func TestDisplayContext_PageInteractionsWithoutPortals(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddInteraction(cellbuf.Rect(0, 0, 10, 1), testClickMsg{ID: 1}, InteractionClick, ZBase)
	dl.AddInteraction(cellbuf.Rect(0, 0, 10, 1), testClickMsg{ID: 2}, InteractionClick, ZPopover)

	press := tea.MouseMsg{X: 2, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	msg, handled := dl.ProcessMouseEvent(press)
	if !handled {
		t.Fatal("expected click to be handled")
	}
	if m, ok := msg.(testClickMsg); !ok || m.ID != 2 {
		t.Errorf("expected the higher Z interaction, got %#v", msg)
	}

	release := tea.MouseMsg{X: 2, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
	if msg, _ := dl.ProcessMouseEvent(release); msg != nil {
		t.Errorf("expected release to be ignored, got %#v", msg)
	}
}

type scrollMsg struct{ delta int }

func (s scrollMsg) SetDelta(delta int) tea.Msg { return scrollMsg{delta: delta} }

func TestDisplayContext_ScrollCarriesDelta(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddInteraction(cellbuf.Rect(0, 0, 10, 10), scrollMsg{}, InteractionScroll, ZBase)

	wheel := tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}
	msg, _ := dl.ProcessMouseEvent(wheel)
	if m, ok := msg.(scrollMsg); !ok || m.delta != 3 {
		t.Errorf("expected scrollMsg{3}, got %#v", msg)
	}
}

func TestBackdropEffect_DarkensBackground(t *testing.T) {
	dl := NewDisplayContext()
	white := cellbuf.Style{Bg: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	dl.AddBackdrop(cellbuf.Rect(0, 0, 4, 1), 0.5, 1010)

	buf := cellbuf.NewBuffer(4, 1)
	buf.FillRect(&cellbuf.Cell{Rune: 'x', Width: 1, Style: white}, cellbuf.Rect(0, 0, 4, 1))
	dl.Render(buf)

	cell := buf.Cell(0, 0)
	if cell == nil || cell.Style.Bg == nil {
		t.Fatal("expected a background color on the shaded cell")
	}
	got, _ := colorful.MakeColor(cell.Style.Bg)
	if got.R > 0.55 || got.R < 0.45 {
		t.Errorf("expected background blended halfway to black, got %v", got.Hex())
	}
}

func TestBackdropEffect_ZeroOpacityIsNoop(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 5, 1), "Hello", ZBase)
	dl.AddBackdrop(cellbuf.Rect(0, 0, 5, 1), 0, 1010)

	buf := cellbuf.NewBuffer(5, 1)
	dl.Render(buf)
	if cell := buf.Cell(0, 0); cell == nil || cell.Style.Bg != nil {
		t.Errorf("expected untouched cell, got %#v", cell)
	}
}

func TestBackdropEffect_DoesNotShadeHigherLayers(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 5, 1), "Page!", ZBase)
	dl.AddBackdrop(cellbuf.Rect(0, 0, 10, 1), 0.3, 1010)
	dl.AddDraw(cellbuf.Rect(5, 0, 5, 1), "Modal", 1011)

	output := dl.RenderToString(10, 1)
	if !strings.Contains(output, "Modal") {
		t.Errorf("expected dialog text in output, got %q", output)
	}
}

func TestIterateCells_BoundsChecking(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 5, 1), "Hello", 0)
	dl.AddReverse(cellbuf.Rect(3, 0, 20, 1), 0)
	dl.AddDim(cellbuf.Rect(-5, -5, 50, 50), 0)

	buf := cellbuf.NewBuffer(10, 1)
	dl.Render(buf)

	if cell := buf.Cell(4, 0); cell == nil {
		t.Error("Expected cell at (4,0) to exist")
	}
}

func TestDisplayContext_Reuse(t *testing.T) {
	dl := NewDisplayContext()

	dl.AddDraw(cellbuf.Rect(0, 0, 5, 1), "Frame1", 0)
	dl.Portal(cellbuf.Rect(0, 0, 5, 1), 10)
	if dl.Len() != 1 {
		t.Errorf("Expected 1 op, got %d", dl.Len())
	}

	dl.Clear()
	if dl.Len() != 0 || len(dl.portals) != 0 {
		t.Errorf("Expected 0 ops after clear, got %d", dl.Len())
	}
}
