package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/deskline/deskline/internal/config"
	"github.com/deskline/deskline/internal/ui/common"
	"github.com/deskline/deskline/test"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func asciiProfile(t *testing.T) {
	t.Helper()
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(old) })
}

func newSizedUI(t *testing.T) *Model {
	t.Helper()
	m := NewUI(config.Default(), WithClock(clock))
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestView_EmptyUntilSized(t *testing.T) {
	m := NewUI(config.Default(), WithClock(clock))
	assert.Equal(t, "", m.View())
}

func TestView_RendersBoard(t *testing.T) {
	asciiProfile(t)
	m := newSizedUI(t)

	out := test.Stripped(m.View())

	assert.Contains(t, out, "Tickets  5 open of 6")
	assert.Contains(t, out, "VPN drops after sleep")
	assert.NotContains(t, out, "\r")
}

func TestUpdate_QuitOnlyWithoutOverlays(t *testing.T) {
	m := newSizedUI(t)

	test.SimulateModel(m, test.Press(tea.KeyEnter))
	require.Equal(t, 1, m.coordinator.Len())

	assert.False(t, isQuit(m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})))
	assert.True(t, isQuit(m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})))

	test.SimulateModel(m, test.Press(tea.KeyEsc))
	require.Equal(t, 0, m.coordinator.Len())
	assert.True(t, isQuit(m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})))
}

func TestUpdate_EscapeClosesFrontmostFirst(t *testing.T) {
	m := newSizedUI(t)

	test.SimulateModel(m, tea.Sequence(test.Press(tea.KeyEnter), test.Type("d")))
	require.Equal(t, 2, m.coordinator.Len())
	assert.True(t, m.lock.Engaged())

	test.SimulateModel(m, test.Press(tea.KeyEsc))
	assert.Equal(t, 1, m.coordinator.Len())
	assert.True(t, m.lock.Engaged())

	test.SimulateModel(m, test.Press(tea.KeyEsc))
	assert.Equal(t, 0, m.coordinator.Len())
	assert.False(t, m.lock.Engaged())
	assert.Equal(t, 0, m.dispatcher.Len())
}

func TestUpdate_MouseRoutesThroughDisplay(t *testing.T) {
	m := newSizedUI(t)
	m.View()

	test.SimulateModel(m, func() tea.Msg { return test.Click(5, 3) })
	assert.Equal(t, 2, m.board.Cursor())

	test.SimulateModel(m, test.Press(tea.KeyEnter))
	m.View()

	// the page is behind a portal now
	test.SimulateModel(m, func() tea.Msg { return test.Click(5, 4) })
	assert.Equal(t, 2, m.board.Cursor())
	assert.Equal(t, 0, m.coordinator.Len(), "the press landed on the backdrop")
}

func TestUpdate_TitleFollowsStack(t *testing.T) {
	m := newSizedUI(t)
	assert.Equal(t, "deskline", m.title())

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "deskline (1)", m.title())
	assert.False(t, m.titleDirty)

	assert.Nil(t, m.Update(tea.WindowSizeMsg{Width: 100, Height: 20}))
}

func TestUpdate_StatusReachesFlash(t *testing.T) {
	asciiProfile(t)
	m := newSizedUI(t)

	cmd := m.Update(common.StatusMsg{Text: "Closed T-1"})

	assert.NotNil(t, cmd)
	assert.True(t, m.flash.Any())
	assert.Contains(t, m.View(), "Closed T-1")
}

func TestClose_StopsTitleUpdates(t *testing.T) {
	m := NewUI(config.Default(), WithClock(clock))
	m.Close()
	m.Close()

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.titleDirty)
}

func waitForText(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return strings.Contains(ansi.Strip(string(b)), text)
	}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(10*time.Millisecond))
}

func TestProgram_DialogRoundTrip(t *testing.T) {
	asciiProfile(t)
	tm := teatest.NewTestModel(t, New(config.Default(), WithClock(clock)), teatest.WithInitialTermSize(100, 20))

	waitForText(t, tm, "enter open")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForText(t, tm, "Assignee")
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	waitForText(t, tm, "enter open")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	final, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(*wrapper)
	require.True(t, ok)
	assert.Equal(t, 0, final.ui.coordinator.Len())
	assert.False(t, final.ui.lock.Engaged())
}
