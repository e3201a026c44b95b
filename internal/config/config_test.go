package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Overlay.PaintBase)
	assert.Equal(t, 10, cfg.Overlay.PaintIncrement)
	assert.True(t, cfg.Overlay.CloseOnEscape)
	assert.True(t, cfg.Overlay.CloseOnBackdropClick)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
[overlay]
paint_base = 600
tooltip_side = "bottom"
close_on_escape = false

[keys]
quit = ["x"]
`)
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.Overlay.PaintBase)
	assert.Equal(t, 10, cfg.Overlay.PaintIncrement)
	assert.Equal(t, "bottom", cfg.Overlay.TooltipSide)
	assert.False(t, cfg.Overlay.CloseOnEscape)
	assert.True(t, cfg.Overlay.CloseOnBackdropClick)
	assert.Equal(t, []string{"x"}, cfg.Keys.Quit)
	assert.Equal(t, []string{"esc"}, cfg.Keys.Cancel)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse(`
[overlay]
paint_bse = 1
`)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "overlay.paint_bse")
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"side":                "[overlay]\ntooltip_side = \"center\"",
		"size":                "[overlay]\ndialog_size = \"huge\"",
		"increment":           "[overlay]\npaint_increment = 0",
		"overlapping layers":  "[overlay]\npaint_increment = 3",
		"base below popovers": "[overlay]\npaint_base = 499",
		"negative base":       "[overlay]\npaint_base = -10",
		"gap":                 "[overlay]\npopover_gap = -1",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(data)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("[overlay")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[overlay]\npopover_gap = 2\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Overlay.PopoverGap)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestKeyMap(t *testing.T) {
	km := Default().KeyMap()
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, km.Cancel))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, km.Tooltip))
	assert.Equal(t, "close ticket", km.CloseTicket.Help().Desc)
}
