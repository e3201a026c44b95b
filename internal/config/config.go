package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/deskline/deskline/internal/ui/render"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Overlay OverlayConfig `toml:"overlay"`
	Keys    KeysConfig    `toml:"keys"`
}

type OverlayConfig struct {
	PaintBase            int    `toml:"paint_base"`
	PaintIncrement       int    `toml:"paint_increment"`
	PopoverGap           int    `toml:"popover_gap"`
	PopoverInset         int    `toml:"popover_inset"`
	TooltipSide          string `toml:"tooltip_side"`
	DialogSize           string `toml:"dialog_size"`
	CloseOnEscape        bool   `toml:"close_on_escape"`
	CloseOnBackdropClick bool   `toml:"close_on_backdrop_click"`
}

type KeysConfig struct {
	Up          []string `toml:"up"`
	Down        []string `toml:"down"`
	Open        []string `toml:"open"`
	CloseTicket []string `toml:"close_ticket"`
	Tooltip     []string `toml:"tooltip"`
	Find        []string `toml:"find"`
	Cancel      []string `toml:"cancel"`
	Apply       []string `toml:"apply"`
	Quit        []string `toml:"quit"`
}

var (
	sides = []string{"top", "bottom", "left", "right"}
	sizes = []string{"small", "medium", "large", "xlarge", "full"}
)

// Default is the configuration used when no file is given. Popover spacing is
// in terminal cells, so it is much tighter than the positioner's own defaults.
func Default() Config {
	return Config{
		Overlay: OverlayConfig{
			PaintBase:            1000,
			PaintIncrement:       10,
			PopoverGap:           1,
			PopoverInset:         1,
			TooltipSide:          "top",
			DialogSize:           "medium",
			CloseOnEscape:        true,
			CloseOnBackdropClick: true,
		},
		Keys: KeysConfig{
			Up:          []string{"up", "k"},
			Down:        []string{"down", "j"},
			Open:        []string{"enter"},
			CloseTicket: []string{"d"},
			Tooltip:     []string{"?"},
			Find:        []string{"/"},
			Cancel:      []string{"esc"},
			Apply:       []string{"enter"},
			Quit:        []string{"q", "ctrl+c"},
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", filepath.Base(path), err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result. Unknown keys
// are rejected.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	o := c.Overlay
	switch {
	// one dialog paints from its layer up to its chrome, and those bands must
	// not overlap, nor sink below page popovers
	case o.PaintIncrement <= render.LayerChrome:
		return fmt.Errorf("%w: overlay.paint_increment must be greater than %d", ErrInvalid, render.LayerChrome)
	case o.PaintBase < render.ZPopover:
		return fmt.Errorf("%w: overlay.paint_base must be at least %d", ErrInvalid, render.ZPopover)
	case o.PopoverGap < 0:
		return fmt.Errorf("%w: overlay.popover_gap must not be negative", ErrInvalid)
	case o.PopoverInset < 0:
		return fmt.Errorf("%w: overlay.popover_inset must not be negative", ErrInvalid)
	case !slices.Contains(sides, strings.ToLower(o.TooltipSide)):
		return fmt.Errorf("%w: overlay.tooltip_side %q", ErrInvalid, o.TooltipSide)
	case !slices.Contains(sizes, strings.ToLower(o.DialogSize)):
		return fmt.Errorf("%w: overlay.dialog_size %q", ErrInvalid, o.DialogSize)
	}
	return nil
}
