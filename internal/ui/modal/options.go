package modal

import (
	"fmt"
	"log/slog"
	"strings"
)

// Size is a fixed dialog width class.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
	SizeXLarge
	SizeFull
)

// fullMargin is the gap kept on each side of a SizeFull dialog.
const fullMargin = 2

// Width returns the outer dialog width for a screen of the given width.
func (s Size) Width(screen int) int {
	var w int
	switch s {
	case SizeSmall:
		w = 40
	case SizeMedium:
		w = 60
	case SizeLarge:
		w = 80
	case SizeXLarge:
		w = 100
	default:
		w = screen - 2*fullMargin
	}
	return max(0, min(w, screen))
}

func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	case SizeXLarge:
		return "xlarge"
	case SizeFull:
		return "full"
	}
	return fmt.Sprintf("Size(%d)", int(s))
}

func ParseSize(s string) (Size, error) {
	switch strings.ToLower(s) {
	case "small":
		return SizeSmall, nil
	case "medium":
		return SizeMedium, nil
	case "large":
		return SizeLarge, nil
	case "xlarge":
		return SizeXLarge, nil
	case "full":
		return SizeFull, nil
	}
	return SizeMedium, fmt.Errorf("unknown dialog size %q", s)
}

type options struct {
	closeOnBackdropClick bool
	closeOnEscape        bool
	closeAffordance      bool
	size                 Size
	title                string
	logger               *slog.Logger
	onTransition         func(from, to State)
}

func defaultOptions() options {
	return options{
		closeOnBackdropClick: true,
		closeOnEscape:        true,
		closeAffordance:      true,
		size:                 SizeMedium,
	}
}

// Option configures a Host. Options only decide whether a dismissal can fire;
// stack bookkeeping always happens.
type Option func(*options)

func WithCloseOnBackdropClick(enabled bool) Option {
	return func(o *options) { o.closeOnBackdropClick = enabled }
}

func WithCloseOnEscape(enabled bool) Option {
	return func(o *options) { o.closeOnEscape = enabled }
}

// WithCloseAffordance toggles the clickable × in the title bar.
func WithCloseAffordance(enabled bool) Option {
	return func(o *options) { o.closeAffordance = enabled }
}

func WithSize(size Size) Option {
	return func(o *options) { o.size = size }
}

func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTransitionHook is called for every state change, including the
// transient ones.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(o *options) { o.onTransition = fn }
}
