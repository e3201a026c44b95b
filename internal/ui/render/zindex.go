package render

// Z values for content outside the overlay stack. Higher values render on top.
// Modal dialogs take their z from the stack coordinator's paint layers, which
// start above everything listed here.
const (
	// ZBase is the ticket board and other page content.
	ZBase = 0

	// ZStatus is the status and help line.
	ZStatus = 10

	// ZPopover is for anchored popovers and tooltips on page content.
	ZPopover = 500
)

// Offsets inside one modal paint layer. They must stay below the coordinator's
// paint increment so neighbouring dialogs never interleave.
const (
	LayerBackdrop = 0
	LayerFrame    = 1
	LayerContent  = 2
	LayerChrome   = 3
)
