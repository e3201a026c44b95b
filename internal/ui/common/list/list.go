package list

import (
	"github.com/deskline/deskline/internal/ui/common"
)

type IList interface {
	Len() int
}

type IListCursor interface {
	Cursor() int
	SetCursor(index int)
}

// IScrollableList is a list with a cursor and a visible window of rows.
type IScrollableList interface {
	IList
	IListCursor

	// VisibleRange returns the first and last visible row indices, used for
	// page sized steps.
	VisibleRange() (firstRowIndex, lastRowIndex int)

	// ListName is used in boundary messages like "Already at the top of
	// {ListName}".
	ListName() string
}

type ScrollResult struct {
	NewCursor        int
	EnsureCursorView bool
	NavigateMessage  *common.StatusMsg
}

// Scroll calculates the new cursor position for list navigation. The caller
// applies NewCursor itself.
func Scroll(nav IScrollableList, delta int, isPage bool) ScrollResult {
	currentCursor := nav.Cursor()
	totalItems := nav.Len()
	firstRowIndex, lastRowIndex := nav.VisibleRange()

	result := ScrollResult{
		NewCursor:        currentCursor,
		EnsureCursorView: true,
	}

	if totalItems == 0 || delta == 0 {
		return result
	}

	step := delta
	if isPage {
		span := max(lastRowIndex-firstRowIndex-1, 1)
		if step < 0 {
			step = -span
		} else {
			step = span
		}
	}

	if step > 0 {
		if currentCursor >= totalItems-1 {
			result.NavigateMessage = &common.StatusMsg{Text: "Already at the bottom of " + nav.ListName()}
			return result
		}
		result.NewCursor = min(currentCursor+step, totalItems-1)
		return result
	}

	if currentCursor <= 0 {
		result.NavigateMessage = &common.StatusMsg{Text: "Already at the top of " + nav.ListName()}
		return result
	}
	result.NewCursor = max(currentCursor+step, 0)
	return result
}
