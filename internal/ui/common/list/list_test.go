package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockScrollableList struct {
	items         []string
	cursor        int
	firstRowIndex int
	lastRowIndex  int
	listName      string
}

func (m *mockScrollableList) Len() int {
	return len(m.items)
}

func (m *mockScrollableList) Cursor() int {
	return m.cursor
}

func (m *mockScrollableList) SetCursor(index int) {
	m.cursor = index
}

func (m *mockScrollableList) VisibleRange() (int, int) {
	return m.firstRowIndex, m.lastRowIndex
}

func (m *mockScrollableList) ListName() string {
	return m.listName
}

func TestScroll_EmptyList(t *testing.T) {
	mock := &mockScrollableList{lastRowIndex: 10, listName: "tickets"}

	result := Scroll(mock, 1, false)

	assert.Equal(t, 0, result.NewCursor)
	assert.Nil(t, result.NavigateMessage)
}

func TestScroll_SingleItemList(t *testing.T) {
	tests := []struct {
		name    string
		delta   int
		wantMsg string
	}{
		{name: "down", delta: 1, wantMsg: "Already at the bottom of tickets"},
		{name: "up", delta: -1, wantMsg: "Already at the top of tickets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockScrollableList{items: []string{"a"}, lastRowIndex: 10, listName: "tickets"}

			result := Scroll(mock, tt.delta, false)

			assert.Equal(t, 0, result.NewCursor)
			if assert.NotNil(t, result.NavigateMessage) {
				assert.Equal(t, tt.wantMsg, result.NavigateMessage.Text)
				assert.NoError(t, result.NavigateMessage.Err)
			}
		})
	}
}

func TestScroll_Steps(t *testing.T) {
	tests := []struct {
		name        string
		startCursor int
		delta       int
		isPage      bool
		want        int
	}{
		{"down one", 2, 1, false, 3},
		{"up one", 2, -1, false, 1},
		{"down clamps", 8, 5, false, 9},
		{"up clamps", 1, -5, false, 0},
		{"page down", 0, 1, true, 3},
		{"page up", 5, -1, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockScrollableList{
				items:         make([]string, 10),
				cursor:        tt.startCursor,
				firstRowIndex: 0,
				lastRowIndex:  4,
				listName:      "tickets",
			}

			result := Scroll(mock, tt.delta, tt.isPage)

			assert.Equal(t, tt.want, result.NewCursor)
			assert.Nil(t, result.NavigateMessage)
			assert.True(t, result.EnsureCursorView)
		})
	}
}
