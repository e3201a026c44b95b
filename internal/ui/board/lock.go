package board

// PageLock is the scroll lock handed to the stack coordinator. While it is
// engaged the board ignores scrolling.
type PageLock struct {
	engaged bool
}

func (l *PageLock) Engage() {
	l.engaged = true
}

func (l *PageLock) Release() {
	l.engaged = false
}

func (l *PageLock) Engaged() bool {
	return l != nil && l.engaged
}
