package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLock struct {
	engaged  int
	released int
}

func (l *countingLock) Engage()  { l.engaged++ }
func (l *countingLock) Release() { l.released++ }

func TestRegister_OrdersByOpenTime(t *testing.T) {
	c := New()
	assert.Equal(t, 1, c.Register("a"))
	assert.Equal(t, 2, c.Register("b"))
	assert.Equal(t, 3, c.Register("c"))

	assert.Equal(t, 1, c.DepthOf("a"))
	assert.Equal(t, 2, c.DepthOf("b"))
	assert.Equal(t, 3, c.DepthOf("c"))
	assert.True(t, c.IsFrontmost("c"))
	assert.False(t, c.IsFrontmost("a"))
	assert.False(t, c.IsFrontmost("b"))
}

func TestRegister_DuplicateIsAbsorbed(t *testing.T) {
	c := New()
	c.Register("a")
	c.Register("b")

	assert.Equal(t, 1, c.Register("a"), "a keeps its own depth")
	assert.Equal(t, 2, c.Register("b"))
	assert.Equal(t, []ID{"a", "b"}, c.Entries())
	assert.True(t, c.IsFrontmost("b"))
}

func TestUnregister_OutOfOrderRedensifies(t *testing.T) {
	c := New()
	c.Register("a")
	c.Register("b")
	c.Register("c")

	assert.Equal(t, 2, c.Unregister("b"))
	assert.True(t, c.IsFrontmost("c"))
	assert.Equal(t, 2, c.DepthOf("c"))
	assert.Equal(t, 0, c.DepthOf("b"))
}

func TestUnregister_AbsentIsNoop(t *testing.T) {
	c := New()
	c.Register("a")
	assert.Equal(t, 1, c.Unregister("missing"))
	assert.Equal(t, 0, c.Unregister("a"))
	assert.Equal(t, 0, c.Unregister("a"))
}

func TestIsFrontmost_EmptyStack(t *testing.T) {
	c := New()
	assert.False(t, c.IsFrontmost(""))
	assert.False(t, c.IsFrontmost("a"))
}

func TestScrollLock_EngagesOnceAndReleasesOnce(t *testing.T) {
	lock := &countingLock{}
	c := New(WithScrollLock(lock))

	c.Register("a")
	c.Register("b")
	c.Unregister("b")
	c.Register("c")
	c.Unregister("a")
	assert.Equal(t, 1, lock.engaged)
	assert.Equal(t, 0, lock.released)

	c.Unregister("c")
	assert.Equal(t, 1, lock.engaged)
	assert.Equal(t, 1, lock.released)

	c.Unregister("c")
	assert.Equal(t, 1, lock.released)
}

func TestScrollLock_DuplicateRegisterDoesNotReengage(t *testing.T) {
	lock := &countingLock{}
	c := New(WithScrollLock(lock))
	c.Register("a")
	c.Register("a")
	assert.Equal(t, 1, lock.engaged)
}

// queryingLock reads the coordinator from inside Engage and Release.
type queryingLock struct {
	c    *Coordinator
	seen []int
}

func (l *queryingLock) Engage()  { l.seen = append(l.seen, l.c.Len()) }
func (l *queryingLock) Release() { l.seen = append(l.seen, l.c.Len()) }

func TestScrollLock_MayQueryCoordinator(t *testing.T) {
	lock := &queryingLock{}
	c := New(WithScrollLock(lock))
	lock.c = c

	c.Register("a")
	c.Unregister("a")

	assert.Equal(t, []int{1, 0}, lock.seen)
}

func TestSubscribe_ReceivesEffectiveChanges(t *testing.T) {
	c := New()
	var events []Event
	sub := c.Subscribe(func(e Event) {
		events = append(events, e)
		// callbacks may query the coordinator
		_ = c.Len()
	})

	c.Register("a")
	c.Register("a")
	c.Unregister("missing")
	c.Unregister("a")

	require.Len(t, events, 2)
	assert.Equal(t, Event{Kind: Registered, ID: "a", Len: 1}, events[0])
	assert.Equal(t, Event{Kind: Unregistered, ID: "a", Len: 0}, events[1])

	sub.Unsubscribe()
	sub.Unsubscribe()
	c.Register("b")
	assert.Len(t, events, 2)
}

func TestSubscribe_UnsubscribeOnlyRemovesOwnCallback(t *testing.T) {
	c := New()
	var first, second int
	s1 := c.Subscribe(func(Event) { first++ })
	c.Subscribe(func(Event) { second++ })

	s1.Unsubscribe()
	c.Register("a")
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestPaintLayer(t *testing.T) {
	c := New()
	assert.Equal(t, 1010, c.PaintLayer(1))
	assert.Equal(t, 1030, c.PaintLayer(3))

	custom := New(WithPaintLayers(50, 5))
	assert.Equal(t, 60, custom.PaintLayer(2))
}

func TestBackdropOpacity(t *testing.T) {
	assert.Equal(t, 0.0, BackdropOpacity(0))
	assert.InDelta(t, 0.2, BackdropOpacity(1), 1e-9)
	assert.InDelta(t, 0.3, BackdropOpacity(2), 1e-9)
	assert.InDelta(t, 0.4, BackdropOpacity(3), 1e-9)
	assert.InDelta(t, 0.5, BackdropOpacity(4), 1e-9)
	assert.InDelta(t, 0.5, BackdropOpacity(10), 1e-9)
}

func TestNewID_IsUnique(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
