// Package stack keeps the ordered set of open overlays.
//
// The coordinator is the single owner of overlay ordering. Position in the
// sequence is temporal open order, which is also paint order (back to front),
// so the last entry is the only overlay allowed to react to global dismissal
// gestures.
package stack

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
)

const (
	DefaultPaintBase      = 1000
	DefaultPaintIncrement = 10
)

// ID identifies one mount of an overlay. A host generates a new one every
// time it opens.
type ID string

// NewID returns a fresh opaque overlay id.
func NewID() ID {
	return ID(uuid.NewString())
}

type EventKind int

const (
	Registered EventKind = iota
	Unregistered
)

func (k EventKind) String() string {
	switch k {
	case Registered:
		return "registered"
	case Unregistered:
		return "unregistered"
	default:
		return "unknown"
	}
}

// Event describes an effective change to the stack. Len is the stack length
// after the change.
type Event struct {
	Kind EventKind
	ID   ID
	Len  int
}

// ScrollLock suppresses page scrolling while at least one overlay is open.
type ScrollLock interface {
	Engage()
	Release()
}

type noopLock struct{}

func (noopLock) Engage()  {}
func (noopLock) Release() {}

type Option func(*Coordinator)

// WithScrollLock sets the lock engaged on 0->1 and released on 1->0.
func WithScrollLock(lock ScrollLock) Option {
	return func(c *Coordinator) {
		if lock != nil {
			c.lock = lock
		}
	}
}

// WithPaintLayers overrides the base and per-depth increment of PaintLayer.
func WithPaintLayers(base, increment int) Option {
	return func(c *Coordinator) {
		c.paintBase = base
		c.paintIncrement = increment
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

type subscriber struct {
	id int
	fn func(Event)
}

type Coordinator struct {
	mu             sync.Mutex
	entries        []ID
	subscribers    []subscriber
	nextSubscriber int

	lock           ScrollLock
	paintBase      int
	paintIncrement int
	logger         *slog.Logger
}

// New creates a coordinator. The application root owns it for the lifetime
// of the process and hands it to every overlay host.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		lock:           noopLock{},
		paintBase:      DefaultPaintBase,
		paintIncrement: DefaultPaintIncrement,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register appends id and returns its depth. Registering an id that is
// already present changes nothing and returns the depth it already has.
func (c *Coordinator) Register(id ID) int {
	c.mu.Lock()
	if idx := slices.Index(c.entries, id); idx >= 0 {
		c.mu.Unlock()
		return idx + 1
	}
	c.entries = append(c.entries, id)
	n := len(c.entries)
	subs := c.snapshotSubscribers()
	c.mu.Unlock()

	c.logger.Debug("overlay registered", "id", id, "depth", n)
	// the lock runs outside mu so it may query the coordinator
	if n == 1 {
		c.lock.Engage()
		c.logger.Debug("scroll lock engaged")
	}
	notify(subs, Event{Kind: Registered, ID: id, Len: n})
	return n
}

// Unregister removes the first occurrence of id and returns the remaining
// length. Unknown ids are ignored.
func (c *Coordinator) Unregister(id ID) int {
	c.mu.Lock()
	idx := slices.Index(c.entries, id)
	if idx < 0 {
		n := len(c.entries)
		c.mu.Unlock()
		return n
	}
	c.entries = slices.Delete(c.entries, idx, idx+1)
	n := len(c.entries)
	subs := c.snapshotSubscribers()
	c.mu.Unlock()

	c.logger.Debug("overlay unregistered", "id", id, "remaining", n)
	if n == 0 {
		c.lock.Release()
		c.logger.Debug("scroll lock released")
	}
	notify(subs, Event{Kind: Unregistered, ID: id, Len: n})
	return n
}

// DepthOf returns the 1-based position of id, or 0 when it is not open.
func (c *Coordinator) DepthOf(id ID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Index(c.entries, id) + 1
}

func (c *Coordinator) IsFrontmost(id ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return false
	}
	return c.entries[len(c.entries)-1] == id
}

func (c *Coordinator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Entries returns a copy of the stack, back to front.
func (c *Coordinator) Entries() []ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.entries)
}

// PaintLayer returns the z value for an overlay at the given depth.
func (c *Coordinator) PaintLayer(depth int) int {
	return c.paintBase + depth*c.paintIncrement
}

// Subscription is returned by Subscribe; Unsubscribe may be called more than
// once.
type Subscription struct {
	c  *Coordinator
	id int
}

func (s Subscription) Unsubscribe() {
	if s.c == nil {
		return
	}
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	s.c.subscribers = slices.DeleteFunc(s.c.subscribers, func(sub subscriber) bool {
		return sub.id == s.id
	})
}

// Subscribe registers fn to be called after every effective change. Callbacks
// run outside the coordinator's lock and may query it.
func (c *Coordinator) Subscribe(fn func(Event)) Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSubscriber++
	c.subscribers = append(c.subscribers, subscriber{id: c.nextSubscriber, fn: fn})
	return Subscription{c: c, id: c.nextSubscriber}
}

func (c *Coordinator) snapshotSubscribers() []subscriber {
	return slices.Clone(c.subscribers)
}

func notify(subs []subscriber, e Event) {
	for _, sub := range subs {
		sub.fn(e)
	}
}

// BackdropOpacity darkens each deeper backdrop a little more, capped at 0.5.
func BackdropOpacity(depth int) float64 {
	if depth <= 0 {
		return 0
	}
	return min(0.5, 0.2+float64(depth-1)*0.1)
}
