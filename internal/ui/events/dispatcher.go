// Package events holds the global key and pointer listeners installed by open
// overlays. The root model forwards every input message here before anything
// else sees it.
package events

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

type KeyListener func(tea.KeyMsg) tea.Cmd

type PointerListener func(tea.MouseMsg) tea.Cmd

type listener struct {
	id      int
	key     KeyListener
	pointer PointerListener
}

type Dispatcher struct {
	keys     []listener
	pointers []listener
	nextID   int
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Handle removes the listener it was returned for. Remove is idempotent.
type Handle struct {
	d  *Dispatcher
	id int
}

func (h Handle) Remove() {
	if h.d == nil {
		return
	}
	match := func(l listener) bool { return l.id == h.id }
	h.d.keys = slices.DeleteFunc(h.d.keys, match)
	h.d.pointers = slices.DeleteFunc(h.d.pointers, match)
}

func (d *Dispatcher) OnKey(fn KeyListener) Handle {
	d.nextID++
	d.keys = append(d.keys, listener{id: d.nextID, key: fn})
	return Handle{d: d, id: d.nextID}
}

func (d *Dispatcher) OnPointer(fn PointerListener) Handle {
	d.nextID++
	d.pointers = append(d.pointers, listener{id: d.nextID, pointer: fn})
	return Handle{d: d, id: d.nextID}
}

// DispatchKey calls every installed key listener in install order. Listeners
// removed by an earlier listener during the same dispatch are still called;
// their own gating decides whether they react.
func (d *Dispatcher) DispatchKey(msg tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, l := range slices.Clone(d.keys) {
		if cmd := l.key(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (d *Dispatcher) DispatchPointer(msg tea.MouseMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, l := range slices.Clone(d.pointers) {
		if cmd := l.pointer(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Len reports the number of installed listeners of both kinds.
func (d *Dispatcher) Len() int {
	return len(d.keys) + len(d.pointers)
}
