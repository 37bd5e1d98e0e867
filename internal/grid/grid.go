// Package grid holds the visual state of every target slot.
package grid

import "sync"

// State is the visual state of one slot.
type State int

const (
	Hidden State = iota
	Visible
	Hit
)

func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case Hit:
		return "hit"
	default:
		return "hidden"
	}
}

// Grid is a fixed-size array of slot states. The cycle only ever shows
// one slot at a time, so at most one slot is non-hidden.
type Grid struct {
	mu    sync.Mutex
	slots []State
}

func New(slotCount int) *Grid {
	return &Grid{slots: make([]State, slotCount)}
}

func (g *Grid) SlotCount() int {
	return len(g.slots)
}

func (g *Grid) Get(slot int) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if slot < 0 || slot >= len(g.slots) {
		return Hidden
	}
	return g.slots[slot]
}

// Show marks a slot visible.
func (g *Grid) Show(slot int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if slot < 0 || slot >= len(g.slots) {
		return
	}
	g.slots[slot] = Visible
}

// Hide forces a slot back down, whether or not it was hit.
func (g *Grid) Hide(slot int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if slot < 0 || slot >= len(g.slots) {
		return
	}
	g.slots[slot] = Hidden
}

// HideAll resets every slot to hidden.
func (g *Grid) HideAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.slots {
		g.slots[i] = Hidden
	}
}

// MarkHit flips a visible slot to hit and reports whether the hit landed.
// Hidden or already-hit slots are left untouched, so one appearance can
// only ever be credited once.
func (g *Grid) MarkHit(slot int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if slot < 0 || slot >= len(g.slots) {
		return false
	}
	if g.slots[slot] != Visible {
		return false
	}
	g.slots[slot] = Hit
	return true
}

// Snapshot returns a copy of all slot states.
func (g *Grid) Snapshot() []State {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]State, len(g.slots))
	copy(out, g.slots)
	return out
}
