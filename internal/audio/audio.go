// Package audio is the sound-cue seam between the game core and the
// client. The core fires named cues and never learns whether anything
// actually played.
package audio

import (
	"sync"

	"whackamole/internal/events"
)

// Player receives fire-and-forget sound cues from the game.
type Player interface {
	Play(cue events.Cue)
}

// Nop discards every cue. Handy default for tests.
type Nop struct{}

func (Nop) Play(events.Cue) {}

// Gate forwards cues to a sink unless muted. The mute flag only silences
// cues; it never touches game state.
type Gate struct {
	mu    sync.Mutex
	muted bool
	sink  func(events.Cue)
}

func NewGate(sink func(events.Cue)) *Gate {
	return &Gate{sink: sink}
}

func (g *Gate) Play(cue events.Cue) {
	g.mu.Lock()
	muted := g.muted
	g.mu.Unlock()
	if muted {
		return
	}
	g.sink(cue)
}

func (g *Gate) SetMuted(on bool) {
	g.mu.Lock()
	g.muted = on
	g.mu.Unlock()
}

func (g *Gate) Muted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.muted
}
