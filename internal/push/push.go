// Package push bridges the game's event bus to the websocket hub,
// serializing core events into the client wire format.
package push

import (
	"sync"

	"whackamole/internal/events"
	"whackamole/internal/wshub"
)

type Pump struct {
	bus      *events.Bus
	hub      *wshub.Hub
	done     chan struct{}
	stopOnce sync.Once
}

func New(bus *events.Bus, hub *wshub.Hub) *Pump {
	return &Pump{bus: bus, hub: hub, done: make(chan struct{})}
}

// Run forwards events until Stop is called. Meant to run as a goroutine,
// one per session.
func (p *Pump) Run() {
	for {
		select {
		case <-p.done:
			return
		case ev := <-p.bus.Slots:
			p.hub.Broadcast(wshub.ServerMessage{Type: "slot", Slot: ev.Slot, State: ev.State})
		case ev := <-p.bus.Ticks:
			p.hub.Broadcast(wshub.ServerMessage{Type: "tick", Remaining: ev.Remaining})
		case ev := <-p.bus.Scores:
			p.hub.Broadcast(wshub.ServerMessage{Type: "score", Score: ev.Score, Best: ev.Best})
		case ev := <-p.bus.Phases:
			p.hub.Broadcast(wshub.ServerMessage{Type: "phase", Phase: ev.Phase})
		case ev := <-p.bus.Cues:
			p.hub.Broadcast(wshub.ServerMessage{Type: "cue", Cue: string(ev.Cue)})
		}
	}
}

// Stop ends the pump. Idempotent.
func (p *Pump) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
}
