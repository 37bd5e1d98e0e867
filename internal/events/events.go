// Package events carries typed game events from the core to whoever is
// watching (the websocket pump, tests). Publishing never blocks; events
// are dropped when a channel is full, the snapshot endpoint is the
// catch-up path.
package events

// Cue names a fire-and-forget sound effect for the client to play.
type Cue string

const (
	CueShown Cue = "shown"
	CueHit   Cue = "hit"
	CueEnded Cue = "ended"
)

// SlotEvent reports one slot transition for rendering.
type SlotEvent struct {
	Slot  int
	State string
}

// TickEvent reports the seconds remaining in the round.
type TickEvent struct {
	Remaining int
}

// ScoreEvent reports the current and best score.
type ScoreEvent struct {
	Score int
	Best  int
}

// PhaseEvent reports a round phase change. A transition to the ended
// phase implies every slot is hidden.
type PhaseEvent struct {
	Phase string
}

// CueEvent requests a sound cue on the client.
type CueEvent struct {
	Cue Cue
}

type Bus struct {
	Slots  chan SlotEvent
	Ticks  chan TickEvent
	Scores chan ScoreEvent
	Phases chan PhaseEvent
	Cues   chan CueEvent
}

func NewBus() *Bus {
	return &Bus{
		Slots:  make(chan SlotEvent, 32),
		Ticks:  make(chan TickEvent, 32),
		Scores: make(chan ScoreEvent, 32),
		Phases: make(chan PhaseEvent, 8),
		Cues:   make(chan CueEvent, 16),
	}
}

func (b *Bus) PublishSlot(ev SlotEvent) {
	select {
	case b.Slots <- ev:
	default:
	}
}

func (b *Bus) PublishTick(ev TickEvent) {
	select {
	case b.Ticks <- ev:
	default:
	}
}

func (b *Bus) PublishScore(ev ScoreEvent) {
	select {
	case b.Scores <- ev:
	default:
	}
}

func (b *Bus) PublishPhase(ev PhaseEvent) {
	select {
	case b.Phases <- ev:
	default:
	}
}

func (b *Bus) PublishCue(ev CueEvent) {
	select {
	case b.Cues <- ev:
	default:
	}
}
