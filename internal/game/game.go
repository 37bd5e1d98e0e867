// Package game owns the round state machine: phase, score, best score,
// and the clock and cycle that drive a running round.
package game

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"whackamole/internal/audio"
	"whackamole/internal/clock"
	"whackamole/internal/cycle"
	"whackamole/internal/events"
	"whackamole/internal/grid"
	"whackamole/internal/metrics"
	"whackamole/internal/schedule"
)

type Phase string

const (
	PhaseNotStarted = Phase("not_started")
	PhaseRunning    = Phase("running")
	PhaseEnded      = Phase("ended")
)

type Config struct {
	RoundDuration int // seconds
	MinShowMs     int
	MaxShowMs     int
	SlotCount     int
	TickInterval  time.Duration // zero means one second
}

func DefaultConfig() Config {
	return Config{
		RoundDuration: 30,
		MinShowMs:     400,
		MaxShowMs:     1000,
		SlotCount:     6,
	}
}

// Snapshot is the render + HUD view of a game at one instant.
type Snapshot struct {
	Phase     Phase
	Score     int
	Best      int
	Remaining int
	Slots     []grid.State
}

// Game is the controller for one player's rounds. All state transitions
// go through its mutex; timer callbacks carry the round generation they
// were armed for, so anything that fires after Stop is a no-op.
type Game struct {
	mu        sync.Mutex
	phase     Phase
	score     int
	best      int
	remaining int
	round     uint64 // bumped on every start and stop

	clk   *clock.Clock
	cyc   *cycle.Cycle
	sched *schedule.Scheduler

	Grid   *grid.Grid
	Events *events.Bus
	Config Config

	audio audio.Player
	log   zerolog.Logger
}

func New(cfg Config, bus *events.Bus, player audio.Player, log zerolog.Logger) *Game {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	return &Game{
		phase:  PhaseNotStarted,
		Grid:   grid.New(cfg.SlotCount),
		Events: bus,
		Config: cfg,
		audio:  player,
		log:    log.With().Str("component", "game").Logger(),
		sched: schedule.New(schedule.Config{
			SlotCount: cfg.SlotCount,
			MinShowMs: cfg.MinShowMs,
			MaxShowMs: cfg.MaxShowMs,
		}),
	}
}

// Start begins a fresh round. No-op while a round is already running.
func (g *Game) Start() {
	g.mu.Lock()
	if g.phase == PhaseRunning {
		g.mu.Unlock()
		return
	}
	g.round++
	round := g.round
	g.phase = PhaseRunning
	g.score = 0
	g.remaining = g.Config.RoundDuration
	g.Grid.HideAll()
	g.clk = clock.NewWithInterval(g.Config.TickInterval)
	g.cyc = cycle.New(g.sched)
	clk, cyc := g.clk, g.cyc
	best := g.best
	g.mu.Unlock()

	g.Events.PublishPhase(events.PhaseEvent{Phase: string(PhaseRunning)})
	g.Events.PublishScore(events.ScoreEvent{Score: 0, Best: best})
	g.Events.PublishTick(events.TickEvent{Remaining: g.Config.RoundDuration})
	metrics.RoundsStarted.Inc()
	g.log.Info().Int("duration_s", g.Config.RoundDuration).Msg("round started")

	clk.Start(g.Config.RoundDuration,
		func(remaining int) { g.onTick(round, remaining) },
		func() { g.onExpire(round) },
	)
	cyc.Start(&hooks{g: g, round: round})
}

// Stop ends the current round: cancels the clock and the pending hide
// timer, forces every slot down, and folds the score into the best score.
// Idempotent; once it returns no further transition is observable.
func (g *Game) Stop() {
	g.mu.Lock()
	round := g.round
	g.mu.Unlock()
	g.stopRound(round)
}

func (g *Game) stopRound(round uint64) {
	g.mu.Lock()
	if g.round != round || g.phase != PhaseRunning {
		g.mu.Unlock()
		return
	}
	g.round++ // invalidates callbacks still in flight
	g.phase = PhaseEnded
	if g.score > g.best {
		g.best = g.score
	}
	score, best := g.score, g.best
	clk, cyc := g.clk, g.cyc
	g.Grid.HideAll()
	g.mu.Unlock()

	if clk != nil {
		clk.Stop()
	}
	if cyc != nil {
		cyc.Stop()
	}

	g.Events.PublishPhase(events.PhaseEvent{Phase: string(PhaseEnded)})
	g.Events.PublishScore(events.ScoreEvent{Score: score, Best: best})
	g.audio.Play(events.CueEnded)
	metrics.RoundsEnded.Inc()
	g.log.Info().Int("score", score).Int("best", best).Msg("round ended")
}

// RegisterHit credits a hit on a visible slot. Untrusted input, hits
// outside a running round, and hits on hidden or already-hit slots are
// silently ignored.
func (g *Game) RegisterHit(slot int, trusted bool) {
	if !trusted {
		metrics.HitsRejected.WithLabelValues(metrics.ReasonUntrusted).Inc()
		return
	}

	g.mu.Lock()
	if g.phase != PhaseRunning {
		g.mu.Unlock()
		metrics.HitsRejected.WithLabelValues(metrics.ReasonNotRunning).Inc()
		return
	}
	if !g.Grid.MarkHit(slot) {
		g.mu.Unlock()
		metrics.HitsRejected.WithLabelValues(metrics.ReasonNotVisible).Inc()
		return
	}
	g.score++
	score, best := g.score, g.best
	g.mu.Unlock()

	g.Events.PublishSlot(events.SlotEvent{Slot: slot, State: grid.Hit.String()})
	g.Events.PublishScore(events.ScoreEvent{Score: score, Best: best})
	g.audio.Play(events.CueHit)
	metrics.HitsCredited.Inc()
}

// Snapshot returns the full render + HUD view under one lock.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		Phase:     g.phase,
		Score:     g.score,
		Best:      g.best,
		Remaining: g.remaining,
		Slots:     g.Grid.Snapshot(),
	}
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

func (g *Game) Best() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.best
}

func (g *Game) onTick(round uint64, remaining int) {
	g.mu.Lock()
	if g.round != round || g.phase != PhaseRunning {
		g.mu.Unlock()
		return
	}
	g.remaining = remaining
	g.mu.Unlock()
	g.Events.PublishTick(events.TickEvent{Remaining: remaining})
}

func (g *Game) onExpire(round uint64) {
	g.stopRound(round)
}

// hooks adapts the cycle callbacks to the controller, pinning the round
// generation they belong to.
type hooks struct {
	g     *Game
	round uint64
}

func (h *hooks) OnShow(slot int) {
	g := h.g
	g.mu.Lock()
	if g.round != h.round || g.phase != PhaseRunning {
		g.mu.Unlock()
		return
	}
	g.Grid.Show(slot)
	g.mu.Unlock()

	g.Events.PublishSlot(events.SlotEvent{Slot: slot, State: grid.Visible.String()})
	g.audio.Play(events.CueShown)
}

func (h *hooks) OnHide(slot int) bool {
	g := h.g
	g.mu.Lock()
	if g.round != h.round || g.phase != PhaseRunning {
		g.mu.Unlock()
		return false
	}
	// The hide timer is the sole authority over visibility: the slot goes
	// down here whether or not it was hit.
	g.Grid.Hide(slot)
	g.mu.Unlock()

	g.Events.PublishSlot(events.SlotEvent{Slot: slot, State: grid.Hidden.String()})
	return true
}
