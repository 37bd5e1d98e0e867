package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"whackamole/internal/audio"
	"whackamole/internal/events"
	"whackamole/internal/game"
	"whackamole/internal/metrics"
	"whackamole/internal/push"
	"whackamole/internal/wshub"
)

const staleTTL = 1 * time.Hour

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cfg      game.Config
	log      zerolog.Logger
}

func NewStore(cfg game.Config, log zerolog.Logger) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		log:      log.With().Str("component", "sessions").Logger(),
	}
	go s.sweepStale()
	return s
}

// Create builds a new session: game, bus, hub, audio gate and pump, all
// wired together. The gate publishes cues onto the bus; the pump carries
// everything to the hub.
func (s *Store) Create() *Session {
	id := uuid.New().String()
	bus := events.NewBus()
	hub := wshub.NewHub(s.log)
	gate := audio.NewGate(func(c events.Cue) {
		bus.PublishCue(events.CueEvent{Cue: c})
	})
	g := game.New(s.cfg, bus, gate, s.log)
	pump := push.New(bus, hub)
	go pump.Run()

	sess := &Session{
		ID:        id,
		Game:      g,
		Hub:       hub,
		Audio:     gate,
		CreatedAt: time.Now(),
		pump:      pump,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	s.log.Info().Str("session", id).Int("active", count).Msg("session created")
	return sess
}

func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if ok {
		sess.Close()
		metrics.ActiveSessions.Set(float64(count))
	}
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) sweepStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.sweep(time.Now())
	}
}

// sweep closes sessions older than the TTL. Split out so tests can drive
// it directly.
func (s *Store) sweep(now time.Time) {
	var expired []*Session

	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.CreatedAt) > staleTTL {
			delete(s.sessions, id)
			expired = append(expired, sess)
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
		s.log.Info().Str("session", sess.ID).Msg("stale session swept")
	}
	if len(expired) > 0 {
		metrics.ActiveSessions.Set(float64(count))
	}
}
