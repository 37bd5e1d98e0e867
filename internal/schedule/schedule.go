// Package schedule picks where and for how long the next target appears.
package schedule

import (
	"math/rand"
	"time"
)

// NoPrevious is the sentinel for the first draw of a round.
const NoPrevious = -1

type Config struct {
	SlotCount int
	MinShowMs int
	MaxShowMs int
}

type Scheduler struct {
	cfg Config
	rng *rand.Rand
}

func New(cfg Config) *Scheduler {
	return NewWithSource(cfg, rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource takes an explicit rand source so draws can be made
// deterministic in tests.
func NewWithSource(cfg Config, src rand.Source) *Scheduler {
	return &Scheduler{cfg: cfg, rng: rand.New(src)}
}

// Next draws the next appearance: a uniform slot that differs from prev
// whenever more than one slot exists (the same hole never fires twice in
// a row), and a uniform visibility duration in [MinShowMs, MaxShowMs]
// inclusive. Pass NoPrevious at round start.
func (s *Scheduler) Next(prev int) (int, time.Duration) {
	slot := s.rng.Intn(s.cfg.SlotCount)
	if s.cfg.SlotCount > 1 {
		// Rejection sampling; expected O(1) redraws.
		for slot == prev {
			slot = s.rng.Intn(s.cfg.SlotCount)
		}
	}

	ms := s.cfg.MinShowMs
	if spread := s.cfg.MaxShowMs - s.cfg.MinShowMs; spread > 0 {
		ms += s.rng.Intn(spread + 1)
	}
	return slot, time.Duration(ms) * time.Millisecond
}
