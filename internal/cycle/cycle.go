// Package cycle drives the one-target-at-a-time show/hide rhythm.
package cycle

import (
	"sync"
	"time"

	"whackamole/internal/schedule"
)

// Hooks receive slot transitions from the cycle. OnHide fires when the
// visibility timer expires, always, even if the slot was hit in the
// meantime; it reports whether the round still wants another appearance.
type Hooks interface {
	OnShow(slot int)
	OnHide(slot int) (again bool)
}

// Cycle runs an explicit show→wait→hide→reschedule loop. Exactly one
// timer is pending at any moment; hiding the current slot and showing the
// next happen back to back in the same iteration, with no gap.
type Cycle struct {
	mu      sync.Mutex
	sched   *schedule.Scheduler
	stop    chan struct{}
	running bool
}

func New(sched *schedule.Scheduler) *Cycle {
	return &Cycle{sched: sched}
}

// Start begins the loop. No-op when already running.
func (c *Cycle) Start(hooks Hooks) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.run(stop, hooks)
}

func (c *Cycle) run(stop chan struct{}, hooks Hooks) {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}

	prev := schedule.NoPrevious
	for {
		slot, visibleFor := c.sched.Next(prev)
		hooks.OnShow(slot)
		timer.Reset(visibleFor)

		select {
		case <-stop:
			// Cancel the pending timer; the slot stays up for the
			// controller to force down.
			if !timer.Stop() {
				<-timer.C
			}
			return
		case <-timer.C:
		}

		if !hooks.OnHide(slot) {
			c.mu.Lock()
			c.running = false
			c.mu.Unlock()
			return
		}
		prev = slot
	}
}

// Stop cancels the pending timer and ends the loop. Idempotent; a stopped
// cycle never schedules another appearance.
func (c *Cycle) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.stop)
}
