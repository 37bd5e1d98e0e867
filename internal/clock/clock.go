// Package clock implements the per-second round countdown.
package clock

import (
	"sync"
	"time"
)

// Clock counts a round down one tick at a time. Start fires onTick with
// the remaining seconds after each elapsed interval (duration-1 down to 0)
// and onExpire exactly once when the count reaches zero.
//
// A tick already in flight can race Stop; callers that need a hard cutoff
// gate their own state inside the callbacks (the game controller does this
// with a round generation check).
type Clock struct {
	mu       sync.Mutex
	interval time.Duration
	stop     chan struct{}
	running  bool
}

func New() *Clock {
	return NewWithInterval(time.Second)
}

// NewWithInterval overrides the one-second tick, for tests.
func NewWithInterval(interval time.Duration) *Clock {
	return &Clock{interval: interval}
}

// Start begins the countdown. No-op when already running.
func (c *Clock) Start(seconds int, onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.run(seconds, stop, onTick, onExpire)
}

func (c *Clock) run(seconds int, stop chan struct{}, onTick func(int), onExpire func()) {
	if seconds <= 0 {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		onExpire()
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for remaining := seconds - 1; remaining >= 0; remaining-- {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		// Stop may have won the race against the tick.
		select {
		case <-stop:
			return
		default:
		}

		onTick(remaining)
		if remaining == 0 {
			c.mu.Lock()
			c.running = false
			c.mu.Unlock()
			onExpire()
			return
		}
	}
}

// Stop cancels a running clock. Safe to call repeatedly or when the clock
// never started.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.stop)
}
