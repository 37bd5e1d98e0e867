package clock

import (
	"sync"
	"testing"
	"time"
)

// recorder collects tick and expire callbacks.
type recorder struct {
	mu      sync.Mutex
	ticks   []int
	expires int
	done    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{})}
}

func (r *recorder) onTick(remaining int) {
	r.mu.Lock()
	r.ticks = append(r.ticks, remaining)
	r.mu.Unlock()
}

func (r *recorder) onExpire() {
	r.mu.Lock()
	r.expires++
	r.mu.Unlock()
	close(r.done)
}

func (r *recorder) snapshot() ([]int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.ticks...), r.expires
}

func TestStart_CountsDownAndExpires(t *testing.T) {
	c := NewWithInterval(5 * time.Millisecond)
	rec := newRecorder()

	c.Start(3, rec.onTick, rec.onExpire)

	select {
	case <-rec.done:
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for expiry")
	}

	ticks, expires := rec.snapshot()
	want := []int{2, 1, 0}
	if len(ticks) != len(want) {
		t.Fatalf("ticks = %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("ticks = %v, want %v", ticks, want)
		}
	}
	if expires != 1 {
		t.Errorf("expires = %d, want 1", expires)
	}
}

func TestStart_WhileRunningIsNoop(t *testing.T) {
	c := NewWithInterval(5 * time.Millisecond)
	rec := newRecorder()

	c.Start(3, rec.onTick, rec.onExpire)
	c.Start(3, rec.onTick, rec.onExpire) // ignored

	select {
	case <-rec.done:
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for expiry")
	}

	// A second countdown would have doubled the tick count.
	time.Sleep(30 * time.Millisecond)
	ticks, expires := rec.snapshot()
	if len(ticks) != 3 {
		t.Errorf("ticks = %v, want exactly 3 entries", ticks)
	}
	if expires != 1 {
		t.Errorf("expires = %d, want 1", expires)
	}
}

func TestStop_CancelsCountdown(t *testing.T) {
	c := NewWithInterval(10 * time.Millisecond)
	rec := newRecorder()

	c.Start(1000, rec.onTick, rec.onExpire)
	time.Sleep(35 * time.Millisecond)
	c.Stop()

	// Allow any in-flight tick to drain before sampling.
	time.Sleep(20 * time.Millisecond)
	ticksAtStop, _ := rec.snapshot()
	time.Sleep(50 * time.Millisecond)
	ticks, expires := rec.snapshot()

	if len(ticks) != len(ticksAtStop) {
		t.Errorf("ticks kept arriving after Stop: %d then %d", len(ticksAtStop), len(ticks))
	}
	if expires != 0 {
		t.Errorf("expires = %d, want 0 after Stop", expires)
	}
}

func TestStop_Idempotent(t *testing.T) {
	c := NewWithInterval(10 * time.Millisecond)
	rec := newRecorder()

	c.Start(1000, rec.onTick, rec.onExpire)
	c.Stop()
	c.Stop() // must not panic or block
}

func TestStop_NeverStarted(t *testing.T) {
	c := New()
	c.Stop() // must not panic
}

func TestStart_ZeroSeconds(t *testing.T) {
	c := NewWithInterval(5 * time.Millisecond)
	rec := newRecorder()

	c.Start(0, rec.onTick, rec.onExpire)

	select {
	case <-rec.done:
	case <-time.After(1 * time.Second):
		t.Fatal("zero-second countdown should expire immediately")
	}

	ticks, expires := rec.snapshot()
	if len(ticks) != 0 {
		t.Errorf("ticks = %v, want none", ticks)
	}
	if expires != 1 {
		t.Errorf("expires = %d, want 1", expires)
	}
}

func TestRestart_AfterExpiry(t *testing.T) {
	c := NewWithInterval(5 * time.Millisecond)
	rec := newRecorder()

	c.Start(1, rec.onTick, rec.onExpire)
	select {
	case <-rec.done:
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for expiry")
	}

	rec2 := newRecorder()
	c.Start(1, rec2.onTick, rec2.onExpire)
	select {
	case <-rec2.done:
	case <-time.After(1 * time.Second):
		t.Fatal("clock should be reusable after expiry")
	}
}
