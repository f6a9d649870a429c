// internal/game/scheduler.go
//
// Timers for the round engine.
// Responsibilities:
//   - Scheduler: AfterFunc with a cancel hook.
//   - WallClock: production timers on time.AfterFunc.
//   - ManualClock: virtual time for tests; Advance fires due timers in
//     order on the caller's goroutine.

package game

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs f once after d. The returned cancel reports whether it
// stopped f from running.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func() bool)
}

// WallClock schedules on real timers; callbacks run on their own goroutine.
type WallClock struct{}

func (WallClock) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// ManualClock is a Scheduler driven by Advance. Callbacks run synchronously
// inside Advance, in due order.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	at   time.Duration
	seq  int
	f    func()
	done bool
}

func NewManualClock() *ManualClock { return &ManualClock{} }

func (c *ManualClock) AfterFunc(d time.Duration, f func()) func() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{at: c.now + d, seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if t.done {
			return false
		}
		t.done = true
		return true
	}
}

// Advance moves virtual time forward by d, firing due timers.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()
	for {
		c.mu.Lock()
		t := c.nextDue(target)
		if t == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = t.at
		t.done = true
		c.mu.Unlock()
		t.f()
	}
}

// Pending counts timers not yet fired or cancelled.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.pending {
		if !t.done {
			n++
		}
	}
	return n
}

func (c *ManualClock) nextDue(target time.Duration) *manualTimer {
	live := c.pending[:0]
	for _, t := range c.pending {
		if !t.done {
			live = append(live, t)
		}
	}
	c.pending = live
	sort.Slice(c.pending, func(i, j int) bool {
		if c.pending[i].at != c.pending[j].at {
			return c.pending[i].at < c.pending[j].at
		}
		return c.pending[i].seq < c.pending[j].seq
	})
	if len(c.pending) == 0 || c.pending[0].at > target {
		return nil
	}
	return c.pending[0]
}
