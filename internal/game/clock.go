package game

import (
	"sync"
	"time"
)

// Clock supplies the wall-clock time. The engine reads it once per
// invocation and works in whole epoch seconds from then on.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Epoch reads c as whole seconds. A nil clock is the real clock.
func Epoch(c Clock) int64 {
	if c == nil {
		c = RealClock{}
	}
	return c.Now().Unix()
}

// FakeClock only moves when told to. It counts whole seconds, the same
// resolution the saved game uses.
type FakeClock struct {
	mu sync.Mutex
	ts int64
}

func NewFakeClock(ts int64) *FakeClock {
	return &FakeClock{ts: ts}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Unix(c.ts, 0).UTC()
}

func (c *FakeClock) Set(ts int64) {
	c.mu.Lock()
	c.ts = ts
	c.mu.Unlock()
}

// Advance moves the clock forward by d, truncated to whole seconds.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.ts += int64(d / time.Second)
	c.mu.Unlock()
}
