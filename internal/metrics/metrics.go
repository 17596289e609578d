// Package metrics holds the process-local instruments the storefront
// reports on: fetch counters and wall-clock timers for server round trips.
package metrics

import (
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing event count, safe for concurrent
// use. The zero value is ready.
type Counter struct {
	n atomic.Uint64
}

func (c *Counter) Inc() {
	c.n.Add(1)
}

func (c *Counter) Load() uint64 {
	return c.n.Load()
}

// Timer measures the wall-clock span since StartTimer.
type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
