// Package timeutil abstracts the time source of the control loop so it can
// follow the wall clock or be stepped one tick at a time.
package timeutil

import (
	"sync"
	"time"
)

// Clock is everything the control loop needs from time: reading it and
// waiting on a periodic tick.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers loop ticks. As with time.Ticker, a tick the reader is not
// ready for is dropped rather than queued.
type Ticker interface {
	C() <-chan time.Time
	Stop()
	Reset(d time.Duration)
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time                  { return time.Now() }
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }

// NewTicker wraps time.NewTicker. It panics if d <= 0.
func (RealClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s systemTicker) C() <-chan time.Time   { return s.t.C }
func (s systemTicker) Stop()                 { s.t.Stop() }
func (s systemTicker) Reset(d time.Duration) { s.t.Reset(d) }

// MockClock only moves when told to. Tickers created from it fire from
// Advance, which lets a simulation run the loop as fast as it can compute.
type MockClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers map[*MockTicker]struct{}
}

// NewMockClock returns a MockClock reading start.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start, tickers: make(map[*MockTicker]struct{})}
}

// Now returns the mocked time.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Since returns Now() - t.
func (c *MockClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }

// Set jumps to t without firing tickers.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and fires every ticker that has
// come due. A ticker fires at most once per call however far the clock
// moves.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	due := make([]*MockTicker, 0, len(c.tickers))
	for t := range c.tickers {
		due = append(due, t)
	}
	c.mu.Unlock()

	for _, t := range due {
		t.fireIfDue(now)
	}
}

// NewTicker returns a ticker that first fires once d has elapsed on this
// clock. It panics if d <= 0, like time.NewTicker.
func (c *MockClock) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("timeutil: non-positive interval for NewTicker")
	}
	t := &MockTicker{clock: c, ch: make(chan time.Time, 1), interval: d}

	c.mu.Lock()
	t.due = c.now.Add(d)
	c.tickers[t] = struct{}{}
	c.mu.Unlock()
	return t
}

// TickerCount returns the number of running (created and not stopped)
// tickers. Tests poll it to learn that a loop has armed its ticker.
func (c *MockClock) TickerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (c *MockClock) register(t *MockTicker) {
	c.mu.Lock()
	c.tickers[t] = struct{}{}
	c.mu.Unlock()
}

func (c *MockClock) unregister(t *MockTicker) {
	c.mu.Lock()
	delete(c.tickers, t)
	c.mu.Unlock()
}

// MockTicker is a Ticker driven by a MockClock.
type MockTicker struct {
	clock *MockClock
	ch    chan time.Time

	mu       sync.Mutex
	interval time.Duration
	due      time.Time
	dropped  uint64
}

func (t *MockTicker) C() <-chan time.Time { return t.ch }

// Stop detaches the ticker from its clock. A tick already buffered stays
// readable.
func (t *MockTicker) Stop() { t.clock.unregister(t) }

// Reset changes the period and schedules the next tick d after the clock's
// current time, re-arming a stopped ticker.
func (t *MockTicker) Reset(d time.Duration) {
	if d <= 0 {
		panic("timeutil: non-positive interval for Reset")
	}
	now := t.clock.Now()

	t.mu.Lock()
	t.interval = d
	t.due = now.Add(d)
	t.mu.Unlock()

	t.clock.register(t)
}

// Trigger delivers a tick carrying now immediately, regardless of schedule.
func (t *MockTicker) Trigger(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.send(now)
}

// Dropped returns how many ticks were discarded because the reader had not
// consumed the previous one.
func (t *MockTicker) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

func (t *MockTicker) fireIfDue(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if now.Before(t.due) {
		return
	}
	t.send(now)
	t.due = now.Add(t.interval)
}

// send requires t.mu.
func (t *MockTicker) send(now time.Time) {
	select {
	case t.ch <- now:
	default:
		t.dropped++
	}
}
