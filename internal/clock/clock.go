// Package clock abstracts wall time and the simulated network delays the
// auth flow performs, so tests can run them synchronously.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	// Sleep suspends the caller for d. Operations in flight are never
	// cancelled; there are no timeout semantics.
	Sleep(d time.Duration)
}

// System is the real clock.
type System struct{}

func NewSystem() *System { return &System{} }

func (System) Now() time.Time        { return time.Now() }
func (System) Sleep(d time.Duration) { time.Sleep(d) }

// Manual is a test clock: Sleep returns immediately and advances Now,
// so time-derived identifiers stay unique and deterministic.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Sleep(d time.Duration) {
	m.Advance(d)
}

// Advance moves the clock forward without blocking.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
