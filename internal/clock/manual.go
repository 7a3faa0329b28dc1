package clock

import (
	"context"
	"sync"
	"time"
)

// Manual is a clock whose time only moves when told to. Tests use it to
// pin timestamps and to exercise retention cutoffs.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(at time.Time) *Manual {
	return &Manual{now: at}
}

func (m *Manual) Now(context.Context) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

func (m *Manual) Set(at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = at
}
