// Package ratelimit limits requests per client key over a one minute window.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Limiter interface {
	// Allow reports whether one more request for key fits in the budget.
	// Returns error only for backend failures.
	Allow(ctx context.Context, key string) (bool, error)
}

const pruneThreshold = 10000

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Memory is a token bucket per key refilling perMinute tokens each minute.
// A perMinute of zero or less allows everything.
type Memory struct {
	mu        sync.Mutex
	perMinute int
	entries   map[string]*entry
	now       func() time.Time
}

func NewMemory(perMinute int) *Memory {
	return &Memory{
		perMinute: perMinute,
		entries:   make(map[string]*entry),
		now:       time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	if m.perMinute <= 0 {
		return true, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok {
		if len(m.entries) >= pruneThreshold {
			m.prune(now)
		}
		e = &entry{lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.perMinute)), m.perMinute)}
		m.entries[key] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1), nil
}

// prune drops keys idle for longer than a minute; their buckets are full again.
func (m *Memory) prune(now time.Time) {
	for k, e := range m.entries {
		if now.Sub(e.lastSeen) > time.Minute {
			delete(m.entries, k)
		}
	}
}
