// Package flood throttles per-user event rates.
package flood

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Gate keeps one token bucket per user. Throttled events are dropped, not
// queued.
type Gate struct {
	mu       sync.Mutex
	limiters map[int64]*limiterEntry

	rate  rate.Limit
	burst int
	now   func() time.Time
}

// NewGate allows perSecond events per second per user with the given burst.
func NewGate(perSecond float64, burst int) *Gate {
	return &Gate{
		limiters: make(map[int64]*limiterEntry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether the user's event may proceed.
func (g *Gate) Allow(userID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	e, ok := g.limiters[userID]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(g.rate, g.burst)}
		g.limiters[userID] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Sweep forgets limiters idle for longer than idle and returns how many were
// dropped. A forgotten user starts again with a full bucket.
func (g *Gate) Sweep(idle time.Duration) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := g.now().Add(-idle)
	removed := 0
	for id, e := range g.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(g.limiters, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked users.
func (g *Gate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.limiters)
}
