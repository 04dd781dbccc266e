// Package clock decides when a simulation day passes. The host loop ticks
// far more often than days advance; a Gate turns wall time into day ticks.
package clock

import "time"

// Gate opens at most once per interval. It is owned by the host loop and
// is not safe for concurrent use.
type Gate struct {
	interval time.Duration
	next     time.Time
}

// NewGate returns a gate that opens every interval. A non-positive interval
// opens on every call.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		return &Gate{}
	}
	return &Gate{interval: interval}
}

// Ready reports whether a day passes at now. It never blocks; the first call
// always opens.
func (g *Gate) Ready(now time.Time) bool {
	if g == nil || g.interval <= 0 {
		return true
	}
	if now.Before(g.next) {
		return false
	}
	g.next = now.Add(g.interval)
	return true
}

// Reset makes the next call open regardless of when the last one did.
func (g *Gate) Reset() {
	if g == nil {
		return
	}
	g.next = time.Time{}
}

func (g *Gate) Interval() time.Duration {
	if g == nil {
		return 0
	}
	return g.interval
}
