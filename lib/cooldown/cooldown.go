// Package cooldown implements the time-based gate that rate limits sync
// triggers per source. The gate only reads the last sync timestamp, it
// takes no lock: two requests racing inside the same window can both
// pass, which matches the store's read-then-write semantics.
package cooldown

import "time"

type Result struct {
	Allowed bool
	// seconds until the gate opens again, always >= 1 when denied
	RetryAfter int64
}

// Check reports whether a new attempt is allowed given the last recorded
// sync time. A nil lastSync always allows.
func Check(lastSync *time.Time, now time.Time, window time.Duration) Result {
	if lastSync == nil {
		return Result{Allowed: true}
	}
	elapsed := now.Sub(*lastSync)
	if elapsed >= window {
		return Result{Allowed: true}
	}

	deadline := lastSync.Add(window)
	secs := int64((deadline.Sub(now) + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return Result{Allowed: false, RetryAfter: secs}
}
