package utils

import (
	"time"
)

// StaleFactor is how many refresh intervals a snapshot may miss before it counts as stale
const StaleFactor = 2

// Age returns how long ago timestamp was, never negative
func Age(timestamp, now time.Time) time.Duration {
	if timestamp.IsZero() || now.Before(timestamp) {
		return 0
	}
	return now.Sub(timestamp)
}

// IsStale checks if a timestamp is older than the specified duration.
// A zero timestamp is always stale.
func IsStale(timestamp, now time.Time, staleDuration time.Duration) bool {
	if timestamp.IsZero() {
		return true
	}
	return now.Sub(timestamp) > staleDuration
}

// StaleAfter returns the age at which a snapshot refreshed every interval is considered stale
func StaleAfter(interval time.Duration) time.Duration {
	return StaleFactor * interval
}
