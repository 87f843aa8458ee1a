// Package cache provides a pluggable in-process response cache with a
// bounded, time-expiring FIFO implementation and an optional
// ristretto-backed alternative.
package cache

import "time"

// Unbounded disables size-based eviction when passed as maxSize.
const Unbounded = -1

// Store is the caching contract consumed by the request coordinator.
// Values are raw JSON payloads.
type Store interface {
	// Get retrieves a value by key. The boolean indicates a cache hit.
	// An entry past its time-to-live is removed and reported as a miss;
	// it is never returned.
	Get(key string) ([]byte, bool)

	// Add stores a value under key, evicting first when the store is at
	// capacity. Re-adding an existing key re-inserts it at the back of
	// the insertion order.
	Add(key string, val []byte)

	// Info returns an observability snapshot. Size reflects the live
	// entry count at call time.
	Info() Info
}

// Info is a read-only snapshot of a store's counters and configuration.
type Info struct {
	Hits          uint64
	Misses        uint64
	ExpiredMisses uint64
	Size          int
	MaxSize       int
	TimeToLive    time.Duration
	MinimiseSize  bool
}
