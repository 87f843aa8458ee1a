package cache

import (
	"bytes"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Ristretto is a Store backed by a ristretto cache. It trades the strict
// FIFO accounting of [FIFO] for ristretto's admission policy and is meant
// for high-volume deployments. Hit and miss counters come from
// ristretto's own metrics and the size is approximate; expired entries
// are dropped by ristretto internally, so ExpiredMisses stays zero.
type Ristretto struct {
	rc  *ristretto.Cache[string, []byte]
	ttl time.Duration
	max int64
}

// NewRistretto creates a ristretto-backed store holding roughly
// maxEntries payloads (each entry has a cost of 1) whose values expire
// ttl after insertion. A ttl of zero disables expiry.
func NewRistretto(maxEntries int64, ttl time.Duration) (*Ristretto, error) {
	rc, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto{rc: rc, ttl: ttl, max: maxEntries}, nil
}

// Get retrieves a value by key.
func (r *Ristretto) Get(key string) ([]byte, bool) {
	v, ok := r.rc.Get(key)
	if !ok {
		return nil, false
	}
	return bytes.Clone(v), true
}

// Add stores a value under key with the store-level TTL.
func (r *Ristretto) Add(key string, val []byte) {
	r.rc.SetWithTTL(key, bytes.Clone(val), 1, r.ttl)
	r.rc.Wait()
}

// Info returns a snapshot built from ristretto's metrics. Size is the
// net number of keys added minus evictions, which can overcount entries
// that expired in place.
func (r *Ristretto) Info() Info {
	m := r.rc.Metrics
	size := int(m.KeysAdded()) - int(m.KeysEvicted())
	if size < 0 {
		size = 0
	}
	return Info{
		Hits:       m.Hits(),
		Misses:     m.Misses(),
		Size:       size,
		MaxSize:    int(r.max),
		TimeToLive: r.ttl,
	}
}

// Close releases the resources held by the underlying ristretto cache.
func (r *Ristretto) Close() {
	r.rc.Close()
}
