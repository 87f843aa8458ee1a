package cache

import (
	"bytes"
	"container/list"
	"sync"
	"time"
)

// entry is a single cached payload with its insertion time.
type entry struct {
	key   string
	val   []byte
	added time.Time
}

// FIFO is a bounded key-value store that evicts in insertion order and
// expires entries after a fixed time-to-live. All methods are safe for
// concurrent use.
type FIFO struct {
	mu      sync.Mutex
	order   *list.List // front = oldest
	index   map[string]*list.Element
	maxSize int
	ttl     time.Duration
	smart   bool
	min     bool

	hits    uint64
	misses  uint64
	expired uint64

	nowFunc func() time.Time // for testing; defaults to time.Now
}

// FIFOOption configures a FIFO store.
type FIFOOption func(*FIFO)

// WithSmartEviction makes the store evict an already-expired entry before
// falling back to the oldest overall. When minimise is set, every expired
// entry is swept on each eviction, trading a full scan for a smaller
// footprint.
func WithSmartEviction(minimise bool) FIFOOption {
	return func(f *FIFO) {
		f.smart = true
		f.min = minimise
	}
}

// NewFIFO creates a store holding at most maxSize entries whose values
// expire ttl after insertion. maxSize = Unbounded disables eviction and
// ttl = 0 disables expiry. A maxSize of zero evicts-then-inserts on every
// Add and therefore caches nothing usefully.
func NewFIFO(maxSize int, ttl time.Duration, opts ...FIFOOption) *FIFO {
	f := &FIFO{
		order:   list.New(),
		index:   make(map[string]*list.Element),
		maxSize: maxSize,
		ttl:     ttl,
		nowFunc: time.Now,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Get retrieves a value by key, removing and miss-reporting entries that
// have outlived the time-to-live.
func (f *FIFO) Get(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	el, ok := f.index[key]
	if !ok {
		f.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if f.isExpired(e) {
		f.remove(el)
		f.expired++
		return nil, false
	}
	f.hits++
	// Callers must not be able to mutate the cached payload.
	return bytes.Clone(e.val), true
}

// Add stores a value under key, evicting first when at capacity.
func (f *FIFO) Add(key string, val []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Replacement re-enters at the back of the insertion order.
	if el, ok := f.index[key]; ok {
		f.remove(el)
	}

	if f.maxSize != Unbounded && f.order.Len() >= f.maxSize {
		f.evict()
	}

	el := f.order.PushBack(&entry{key: key, val: bytes.Clone(val), added: f.nowFunc()})
	f.index[key] = el
}

// Info returns a snapshot of the store's counters and configuration.
func (f *FIFO) Info() Info {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Info{
		Hits:          f.hits,
		Misses:        f.misses,
		ExpiredMisses: f.expired,
		Size:          f.order.Len(),
		MaxSize:       f.maxSize,
		TimeToLive:    f.ttl,
		MinimiseSize:  f.min,
	}
}

// evict frees one slot. In smart mode expired entries go first; otherwise
// (or when none are expired) the oldest-inserted entry is dropped.
// Must be called with f.mu held and the store non-empty.
func (f *FIFO) evict() {
	if f.smart && f.evictExpired() {
		return
	}
	if front := f.order.Front(); front != nil {
		f.remove(front)
	}
}

// evictExpired removes one expired entry, or all of them in minimise
// mode, reporting whether anything was removed. Must be called with f.mu
// held.
func (f *FIFO) evictExpired() bool {
	removed := false
	for el := f.order.Front(); el != nil; {
		next := el.Next()
		if f.isExpired(el.Value.(*entry)) {
			f.remove(el)
			removed = true
			if !f.min {
				return true
			}
		}
		el = next
	}
	return removed
}

func (f *FIFO) isExpired(e *entry) bool {
	return f.ttl > 0 && f.nowFunc().Sub(e.added) >= f.ttl
}

func (f *FIFO) remove(el *list.Element) {
	delete(f.index, el.Value.(*entry).key)
	f.order.Remove(el)
}
