package flight

import "sync"

// gate is the per-key synchronization state implementing single-flight.
// While a call is in flight, busy holds a channel that is closed when the
// gate reopens; a nil busy means the gate is open. refs counts the
// goroutines currently interested in the key so idle gates can be removed
// from the registry instead of accumulating forever.
type gate struct {
	refs int
	busy chan struct{}
}

// registry maps request keys to their gates. Entries are created lazily
// on first use and deleted once the last interested goroutine leaves.
type registry struct {
	mu sync.Mutex
	m  map[string]*gate
}

func newRegistry() *registry {
	return &registry{m: make(map[string]*gate)}
}

// enter registers interest in key and returns its gate together with the
// busy channel observed at entry (nil when the gate is open). The caller
// must pair every enter with exactly one leave or reopen.
func (r *registry) enter(key string) (*gate, chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.m[key]
	if !ok {
		g = &gate{}
		r.m[key] = g
	}
	g.refs++
	return g, g.busy
}

// leave drops one reference to key, removing the gate when nobody is left.
func (r *registry) leave(key string, g *gate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g.refs--
	if g.refs == 0 {
		delete(r.m, key)
	}
}

// tryClose transitions the gate to closed. It fails when another
// goroutine closed the gate first, in which case the caller must go back
// to waiting.
func (r *registry) tryClose(g *gate) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g.busy != nil {
		return false
	}
	g.busy = make(chan struct{})
	return true
}

// reopen releases all waiters and drops the owner's reference. Every exit
// path of an in-flight call lands here; a gate is never left closed.
func (r *registry) reopen(key string, g *gate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	close(g.busy)
	g.busy = nil
	g.refs--
	if g.refs == 0 {
		delete(r.m, key)
	}
}

// len reports the number of live gates. Used by tests to verify the
// registry does not grow without bound.
func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}
