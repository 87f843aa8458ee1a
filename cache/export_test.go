package cache

import "time"

// WithClock pins the store's clock to *now so tests can advance time
// without sleeping.
func WithClock(now *time.Time) FIFOOption {
	return func(f *FIFO) {
		f.nowFunc = func() time.Time { return *now }
	}
}
