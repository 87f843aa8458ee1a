// Package flight implements the request-coordination core: per-key
// single-flight gates, a time-boxed response cache, token-bucket rate
// limiting and an error-driven lockout policy. It collapses concurrent
// duplicate requests into one upstream call and shields callers from
// hammering a struggling API.
package flight

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Keksclan/goTruckersMP/apierrors"
	"github.com/Keksclan/goTruckersMP/cache"
	"github.com/Keksclan/goTruckersMP/metrics"
	"github.com/Keksclan/goTruckersMP/ratelimit"
	"go.uber.org/zap"
)

// noContent is cached in place of an empty upstream body so that "cached
// empty" and "not yet cached" stay distinguishable.
var noContent = json.RawMessage("null")

// Getter performs a single upstream GET. Implemented by transport.Client
// and by test stubs.
type Getter interface {
	Get(ctx context.Context, url string) (json.RawMessage, error)
}

// Config assembles a Coordinator. Cache and Transport are required;
// everything else has a usable zero value.
type Config struct {
	Cache     cache.Store
	Transport Getter

	// Limiter gates every upstream call. Nil disables rate limiting.
	Limiter *ratelimit.Limiter

	// Logger receives lockout and backpressure warnings. Nil means no
	// logging.
	Logger *zap.Logger

	// Metrics receives instrumentation. Nil records nothing.
	Metrics *metrics.Metrics

	// RequestTimeout bounds each upstream call. Zero means no bound
	// beyond the caller's context.
	RequestTimeout time.Duration

	// RetryTime is how long a key's gate is held closed after a handled
	// connect or rate-limit failure. The hold runs on the failed
	// caller's context, so cancelling that caller also ends the
	// cooldown for everyone waiting on the key.
	RetryTime time.Duration

	// HandleConnectErrors absorbs connect errors into a RetryTime
	// lockout instead of reopening the gate immediately.
	HandleConnectErrors bool

	// HandleRateLimitErrors does the same for upstream 429s.
	HandleRateLimitErrors bool

	// LogFreq throttles the backpressure warning to at most one per
	// interval.
	LogFreq time.Duration

	// MinQueueForLog suppresses the backpressure warning for small
	// bursts.
	MinQueueForLog int
}

// Coordinator guarantees at most one in-flight upstream call per request
// key, serves repeats from cache while fresh, and applies the configured
// failure policy. Safe for concurrent use.
type Coordinator struct {
	cache     cache.Store
	transport Getter
	limiter   *ratelimit.Limiter
	logger    *zap.Logger
	metrics   *metrics.Metrics

	timeout         time.Duration
	retryTime       time.Duration
	handleConnect   bool
	handleRateLimit bool

	gates *registry
	queue atomic.Int64

	logMu   sync.Mutex
	logFreq time.Duration
	lastLog time.Time
	minQ    int
}

// New creates a Coordinator from cfg.
func New(cfg Config) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		cache:           cfg.Cache,
		transport:       cfg.Transport,
		limiter:         cfg.Limiter,
		logger:          logger,
		metrics:         cfg.Metrics,
		timeout:         cfg.RequestTimeout,
		retryTime:       cfg.RetryTime,
		handleConnect:   cfg.HandleConnectErrors,
		handleRateLimit: cfg.HandleRateLimitErrors,
		gates:           newRegistry(),
		logFreq:         cfg.LogFreq,
		// Allow the first backpressure warning to fire immediately.
		lastLog: time.Now().Add(-cfg.LogFreq),
		minQ:    cfg.MinQueueForLog,
	}
}

// Process returns the JSON payload for key, fetching url upstream at most
// once per key at any moment. Concurrent callers for the same key share
// one upstream call; cross-key requests never block each other.
//
// Failures surface as typed errors from the apierrors package. A
// NotFoundError returns immediately and never locks the gate. Connect and
// rate-limit errors, when handling is enabled for the class, first hold
// the gate closed for the configured retry time so that every caller for
// the key backs off together.
func (c *Coordinator) Process(ctx context.Context, key, url string) (json.RawMessage, error) {
	for {
		g, busy := c.gates.enter(key)

		// Wait out any in-flight call for this key, then start over:
		// wake order is not arrival order, so the state must be
		// re-validated from scratch.
		if busy != nil {
			select {
			case <-busy:
				c.gates.leave(key, g)
				continue
			case <-ctx.Done():
				c.gates.leave(key, g)
				return nil, ctx.Err()
			}
		}

		// Gate observed open: a fresh cached value wins without closing it.
		if v, ok := c.cache.Get(key); ok {
			c.gates.leave(key, g)
			c.metrics.CacheHit()
			return v, nil
		}

		if c.gates.tryClose(g) {
			// One more cache check covers the window between the miss
			// above and winning the close.
			if v, ok := c.cache.Get(key); ok {
				c.gates.reopen(key, g)
				c.metrics.CacheHit()
				return v, nil
			}
			v, err := c.fetch(ctx, key, url)
			c.gates.reopen(key, g)
			return v, err
		}

		// Lost the close race; rejoin the waiters.
		c.gates.leave(key, g)
	}
}

// CacheInfo returns the live cache snapshot.
func (c *Coordinator) CacheInfo() cache.Info {
	return c.cache.Info()
}

// fetch performs the single upstream call the caller won the gate for.
func (c *Coordinator) fetch(ctx context.Context, key, url string) (json.RawMessage, error) {
	c.noteBackpressure()
	c.metrics.CacheMiss()
	c.metrics.QueueDepth(c.queue.Add(1))

	raw, err := c.doRequest(ctx, url)
	c.metrics.QueueDepth(c.queue.Add(-1))

	if err == nil {
		if len(raw) == 0 {
			raw = noContent
		}
		c.cache.Add(key, raw)
		c.metrics.Request(metrics.OutcomeSuccess)
		return raw, nil
	}

	switch {
	case apierrors.IsNotFound(err):
		// A missing resource is expected to stay missing; fail fast and
		// leave the gate free for immediate retries.
		c.metrics.Request(metrics.OutcomeNotFound)
	case apierrors.IsRateLimit(err):
		c.metrics.Request(metrics.OutcomeRateLimit)
		if c.handleRateLimit {
			c.holdLockout(ctx, "a rate-limit error", err)
		}
	case apierrors.IsConnect(err):
		c.metrics.Request(metrics.OutcomeConnect)
		if c.handleConnect {
			c.holdLockout(ctx, "a connection error", err)
		}
	}
	return nil, err
}

// doRequest acquires a rate-limit permit and performs the GET, bounded by
// the per-request timeout. Cache hits never reach this point, so they
// bypass rate limiting entirely.
func (c *Coordinator) doRequest(ctx context.Context, url string) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &apierrors.ConnectError{URL: url, Err: err}
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.transport.Get(ctx, url)
}

// holdLockout keeps the (still closed) gate shut for the retry time so
// every request for the key backs off together, then lets the caller's
// exit path reopen it with no cached value.
func (c *Coordinator) holdLockout(ctx context.Context, reason string, err error) {
	c.metrics.Lockout()
	c.logger.Warn("request failed; holding further requests on this endpoint",
		zap.String("reason", reason),
		zap.Duration("retry_time", c.retryTime),
		zap.Error(err),
	)

	t := time.NewTimer(c.retryTime)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// noteBackpressure emits at most one warning per LogFreq when the limiter
// is out of capacity and enough requests are queued. Purely cosmetic; it
// never blocks or alters the request outcome.
func (c *Coordinator) noteBackpressure() {
	if c.limiter == nil || c.limiter.HasCapacity() {
		return
	}

	c.logMu.Lock()
	defer c.logMu.Unlock()
	if time.Since(c.lastLog) <= c.logFreq {
		return
	}
	if q := c.queue.Load(); q >= int64(c.minQ) {
		c.logger.Warn("client-side rate limit reached",
			zap.Int64("queued_requests", q+1),
		)
		c.lastLog = time.Now()
	}
}
