package gotruckersmp

import (
	"time"

	"github.com/Keksclan/goTruckersMP/cache"
	"github.com/Keksclan/goTruckersMP/flight"
	"github.com/Keksclan/goTruckersMP/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*config)

// WithBaseURL overrides the API root, mainly for tests pointed at a
// local server.
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = u }
}

// WithRateLimit sets the client-side token bucket to permits requests
// per window. The default of 5 per 5 seconds matches the API's published
// limit.
func WithRateLimit(permits int, window time.Duration) Option {
	return func(c *config) {
		c.permits = permits
		c.window = window
	}
}

// WithLimiter injects a pre-built limiter, for callers that share one
// bucket across several clients. Overrides WithRateLimit.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *config) { c.limiter = l }
}

// WithCacheTTL sets how long responses are served from cache. Zero
// disables expiry.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) { c.cacheTTL = ttl }
}

// WithCacheMaxSize bounds the number of cached responses.
func WithCacheMaxSize(n int) Option {
	return func(c *config) { c.cacheMaxSize = n }
}

// WithUnboundedCache disables size-based eviction entirely.
func WithUnboundedCache() Option {
	return func(c *config) { c.cacheMaxSize = cache.Unbounded }
}

// WithSimpleEviction selects pure FIFO eviction: the oldest-inserted
// entry goes first regardless of expiry.
func WithSimpleEviction() Option {
	return func(c *config) {
		c.smartEviction = false
		c.minimiseSize = false
	}
}

// WithSmartEviction evicts already-expired entries before falling back
// to the oldest overall. When minimise is set every expired entry is
// swept, keeping the cache small at the cost of a full scan.
func WithSmartEviction(minimise bool) Option {
	return func(c *config) {
		c.smartEviction = true
		c.minimiseSize = minimise
	}
}

// WithRistrettoCache swaps the FIFO store for a ristretto-backed one
// sized for roughly maxEntries responses. Suited to high request volumes
// where approximate accounting is acceptable.
func WithRistrettoCache(maxEntries int64) Option {
	return func(c *config) { c.ristretto = maxEntries }
}

// WithCache injects a custom response store. Overrides the other cache
// options.
func WithCache(s cache.Store) Option {
	return func(c *config) { c.store = s }
}

// WithRequestTimeout bounds each upstream call.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *config) { c.requestTimeout = d }
}

// WithHandleConnectErrors controls whether connect errors hold the
// failing endpoint closed for the retry time (true, the default) or
// propagate immediately (false).
func WithHandleConnectErrors(enabled bool) Option {
	return func(c *config) { c.handleConnect = enabled }
}

// WithHandleRateLimitErrors does the same for upstream 429s. Under the
// default limiter these should never occur.
func WithHandleRateLimitErrors(enabled bool) Option {
	return func(c *config) { c.handleRateLimit = enabled }
}

// WithRetryTime sets how long further requests to a failed endpoint are
// held when error handling is enabled. Cancelling the caller that hit
// the error releases the hold early.
func WithRetryTime(d time.Duration) Option {
	return func(c *config) { c.retryTime = d }
}

// WithLogger supplies the logger used for lockout and backpressure
// warnings. The default logger discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithLogThrottle emits the rate-limit warning at most once per freq and
// only once minQueue requests are waiting, so short bursts stay quiet.
func WithLogThrottle(freq time.Duration, minQueue int) Option {
	return func(c *config) {
		c.logFreq = freq
		c.minQ = minQueue
	}
}

// WithTransport injects a custom transport. Used by tests and by callers
// that need bespoke HTTP behavior.
func WithTransport(t flight.Getter) Option {
	return func(c *config) { c.transport = t }
}

// WithHeaders sets headers sent with every upstream request, such as a
// User-Agent identifying the integration.
func WithHeaders(h map[string]string) Option {
	return func(c *config) { c.headers = h }
}

// WithTracerProvider enables OpenTelemetry spans around upstream calls.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tracerProvider = tp }
}

// WithMetrics registers Prometheus collectors for requests, cache
// outcomes and queue depth with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) { c.registerer = reg }
}
