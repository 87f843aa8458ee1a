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

// config holds the internal configuration assembled via functional options.
type config struct {
	baseURL string

	permits int
	window  time.Duration
	limiter *ratelimit.Limiter

	cacheTTL      time.Duration
	cacheMaxSize  int
	smartEviction bool
	minimiseSize  bool
	ristretto     int64
	store         cache.Store

	requestTimeout  time.Duration
	retryTime       time.Duration
	handleConnect   bool
	handleRateLimit bool

	logger  *zap.Logger
	logFreq time.Duration
	minQ    int

	transport      flight.Getter
	headers        map[string]string
	tracerProvider trace.TracerProvider
	registerer     prometheus.Registerer
}

// newConfig returns the default configuration, mirroring the documented
// API limits: 5 requests per 5 seconds, 60-second cache, 10-second
// request timeout, 20-second lockout on handled failures.
func newConfig() config {
	return config{
		baseURL:         DefaultBaseURL,
		permits:         5,
		window:          5 * time.Second,
		cacheTTL:        60 * time.Second,
		cacheMaxSize:    65536,
		smartEviction:   true,
		requestTimeout:  10 * time.Second,
		retryTime:       20 * time.Second,
		handleConnect:   true,
		handleRateLimit: true,
		logFreq:         60 * time.Second,
		minQ:            10,
	}
}
