package flight_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Keksclan/goTruckersMP/apierrors"
	"github.com/Keksclan/goTruckersMP/cache"
	"github.com/Keksclan/goTruckersMP/flight"
	"github.com/Keksclan/goTruckersMP/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// stubTransport counts invocations and answers from a per-call function.
type stubTransport struct {
	mu    sync.Mutex
	calls int
	fn    func(call int, url string) (json.RawMessage, error)
}

func (s *stubTransport) Get(ctx context.Context, url string) (json.RawMessage, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	return s.fn(n, url)
}

func (s *stubTransport) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newCoordinator(t *stubTransport, opts ...func(*flight.Config)) *flight.Coordinator {
	cfg := flight.Config{
		Cache:               cache.NewFIFO(100, time.Minute),
		Transport:           t,
		RetryTime:           100 * time.Millisecond,
		HandleConnectErrors: true,
	}
	for _, o := range opts {
		o(&cfg)
	}
	return flight.New(cfg)
}

func TestProcess_SingleFlightCollapsesConcurrentCallers(t *testing.T) {
	// Five concurrent requests for "servers" with an empty cache must
	// produce exactly one upstream invocation, shared by all callers.
	tr := &stubTransport{fn: func(int, string) (json.RawMessage, error) {
		time.Sleep(50 * time.Millisecond)
		return json.RawMessage(`{"response":[1,2,3]}`), nil
	}}
	c := newCoordinator(tr)

	var wg sync.WaitGroup
	results := make([]json.RawMessage, 5)
	errs := make([]error, 5)
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.Process(context.Background(), "servers", "/servers")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, tr.callCount())
	for i := 0; i < 5; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, `{"response":[1,2,3]}`, string(results[i]))
	}
}

func TestProcess_FreshCacheHitSkipsTransport(t *testing.T) {
	tr := &stubTransport{fn: func(int, string) (json.RawMessage, error) {
		return json.RawMessage(`1`), nil
	}}
	c := newCoordinator(tr)

	_, err := c.Process(context.Background(), "k", "/k")
	require.NoError(t, err)
	_, err = c.Process(context.Background(), "k", "/k")
	require.NoError(t, err)

	assert.Equal(t, 1, tr.callCount())
	assert.Equal(t, uint64(1), c.CacheInfo().Hits)
}

func TestProcess_DistinctKeysNeverBlockEachOther(t *testing.T) {
	release := make(chan struct{})
	tr := &stubTransport{fn: func(_ int, url string) (json.RawMessage, error) {
		if url == "/slow" {
			<-release
		}
		return json.RawMessage(`true`), nil
	}}
	c := newCoordinator(tr)

	go c.Process(context.Background(), "slow", "/slow")
	time.Sleep(10 * time.Millisecond) // let the slow call take its gate

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.Process(context.Background(), "fast", "/fast")
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("request for an independent key was blocked")
	}
	close(release)
}

func TestProcess_NotFoundFailsFastAndNeverLocks(t *testing.T) {
	tr := &stubTransport{fn: func(_ int, url string) (json.RawMessage, error) {
		return nil, &apierrors.NotFoundError{URL: url}
	}}
	c := newCoordinator(tr)

	start := time.Now()
	_, err := c.Process(context.Background(), "player/999", "/player/999")
	assert.True(t, apierrors.IsNotFound(err))
	assert.Less(t, time.Since(start), 50*time.Millisecond, "not-found must not trigger the cooldown")

	// An immediate follow-up reaches the transport again.
	_, err = c.Process(context.Background(), "player/999", "/player/999")
	assert.True(t, apierrors.IsNotFound(err))
	assert.Equal(t, 2, tr.callCount())
}

func TestProcess_HandledConnectErrorHoldsGateForCooldown(t *testing.T) {
	tr := &stubTransport{fn: func(call int, _ string) (json.RawMessage, error) {
		if call == 1 {
			return nil, &apierrors.ConnectError{URL: "/flaky"}
		}
		return json.RawMessage(`"ok"`), nil
	}}
	c := newCoordinator(tr) // RetryTime = 100ms, handling enabled

	firstDone := make(chan time.Time, 1)
	go func() {
		start := time.Now()
		_, err := c.Process(context.Background(), "flaky", "/flaky")
		assert.True(t, apierrors.IsConnect(err))
		firstDone <- start
	}()

	time.Sleep(20 * time.Millisecond) // arrive during the lockout

	start := time.Now()
	raw, err := c.Process(context.Background(), "flaky", "/flaky")
	require.NoError(t, err)
	assert.Equal(t, `"ok"`, string(raw))
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond,
		"a request arriving during the cooldown must be held until it expires")

	firstStart := <-firstDone
	assert.GreaterOrEqual(t, time.Since(firstStart), 100*time.Millisecond,
		"the failing caller itself waits out the cooldown")
}

func TestProcess_RequestAfterCooldownIsNotHeld(t *testing.T) {
	tr := &stubTransport{fn: func(call int, _ string) (json.RawMessage, error) {
		if call == 1 {
			return nil, &apierrors.ConnectError{URL: "/flaky"}
		}
		return json.RawMessage(`"ok"`), nil
	}}
	c := newCoordinator(tr)

	_, err := c.Process(context.Background(), "flaky", "/flaky")
	assert.True(t, apierrors.IsConnect(err))

	// The cooldown already elapsed inside the first call; this one runs
	// upstream immediately.
	start := time.Now()
	_, err = c.Process(context.Background(), "flaky", "/flaky")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestProcess_DisabledHandlingPropagatesWithoutLockout(t *testing.T) {
	tr := &stubTransport{fn: func(int, string) (json.RawMessage, error) {
		return nil, &apierrors.ConnectError{URL: "/down"}
	}}
	c := newCoordinator(tr, func(cfg *flight.Config) {
		cfg.HandleConnectErrors = false
	})

	start := time.Now()
	_, err := c.Process(context.Background(), "down", "/down")
	assert.True(t, apierrors.IsConnect(err))
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	// Gate reopened immediately; the caller may retry at once.
	_, err = c.Process(context.Background(), "down", "/down")
	assert.True(t, apierrors.IsConnect(err))
	assert.Equal(t, 2, tr.callCount())
}

func TestProcess_RateLimitErrorHonoursOwnToggle(t *testing.T) {
	tr := &stubTransport{fn: func(int, string) (json.RawMessage, error) {
		return nil, &apierrors.RateLimitError{URL: "/hot"}
	}}
	c := newCoordinator(tr, func(cfg *flight.Config) {
		cfg.HandleConnectErrors = false
		cfg.HandleRateLimitErrors = true
		cfg.RetryTime = 80 * time.Millisecond
	})

	start := time.Now()
	_, err := c.Process(context.Background(), "hot", "/hot")
	assert.True(t, apierrors.IsRateLimit(err))
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestProcess_EmptyBodyIsCachedAsNull(t *testing.T) {
	tr := &stubTransport{fn: func(int, string) (json.RawMessage, error) {
		return nil, nil
	}}
	c := newCoordinator(tr)

	raw, err := c.Process(context.Background(), "empty", "/empty")
	require.NoError(t, err)
	assert.Equal(t, `null`, string(raw))

	// The sentinel is a real cache entry: no second upstream call.
	raw, err = c.Process(context.Background(), "empty", "/empty")
	require.NoError(t, err)
	assert.Equal(t, `null`, string(raw))
	assert.Equal(t, 1, tr.callCount())
}

func TestProcess_WaiterHonoursContextCancellation(t *testing.T) {
	release := make(chan struct{})
	tr := &stubTransport{fn: func(int, string) (json.RawMessage, error) {
		<-release
		return json.RawMessage(`1`), nil
	}}
	c := newCoordinator(tr)

	go c.Process(context.Background(), "k", "/k")
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := c.Process(ctx, "k", "/k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}

func TestProcess_GateRegistryShrinksToZero(t *testing.T) {
	tr := &stubTransport{fn: func(int, string) (json.RawMessage, error) {
		return json.RawMessage(`1`), nil
	}}
	c := newCoordinator(tr)

	var wg sync.WaitGroup
	for _, key := range []string{"a", "b", "c", "a", "b"} {
		key := key
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Process(context.Background(), key, "/"+key)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, flight.GateCount(c), "idle gates must be evicted from the registry")
}

func TestProcess_TimeoutClassifiesAsConnectError(t *testing.T) {
	tr := &stubTransport{fn: func(int, string) (json.RawMessage, error) {
		return nil, nil
	}}
	// A limiter with no capacity forces Wait to outlive the caller context.
	lim := ratelimit.NewLimiter(1.0/3600, 1)
	lim.Allow()

	c := newCoordinator(tr, func(cfg *flight.Config) {
		cfg.Limiter = lim
		cfg.HandleConnectErrors = false
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := c.Process(ctx, "k", "/k")
	assert.True(t, apierrors.IsConnect(err), "got %v", err)
	assert.Equal(t, 0, tr.callCount(), "the transport must not be reached without a permit")
}

func waitForCalls(t *testing.T, tr *stubTransport, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for tr.callCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("transport saw %d calls, want %d", tr.callCount(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestProcess_BackpressureWarningIsThrottled(t *testing.T) {
	release := make(chan struct{})
	tr := &stubTransport{fn: func(int, string) (json.RawMessage, error) {
		<-release
		return json.RawMessage(`null`), nil
	}}
	core, logs := observer.New(zap.WarnLevel)
	c := newCoordinator(tr, func(cfg *flight.Config) {
		cfg.Limiter = ratelimit.NewLimiter(0.01, 2)
		cfg.Logger = zap.New(core)
		cfg.LogFreq = time.Hour
		cfg.MinQueueForLog = 2
		cfg.HandleConnectErrors = false
	})

	// Two requests drain the bucket and then sit on the wire, keeping
	// the queue populated.
	var wg sync.WaitGroup
	for _, key := range []string{"/b", "/c"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, err := c.Process(context.Background(), key, key)
			assert.NoError(t, err)
		}(key)
	}
	waitForCalls(t, tr, 2)

	// With no capacity left and two requests queued, the next caller
	// trips the warning.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Process(ctx, "/d", "/d")
	require.True(t, apierrors.IsConnect(err), "got %v", err)

	// A further caller inside the same window stays silent.
	ctx2, cancel2 := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel2()
	_, err = c.Process(ctx2, "/e", "/e")
	require.True(t, apierrors.IsConnect(err), "got %v", err)

	close(release)
	wg.Wait()

	warnings := logs.FilterMessage("client-side rate limit reached").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(3), warnings[0].ContextMap()["queued_requests"])
}

func TestProcess_BackpressureWarningSilentBelowQueueThreshold(t *testing.T) {
	tr := &stubTransport{fn: func(int, string) (json.RawMessage, error) {
		return json.RawMessage(`null`), nil
	}}
	core, logs := observer.New(zap.WarnLevel)
	c := newCoordinator(tr, func(cfg *flight.Config) {
		cfg.Limiter = ratelimit.NewLimiter(0.01, 1)
		cfg.Logger = zap.New(core)
		cfg.LogFreq = time.Hour
		cfg.MinQueueForLog = 10
		cfg.HandleConnectErrors = false
	})

	// The first request consumes the only token.
	_, err := c.Process(context.Background(), "/a", "/a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Process(ctx, "/b", "/b")
	require.True(t, apierrors.IsConnect(err), "got %v", err)

	assert.Zero(t, logs.FilterMessage("client-side rate limit reached").Len())
}
