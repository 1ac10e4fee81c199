package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MisakSofoyan1/product-app/pkg/logger"
)

func testCBConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      5 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
}

func newBreaker(name string) *CircuitBreakerClient {
	return NewCircuitBreakerClient(New(fastConfig(0)), testCBConfig(name), logger.Discard())
}

func tripBreaker(t *testing.T, cb *CircuitBreakerClient, url string) {
	t.Helper()
	for i := 0; i < 3; i++ {
		_, _ = cb.Get(context.Background(), url)
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestCircuitBreaker_ClosedState_Success(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK)
	cb := newBreaker("test-closed")

	resp, err := cb.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.NoError(t, cb.Ping(context.Background()))
}

func TestCircuitBreaker_5xxBecomesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	_, err := newBreaker("test-server-error").Get(context.Background(), srv.URL)

	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusBadGateway, srvErr.StatusCode)
	assert.Equal(t, "bad gateway", srvErr.Body)
}

func TestCircuitBreaker_TripsAndRejects(t *testing.T) {
	srv, attempts := countingServer(t, http.StatusInternalServerError)
	cb := newBreaker("test-trip")

	tripBreaker(t, cb, srv.URL)
	before := attempts.Load()

	_, err := cb.Get(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, before, attempts.Load(), "open breaker must not reach the server")
	assert.ErrorIs(t, cb.Ping(context.Background()), ErrCircuitOpen)
}

func TestCircuitBreaker_4xxNotCountedAsFailure(t *testing.T) {
	srv, _ := countingServer(t, http.StatusBadRequest)
	cb := newBreaker("test-4xx")

	for i := 0; i < 5; i++ {
		resp, err := cb.Get(context.Background(), srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_CanceledCallsDoNotTrip(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK)
	cb := newBreaker("test-canceled")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		_, err := cb.Get(ctx, srv.URL)
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testCBConfig("test-recover")
	cfg.Timeout = 50 * time.Millisecond
	cb := NewCircuitBreakerClient(New(fastConfig(0)), cfg, logger.Discard())

	tripBreaker(t, cb, srv.URL)
	healthy.Store(true)

	assert.Eventually(t, func() bool {
		return cb.State() == gobreaker.StateHalfOpen
	}, time.Second, 10*time.Millisecond)

	resp, err := cb.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_WithFallback(t *testing.T) {
	srv, _ := countingServer(t, http.StatusInternalServerError)

	var called atomic.Bool
	cb := newBreaker("test-fallback").WithFallback(func(ctx context.Context, err error) (*http.Response, error) {
		called.Store(true)
		return nil, errors.Join(errors.New("catalog api unavailable"), err)
	})

	tripBreaker(t, cb, srv.URL)

	_, err := cb.Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, called.Load())
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Contains(t, err.Error(), "catalog api unavailable")
}

func TestCircuitBreaker_FallbackNotInvokedWhenClosed(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK)

	var called atomic.Bool
	cb := newBreaker("test-fallback-closed").WithFallback(func(ctx context.Context, err error) (*http.Response, error) {
		called.Store(true)
		return nil, err
	})

	resp, err := cb.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.False(t, called.Load())
}
