package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Keksclan/goTruckersMP/apierrors"
	"github.com/Keksclan/goTruckersMP/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ReturnsBodyOn2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":false,"response":[]}`))
	}))
	defer srv.Close()

	c := transport.NewClient()
	raw, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":false,"response":[]}`, string(raw))
}

func TestGet_Classifies404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := transport.NewClient().Get(context.Background(), srv.URL)
	assert.True(t, apierrors.IsNotFound(err), "got %v", err)
}

func TestGet_Classifies429(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := transport.NewClient().Get(context.Background(), srv.URL)
	assert.True(t, apierrors.IsRateLimit(err), "got %v", err)
}

func TestGet_ClassifiesServerErrorAsConnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := transport.NewClient().Get(context.Background(), srv.URL)
	assert.True(t, apierrors.IsConnect(err), "got %v", err)
}

func TestGet_ClassifiesTimeoutAsConnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := transport.NewClient().Get(ctx, srv.URL)
	assert.True(t, apierrors.IsConnect(err), "got %v", err)
}

func TestGet_SendsConfiguredHeaders(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := transport.NewClient(transport.WithHeaders(map[string]string{"User-Agent": "goTruckersMP"}))
	_, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "goTruckersMP", got)
}
