package registry

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCheck_VerifiedCharity(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/public_charity_check/12-3456789", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"public_charity":true}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", time.Second, discardLogger())
	result, err := c.Check(context.Background(), "12-3456789")

	require.NoError(t, err)
	assert.Equal(t, ResultVerified, result)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCheck_RegistrySaysNo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"public_charity":false}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", time.Second, discardLogger())
	result, err := c.Check(context.Background(), "12-3456789")

	require.NoError(t, err)
	assert.Equal(t, ResultRejected, result)
}

func TestCheck_MalformedEINSkipsNetworkCall(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", time.Second, discardLogger())
	for _, ein := range []string{"", "123456789", "1-2345678", "xx-yyyyyyy"} {
		result, err := c.Check(context.Background(), ein)
		require.NoError(t, err)
		assert.Equal(t, ResultRejected, result, "ein %q", ein)
	}
	assert.Equal(t, int32(0), calls.Load(), "malformed EINs must not reach the registry")
}

func TestCheck_MissingAttestationIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", time.Second, discardLogger())
	result, err := c.Check(context.Background(), "12-3456789")

	require.NoError(t, err)
	assert.Equal(t, ResultRejected, result)
}

func TestCheck_ClientErrorStatusIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", time.Second, discardLogger())
	result, err := c.Check(context.Background(), "12-3456789")

	require.NoError(t, err)
	assert.Equal(t, ResultRejected, result)
}

func TestCheck_ServerErrorIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", time.Second, discardLogger())
	result, err := c.Check(context.Background(), "12-3456789")

	require.Error(t, err)
	assert.Equal(t, ResultUnreachable, result)
}

func TestCheck_NetworkFailureIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, "test-key", time.Second, discardLogger())
	result, err := c.Check(context.Background(), "12-3456789")

	require.Error(t, err)
	assert.Equal(t, ResultUnreachable, result)
}

func TestCheck_SlowRegistryTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"data":{"public_charity":true}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", 20*time.Millisecond, discardLogger())
	result, err := c.Check(context.Background(), "12-3456789")

	require.Error(t, err)
	assert.Equal(t, ResultUnreachable, result)
}

func TestCheck_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", time.Second, discardLogger())
	for i := 0; i < 5; i++ {
		result, err := c.Check(context.Background(), "12-3456789")
		require.Error(t, err)
		assert.Equal(t, ResultUnreachable, result)
	}
	require.EqualValues(t, 5, calls.Load())

	// Circuit is now open: the next check answers without a network call.
	result, err := c.Check(context.Background(), "12-3456789")
	require.Error(t, err)
	assert.Equal(t, ResultUnreachable, result)
	assert.EqualValues(t, 5, calls.Load())
}
