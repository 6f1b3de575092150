package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/specialistvlad/depviz/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, handler http.HandlerFunc, opts ...RegistryOption) *Registry {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	reg, err := NewRegistry(context.Background(), server.URL+"/", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func TestRegistry_Fetch(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var gotPath string
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"A","version":"1.0","dependencies":{"C":"^1.0","B":"1.0"}}`))
	})

	// --- Act ---
	specs, err := reg.Fetch(context.Background(), "A", "1.0")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "/A/1.0", gotPath)
	assert.Equal(t, []nodeid.Spec{nodeid.NewSpec("C", "^1.0"), nodeid.NewSpec("B", "1.0")}, specs)
}

func TestRegistry_NoDependenciesField(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"leaf"}`))
	})

	specs, err := reg.Fetch(context.Background(), "leaf", "0.1.0")
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestRegistry_EscapesScopedNames(t *testing.T) {
	t.Parallel()
	var gotPath string
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := reg.Fetch(context.Background(), "@types/node", "20.1.0")
	require.NoError(t, err)
	assert.Equal(t, "/@types%2Fnode/20.1.0", gotPath)
}

func TestRegistry_EndpointUnderBasePath(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	reg, err := NewRegistry(context.Background(), srv.URL+"/npm/")
	require.NoError(t, err)

	// --- Act ---
	_, err = reg.Fetch(context.Background(), "@scope/pkg", "1.0.0")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "/npm/@scope%2Fpkg/1.0.0", gotPath)
	assert.Empty(t, gotQuery)
}

func TestRegistry_FetchErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		handler http.HandlerFunc
		target  error
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "not found", http.StatusNotFound)
			},
			target: ErrUnexpectedStatus,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			target: ErrUnexpectedStatus,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"dependencies": 42}`))
			},
			target: ErrMalformedManifest,
		},
		{
			name: "html body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html></html>`))
			},
			target: ErrMalformedManifest,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			reg := newTestRegistry(t, tc.handler)

			specs, err := reg.Fetch(context.Background(), "A", "1.0")
			require.Error(t, err)
			assert.Nil(t, specs)
			assert.ErrorIs(t, err, tc.target)

			var fetchErr *FetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, "A@1.0", fetchErr.Node.String())
		})
	}
}

func TestRegistry_Timeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := reg.Fetch(context.Background(), "slow", "1.0")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.True(t, IsTimeout(err), "expected a timeout, got %v", err)
}

func TestRegistry_CancelledContext(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reg.Fetch(ctx, "A", "1.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_TransportFailure(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	reg, err := NewRegistry(context.Background(), url)
	require.NoError(t, err)

	_, err = reg.Fetch(context.Background(), "A", "1.0")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
}

func TestRegistry_NoRetry(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := reg.Fetch(context.Background(), "A", "1.0")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistry_RateLimitHonoursContext(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, WithRateLimit(0.001))

	// The first request consumes the only token.
	_, err := reg.Fetch(context.Background(), "A", "1.0")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = reg.Fetch(ctx, "B", "1.0")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "B@1.0", fetchErr.Node.String())
}

func TestNewRegistry_InvalidURL(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{
		"ftp://example.com",
		"registry.example.com",
		"://bad",
		"https://example.com/api?token=x",
		"https://example.com/api#frag",
	} {
		_, err := NewRegistry(context.Background(), raw)
		var initErr *InitError
		require.True(t, errors.As(err, &initErr), raw)
	}
}
