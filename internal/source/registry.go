package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/specialistvlad/depviz/internal/ctxlog"
	"github.com/specialistvlad/depviz/internal/nodeid"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds one registry request.
	DefaultTimeout = 10 * time.Second

	// maxManifestBytes caps the size of a registry response body.
	maxManifestBytes = 10 << 20
)

// Registry fetches package manifests from `{base}/{name}/{version}`.
type Registry struct {
	base    *url.URL
	client  *http.Client
	limiter *rate.Limiter
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithHTTPClient replaces the default client. The client's own timeout is
// used as is.
func WithHTTPClient(client *http.Client) RegistryOption {
	return func(r *Registry) {
		r.client = client
	}
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(timeout time.Duration) RegistryOption {
	return func(r *Registry) {
		r.client.Timeout = timeout
	}
}

// WithRateLimit limits requests to rps per second. Zero or less disables the
// limit.
func WithRateLimit(rps float64) RegistryOption {
	return func(r *Registry) {
		if rps <= 0 {
			r.limiter = nil
			return
		}
		r.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// newHTTPClient returns the client shared by every request of one Registry.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// NewRegistry creates a registry source rooted at baseURL.
func NewRegistry(ctx context.Context, baseURL string, opts ...RegistryOption) (*Registry, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, &InitError{Location: baseURL, Err: err}
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, &InitError{Location: baseURL, Err: fmt.Errorf("unsupported scheme %q", base.Scheme)}
	}
	if base.RawQuery != "" || base.ForceQuery || base.Fragment != "" {
		return nil, &InitError{Location: baseURL, Err: errors.New("base URL must not carry a query or fragment")}
	}

	r := &Registry{base: base, client: newHTTPClient(DefaultTimeout)}
	for _, opt := range opts {
		opt(r)
	}

	ctxlog.FromContext(ctx).Debug("Registry source configured.", "base_url", base.String(), "timeout", r.client.Timeout, "rate_limited", r.limiter != nil)
	return r, nil
}

// endpoint returns the manifest URL of name@version. Each part is escaped
// as a single path segment, so a scoped name like `@scope/pkg` is sent as
// `@scope%2Fpkg`.
func (r *Registry) endpoint(name, version string) string {
	u := *r.base
	u.Path = r.base.Path + "/" + name + "/" + version
	u.RawPath = r.base.EscapedPath() + "/" + url.PathEscape(name) + "/" + url.PathEscape(version)
	return u.String()
}

// Fetch implements Source. It makes exactly one request and never retries.
func (r *Registry) Fetch(ctx context.Context, name, version string) ([]nodeid.Spec, error) {
	logger := ctxlog.FromContext(ctx)

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fetchError(name, version, err)
		}
	}

	endpoint := r.endpoint(name, version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fetchError(name, version, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("Requesting package manifest.", "url", endpoint)
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fetchError(name, version, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fetchError(name, version, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestBytes+1))
	if err != nil {
		return nil, fetchError(name, version, fmt.Errorf("failed to read response body: %w", err))
	}
	if len(body) > maxManifestBytes {
		return nil, fetchError(name, version, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedManifest, maxManifestBytes))
	}

	specs, err := decodeManifest(body)
	if err != nil {
		return nil, fetchError(name, version, err)
	}
	logger.Debug("Received package manifest.", "url", endpoint, "status", resp.Status, "dependencies", len(specs))
	return specs, nil
}

// Close releases idle connections held by the client.
func (r *Registry) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

// IsTimeout reports whether err was caused by a deadline or client timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
