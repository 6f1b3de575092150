package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/depviz/internal/nodeid"
	"github.com/specialistvlad/depviz/internal/source"
)

// FakeSource is an in-memory source.Source. Keys are `name@version`; a key
// that is absent or listed in Failures fails with a *source.FetchError.
type FakeSource struct {
	Packages map[string][]nodeid.Spec
	Failures map[string]error

	// Delay is slept (honouring ctx) before every answer.
	Delay time.Duration

	mu    sync.Mutex
	calls []string
}

// NewFakeSource creates a FakeSource from `name@version` -> dependency keys.
func NewFakeSource(packages map[string][]string) *FakeSource {
	fs := &FakeSource{
		Packages: make(map[string][]nodeid.Spec, len(packages)),
		Failures: make(map[string]error),
	}
	for key, deps := range packages {
		fs.Packages[key] = Specs(deps...)
	}
	return fs
}

// Fetch implements source.Source.
func (fs *FakeSource) Fetch(ctx context.Context, name, version string) ([]nodeid.Spec, error) {
	key := nodeid.New(name, version).String()

	fs.mu.Lock()
	fs.calls = append(fs.calls, key)
	fs.mu.Unlock()

	if fs.Delay > 0 {
		select {
		case <-time.After(fs.Delay):
		case <-ctx.Done():
			return nil, &source.FetchError{Node: nodeid.New(name, version), Err: ctx.Err()}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, &source.FetchError{Node: nodeid.New(name, version), Err: err}
	}

	if err, ok := fs.Failures[key]; ok {
		return nil, &source.FetchError{Node: nodeid.New(name, version), Err: err}
	}
	deps, ok := fs.Packages[key]
	if !ok {
		return nil, &source.FetchError{Node: nodeid.New(name, version), Err: source.ErrNotInSnapshot}
	}
	out := make([]nodeid.Spec, len(deps))
	copy(out, deps)
	return out, nil
}

// Calls returns the keys fetched so far, in call order.
func (fs *FakeSource) Calls() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]string, len(fs.calls))
	copy(out, fs.calls)
	return out
}

// CallCounts returns how many times each key was fetched.
func (fs *FakeSource) CallCounts() map[string]int {
	counts := make(map[string]int)
	for _, key := range fs.Calls() {
		counts[key]++
	}
	return counts
}

// Specs parses `name@version` keys into dependency specs.
func Specs(keys ...string) []nodeid.Spec {
	specs := make([]nodeid.Spec, 0, len(keys))
	for _, key := range keys {
		id := nodeid.MustParse(key)
		specs = append(specs, nodeid.NewSpec(id.Name, id.Version))
	}
	return specs
}
