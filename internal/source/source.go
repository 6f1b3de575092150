package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/depviz/internal/config"
	"github.com/specialistvlad/depviz/internal/nodeid"
)

// Source is the metadata capability the graph builder pulls from.
type Source interface {
	// Fetch returns the ordered dependency specs declared by name@version.
	// Every failure is returned as a *FetchError.
	Fetch(ctx context.Context, name, version string) ([]nodeid.Spec, error)
}

var (
	// ErrNotInSnapshot means the snapshot has no entry for the requested key.
	// It is distinct from an entry with no dependencies.
	ErrNotInSnapshot = errors.New("package absent from snapshot")

	// ErrUnexpectedStatus is wrapped when the registry answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected registry response status")

	// ErrMalformedManifest is wrapped when metadata is not a manifest object.
	ErrMalformedManifest = errors.New("malformed package manifest")
)

// FetchError reports that the metadata of one node could not be obtained.
type FetchError struct {
	Node nodeid.Identity
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Node, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func fetchError(name, version string, err error) *FetchError {
	return &FetchError{Node: nodeid.New(name, version), Err: err}
}

// InitError reports that a source could not be constructed. Nothing can be
// traversed without a working source, so it aborts the run.
type InitError struct {
	Location string
	Err      error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize source %s: %v", e.Location, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// New selects the source variant named by the validated configuration.
// Local mode loads the snapshot at RepositoryURL, remote mode talks to the
// registry rooted at RepositoryURL.
func New(ctx context.Context, cfg *config.Config) (Source, error) {
	switch cfg.RepoMode {
	case config.ModeLocal:
		return LoadSnapshot(ctx, cfg.RepositoryURL)
	case config.ModeRemote:
		return NewRegistry(ctx, cfg.RepositoryURL, WithRateLimit(cfg.RequestsPerSecond))
	default:
		return nil, &InitError{Location: cfg.RepositoryURL, Err: fmt.Errorf("unknown repo mode %q", cfg.RepoMode)}
	}
}
