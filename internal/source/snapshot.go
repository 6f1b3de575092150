package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/specialistvlad/depviz/internal/ctxlog"
	"github.com/specialistvlad/depviz/internal/nodeid"
)

// Snapshot answers fetches from a JSON document loaded once. Its top-level
// keys are `name@version` strings and its values are manifests.
type Snapshot struct {
	path     string
	packages map[string]manifest
}

// LoadSnapshot reads and parses the snapshot file at path. A missing or
// unparsable file is an *InitError.
func LoadSnapshot(ctx context.Context, path string) (*Snapshot, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading snapshot.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InitError{Location: path, Err: err}
	}

	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, &InitError{Location: path, Err: err}
	}
	snap.path = path

	logger.Debug("Snapshot loaded.", "path", path, "packages", len(snap.packages))
	return snap, nil
}

// ParseSnapshot builds a Snapshot from an in-memory JSON document.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var packages map[string]manifest
	if err := json.Unmarshal(data, &packages); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if packages == nil {
		return nil, fmt.Errorf("failed to parse snapshot: top-level value must be an object")
	}
	return &Snapshot{packages: packages}, nil
}

// Fetch implements Source with an exact key lookup. A key that is absent is
// an error wrapping ErrNotInSnapshot, never an empty result.
func (s *Snapshot) Fetch(ctx context.Context, name, version string) ([]nodeid.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, fetchError(name, version, err)
	}

	m, ok := s.packages[nodeid.New(name, version).String()]
	if !ok {
		return nil, fetchError(name, version, ErrNotInSnapshot)
	}
	return slices.Clone([]nodeid.Spec(m.Dependencies)), nil
}

// Len returns the number of packages in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.packages)
}

// Path returns the file the snapshot was loaded from, if any.
func (s *Snapshot) Path() string {
	return s.path
}
