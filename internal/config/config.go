package config

import (
	"fmt"
	"strings"
	"time"
)

// Repository modes.
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// Config is the validated configuration consumed by the rest of the program.
type Config struct {
	PackageName    string `json:"package_name" validate:"required"`
	PackageVersion string `json:"package_version" validate:"required"`
	RepoMode       string `json:"repo_mode" validate:"required,oneof=local remote"`
	RepositoryURL  string `json:"repository_url" validate:"required"`
	MaxDepth       int    `json:"max_depth" validate:"gte=0"`

	// RequestsPerSecond limits registry requests. Zero disables the limit.
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gte=0"`

	// Timeout bounds the whole traversal. Zero means no deadline.
	Timeout time.Duration `json:"timeout" validate:"gte=0"`
}

// Error lists every problem found in a configuration file.
type Error struct {
	Path     string
	Problems []string
}

func (e *Error) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("invalid configuration %s: %s", e.Path, e.Problems[0])
	}
	return fmt.Sprintf("invalid configuration %s:\n  - %s", e.Path, strings.Join(e.Problems, "\n  - "))
}

// newError returns nil when there is nothing to report.
func newError(path string, problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &Error{Path: path, Problems: problems}
}

// parseTimeout parses the optional timeout value shared by all formats.
func parseTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	return d, nil
}
