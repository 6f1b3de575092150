package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/depviz/internal/ctxlog"
)

// Loader is the interface for a format-specific configuration decoder.
type Loader interface {
	// Load decodes the document src read from filename into a Config. It
	// reports syntax, missing key and type problems; rule validation is
	// applied afterwards by the package-level Load.
	Load(ctx context.Context, filename string, src []byte) (*Config, error)
}

// LoaderFor returns the loader matching the extension of path.
func LoaderFor(path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLLoader(), nil
	case ".hcl", ".conf":
		return NewHCLLoader(), nil
	case ".json":
		return NewHCLJSONLoader(), nil
	case ".yaml", ".yml":
		return NewYAMLLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", filepath.Ext(path))
	}
}

// Load reads, decodes and validates the configuration file at path. Every
// failure is an *Error.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuration loader started.", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Path: path, Problems: []string{"file not found"}}
		}
		return nil, &Error{Path: path, Problems: []string{err.Error()}}
	}
	if info.IsDir() {
		return nil, &Error{Path: path, Problems: []string{"is a directory"}}
	}

	loader, err := LoaderFor(path)
	if err != nil {
		return nil, &Error{Path: path, Problems: []string{err.Error()}}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Problems: []string{fmt.Sprintf("failed to read file: %v", err)}}
	}

	cfg, err := loader.Load(ctx, path, src)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration decoded.", "path", path, "loader", fmt.Sprintf("%T", loader))

	if err := Validate(path, cfg); err != nil {
		return nil, err
	}
	logger.Debug("Configuration validated.", "package", cfg.PackageName, "version", cfg.PackageVersion, "repo_mode", cfg.RepoMode, "max_depth", cfg.MaxDepth)
	return cfg, nil
}
