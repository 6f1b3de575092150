package config

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/specialistvlad/depviz/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// YAMLLoader decodes YAML documents.
type YAMLLoader struct{}

// NewYAMLLoader creates a YAML configuration loader.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load implements Loader. Scalars keep their resolved YAML type, so an
// unquoted `package_version: 1.0` is a float and rejected.
func (l *YAMLLoader) Load(ctx context.Context, filename string, src []byte) (*Config, error) {
	var doc map[string]any
	dec := yaml.NewDecoder(bytes.NewReader(src))
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, &Error{Path: filename, Problems: typeErr.Errors}
		}
		return nil, &Error{Path: filename, Problems: []string{err.Error()}}
	}
	ctxlog.FromContext(ctx).Debug("YAML configuration decoded.", "path", filename, "keys", len(doc))

	return settings(doc).toConfig(filename)
}
