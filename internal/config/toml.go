package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/specialistvlad/depviz/internal/ctxlog"
)

// TOMLLoader decodes TOML documents. Settings are top-level keys; keys
// inside tables are ignored.
type TOMLLoader struct{}

// NewTOMLLoader creates a TOML configuration loader.
func NewTOMLLoader() *TOMLLoader {
	return &TOMLLoader{}
}

// Load implements Loader.
func (l *TOMLLoader) Load(ctx context.Context, filename string, src []byte) (*Config, error) {
	var doc map[string]any
	if err := toml.Unmarshal(src, &doc); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, &Error{Path: filename, Problems: []string{fmt.Sprintf("line %d, column %d: %s", row, col, decodeErr.Error())}}
		}
		return nil, &Error{Path: filename, Problems: []string{err.Error()}}
	}
	ctxlog.FromContext(ctx).Debug("TOML configuration decoded.", "path", filename, "keys", len(doc))

	return settings(doc).toConfig(filename)
}
