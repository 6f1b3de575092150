// internal/nodeid/identity.go
package nodeid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned by Parse for strings that are not `name@version`.
var ErrInvalidKey = errors.New("invalid node key")

// String serializes the Identity into its canonical `name@version` form.
func (id Identity) String() string {
	return id.Name + "@" + id.Version
}

// IsZero reports whether both the name and the version are empty.
func (id Identity) IsZero() bool {
	return id.Name == "" && id.Version == ""
}

// Parse creates an Identity from its canonical string representation.
//
// The split happens at the last '@' so that scoped names such as
// `@scope/pkg@1.0.0` keep their leading '@'.
func Parse(key string) (Identity, error) {
	at := strings.LastIndex(key, "@")
	if at <= 0 {
		return Identity{}, fmt.Errorf("%w: %q has no name@version separator", ErrInvalidKey, key)
	}

	name, version := key[:at], key[at+1:]
	if version == "" {
		return Identity{}, fmt.Errorf("%w: %q has an empty version", ErrInvalidKey, key)
	}
	return Identity{Name: name, Version: version}, nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// for keys that are known to be well formed.
func MustParse(key string) Identity {
	id, err := Parse(key)
	if err != nil {
		panic(err)
	}
	return id
}
