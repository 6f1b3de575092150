package source

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/depviz/internal/nodeid"
)

// manifest is the metadata document served by the registry for one package
// version, and the value type of every snapshot entry.
type manifest struct {
	Dependencies dependencyList `json:"dependencies"`
}

// dependencyList decodes a JSON object of name -> version into specs,
// keeping the document's key order. A repeated name keeps its first position
// and takes the last version.
type dependencyList []nodeid.Spec

func (l *dependencyList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dependencies must be an object, got %v", tok)
	}

	var out dependencyList
	seen := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)

		var version string
		if err := dec.Decode(&version); err != nil {
			return fmt.Errorf("dependency %q: version must be a string: %w", name, err)
		}

		if i, dup := seen[name]; dup {
			out[i].Version = version
			continue
		}
		seen[name] = len(out)
		out = append(out, nodeid.NewSpec(name, version))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

// decodeManifest parses one manifest document. Anything but a JSON object
// (including null) is rejected.
func decodeManifest(data []byte) ([]nodeid.Spec, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedManifest)
	}

	var m manifest
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	return m.Dependencies, nil
}
