// internal/nodeid/types.go
package nodeid

// Identity identifies one vertex of the dependency graph.
type Identity struct {
	Name    string
	Version string
}

// New creates an Identity from a package name and version string.
func New(name, version string) Identity {
	return Identity{Name: name, Version: version}
}

// Spec is a declared dependency: the dependency's name and the version
// string its dependent asked for, carried verbatim.
type Spec struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// NewSpec creates a Spec from a dependency name and declared version.
func NewSpec(name, version string) Spec {
	return Spec{Name: name, Version: version}
}

// Identity returns the node identity a traversal visits for this dependency.
func (s Spec) Identity() Identity {
	return Identity{Name: s.Name, Version: s.Version}
}

// String returns the canonical `name@version` form of the declared dependency.
func (s Spec) String() string {
	return s.Identity().String()
}
