package graph

import (
	"slices"

	"github.com/specialistvlad/depviz/internal/nodeid"
)

// Entry is one node of the graph with the dependencies its metadata declared.
type Entry struct {
	Node nodeid.Identity
	Deps []nodeid.Spec
}

// Graph is an insertion-ordered adjacency map from a node's canonical key to
// its declared dependencies.
type Graph struct {
	order   []string
	entries map[string]*Entry
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{entries: make(map[string]*Entry)}
}

// Set records the dependencies declared by node. The slice is copied. Setting
// an existing key replaces its dependencies but keeps its original position.
func (g *Graph) Set(node nodeid.Identity, deps []nodeid.Spec) {
	key := node.String()
	stored := make([]nodeid.Spec, len(deps))
	copy(stored, deps)

	if e, ok := g.entries[key]; ok {
		e.Deps = stored
		return
	}
	g.entries[key] = &Entry{Node: node, Deps: stored}
	g.order = append(g.order, key)
}

// Deps returns the declared dependencies of the node with the given key and
// whether the key is present.
func (g *Graph) Deps(key string) ([]nodeid.Spec, bool) {
	e, ok := g.entries[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(e.Deps), true
}

// Has reports whether key is a node of the graph.
func (g *Graph) Has(key string) bool {
	_, ok := g.entries[key]
	return ok
}

// Node returns the identity stored under key.
func (g *Graph) Node(key string) (nodeid.Identity, bool) {
	e, ok := g.entries[key]
	if !ok {
		return nodeid.Identity{}, false
	}
	return e.Node, true
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// EdgeCount returns the total number of declared dependency edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, e := range g.entries {
		n += len(e.Deps)
	}
	return n
}

// Keys returns the node keys in insertion order.
func (g *Graph) Keys() []string {
	return slices.Clone(g.order)
}

// SortedKeys returns the node keys in lexicographic order.
func (g *Graph) SortedKeys() []string {
	keys := slices.Clone(g.order)
	slices.Sort(keys)
	return keys
}

// Entries returns copies of all entries in insertion order.
func (g *Graph) Entries() []Entry {
	out := make([]Entry, 0, len(g.order))
	for _, key := range g.order {
		e := g.entries[key]
		out = append(out, Entry{Node: e.Node, Deps: slices.Clone(e.Deps)})
	}
	return out
}
