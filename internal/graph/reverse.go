package graph

import (
	"slices"
	"strings"

	"github.com/specialistvlad/depviz/internal/nodeid"
)

// ReverseIndex maps a dependency's canonical key to the nodes declaring it,
// in graph iteration order.
type ReverseIndex map[string][]nodeid.Identity

// Invert builds the reverse index of g. For every node p and every
// dependency d declared by p, p is listed under d's key once.
func Invert(g *Graph) ReverseIndex {
	index := make(ReverseIndex)
	for _, key := range g.order {
		e := g.entries[key]
		for _, dep := range e.Deps {
			depKey := dep.String()
			dependers := index[depKey]
			// All deps of one node are handled together, so a repeat can
			// only be the last element.
			if n := len(dependers); n > 0 && dependers[n-1] == e.Node {
				continue
			}
			index[depKey] = append(dependers, e.Node)
		}
	}
	return index
}

// DependersOf returns the nodes declaring a dependency on targetKey. An
// unknown target yields an empty, non-nil slice.
func (ri ReverseIndex) DependersOf(targetKey string) []nodeid.Identity {
	dependers, ok := ri[targetKey]
	if !ok {
		return []nodeid.Identity{}
	}
	return slices.Clone(dependers)
}

// SortedDependersOf is DependersOf ordered by canonical key, for display.
func (ri ReverseIndex) SortedDependersOf(targetKey string) []nodeid.Identity {
	dependers := ri.DependersOf(targetKey)
	slices.SortFunc(dependers, func(a, b nodeid.Identity) int {
		return strings.Compare(a.String(), b.String())
	})
	return dependers
}

// Targets returns every dependency key that has at least one depender, sorted.
func (ri ReverseIndex) Targets() []string {
	keys := make([]string, 0, len(ri))
	for k := range ri {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
