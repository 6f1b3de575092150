package graph

import (
	"testing"

	"github.com/specialistvlad/depviz/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diamond() *Graph {
	g := New()
	g.Set(nodeid.New("A", "1.0"), []nodeid.Spec{spec("B@1.0"), spec("C@1.0")})
	g.Set(nodeid.New("B", "1.0"), []nodeid.Spec{spec("D@1.0")})
	g.Set(nodeid.New("C", "1.0"), []nodeid.Spec{spec("D@1.0"), spec("E@^2")})
	return g
}

func TestInvert_Empty(t *testing.T) {
	index := Invert(New())
	assert.Empty(t, index)
}

func TestInvert_Diamond(t *testing.T) {
	index := Invert(diamond())

	assert.Equal(t, []nodeid.Identity{nodeid.New("B", "1.0"), nodeid.New("C", "1.0")}, index.DependersOf("D@1.0"))
	assert.Equal(t, []nodeid.Identity{nodeid.New("A", "1.0")}, index.DependersOf("B@1.0"))
	assert.Equal(t, []nodeid.Identity{nodeid.New("C", "1.0")}, index.DependersOf("E@^2"))
	assert.Equal(t, []string{"B@1.0", "C@1.0", "D@1.0", "E@^2"}, index.Targets())
}

func TestInvert_DoesNotDuplicateDependers(t *testing.T) {
	g := New()
	g.Set(nodeid.New("A", "1.0"), []nodeid.Spec{spec("B@1.0"), spec("B@1.0")})

	index := Invert(g)
	assert.Len(t, index.DependersOf("B@1.0"), 1)
}

func TestDependersOf_AbsentTarget(t *testing.T) {
	index := Invert(diamond())

	dependers := index.DependersOf("nope@0.0.1")
	require.NotNil(t, dependers)
	assert.Empty(t, dependers)

	// The start node is a key but nobody depends on it.
	assert.Empty(t, index.DependersOf("A@1.0"))
}

func TestDependersOf_VersionIsPartOfTheKey(t *testing.T) {
	index := Invert(diamond())
	assert.Empty(t, index.DependersOf("D@1.0.0"))
}

func TestSortedDependersOf(t *testing.T) {
	g := New()
	g.Set(nodeid.New("zeta", "1"), []nodeid.Spec{spec("x@1")})
	g.Set(nodeid.New("alpha", "1"), []nodeid.Spec{spec("x@1")})
	g.Set(nodeid.New("mid", "1"), []nodeid.Spec{spec("x@1")})

	index := Invert(g)
	assert.Equal(t, []nodeid.Identity{nodeid.New("zeta", "1"), nodeid.New("alpha", "1"), nodeid.New("mid", "1")}, index.DependersOf("x@1"))
	assert.Equal(t, []nodeid.Identity{nodeid.New("alpha", "1"), nodeid.New("mid", "1"), nodeid.New("zeta", "1")}, index.SortedDependersOf("x@1"))
}

func TestInvert_RoundTrip(t *testing.T) {
	g := diamond()
	g.Set(nodeid.New("D", "1.0"), []nodeid.Spec{spec("A@1.0")})
	index := Invert(g)

	// p is a depender of X iff X is among p's declared dependencies.
	for _, p := range g.Keys() {
		deps, _ := g.Deps(p)
		declared := make(map[string]bool)
		for _, d := range deps {
			declared[d.String()] = true
		}
		for _, target := range append(index.Targets(), p, "missing@1") {
			found := false
			for _, depender := range index.DependersOf(target) {
				if depender.String() == p {
					found = true
				}
			}
			assert.Equal(t, declared[target], found, "depender %s of %s", p, target)
		}
	}
}
