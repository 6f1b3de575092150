// Package graph holds the dependency graph produced by a traversal and the
// reverse index derived from it.
//
// # Graph
//
// A Graph maps the canonical key (`name@version`) of every node whose
// metadata was fetched to the ordered list of dependencies that metadata
// declared:
//
//	A@1.0 -> [B@1.0, C@1.0]
//	B@1.0 -> [D@1.0]
//	C@1.0 -> []
//
// A key is present if and only if the node's fetch succeeded. Edges may point
// at keys that never become graph keys themselves (D@1.0 above), for example
// when the depth limit stopped the traversal before reaching them. That is
// expected and not an error.
//
// Keys iterate in insertion order, which for a traversal is the order nodes
// were fetched. Renderers that need a stable order use SortedKeys.
//
// # Reverse index
//
// Invert derives a ReverseIndex answering "who depends on X". The index is a
// pure function of the graph and is never mutated on its own; recompute it
// when the graph changes.
//
// A Graph is not safe for concurrent mutation. The builder owns it for the
// duration of one traversal and hands it off read-only afterwards.
package graph
