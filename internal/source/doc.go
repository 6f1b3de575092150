// Package source turns a package identity into the dependencies its metadata
// declares.
//
// Two implementations of Source exist:
//
//   - Registry fetches `{base}/{name}/{version}` from a package registry over
//     HTTP on every call.
//   - Snapshot reads a JSON file once, at construction, and answers every call
//     from memory.
//
// Both read the same manifest shape, a JSON object with an optional
// `dependencies` object mapping dependency names to declared version strings.
// A missing `dependencies` field means "no dependencies". Declaration order is
// preserved.
//
// A failed call returns a *FetchError. Callers treat it as a per-node
// condition: the node is skipped and the traversal goes on. Failures that make
// the source unusable as a whole (an unreadable snapshot) are reported once,
// at construction, as an *InitError.
package source
