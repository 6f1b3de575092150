package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/depviz/internal/nodeid"
)

// ErrInvalidInput is returned when Build is called with arguments no
// traversal can start from.
var ErrInvalidInput = errors.New("invalid build input")

// WarningKind classifies a non-fatal traversal condition.
type WarningKind int

const (
	// WarningFetchFailed means a node's metadata could not be fetched and
	// the node was skipped.
	WarningFetchFailed WarningKind = iota + 1

	// WarningCycle means a declared dependency leads back to an ancestor and
	// the edge was not followed.
	WarningCycle
)

func (k WarningKind) String() string {
	switch k {
	case WarningFetchFailed:
		return "fetch_failed"
	case WarningCycle:
		return "cycle"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning describes one skipped node or one unexpanded cyclic edge.
type Warning struct {
	Kind WarningKind

	// Node is the skipped node for WarningFetchFailed, and the node whose
	// dependency closes the cycle for WarningCycle.
	Node  nodeid.Identity
	Depth int

	// Dependency is the declared dependency closing the cycle.
	Dependency nodeid.Spec

	// Cycle lists the package names from the start of the branch to the
	// repeated name, e.g. [A B D A].
	Cycle []string

	// Err is the fetch failure.
	Err error
}

func (w Warning) String() string {
	switch w.Kind {
	case WarningFetchFailed:
		return fmt.Sprintf("skipped %s: %v", w.Node, w.Err)
	case WarningCycle:
		return fmt.Sprintf("cycle detected: %s (dependency %s of %s not expanded)", strings.Join(w.Cycle, " -> "), w.Dependency, w.Node)
	default:
		return fmt.Sprintf("%s at %s", w.Kind, w.Node)
	}
}

// Report summarizes one traversal.
type Report struct {
	// Warnings in the order they were encountered.
	Warnings []Warning

	// Visited is the number of distinct node keys popped from the stack.
	Visited int

	// Fetches is the number of calls made to the source.
	Fetches int
}

// FetchFailures returns the WarningFetchFailed warnings.
func (r *Report) FetchFailures() []Warning {
	return r.byKind(WarningFetchFailed)
}

// Cycles returns the WarningCycle warnings.
func (r *Report) Cycles() []Warning {
	return r.byKind(WarningCycle)
}

func (r *Report) byKind(kind WarningKind) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// frame is one unit of work on the traversal stack. path holds the names of
// the node's ancestors on its branch. Paths are never appended to in place;
// see extend.
type frame struct {
	node  nodeid.Identity
	depth int
	path  []string
}

// extend returns a new slice holding path followed by name. The result has no
// spare capacity, so sibling frames sharing it can never observe each
// other's appends.
func extend(path []string, name string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = name
	return out
}
