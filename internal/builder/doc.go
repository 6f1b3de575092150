/*
Package builder discovers the transitive dependency graph of one package.

Build walks the declared dependencies of a start node with an explicit-stack
depth-first traversal, pulling metadata from a source.Source on demand, one
fetch per distinct node:

 1. Pop a frame (node, depth, ancestor names). A node whose key was already
    visited is discarded; otherwise its key is marked visited. This
    check-and-mark is the only deduplication, so a diamond dependency is
    fetched and expanded once, through whichever path pops it first.

 2. Fetch the node's metadata. A failed fetch is recorded as a warning and the
    node is skipped: no graph entry, no children.

 3. Record the node's declared dependencies in the graph. This happens even
    when the node sits at the depth limit, so the graph always shows a
    reachable node's own direct dependencies.

 4. Stop expanding when depth >= maxDepth. The depth check runs before the
    cycle check, so edges out of a node at the limit never produce cycle
    warnings.

 5. For each dependency, in declaration order: if its name is already on the
    branch (the ancestors plus the current node) it closes a cycle. The
    cycle is reported as a warning and the edge is not followed. Otherwise a
    child frame is pushed. Cycle detection is by name only; versions are
    ignored.

The stack is last-in first-out, so siblings are expanded in reverse
declaration order.

Fetch failures and cycles never abort a build. They are logged at WARN level
through the context logger and returned as values in the Report. Build only
fails on invalid input, before any fetch happens.

With WithPrefetch the I/O runs ahead on a bounded set of goroutines, while
every decision above still happens on the goroutine running Build, one frame
at a time.
*/
package builder
