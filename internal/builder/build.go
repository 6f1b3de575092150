package builder

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/depviz/internal/ctxlog"
	"github.com/specialistvlad/depviz/internal/graph"
	"github.com/specialistvlad/depviz/internal/nodeid"
	"github.com/specialistvlad/depviz/internal/source"
)

type options struct {
	workers int
}

// Option configures Build.
type Option func(*options)

// WithPrefetch fetches metadata of pushed nodes ahead of time on up to
// workers goroutines. Values below 2 keep the traversal fully sequential.
func WithPrefetch(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// Build constructs the dependency graph of start, expanding at most maxDepth
// edges away from it.
//
// Cycles are detected by package name against the current branch including
// the node being expanded, so a dependency on the node's own name is a cycle
// whatever its version: A@1.0 -> A@2.0 is reported as the cycle [A A] and
// A@2.0 is not fetched. A node at maxDepth is recorded without expanding or
// cycle-checking its dependencies.
func Build(ctx context.Context, start nodeid.Identity, maxDepth int, src source.Source, opts ...Option) (*graph.Graph, *Report, error) {
	if src == nil {
		return nil, nil, fmt.Errorf("%w: source is nil", ErrInvalidInput)
	}
	if start.Name == "" || start.Version == "" {
		return nil, nil, fmt.Errorf("%w: start package needs a name and a version, got %q", ErrInvalidInput, start.String())
	}
	if maxDepth < 0 {
		return nil, nil, fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidInput, maxDepth)
	}

	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("Dependency traversal started.", "package", start.String(), "max_depth", maxDepth, "prefetch_workers", o.workers)

	f := newFetcher(ctx, src, o.workers)
	defer f.close()

	g := graph.New()
	report := &Report{}
	visited := make(map[string]struct{})
	stack := []frame{{node: start}}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key := fr.node.String()
		if _, seen := visited[key]; seen {
			logger.Debug("Already visited, frame discarded.", "package", key, "depth", fr.depth)
			continue
		}
		visited[key] = struct{}{}

		specs, err := f.fetch(fr.node)
		if err != nil {
			report.Warnings = append(report.Warnings, Warning{
				Kind:  WarningFetchFailed,
				Node:  fr.node,
				Depth: fr.depth,
				Err:   err,
			})
			logger.Warn("Skipping package, metadata unavailable.", "package", key, "depth", fr.depth, "error", err)
			continue
		}

		g.Set(fr.node, specs)
		logger.Debug("Package recorded.", "package", key, "depth", fr.depth, "dependencies", len(specs))

		if fr.depth >= maxDepth {
			if len(specs) > 0 {
				logger.Debug("Depth limit reached, dependencies not expanded.", "package", key, "depth", fr.depth)
			}
			continue
		}

		chain := extend(fr.path, fr.node.Name)
		for _, spec := range specs {
			if slices.Contains(chain, spec.Name) {
				w := Warning{
					Kind:       WarningCycle,
					Node:       fr.node,
					Depth:      fr.depth,
					Dependency: spec,
					Cycle:      extend(chain, spec.Name),
				}
				report.Warnings = append(report.Warnings, w)
				logger.Warn("Dependency cycle detected, edge not expanded.", "package", key, "dependency", spec.String(), "cycle", w.Cycle)
				continue
			}

			child := frame{node: spec.Identity(), depth: fr.depth + 1, path: chain}
			stack = append(stack, child)
			if _, seen := visited[child.node.String()]; !seen {
				f.schedule(child.node)
			}
		}
	}

	f.close()
	report.Visited = len(visited)
	report.Fetches = f.count()

	logger.Info("Dependency traversal finished.",
		"package", start.String(),
		"nodes", g.Len(),
		"edges", g.EdgeCount(),
		"visited", report.Visited,
		"fetches", report.Fetches,
		"warnings", len(report.Warnings),
	)
	return g, report, nil
}
