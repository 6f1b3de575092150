package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/depviz/internal/builder"
	"github.com/specialistvlad/depviz/internal/config"
	"github.com/specialistvlad/depviz/internal/ctxlog"
	"github.com/specialistvlad/depviz/internal/graph"
	"github.com/specialistvlad/depviz/internal/nodeid"
	"github.com/specialistvlad/depviz/internal/render"
	"github.com/specialistvlad/depviz/internal/source"
)

// Run loads the configuration, builds the dependency graph of the configured
// package and writes the requested view of it. Skipped packages and cycles are
// logged as warnings and do not fail the run. The metrics server, when
// enabled, is shut down before Run returns.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "config_path", a.config.ConfigPath)

	if a.config.MetricsPort > 0 {
		if err := a.startMetricsServer(a.config.MetricsPort); err != nil {
			return err
		}
		defer func() {
			if cerr := a.closeMetricsServer(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	cfg, err := config.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return err
	}
	a.logger.Info("Configuration loaded.",
		"package", nodeid.New(cfg.PackageName, cfg.PackageVersion).String(),
		"repo_mode", cfg.RepoMode,
		"repository", cfg.RepositoryURL,
		"max_depth", cfg.MaxDepth,
	)

	src, err := source.New(ctx, cfg)
	if err != nil {
		return err
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}
	src = source.Instrument(src, cfg.RepoMode, a.metrics.source)

	buildCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	root := nodeid.New(cfg.PackageName, cfg.PackageVersion)
	g, report, err := builder.Build(buildCtx, root, cfg.MaxDepth, src, builder.WithPrefetch(a.config.Workers))
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.metrics.observe(g, report)
	if errors.Is(buildCtx.Err(), context.DeadlineExceeded) {
		a.logger.Warn("Traversal deadline exceeded, graph is partial.", "timeout", cfg.Timeout)
	}

	if a.config.Reverse != "" {
		return a.writeReverse(g)
	}
	if err := render.Graph(a.outW, a.config.Format, g, root); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}

	a.logger.Debug("App.Run method finished.", "warnings", len(report.Warnings))
	return nil
}

func (a *App) writeReverse(g *graph.Graph) error {
	target, err := nodeid.Parse(a.config.Reverse)
	if err != nil {
		return fmt.Errorf("reverse target: %w", err)
	}

	index := graph.Invert(g)
	dependers := index.SortedDependersOf(target.String())
	a.logger.Debug("Reverse dependencies resolved.", "target", target.String(), "dependers", len(dependers))

	if err := render.Reverse(a.outW, target, dependers); err != nil {
		return fmt.Errorf("failed to render reverse dependencies: %w", err)
	}
	return nil
}
