package app

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	metrics    *metrics
	httpServer *http.Server
	runID      string
}

// NewApp is the constructor for the main application. Results are written to
// outW and diagnostics to logW through the app's own logger.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		metrics: newMetrics(),
		runID:   runID,
	}
}

// RunID identifies the run in every log record.
func (a *App) RunID() string {
	return a.runID
}
