// Package cli provides the tiler command-line tooling around the layout model.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/bnema/tiler/internal/cli/styles"
	"github.com/bnema/tiler/internal/domain/entity"
	"github.com/bnema/tiler/internal/infrastructure/config"
	"github.com/bnema/tiler/internal/logging"
	"github.com/bnema/tiler/internal/ui/layout"
)

// Options controls App construction.
type Options struct {
	ConfigFile string // Empty searches the XDG config directory
	LogLevel   string // Overrides the configured level when set
	LogOutput  io.Writer
}

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme

	ctx context.Context
}

// NewApp loads configuration and sets up logging.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManagerForFile(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
		Output:     out,
	})
	ctx := logging.WithComponent(logging.WithContext(context.Background(), logger), "cli")

	logger.Debug().Str("config_file", mgr.GetConfigFile()).Msg("configuration loaded")

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(),
		ctx:           ctx,
	}, nil
}

// Context returns the context carrying the CLI logger.
func (a *App) Context() context.Context {
	if a == nil || a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// LayoutOptions returns model options derived from the loaded configuration.
func (a *App) LayoutOptions() layout.Options {
	return layout.OptionsFromConfig(a.Config.Layout)
}

// NewModel builds a layout model from snap sized to container.
func (a *App) NewModel(snap *entity.LayoutSnapshot, container entity.Rect) (*layout.Model, error) {
	m, err := layout.NewModelFromSnapshot(snap, a.LayoutOptions())
	if err != nil {
		return nil, err
	}
	m.SetContainerRect(a.Context(), container)
	return m, nil
}

// Close releases resources.
func (a *App) Close() error {
	return nil
}
