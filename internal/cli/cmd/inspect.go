package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/tiler/internal/cli"
	"github.com/bnema/tiler/internal/cli/model"
	"github.com/bnema/tiler/internal/infrastructure/config"
	"github.com/bnema/tiler/internal/infrastructure/snapshot"
	"github.com/bnema/tiler/internal/logging"
	"github.com/bnema/tiler/internal/ui/layout"
)

var (
	inspectWidth    float64
	inspectHeight   float64
	inspectSave     bool
	inspectAutosave time.Duration
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <layout>",
	Short: "Browse a layout interactively",
	Long: `Open an interactive view of a layout's leaves and their placements.

Select a leaf to focus, magnify or remove it. With --save the edited
layout is written back to the file on exit. With --autosave it is also
written once edits have settled for the given duration.

Configuration changes are picked up while the view is open.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Float64Var(&inspectWidth, "width", defaultWidth, "container width")
	inspectCmd.Flags().Float64Var(&inspectHeight, "height", defaultHeight, "container height")
	inspectCmd.Flags().BoolVar(&inspectSave, "save", false, "write the edited layout back on exit")
	inspectCmd.Flags().DurationVar(&inspectAutosave, "autosave", 0, "write the layout back after edits settle (e.g. 2s)")
}

func runInspect(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Context()
	log := logging.FromContext(ctx)

	path := args[0]
	snap, err := cli.LoadLayout(path)
	if err != nil {
		return err
	}
	container, err := containerRect(inspectWidth, inspectHeight)
	if err != nil {
		return err
	}
	m, err := a.NewModel(snap, container)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(model.NewInspectModel(ctx, a.Theme, m), tea.WithAltScreen())
	unsubscribe := m.Subscribe(model.NewProgramObserver(p.Send))
	defer unsubscribe()

	watchConfig(a, m)

	if inspectAutosave > 0 {
		autosave := snapshot.NewService(m, cli.NewLayoutFile(path), inspectAutosave)
		autosave.Start(ctx)
		stop := m.Subscribe(autosave)
		defer func() {
			stop()
			if err := autosave.Stop(ctx); err != nil {
				log.Error().Err(err).Msg("final autosave failed")
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	if inspectSave {
		if err := cli.SaveLayout(path, m.Snapshot(), cli.FormatFromPath(path)); err != nil {
			return fmt.Errorf("save layout: %w", err)
		}
		log.Info().Str("path", path).Msg("layout saved")
	}
	return nil
}

// watchConfig applies layout options from the config file to m whenever the
// file changes. Errors only disable reloading.
func watchConfig(a *cli.App, m *layout.Model) {
	ctx := a.Context()
	log := logging.FromContext(ctx)
	if a.ConfigManager.GetConfigFile() == "" {
		return
	}
	a.ConfigManager.OnConfigChange(func(cfg *config.Config) {
		log.Info().Msg("configuration reloaded")
		m.SetOptions(ctx, layout.OptionsFromConfig(cfg.Layout))
	})
	if err := a.ConfigManager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}
}
