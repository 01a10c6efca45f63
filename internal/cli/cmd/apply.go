package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tiler/internal/cli"
	"github.com/bnema/tiler/internal/cli/styles"
	"github.com/bnema/tiler/internal/logging"
)

var (
	applyOutput string
	applyFormat string
	applyWidth  float64
	applyHeight float64
)

var applyCmd = &cobra.Command{
	Use:   "apply <layout> <script>",
	Short: "Replay a script of layout actions",
	Long: `Load a layout, replay every step of a script against it and write the
resulting layout.

Scripts list steps such as insert, remove, split, swap, magnify, focus,
drag (node dropped on a target at a point) and resize (handle dragged to
a point). The script's container wins over --width/--height when set.

Examples:
  tiler apply layout.json steps.json
  tiler apply layout.toml steps.toml -o result.toml
  tiler apply layout.json steps.json --format toml`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "", "write the result to this file (default stdout)")
	applyCmd.Flags().StringVarP(&applyFormat, "format", "f", "", "output format: json or toml (default from --output extension)")
	applyCmd.Flags().Float64Var(&applyWidth, "width", defaultWidth, "container width when the script sets none")
	applyCmd.Flags().Float64Var(&applyHeight, "height", defaultHeight, "container height when the script sets none")
}

func runApply(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Context()
	log := logging.FromContext(ctx)

	format := cli.FormatFromPath(applyOutput)
	if applyFormat != "" {
		if format, err = cli.ParseFormat(applyFormat); err != nil {
			return err
		}
	}

	snap, err := cli.LoadLayout(args[0])
	if err != nil {
		return err
	}
	script, err := cli.LoadScript(args[1])
	if err != nil {
		return err
	}
	container, err := containerRect(applyWidth, applyHeight)
	if err != nil {
		return err
	}

	m, err := a.NewModel(snap, container)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := cli.RunScript(ctx, m, script); err != nil {
		return err
	}
	log.Info().
		Int("steps", len(script.Steps)).
		Uint64("generation", m.Generation()).
		Int("leaves", m.State().LeafCount()).
		Msg("script applied")

	if err := cli.SaveLayout(applyOutput, m.Snapshot(), format); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	if applyOutput != "" && applyOutput != "-" {
		fmt.Fprintln(os.Stderr, styles.NewLayoutRenderer(a.Theme).RenderPath("Layout written to", applyOutput))
	}
	return nil
}
