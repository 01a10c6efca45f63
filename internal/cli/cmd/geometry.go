package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tiler/internal/cli"
	"github.com/bnema/tiler/internal/cli/styles"
	"github.com/bnema/tiler/internal/domain/entity"
)

const (
	defaultWidth  = 1920
	defaultHeight = 1080
	tableWidth    = 80
)

var (
	geometryWidth   float64
	geometryHeight  float64
	geometryJSON    bool
	geometryHandles bool
	geometryCSS     bool
)

var geometryCmd = &cobra.Command{
	Use:   "geometry <layout>",
	Short: "Compute leaf placements for a layout",
	Long: `Lay out a layout file in a --width x --height container and print
every leaf's rectangle, and optionally the resize handles.

Examples:
  tiler geometry layout.json
  tiler geometry layout.toml --width 800 --height 600 --handles
  tiler geometry layout.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGeometry,
}

func init() {
	rootCmd.AddCommand(geometryCmd)
	geometryCmd.Flags().Float64Var(&geometryWidth, "width", defaultWidth, "container width")
	geometryCmd.Flags().Float64Var(&geometryHeight, "height", defaultHeight, "container height")
	geometryCmd.Flags().BoolVar(&geometryJSON, "json", false, "output as JSON")
	geometryCmd.Flags().BoolVar(&geometryHandles, "handles", false, "include resize handles")
	geometryCmd.Flags().BoolVar(&geometryCSS, "css", false, "print placements as CSS transforms")
}

// geometryOutput is the JSON form of a computed geometry.
type geometryOutput struct {
	Generation uint64         `json:"generation"`
	Container  entity.Rect    `json:"container"`
	Leaves     []leafOutput   `json:"leaves"`
	Handles    []handleOutput `json:"handles,omitempty"`
	Focused    entity.NodeID  `json:"focused,omitempty"`
	Magnified  entity.NodeID  `json:"magnified,omitempty"`
}

type leafOutput struct {
	ID        entity.NodeID    `json:"id"`
	Rect      entity.Rect      `json:"rect"`
	Placement entity.Placement `json:"placement"`
	Magnified bool             `json:"magnified,omitempty"`
}

type handleOutput struct {
	Index     int           `json:"index"`
	Container entity.NodeID `json:"container"`
	First     entity.NodeID `json:"first"`
	Second    entity.NodeID `json:"second"`
	Axis      string        `json:"axis"`
	Boundary  float64       `json:"boundary"`
	Rect      entity.Rect   `json:"rect"`
}

func runGeometry(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	snap, err := cli.LoadLayout(args[0])
	if err != nil {
		return err
	}
	container, err := containerRect(geometryWidth, geometryHeight)
	if err != nil {
		return err
	}
	m, err := a.NewModel(snap, container)
	if err != nil {
		return err
	}
	defer m.Close()

	g := m.Geometry()
	state := m.State()

	if geometryJSON {
		return outputGeometryJSON(g, state)
	}

	if geometryCSS {
		for _, leaf := range g.Leaves {
			fmt.Printf("%s\t%s\n", leaf.NodeID, leaf.Placement)
		}
		return nil
	}

	renderer := styles.NewLayoutRenderer(a.Theme)
	fmt.Println(renderer.RenderTree(m.Snapshot()))
	fmt.Println()
	leaves := styles.NewStyledTable(a.Theme, styles.LeafTableColumns(), styles.LeafRows(g, state.FocusedNodeID), tableWidth, len(g.Leaves)+1)
	fmt.Println(leaves.View())
	if geometryHandles && len(g.Handles) > 0 {
		fmt.Println()
		handles := styles.NewStyledTable(a.Theme, styles.HandleTableColumns(), styles.HandleRows(g), tableWidth, len(g.Handles)+1)
		fmt.Println(handles.View())
	}
	return nil
}

func outputGeometryJSON(g *entity.Geometry, state *entity.LayoutTreeState) error {
	out := geometryOutput{
		Generation: g.Generation,
		Container:  g.Container,
		Leaves:     make([]leafOutput, 0, len(g.Leaves)),
		Focused:    state.FocusedNodeID,
		Magnified:  state.MagnifiedNodeID,
	}
	for _, leaf := range g.Leaves {
		out.Leaves = append(out.Leaves, leafOutput{
			ID:        leaf.NodeID,
			Rect:      leaf.Rect,
			Placement: leaf.Placement,
			Magnified: leaf.Magnified,
		})
	}
	if geometryHandles {
		for _, h := range g.Handles {
			out.Handles = append(out.Handles, handleOutput{
				Index:     h.Index,
				Container: h.ContainerID,
				First:     h.FirstID,
				Second:    h.SecondID,
				Axis:      h.FlexDirection.String(),
				Boundary:  h.Boundary,
				Rect:      h.Rect,
			})
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
