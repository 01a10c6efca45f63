package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tiler/internal/cli"
	"github.com/bnema/tiler/internal/cli/styles"
	"github.com/bnema/tiler/internal/domain/entity"
)

var (
	classifyRect   string
	classifyPoint  string
	classifyLayout string
	classifyNode   string
	classifyWidth  float64
	classifyHeight float64
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a pointer position into a drop zone",
	Long: `Print the drop direction a pointer at --point would produce.

The target rectangle is either given directly with --rect, or taken from
a node of a layout file laid out in a --width x --height container.

Examples:
  tiler classify --rect 0,0,200,100 --point 5,50
  tiler classify --layout layout.json --node editor --point 150,20`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVar(&classifyRect, "rect", "", "target rectangle as left,top,width,height")
	classifyCmd.Flags().StringVarP(&classifyPoint, "point", "p", "", "pointer position as x,y")
	classifyCmd.Flags().StringVarP(&classifyLayout, "layout", "l", "", "layout file to take the target from")
	classifyCmd.Flags().StringVarP(&classifyNode, "node", "n", "", "target node id in --layout")
	classifyCmd.Flags().Float64Var(&classifyWidth, "width", defaultWidth, "container width for --layout")
	classifyCmd.Flags().Float64Var(&classifyHeight, "height", defaultHeight, "container height for --layout")
	_ = classifyCmd.MarkFlagRequired("point")
	classifyCmd.MarkFlagsMutuallyExclusive("rect", "layout")
	classifyCmd.MarkFlagsRequiredTogether("layout", "node")
}

func runClassify(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	p, err := parsePoint(classifyPoint)
	if err != nil {
		return err
	}
	rect, err := classifyTarget(a)
	if err != nil {
		return err
	}

	dir, ok := entity.ClassifyDropZone(rect, p)
	fmt.Println(styles.NewLayoutRenderer(a.Theme).RenderDirection(dir, ok))
	return nil
}

func classifyTarget(a *cli.App) (entity.Rect, error) {
	if classifyLayout == "" {
		if classifyRect == "" {
			return entity.Rect{}, fmt.Errorf("either --rect or --layout is required")
		}
		return parseRect(classifyRect)
	}

	snap, err := cli.LoadLayout(classifyLayout)
	if err != nil {
		return entity.Rect{}, err
	}
	container, err := containerRect(classifyWidth, classifyHeight)
	if err != nil {
		return entity.Rect{}, err
	}
	m, err := a.NewModel(snap, container)
	if err != nil {
		return entity.Rect{}, err
	}
	defer m.Close()

	rect, ok := m.Geometry().RectOf(entity.NodeID(classifyNode))
	if !ok {
		return entity.Rect{}, fmt.Errorf("%w: %s", entity.ErrNodeNotFound, classifyNode)
	}
	return rect, nil
}
