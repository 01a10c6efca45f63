package styles_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiler/internal/cli/styles"
	"github.com/bnema/tiler/internal/domain/entity"
)

func TestLayoutRenderer_RenderTree(t *testing.T) {
	r := styles.NewLayoutRenderer(styles.NewTheme())
	root := entity.NewContainer("root", entity.FlexRow,
		entity.NewLeaf("editor", nil),
		entity.NewContainer("side", entity.FlexColumn,
			entity.NewLeaf("files", nil),
			entity.NewLeaf("terminal", nil),
		),
	)
	snap := entity.SnapshotFromState(entity.NewLayoutTreeState(root))
	snap.MagnifiedNodeID = "terminal"

	out := r.RenderTree(snap)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "row")
	assert.Contains(t, lines[1], "editor")
	assert.Contains(t, lines[1], "focused")
	assert.Contains(t, lines[2], "column")
	assert.Contains(t, lines[4], "terminal")
	assert.Contains(t, lines[4], "magnified")
}

func TestLayoutRenderer_RenderTreeEmpty(t *testing.T) {
	r := styles.NewLayoutRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderTree(nil), "empty layout")
}

func TestLayoutRenderer_RenderDirection(t *testing.T) {
	r := styles.NewLayoutRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderDirection(entity.DropOuterLeft, true), "outer_left")
	assert.Contains(t, r.RenderDirection(entity.DropNone, false), "none")
}

func TestLayoutRenderer_RenderError(t *testing.T) {
	r := styles.NewLayoutRenderer(styles.NewTheme())

	assert.Contains(t, r.RenderError(errors.New("boom")), "boom")
}

func TestLeafRows(t *testing.T) {
	root := entity.NewContainer("root", entity.FlexRow, entity.NewLeaf("a", nil), entity.NewLeaf("b", nil))
	state := entity.NewLayoutTreeState(root)
	g := entity.ComputeGeometry(state, entity.Rect{Width: 300, Height: 100}, entity.GeometryOptions{HandleSize: 4})

	rows := styles.LeafRows(g, "a")
	handles := styles.HandleRows(g)

	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0][0])
	assert.Equal(t, "150", rows[0][3])
	assert.Equal(t, "focused", rows[0][5])
	assert.Equal(t, "150", rows[1][1])
	require.Len(t, handles, 1)
	assert.Equal(t, "a | b", handles[0][2])
	assert.Equal(t, "row", handles[0][3])
}
