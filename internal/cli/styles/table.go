package styles

import (
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tiler/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Divider).
		BorderBottom(true).
		Foreground(theme.Leaf).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.Selection).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// LeafTableColumns returns columns for the leaf placement table.
func LeafTableColumns() []table.Column {
	return []table.Column{
		{Title: "Node", Width: 20},
		{Title: "Left", Width: 8},
		{Title: "Top", Width: 8},
		{Title: "Width", Width: 8},
		{Title: "Height", Width: 8},
		{Title: "State", Width: 12},
	}
}

// HandleTableColumns returns columns for the resize handle table.
func HandleTableColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Container", Width: 20},
		{Title: "Between", Width: 24},
		{Title: "Axis", Width: 8},
		{Title: "Boundary", Width: 10},
	}
}

// LeafRows converts leaf geometry to table rows.
func LeafRows(g *entity.Geometry, focused entity.NodeID) []table.Row {
	if g == nil {
		return nil
	}
	rows := make([]table.Row, 0, len(g.Leaves))
	for _, leaf := range g.Leaves {
		state := ""
		switch {
		case leaf.Magnified:
			state = "magnified"
		case leaf.NodeID == focused:
			state = "focused"
		}
		rows = append(rows, table.Row{
			string(leaf.NodeID),
			formatPixels(leaf.Rect.Left),
			formatPixels(leaf.Rect.Top),
			formatPixels(leaf.Rect.Width),
			formatPixels(leaf.Rect.Height),
			state,
		})
	}
	return rows
}

// HandleRows converts resize handles to table rows.
func HandleRows(g *entity.Geometry) []table.Row {
	if g == nil {
		return nil
	}
	rows := make([]table.Row, 0, len(g.Handles))
	for _, h := range g.Handles {
		rows = append(rows, table.Row{
			strconv.Itoa(h.Index),
			string(h.ContainerID),
			string(h.FirstID) + " | " + string(h.SecondID),
			h.FlexDirection.String(),
			formatPixels(h.Boundary),
		})
	}
	return rows
}

// formatPixels formats a coordinate with at most one decimal.
func formatPixels(f float64) string {
	return strconv.FormatFloat(math.Round(f*10)/10, 'f', -1, 64)
}
