// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tiler/internal/domain/entity"
)

// Palette names the colors a layout view is drawn with.
type Palette struct {
	Canvas    string
	Selection string
	Text      string
	Muted     string
	Leaf      string
	Row       string
	Column    string
	Divider   string
	Drag      string
	Failure   string
}

// Theme holds the colors and styles used to draw layout trees, leaf tables
// and the inspector chrome.
type Theme struct {
	Canvas    lipgloss.Color
	Selection lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Leaf      lipgloss.Color
	Row       lipgloss.Color
	Column    lipgloss.Color
	Divider   lipgloss.Color
	Drag      lipgloss.Color
	Failure   lipgloss.Color

	Title  lipgloss.Style
	Normal lipgloss.Style
	Subtle lipgloss.Style

	// Tree rows
	LeafIcon   lipgloss.Style
	NodeID     lipgloss.Style
	Weight     lipgloss.Style
	RowAxis    lipgloss.Style
	ColumnAxis lipgloss.Style

	// Leaf states
	FocusedBadge   lipgloss.Style
	MagnifiedBadge lipgloss.Style

	// Pointer interaction and command feedback
	Interaction lipgloss.Style
	Applied     lipgloss.Style
	Rejected    lipgloss.Style
	Miss        lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Panel       lipgloss.Style
	PanelHeader lipgloss.Style
}

// DefaultDarkPalette returns the built-in dark colors.
func DefaultDarkPalette() Palette {
	return Palette{
		Canvas:    "#0a0a0b",
		Selection: "#2d2d2d",
		Text:      "#ffffff",
		Muted:     "#909090",
		Leaf:      "#4ade80",
		Row:       "#60a5fa",
		Column:    "#c084fc",
		Divider:   "#333333",
		Drag:      "#f59e0b",
		Failure:   "#ef4444",
	}
}

// NewTheme creates the default dark Theme.
func NewTheme() *Theme {
	return NewThemeFromPalette(DefaultDarkPalette())
}

// NewThemeFromPalette creates a Theme from a Palette.
func NewThemeFromPalette(p Palette) *Theme {
	t := &Theme{
		Canvas:    lipgloss.Color(p.Canvas),
		Selection: lipgloss.Color(p.Selection),
		Text:      lipgloss.Color(p.Text),
		Muted:     lipgloss.Color(p.Muted),
		Leaf:      lipgloss.Color(p.Leaf),
		Row:       lipgloss.Color(p.Row),
		Column:    lipgloss.Color(p.Column),
		Divider:   lipgloss.Color(p.Divider),
		Drag:      lipgloss.Color(p.Drag),
		Failure:   lipgloss.Color(p.Failure),
	}

	t.buildStyles()
	return t
}

// AxisStyle returns the style for a container label laid out along dir.
func (t *Theme) AxisStyle(dir entity.FlexDirection) lipgloss.Style {
	if dir == entity.FlexColumn {
		return t.ColumnAxis
	}
	return t.RowAxis
}

func (t *Theme) buildStyles() {
	t.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	t.Normal = lipgloss.NewStyle().Foreground(t.Text)
	t.Subtle = lipgloss.NewStyle().Foreground(t.Muted)

	t.LeafIcon = lipgloss.NewStyle().Foreground(t.Leaf)
	t.NodeID = lipgloss.NewStyle().Foreground(t.Text)
	t.Weight = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)
	t.RowAxis = lipgloss.NewStyle().Foreground(t.Row).Bold(true)
	t.ColumnAxis = lipgloss.NewStyle().Foreground(t.Column).Bold(true)

	t.FocusedBadge = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Selection).
		Padding(0, 1)
	t.MagnifiedBadge = lipgloss.NewStyle().
		Foreground(t.Canvas).
		Background(t.Leaf).
		Padding(0, 1)

	t.Interaction = lipgloss.NewStyle().
		Foreground(t.Canvas).
		Background(t.Drag).
		Bold(true).
		Padding(0, 1)
	t.Applied = lipgloss.NewStyle().Foreground(t.Leaf)
	t.Rejected = lipgloss.NewStyle().Foreground(t.Failure)
	t.Miss = lipgloss.NewStyle().Foreground(t.Drag)

	t.HelpKey = lipgloss.NewStyle().Foreground(t.Leaf)
	t.HelpDesc = lipgloss.NewStyle().Foreground(t.Muted)

	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Divider).
		Padding(1, 2)
	t.PanelHeader = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Divider).
		MarginBottom(1)
}
