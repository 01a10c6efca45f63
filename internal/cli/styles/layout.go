package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/tiler/internal/domain/entity"
)

// LayoutRenderer renders layout trees and command results with styled output.
type LayoutRenderer struct {
	theme *Theme
}

// NewLayoutRenderer creates a new layout renderer with the given theme.
func NewLayoutRenderer(theme *Theme) *LayoutRenderer {
	return &LayoutRenderer{theme: theme}
}

// RenderTree renders the snapshot as an indented tree.
func (r *LayoutRenderer) RenderTree(snap *entity.LayoutSnapshot) string {
	if snap == nil || snap.Root == nil {
		return r.theme.Subtle.Render("  (empty layout)") + "\n"
	}

	var sb strings.Builder
	r.renderNode(&sb, snap, snap.Root, "", "", true)
	return sb.String()
}

func (r *LayoutRenderer) renderNode(
	sb *strings.Builder,
	snap *entity.LayoutSnapshot,
	node *entity.LayoutNodeSnapshot,
	prefix, branch string,
	root bool,
) {
	weight := r.theme.Weight.Render(fmt.Sprintf("%.2f", node.SizeWeight))

	if len(node.Children) > 0 {
		axis := r.theme.AxisStyle(node.FlexDirection).Render(node.FlexDirection.String())
		fmt.Fprintf(sb, "%s%s%s %s %s\n", prefix, branch, axis, r.theme.Subtle.Render(string(node.ID)), weight)
	} else {
		line := fmt.Sprintf("%s%s%s %s %s", prefix, branch,
			r.theme.LeafIcon.Render(IconPane),
			r.theme.NodeID.Render(string(node.ID)), weight)
		if node.ID == snap.FocusedNodeID {
			line += " " + r.theme.FocusedBadge.Render("focused")
		}
		if node.ID == snap.MagnifiedNodeID {
			line += " " + r.theme.MagnifiedBadge.Render("magnified")
		}
		sb.WriteString(line + "\n")
	}

	childPrefix := prefix
	if !root {
		if strings.HasPrefix(branch, "└") {
			childPrefix += "   "
		} else {
			childPrefix += "│  "
		}
	}
	for i, child := range node.Children {
		b := "├─ "
		if i == len(node.Children)-1 {
			b = "└─ "
		}
		r.renderNode(sb, snap, child, childPrefix, b, false)
	}
}

// RenderDirection renders a drop zone classification result.
func (r *LayoutRenderer) RenderDirection(dir entity.DropDirection, ok bool) string {
	if !ok {
		return fmt.Sprintf("  %s %s", r.theme.Miss.Render(IconWarning), r.theme.Subtle.Render("none"))
	}
	return fmt.Sprintf("  %s %s", r.theme.Applied.Render(IconFocus), r.theme.Title.Render(dir.String()))
}

// RenderSuccess renders a success message.
func (r *LayoutRenderer) RenderSuccess(msg string) string {
	return fmt.Sprintf("  %s %s", r.theme.Applied.Render(IconCheck), r.theme.Normal.Render(msg))
}

// RenderPath renders a labelled file path.
func (r *LayoutRenderer) RenderPath(label, path string) string {
	return fmt.Sprintf("  %s %s %s", r.theme.LeafIcon.Render(IconConfig), label, r.theme.Subtle.Render(path))
}

// RenderError renders an error message.
func (r *LayoutRenderer) RenderError(err error) string {
	return fmt.Sprintf("  %s %s", r.theme.Rejected.Render(IconX), r.theme.Rejected.Render(err.Error()))
}
