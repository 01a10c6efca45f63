// Package model holds the Bubble Tea models behind interactive tiler commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/tiler/internal/application/usecase"
	"github.com/bnema/tiler/internal/cli/styles"
	"github.com/bnema/tiler/internal/domain/entity"
	"github.com/bnema/tiler/internal/ui/layout"
)

// GeometryChangedMsg carries a freshly published geometry.
type GeometryChangedMsg struct {
	Geometry *entity.Geometry
}

// ProgramObserver forwards layout changes into a running Bubble Tea program.
type ProgramObserver struct {
	send func(tea.Msg)
}

// NewProgramObserver creates an observer that delivers messages with send,
// typically (*tea.Program).Send.
func NewProgramObserver(send func(tea.Msg)) *ProgramObserver {
	return &ProgramObserver{send: send}
}

// OnLayoutChanged implements port.LayoutObserver. Delivery is asynchronous
// since changes may be published from inside the program's update loop.
func (o *ProgramObserver) OnLayoutChanged(_ context.Context, g *entity.Geometry) {
	go o.send(GeometryChangedMsg{Geometry: g})
}

// InspectModel browses a layout's placements and applies simple actions to
// the selected leaf.
type InspectModel struct {
	ctx      context.Context
	layout   *layout.Model
	theme    *styles.Theme
	renderer *styles.LayoutRenderer

	table      table.Model
	generation uint64
	showTree   bool
	grabbed    entity.NodeID
	status     string
	err        error
	width      int
	height     int
}

// dropZones maps drop keys to a point inside the matching zone, as fractions
// of the target's width and height.
var dropZones = map[string]struct {
	dir  entity.DropDirection
	x, y float64
}{
	"H": {entity.DropLeft, 0.3, 0.5},
	"L": {entity.DropRight, 0.7, 0.5},
	"K": {entity.DropTop, 0.5, 0.3},
	"J": {entity.DropBottom, 0.5, 0.7},
	"C": {entity.DropCenter, 0.5, 0.5},
}

// nudgeFraction is the share of a container's extent one resize key moves a handle.
const nudgeFraction = 0.05

// NewInspectModel creates an inspector over m.
func NewInspectModel(ctx context.Context, theme *styles.Theme, m *layout.Model) InspectModel {
	im := InspectModel{
		ctx:      ctx,
		layout:   m,
		theme:    theme,
		renderer: styles.NewLayoutRenderer(theme),
		showTree: true,
		width:    80,
		height:   24,
	}
	im.table = styles.NewStyledTable(theme, styles.LeafTableColumns(), nil, im.width, 10)
	im.refresh(m.Geometry())
	return im
}

// Init implements tea.Model.
func (InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)

	case GeometryChangedMsg:
		if msg.Geometry != nil && msg.Geometry.Generation > m.generation {
			m.refresh(msg.Geometry)
		}

	case tea.KeyMsg:
		if zone, ok := dropZones[msg.String()]; ok && m.grabbed != "" {
			m.drop(zone.dir, zone.x, zone.y)
			return m, nil
		}
		switch msg.String() {
		case "esc":
			if m.grabbed != "" {
				m.layout.EndDrag(m.ctx)
				m.setStatus(fmt.Sprintf("released %s", m.grabbed), nil)
				m.grabbed = ""
				return m, nil
			}
			return m, tea.Quit
		case "q", "ctrl+c":
			return m, tea.Quit
		case "g":
			m.grab()
		case ">":
			m.nudge(1)
		case "<":
			m.nudge(-1)
		case "t":
			m.showTree = !m.showTree
		case "m":
			m.apply("magnify", usecase.MagnifyNodeAction{NodeID: m.selected()})
		case "f", "enter":
			m.apply("focus", usecase.FocusNodeAction{NodeID: m.selected()})
		case "d", "x":
			m.apply("remove", usecase.RemoveNodeAction{NodeID: m.selected()})
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *InspectModel) selected() entity.NodeID {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return entity.NodeID(row[0])
}

func (m *InspectModel) apply(name string, action usecase.Action) {
	id := m.selected()
	if id == "" {
		return
	}
	if err := m.layout.Dispatch(m.ctx, action); err != nil {
		m.err = err
		m.status = ""
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("%s %s", name, id)
	m.refresh(m.layout.Geometry())
}

func (m *InspectModel) setStatus(status string, err error) {
	m.err = err
	m.status = ""
	if err == nil {
		m.status = status
	}
}

// grab starts a keyboard drag of the selected leaf.
func (m *InspectModel) grab() {
	id := m.selected()
	if id == "" {
		return
	}
	ok, err := m.layout.BeginDrag(m.ctx, id)
	switch {
	case err != nil:
		m.setStatus("", err)
	case !ok:
		m.setStatus(fmt.Sprintf("cannot grab %s now", id), nil)
	default:
		m.grabbed = id
		m.setStatus(fmt.Sprintf("grabbed %s", id), nil)
	}
}

// drop releases the grabbed leaf over the selected row, at the point of the
// target's rectangle that classifies as dir.
func (m *InspectModel) drop(dir entity.DropDirection, fx, fy float64) {
	node, target := m.grabbed, m.selected()
	m.grabbed = ""
	rect, ok := m.layout.Geometry().RectOf(target)
	if !ok {
		m.layout.EndDrag(m.ctx)
		m.setStatus(fmt.Sprintf("released %s", node), nil)
		return
	}
	p := entity.Point{X: rect.Left + fx*rect.Width, Y: rect.Top + fy*rect.Height}
	if err := m.layout.Drop(m.ctx, target, p); err != nil {
		m.setStatus("", err)
		return
	}
	if target == node {
		m.setStatus(fmt.Sprintf("released %s", node), nil)
	} else {
		m.setStatus(fmt.Sprintf("moved %s %s of %s", node, dir, target), nil)
	}
	m.refresh(m.layout.Geometry())
}

// nudge moves the handle next to the selected leaf so that the leaf grows
// (sign > 0) or shrinks (sign < 0).
func (m *InspectModel) nudge(sign float64) {
	id := m.selected()
	if id == "" {
		return
	}
	g := m.layout.Geometry()
	var handle *entity.ResizeHandle
	for i := range g.Handles {
		h := &g.Handles[i]
		if h.FirstID == id {
			handle = h
			break
		}
		if h.SecondID == id && handle == nil {
			handle = h
			sign = -sign
		}
	}
	if handle == nil {
		m.setStatus(fmt.Sprintf("no handle next to %s", id), nil)
		return
	}
	rect, _ := g.RectOf(handle.ContainerID)

	ok, err := m.layout.BeginResize(m.ctx, handle.Index)
	if err != nil || !ok {
		m.setStatus(fmt.Sprintf("cannot resize %s now", id), err)
		return
	}
	p := entity.Point{X: handle.Boundary + sign*nudgeFraction*rect.Width, Y: rect.Top + rect.Height/2}
	if handle.FlexDirection == entity.FlexColumn {
		p = entity.Point{X: rect.Left + rect.Width/2, Y: handle.Boundary + sign*nudgeFraction*rect.Height}
	}
	m.layout.ResizeMove(p)
	if err := m.layout.EndResize(m.ctx); err != nil {
		m.setStatus("", err)
		return
	}
	m.setStatus(fmt.Sprintf("resized %s", id), nil)
	m.refresh(m.layout.Geometry())
}

// interaction describes the drag or resize in progress, if any.
func (m InspectModel) interaction() string {
	if m.layout.Resizing() {
		return "resizing"
	}
	if phase := m.layout.DragPhase(); phase != layout.DragIdle && m.grabbed != "" {
		return fmt.Sprintf("dragging %s (%s)", m.grabbed, phase)
	}
	return ""
}

func (m *InspectModel) refresh(g *entity.Geometry) {
	if g == nil {
		return
	}
	m.generation = g.Generation
	rows := styles.LeafRows(g, m.layout.State().FocusedNodeID)
	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor >= 0 {
		m.table.SetCursor(cursor)
	}
}

// View implements tea.Model.
func (m InspectModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.theme.Title.Render(fmt.Sprintf("%s Layout", styles.IconTree)))
	sb.WriteString(m.theme.Subtle.Render(fmt.Sprintf("  generation %d", m.generation)))
	if state := m.interaction(); state != "" {
		sb.WriteString("  ")
		sb.WriteString(m.theme.Interaction.Render(state))
	}
	sb.WriteString("\n\n")

	if m.showTree {
		sb.WriteString(m.renderer.RenderTree(m.layout.Snapshot()))
		sb.WriteString("\n")
	}
	sb.WriteString(m.table.View())
	sb.WriteString("\n\n")

	switch {
	case m.err != nil:
		sb.WriteString(m.renderer.RenderError(m.err))
		sb.WriteString("\n")
	case m.status != "":
		sb.WriteString(m.renderer.RenderSuccess(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderHelp())
	return sb.String()
}

func (m InspectModel) renderHelp() string {
	keys := []struct{ key, desc string }{
		{"↑/↓", "select"},
		{"f", "focus"},
		{"m", "magnify"},
		{"d", "remove"},
		{"g", "grab"},
		{"H/J/K/L/C", "drop"},
		{"</>", "resize"},
		{"t", "tree"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, m.theme.HelpKey.Render(k.key)+" "+m.theme.HelpDesc.Render(k.desc))
	}
	return strings.Join(parts, "  ")
}
