package entity

// GeometryOptions tunes geometry computation.
type GeometryOptions struct {
	// HandleSize is the thickness of resize handles along the container axis.
	HandleSize float64
	// MagnifiedInset is the fraction of the container kept free around a
	// magnified leaf on each side (0 fills the container).
	MagnifiedInset float64
}

// LeafGeometry is the computed placement of one leaf.
type LeafGeometry struct {
	NodeID    NodeID
	Data      LeafData
	Rect      Rect
	Placement Placement
	Magnified bool
}

// ResizeHandle is derived from the tree on every geometry computation.
// It separates Children[ChildIndex] and Children[ChildIndex+1] of ContainerID.
type ResizeHandle struct {
	Index         int // Position in Geometry.Handles
	ContainerID   NodeID
	ChildIndex    int
	FirstID       NodeID
	SecondID      NodeID
	FlexDirection FlexDirection
	// Boundary is the coordinate of the divider along the container axis.
	Boundary  float64
	Rect      Rect
	Placement Placement
}

// Geometry is a read-only snapshot of the layout's flattened placements.
type Geometry struct {
	Generation uint64
	Container  Rect
	Leaves     []LeafGeometry
	Handles    []ResizeHandle

	nodeRects map[NodeID]Rect
}

// RectOf returns the computed rectangle of any node (leaf or container).
func (g *Geometry) RectOf(id NodeID) (Rect, bool) {
	if g == nil {
		return Rect{}, false
	}
	r, ok := g.nodeRects[id]
	return r, ok
}

// Leaf returns the geometry of a leaf by id.
func (g *Geometry) Leaf(id NodeID) (LeafGeometry, bool) {
	if g == nil {
		return LeafGeometry{}, false
	}
	for _, leaf := range g.Leaves {
		if leaf.NodeID == id {
			return leaf, true
		}
	}
	return LeafGeometry{}, false
}

// Handle returns the handle at the given index.
func (g *Geometry) Handle(index int) (ResizeHandle, bool) {
	if g == nil || index < 0 || index >= len(g.Handles) {
		return ResizeHandle{}, false
	}
	return g.Handles[index], true
}

// LeafAt returns the leaf whose rectangle contains p.
// Magnified leaves are checked first since they render on top.
func (g *Geometry) LeafAt(p Point) (LeafGeometry, bool) {
	if g == nil {
		return LeafGeometry{}, false
	}
	for i := len(g.Leaves) - 1; i >= 0; i-- {
		if g.Leaves[i].Rect.Contains(p) {
			return g.Leaves[i], true
		}
	}
	return LeafGeometry{}, false
}

// ComputeGeometry lays the tree out inside container. In-progress resize
// weights from state.ActiveResize take precedence over the tree's weights.
// A magnified leaf is placed over the whole container and listed last.
func ComputeGeometry(state *LayoutTreeState, container Rect, opts GeometryOptions) *Geometry {
	g := &Geometry{
		Container: container,
		nodeRects: make(map[NodeID]Rect),
	}
	if state == nil || state.Root == nil {
		return g
	}

	var magnified *LeafGeometry
	var layout func(node *LayoutNode, rect Rect)
	layout = func(node *LayoutNode, rect Rect) {
		g.nodeRects[node.ID] = rect
		if node.IsLeaf() {
			leaf := LeafGeometry{
				NodeID:    node.ID,
				Data:      node.Data,
				Rect:      rect,
				Placement: ComputeTransform(rect, true),
			}
			if node.ID == state.MagnifiedNodeID {
				magnified = &leaf
				return
			}
			g.Leaves = append(g.Leaves, leaf)
			return
		}

		weights := childWeights(node, state.ActiveResize)
		total := 0.0
		for _, w := range weights {
			total += w
		}
		if total <= 0 {
			total = float64(len(weights))
			for i := range weights {
				weights[i] = 1
			}
		}

		extent := rect.Width
		if node.FlexDirection == FlexColumn {
			extent = rect.Height
		}

		offset := 0.0
		for i, child := range node.Children {
			size := extent * weights[i] / total
			childRect := rect
			if node.FlexDirection == FlexColumn {
				childRect.Top = rect.Top + offset
				childRect.Height = size
			} else {
				childRect.Left = rect.Left + offset
				childRect.Width = size
			}
			layout(child, childRect)
			offset += size

			if i < len(node.Children)-1 {
				g.Handles = append(g.Handles, newResizeHandle(len(g.Handles), node, i, rect, offset, opts.HandleSize))
			}
		}
	}
	layout(state.Root, container)

	if magnified != nil {
		inset := clampInset(opts.MagnifiedInset)
		r := Rect{
			Left:   container.Left + container.Width*inset,
			Top:    container.Top + container.Height*inset,
			Width:  container.Width * (1 - 2*inset),
			Height: container.Height * (1 - 2*inset),
		}
		magnified.Rect = r
		magnified.Placement = ComputeTransform(r, true)
		magnified.Magnified = true
		g.nodeRects[magnified.NodeID] = r
		g.Leaves = append(g.Leaves, *magnified)
	}
	return g
}

func childWeights(node *LayoutNode, resize *ActiveResize) []float64 {
	weights := make([]float64, len(node.Children))
	for i, child := range node.Children {
		weights[i] = child.SizeWeight
	}
	if resize != nil && resize.ContainerID == node.ID &&
		resize.Index >= 0 && resize.Index+1 < len(weights) {
		weights[resize.Index] = resize.Weights[0]
		weights[resize.Index+1] = resize.Weights[1]
	}
	return weights
}

func newResizeHandle(index int, node *LayoutNode, childIndex int, rect Rect, offset, size float64) ResizeHandle {
	h := ResizeHandle{
		Index:         index,
		ContainerID:   node.ID,
		ChildIndex:    childIndex,
		FirstID:       node.Children[childIndex].ID,
		SecondID:      node.Children[childIndex+1].ID,
		FlexDirection: node.FlexDirection,
	}
	if node.FlexDirection == FlexColumn {
		h.Boundary = rect.Top + offset
		h.Rect = Rect{Left: rect.Left, Top: h.Boundary - size/2, Width: rect.Width, Height: size}
	} else {
		h.Boundary = rect.Left + offset
		h.Rect = Rect{Left: h.Boundary - size/2, Top: rect.Top, Width: size, Height: rect.Height}
	}
	h.Placement = ComputeTransform(h.Rect, true)
	return h
}

func clampInset(inset float64) float64 {
	const maxInset = 0.45
	if inset < 0 {
		return 0
	}
	if inset > maxInset {
		return maxInset
	}
	return inset
}
