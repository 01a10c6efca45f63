// Package entity defines the layout tree, its geometry and the values
// exchanged with the rendering layer.
package entity

import "fmt"

// Point is a pointer position in the layout container's coordinate space.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Rect represents a rectangle's position and size.
// Left/Top are relative to the layout container.
type Rect struct {
	Left   float64 `json:"left" toml:"left"`
	Top    float64 `json:"top" toml:"top"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// DropDirection classifies where a dragged node is released relative to a target.
type DropDirection int

// The numeric values matter: inner directions map to their Outer variant by +4.
const (
	DropTop DropDirection = iota
	DropRight
	DropBottom
	DropLeft
	DropOuterTop
	DropOuterRight
	DropOuterBottom
	DropOuterLeft
	DropCenter
	DropNone DropDirection = -1
)

var dropDirectionNames = map[DropDirection]string{
	DropTop:         "top",
	DropRight:       "right",
	DropBottom:      "bottom",
	DropLeft:        "left",
	DropOuterTop:    "outer_top",
	DropOuterRight:  "outer_right",
	DropOuterBottom: "outer_bottom",
	DropOuterLeft:   "outer_left",
	DropCenter:      "center",
	DropNone:        "none",
}

func (d DropDirection) String() string {
	if name, ok := dropDirectionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DropDirection(%d)", int(d))
}

// ParseDropDirection converts a name produced by String back to a direction.
func ParseDropDirection(s string) (DropDirection, error) {
	for dir, name := range dropDirectionNames {
		if name == s {
			return dir, nil
		}
	}
	return DropNone, fmt.Errorf("unknown drop direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d DropDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DropDirection) UnmarshalText(text []byte) error {
	dir, err := ParseDropDirection(string(text))
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// IsOuter returns true for the window-level split variants.
func (d DropDirection) IsOuter() bool {
	return d >= DropOuterTop && d <= DropOuterLeft
}

// Inner maps an Outer variant to its inner counterpart; other values are returned as is.
func (d DropDirection) Inner() DropDirection {
	if d.IsOuter() {
		return d - 4
	}
	return d
}

// Axis returns the flex direction a split in this direction lays out along.
// Center and None have no axis and return FlexNone.
func (d DropDirection) Axis() FlexDirection {
	switch d.Inner() {
	case DropLeft, DropRight:
		return FlexRow
	case DropTop, DropBottom:
		return FlexColumn
	default:
		return FlexNone
	}
}

// InsertsBefore returns true if the moved node lands before its anchor.
func (d DropDirection) InsertsBefore() bool {
	switch d.Inner() {
	case DropTop, DropLeft, DropCenter:
		return true
	default:
		return false
	}
}

// ClassifyDropZone determines the drop direction for pointer p over rect.
// It returns false when p is outside rect or lies exactly on one of its
// diagonals; the caller should retry on the next pointer movement.
//
// The center fifth wins first, then the diagonal quadrant decides the side,
// then the outer fifth along either axis upgrades to the Outer variant.
func ClassifyDropZone(rect Rect, p Point) (DropDirection, bool) {
	w, h := rect.Width, rect.Height
	x := p.X - rect.Left
	y := p.Y - rect.Top

	if y < 0 || y > h || x < 0 || x > w {
		return DropNone, false
	}

	if x > 2*w/5 && x < 3*w/5 && y > 2*h/5 && y < 3*h/5 {
		return DropCenter, true
	}

	diagonal1 := y*w - x*h
	diagonal2 := y*w + x*h - h*w
	if diagonal1 == 0 || diagonal2 == 0 {
		return DropNone, false
	}

	code := 0
	if diagonal2 > 0 {
		code++
	}
	if diagonal1 > 0 {
		code += 2
		code = 5 - code
	}

	if x < w/5 || x > 4*w/5 || y < h/5 || y > 4*h/5 {
		code += 4
	}
	return DropDirection(code), true
}

// Placement is an absolute-positioned visual transform for a rectangle.
type Placement struct {
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	// Sized is false when the rendering layer keeps the element's own size.
	Sized bool `json:"sized"`
}

// ComputeTransform maps rect to a placement. Width and height are only
// carried when includeSize is true.
func ComputeTransform(rect Rect, includeSize bool) Placement {
	p := Placement{
		TranslateX: rect.Left,
		TranslateY: rect.Top,
	}
	if includeSize {
		p.Width = rect.Width
		p.Height = rect.Height
		p.Sized = true
	}
	return p
}

// String renders the placement as a CSS-style transform declaration.
func (p Placement) String() string {
	s := fmt.Sprintf("transform: translate3d(%gpx,%gpx,0)", p.TranslateX, p.TranslateY)
	if p.Sized {
		s += fmt.Sprintf("; width: %gpx; height: %gpx", p.Width, p.Height)
	}
	return s
}
