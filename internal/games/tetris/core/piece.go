package core

import "fmt"

// RGB is a display color with channels in [0, 1]. It has no effect on rules.
type RGB struct {
	R, G, B float64
}

// Bytes returns the color scaled to 8-bit channels.
func (c RGB) Bytes() (r, g, b uint8) {
	return channel(c.R), channel(c.G), channel(c.B)
}

// String returns the color in #rrggbb form.
func (c RGB) String() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v * 255)
	}
}

// Point is an absolute board coordinate.
type Point struct {
	X, Y int
}

// ActivePiece is the piece currently under gravity and player control.
// X, Y is the anchor the shape offsets are added to.
type ActivePiece struct {
	Kind     Kind
	Rotation int
	X, Y     int
	Color    RGB
}

// Footprint returns the four absolute cells the piece covers.
func (p ActivePiece) Footprint() [4]Point {
	return footprintAt(p.Kind, p.Rotation, p.X, p.Y)
}

func footprintAt(kind Kind, rotation, x, y int) [4]Point {
	var pts [4]Point
	for i, o := range ShapeOf(kind, rotation) {
		pts[i] = Point{X: x + o.DX, Y: y + o.DY}
	}
	return pts
}

// draw writes the piece footprint into the board as filled cells.
func (p ActivePiece) draw(b *Board) {
	for _, pt := range p.Footprint() {
		b.Set(pt.X, pt.Y, FilledCell(p.Color))
	}
}

// erase writes empty cells over the piece footprint.
func (p ActivePiece) erase(b *Board) {
	for _, pt := range p.Footprint() {
		b.Set(pt.X, pt.Y, Empty())
	}
}
