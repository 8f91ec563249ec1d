package game

// Vec2 is a 2D vector with value-receiver arithmetic.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Rect is an axis-aligned rectangle: top-left corner plus size.
type Rect struct {
	X, Y, W, H float64
}

// Intersects reports whether the two rectangles overlap. Touching edges do
// not count as overlap; the whole simulation relies on this convention being
// uniform.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Center returns the rectangle's center point.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether the point lies inside the rectangle. The right
// and bottom edges are exclusive, matching Intersects.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Translate returns the rectangle moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{r.X + d.X, r.Y + d.Y, r.W, r.H}
}

// ScaledAbout returns the rectangle scaled by f around its own center.
func (r Rect) ScaledAbout(f float64) Rect {
	w := r.W * f
	h := r.H * f
	return Rect{
		X: r.X + r.W/2 - w/2,
		Y: r.Y + r.H/2 - h/2,
		W: w,
		H: h,
	}
}

// Outside reports whether the rectangle lies fully outside a viewport of the
// given size (no part of it visible).
func (r Rect) Outside(viewW, viewH float64) bool {
	return r.Y > viewH || r.Y+r.H < 0 || r.X > viewW || r.X+r.W < 0
}
