package game

import (
	"math"
	"testing"
)

// --- Rect overlap ---

func TestRect_IntersectsOverlap(t *testing.T) {
	a := Rect{X: 10, Y: 10, W: 20, H: 20}
	b := Rect{X: 25, Y: 25, W: 20, H: 20}
	if !a.Intersects(b) {
		t.Fatal("overlapping rects should intersect")
	}
	if !b.Intersects(a) {
		t.Fatal("Intersects should be symmetric")
	}
}

func TestRect_IntersectsContainment(t *testing.T) {
	outer := Rect{X: 0, Y: 0, W: 100, H: 100}
	inner := Rect{X: 40, Y: 40, W: 10, H: 10}
	if !outer.Intersects(inner) || !inner.Intersects(outer) {
		t.Fatal("contained rect should intersect its container")
	}
}

func TestRect_TouchingEdgesDoNotIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	cases := []struct {
		name  string
		other Rect
	}{
		{"right edge", Rect{X: 10, Y: 0, W: 10, H: 10}},
		{"left edge", Rect{X: -10, Y: 0, W: 10, H: 10}},
		{"bottom edge", Rect{X: 0, Y: 10, W: 10, H: 10}},
		{"top edge", Rect{X: 0, Y: -10, W: 10, H: 10}},
		{"corner", Rect{X: 10, Y: 10, W: 10, H: 10}},
	}
	for _, c := range cases {
		if a.Intersects(c.other) {
			t.Errorf("%s: touching rects must not count as overlapping", c.name)
		}
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}

	cases := []struct {
		name string
		p    Vec2
		in   bool
	}{
		{"center", Vec2{X: 20, Y: 20}, true},
		{"top-left corner", Vec2{X: 10, Y: 10}, true},
		{"right edge exclusive", Vec2{X: 30, Y: 20}, false},
		{"bottom edge exclusive", Vec2{X: 20, Y: 30}, false},
		{"outside left", Vec2{X: 9, Y: 20}, false},
		{"outside above", Vec2{X: 20, Y: 9}, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.p); got != c.in {
			t.Errorf("%s: Contains(%v) = %v, want %v", c.name, c.p, got, c.in)
		}
	}
}

func TestRect_CenterAndTranslate(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 40, H: 20}

	c := r.Center()
	if c.X != 30 || c.Y != 30 {
		t.Fatalf("center = (%v,%v), want (30,30)", c.X, c.Y)
	}

	m := r.Translate(Vec2{X: 5, Y: -10})
	if m.X != 15 || m.Y != 10 || m.W != 40 || m.H != 20 {
		t.Fatalf("translate = %+v, want {15 10 40 20}", m)
	}
	if r.X != 10 || r.Y != 20 {
		t.Fatal("Translate must not mutate the receiver")
	}
}

func TestRect_ScaledAboutKeepsCenter(t *testing.T) {
	r := Rect{X: 380, Y: 550, W: 40, H: 20}
	s := r.ScaledAbout(1.35)

	if math.Abs(s.W-54) > 1e-9 || math.Abs(s.H-27) > 1e-9 {
		t.Fatalf("scaled size = %.2fx%.2f, want 54x27", s.W, s.H)
	}
	rc, sc := r.Center(), s.Center()
	if math.Abs(rc.X-sc.X) > 1e-9 || math.Abs(rc.Y-sc.Y) > 1e-9 {
		t.Fatalf("scaling moved the center: %v -> %v", rc, sc)
	}
	if math.Abs(s.X-373) > 1e-9 || math.Abs(s.Y-546.5) > 1e-9 {
		t.Fatalf("scaled origin = (%.2f,%.2f), want (373,546.5)", s.X, s.Y)
	}
}

func TestRect_Outside(t *testing.T) {
	cases := []struct {
		name string
		r    Rect
		out  bool
	}{
		{"inside", Rect{X: 100, Y: 100, W: 10, H: 10}, false},
		{"straddling top", Rect{X: 100, Y: -5, W: 10, H: 10}, false},
		{"above top", Rect{X: 100, Y: -20, W: 10, H: 10}, true},
		{"below bottom", Rect{X: 100, Y: 601, W: 10, H: 10}, true},
		{"left of field", Rect{X: -20, Y: 100, W: 10, H: 10}, true},
		{"right of field", Rect{X: 801, Y: 100, W: 10, H: 10}, true},
		{"straddling right", Rect{X: 795, Y: 100, W: 10, H: 10}, false},
	}
	for _, c := range cases {
		if got := c.r.Outside(800, 600); got != c.out {
			t.Errorf("%s: Outside = %v, want %v", c.name, got, c.out)
		}
	}
}

// --- Vec2 ---

func TestVec2_Arithmetic(t *testing.T) {
	v := Vec2{X: 3, Y: -4}
	sum := v.Add(Vec2{X: 1, Y: 2})
	if sum.X != 4 || sum.Y != -2 {
		t.Fatalf("Add = %+v, want {4 -2}", sum)
	}
	sc := v.Scale(2)
	if sc.X != 6 || sc.Y != -8 {
		t.Fatalf("Scale = %+v, want {6 -8}", sc)
	}
}
