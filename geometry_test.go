package softmask

import (
	"math"
	"testing"
)

const geomEps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= geomEps
}

func TestApplyBorderZeroIsIdentity(t *testing.T) {
	rects := []Rect{
		{},
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: -20, Y: 35, Width: 7.5, Height: 0.25},
	}
	for _, r := range rects {
		if got := ApplyBorder(r, Border{}); got != r {
			t.Errorf("ApplyBorder(%v, 0) = %v, want unchanged", r, got)
		}
	}
}

func TestApplyBorder(t *testing.T) {
	got := ApplyBorder(Rect{Width: 100, Height: 100}, Border{Left: 10, Top: 10, Right: 10, Bottom: 10})
	if got.X != 10 || got.Y != 10 || got.MaxX() != 90 || got.MaxY() != 90 {
		t.Errorf("ApplyBorder = %v, want (10,10)-(90,90)", got)
	}
}

func TestApplyBorderNeverNegative(t *testing.T) {
	got := ApplyBorder(Rect{Width: 10, Height: 10}, Border{Left: 8, Top: 20, Right: 8, Bottom: 20})
	if got.Width != 0 || got.Height != 0 {
		t.Errorf("oversized border should clamp extents to zero, got %v", got)
	}
}

func TestAdjustBordersScalesOverlap(t *testing.T) {
	b := AdjustBorders(Border{Left: 80, Right: 80}, Rect{Width: 100, Height: 100})
	if !approx(b.Left, 50) || !approx(b.Right, 50) {
		t.Errorf("borders (80,80) over extent 100 should scale to (50,50), got %v", b)
	}
	if b.Top != 0 || b.Bottom != 0 {
		t.Errorf("untouched axis should stay zero, got %v", b)
	}
}

func TestAdjustBordersPerAxisIndependence(t *testing.T) {
	b := AdjustBorders(
		Border{Left: 10, Right: 10, Top: 90, Bottom: 110},
		Rect{Width: 100, Height: 100},
	)
	if b.Left != 10 || b.Right != 10 {
		t.Errorf("fitting axis must not be scaled, got %v", b)
	}
	if !approx(b.Top, 45) || !approx(b.Bottom, 55) {
		t.Errorf("vertical borders should scale by 100/200, got %v", b)
	}
}

func TestAdjustBordersFitsUnchanged(t *testing.T) {
	in := Border{Left: 10, Top: 20, Right: 30, Bottom: 40}
	if got := AdjustBorders(in, Rect{Width: 100, Height: 100}); got != in {
		t.Errorf("fitting borders should pass through, got %v", got)
	}
}

func TestRemapCenter(t *testing.T) {
	got := Remap(Vec2{X: 50, Y: 50}, Rect{Width: 100, Height: 100}, Rect{Width: 1, Height: 1})
	if !approx(got.X, 0.5) || !approx(got.Y, 0.5) {
		t.Errorf("Remap(50,50) = %v, want (0.5,0.5)", got)
	}
}

func TestRemapCornersExact(t *testing.T) {
	from := Rect{X: 10, Y: 20, Width: 90, Height: 60}
	to := Rect{X: -1, Y: -2, Width: 2, Height: 4}
	min := Remap(Vec2{X: from.X, Y: from.Y}, from, to)
	if min.X != to.X || min.Y != to.Y {
		t.Errorf("min corner maps to %v, want (%v,%v)", min, to.X, to.Y)
	}
	max := Remap(Vec2{X: from.MaxX(), Y: from.MaxY()}, from, to)
	if max.X != to.MaxX() || max.Y != to.MaxY() {
		t.Errorf("max corner maps to %v, want (%v,%v)", max, to.MaxX(), to.MaxY())
	}
}

func TestRemapZeroSizeSourceAxis(t *testing.T) {
	from := Rect{X: 5, Y: 0, Width: 0, Height: 10}
	to := Rect{X: 100, Y: 100, Width: 50, Height: 50}
	got := Remap(Vec2{X: 5, Y: 5}, from, to)
	if got.X != to.X {
		t.Errorf("zero-size axis should map to target min, got %v", got.X)
	}
	if !approx(got.Y, 125) {
		t.Errorf("healthy axis should interpolate, got %v", got.Y)
	}
}

func TestPreserveAspectRatio(t *testing.T) {
	// Too wide for square content: width shrinks, centered.
	got := PreserveAspectRatio(Rect{Width: 200, Height: 100}, Vec2{X: 64, Y: 64})
	if !approx(got.Width, 100) || !approx(got.X, 50) || got.Height != 100 {
		t.Errorf("wide rect should shrink width to 100 at x=50, got %v", got)
	}
	// Too tall: height shrinks.
	got = PreserveAspectRatio(Rect{Width: 100, Height: 200}, Vec2{X: 64, Y: 64})
	if !approx(got.Height, 100) || !approx(got.Y, 50) || got.Width != 100 {
		t.Errorf("tall rect should shrink height to 100 at y=50, got %v", got)
	}
	// Matching aspect passes through.
	in := Rect{Width: 100, Height: 50}
	if got := PreserveAspectRatio(in, Vec2{X: 2, Y: 1}); got != in {
		t.Errorf("matching aspect should pass through, got %v", got)
	}
}

func TestMaskRepeat(t *testing.T) {
	repeat := MaskRepeat(
		Rect{Width: 40, Height: 40},
		Border{Left: 10, Top: 10, Right: 10, Bottom: 10},
		Rect{Width: 60, Height: 30},
		1,
	)
	if !approx(repeat.X, 3) || !approx(repeat.Y, 1.5) {
		t.Errorf("repeat = %v, want (3, 1.5)", repeat)
	}
}

func TestMaskRepeatScaled(t *testing.T) {
	// Source interior 20 texels at 2 texels/unit covers 10 local units.
	repeat := MaskRepeat(
		Rect{Width: 40, Height: 40},
		Border{Left: 10, Top: 10, Right: 10, Bottom: 10},
		Rect{Width: 60, Height: 60},
		2,
	)
	if !approx(repeat.X, 6) || !approx(repeat.Y, 6) {
		t.Errorf("repeat = %v, want (6, 6)", repeat)
	}
}

func TestMaskRepeatEmptyInterior(t *testing.T) {
	repeat := MaskRepeat(
		Rect{Width: 20, Height: 20},
		Border{Left: 10, Right: 10, Top: 10, Bottom: 10},
		Rect{Width: 60, Height: 60},
		1,
	)
	if repeat.X != 1 || repeat.Y != 1 {
		t.Errorf("empty source interior should repeat once, got %v", repeat)
	}
}

// Shared 9-slice fixture: a 30x30 mask rect with 10-unit borders mapping a
// 30x30 texel region with 10-texel borders 1:1.
var (
	sliceRect     = Rect{Width: 30, Height: 30}
	sliceBorder   = Rect{X: 10, Y: 10, Width: 10, Height: 10}
	sliceUV       = Rect{Width: 30, Height: 30}
	sliceUVBorder = Rect{X: 10, Y: 10, Width: 10, Height: 10}
)

func TestXYToUVSimple(t *testing.T) {
	uv := XYToUV(Vec2{X: 15, Y: 7.5}, BorderModeSimple,
		sliceRect, sliceBorder, Rect{Width: 60, Height: 60}, sliceUVBorder, Vec2{X: 1, Y: 1})
	if !approx(uv.X, 30) || !approx(uv.Y, 15) {
		t.Errorf("simple uv = %v, want (30, 15)", uv)
	}
}

func TestXYToUVSlicedSegments(t *testing.T) {
	cases := []struct {
		name string
		x    float64
		want float64
	}{
		{"lower segment", 5, 5},
		{"boundary selects middle", 10, 10},
		{"middle segment", 15, 15},
		{"upper boundary selects upper", 20, 20},
		{"upper segment", 25, 25},
	}
	for _, tc := range cases {
		uv := XYToUV(Vec2{X: tc.x, Y: tc.x}, BorderModeSliced,
			sliceRect, sliceBorder, sliceUV, sliceUVBorder, Vec2{X: 1, Y: 1})
		if !approx(uv.X, tc.want) {
			t.Errorf("%s: uv.X = %v, want %v", tc.name, uv.X, tc.want)
		}
	}
}

func TestXYToUVSlicedAsymmetric(t *testing.T) {
	// Target border interior twice as wide as the source's: the middle
	// segment stretches, the corners stay 1:1.
	rect := Rect{Width: 40, Height: 30}
	borderRect := Rect{X: 10, Y: 10, Width: 20, Height: 10}
	uv := XYToUV(Vec2{X: 20, Y: 15}, BorderModeSliced,
		rect, borderRect, sliceUV, sliceUVBorder, Vec2{X: 1, Y: 1})
	if !approx(uv.X, 15) || !approx(uv.Y, 15) {
		t.Errorf("stretched middle uv = %v, want (15, 15)", uv)
	}
}

func TestXYToUVTiledWrap(t *testing.T) {
	repeat := Vec2{X: 2, Y: 2}
	// Halfway through the middle segment with repeat 2 the parameter hits an
	// exact tile edge: fractional part 0, back to the tile start.
	uv := XYToUV(Vec2{X: 15, Y: 15}, BorderModeTiled,
		sliceRect, sliceBorder, sliceUV, sliceUVBorder, repeat)
	if !approx(uv.X, 10) || !approx(uv.Y, 10) {
		t.Errorf("tile edge should wrap to tile start, got %v", uv)
	}
	// A quarter in: halfway through the first tile.
	uv = XYToUV(Vec2{X: 12.5, Y: 12.5}, BorderModeTiled,
		sliceRect, sliceBorder, sliceUV, sliceUVBorder, repeat)
	if !approx(uv.X, 15) || !approx(uv.Y, 15) {
		t.Errorf("quarter point should map mid-tile, got %v", uv)
	}
}

func TestXYToUVTiledNeverOutOfRange(t *testing.T) {
	repeat := Vec2{X: 3.7, Y: 3.7}
	for x := 10.0; x < 20.0; x += 0.097 {
		uv := XYToUV(Vec2{X: x, Y: x}, BorderModeTiled,
			sliceRect, sliceBorder, sliceUV, sliceUVBorder, repeat)
		if uv.X < sliceUVBorder.X || uv.X >= sliceUVBorder.MaxX() {
			t.Fatalf("x=%v: uv.X=%v escaped border interior [%v,%v)",
				x, uv.X, sliceUVBorder.X, sliceUVBorder.MaxX())
		}
	}
}

func TestXYToUVUnknownModeFallsBackToSimple(t *testing.T) {
	p := Vec2{X: 15, Y: 15}
	unknown := XYToUV(p, BorderMode(99), sliceRect, sliceBorder, sliceUV, sliceUVBorder, Vec2{X: 1, Y: 1})
	simple := XYToUV(p, BorderModeSimple, sliceRect, sliceBorder, sliceUV, sliceUVBorder, Vec2{X: 1, Y: 1})
	if unknown != simple {
		t.Errorf("unknown mode = %v, simple = %v; want identical", unknown, simple)
	}
}

func TestInvertAffineRoundTrip(t *testing.T) {
	m := [6]float64{2, 0.5, -0.25, 3, 40, -7}
	inv := invertAffine(m)
	x, y := transformPoint(m, 12, -34)
	rx, ry := transformPoint(inv, x, y)
	if !approx(rx, 12) || !approx(ry, -34) {
		t.Errorf("round trip = (%v, %v), want (12, -34)", rx, ry)
	}
}

func TestInvertAffineSingular(t *testing.T) {
	if got := invertAffine([6]float64{0, 0, 0, 0, 5, 5}); got != identityTransform {
		t.Errorf("singular matrix should invert to identity, got %v", got)
	}
}
