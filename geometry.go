package softmask

import "math"

// Geometry engine: pure functions converting mask rects, 9-slice borders, and
// UV rects into the piecewise mappings the mask shaders (and the CPU sampling
// path) evaluate. All functions are stateless; callers hold the results in a
// Parameters block.

// ApplyBorder returns r shrunk inward by b on each side. A border pair larger
// than the rect extent clamps the result to zero extent rather than producing
// a negative one; run AdjustBorders first to scale oversized borders instead.
func ApplyBorder(r Rect, b Border) Rect {
	w := r.Width - b.Left - b.Right
	h := r.Height - b.Top - b.Bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + b.Left, Y: r.Y + b.Top, Width: w, Height: h}
}

// inverseLerp returns the relative position of v between a and b.
// A zero-length span maps to 0, never a division trap.
func inverseLerp(a, b, v float64) float64 {
	if b == a {
		return 0
	}
	return (v - a) / (b - a)
}

// lerp interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Remap maps p from one rectangle to another, preserving relative position.
// Corners of from map exactly to corners of to. A zero-size axis on from maps
// to to's minimum edge on that axis.
func Remap(p Vec2, from, to Rect) Vec2 {
	return Vec2{
		X: lerp(to.X, to.MaxX(), inverseLerp(from.X, from.MaxX(), p.X)),
		Y: lerp(to.Y, to.MaxY(), inverseLerp(from.Y, from.MaxY(), p.Y)),
	}
}

// AdjustBorders scales down a border pair when its sum exceeds the rect
// extent on that axis, so opposing borders never overlap. Each axis is
// adjusted independently.
func AdjustBorders(b Border, r Rect) Border {
	if sum := b.Left + b.Right; sum > r.Width && sum > 0 {
		scale := r.Width / sum
		if scale < 0 {
			scale = 0
		}
		b.Left *= scale
		b.Right *= scale
	}
	if sum := b.Top + b.Bottom; sum > r.Height && sum > 0 {
		scale := r.Height / sum
		if scale < 0 {
			scale = 0
		}
		b.Top *= scale
		b.Bottom *= scale
	}
	return b
}

// PreserveAspectRatio shrinks the longer axis of r so its aspect ratio
// matches size, keeping the rect centered on its original center. Rects and
// sizes with a zero or negative axis are returned unchanged.
func PreserveAspectRatio(r Rect, size Vec2) Rect {
	if r.Width <= 0 || r.Height <= 0 || size.X <= 0 || size.Y <= 0 {
		return r
	}
	rectAspect := r.Width / r.Height
	contentAspect := size.X / size.Y
	if rectAspect > contentAspect {
		// Too wide: shrink width.
		w := r.Height * contentAspect
		r.X += (r.Width - w) / 2
		r.Width = w
	} else if rectAspect < contentAspect {
		// Too tall: shrink height.
		h := r.Width / contentAspect
		r.Y += (r.Height - h) / 2
		r.Height = h
	}
	return r
}

// MaskRepeat derives the per-axis tile-repeat factor for BorderModeTiled: the
// ratio of the target border-interior size to the scaled source
// border-interior size. scale converts source texels to the target's local
// units (texels per unit). Axes whose source interior is empty repeat once.
func MaskRepeat(sourceRect Rect, sourceBorder Border, targetBorderRect Rect, scale float64) Vec2 {
	if scale <= 0 {
		scale = 1
	}
	inner := ApplyBorder(sourceRect, sourceBorder)
	repeat := Vec2{X: 1, Y: 1}
	if inner.Width > 0 {
		repeat.X = targetBorderRect.Width / (inner.Width / scale)
	}
	if inner.Height > 0 {
		repeat.Y = targetBorderRect.Height / (inner.Height / scale)
	}
	return repeat
}

// XYToUV converts a point in mask-local space to mask texel coordinates,
// dispatching on the border mode. rect is the mask rect and uv the full
// texel rect of the mask image; borderRect and uvBorder are their
// border-interior counterparts (used by sliced and tiled modes), and repeat
// is the tile-repeat factor (tiled mode only).
//
// This is the CPU mirror of the mapping the mask shaders evaluate per pixel;
// the two must agree so raycast filtering matches what is rendered.
func XYToUV(p Vec2, mode BorderMode, rect, borderRect, uv, uvBorder Rect, repeat Vec2) Vec2 {
	switch mode.normalized() {
	case BorderModeSliced:
		return Vec2{
			X: sliceAxis(p.X, rect.X, borderRect.X, borderRect.MaxX(), rect.MaxX(),
				uv.X, uvBorder.X, uvBorder.MaxX(), uv.MaxX(), 0),
			Y: sliceAxis(p.Y, rect.Y, borderRect.Y, borderRect.MaxY(), rect.MaxY(),
				uv.Y, uvBorder.Y, uvBorder.MaxY(), uv.MaxY(), 0),
		}
	case BorderModeTiled:
		return Vec2{
			X: sliceAxis(p.X, rect.X, borderRect.X, borderRect.MaxX(), rect.MaxX(),
				uv.X, uvBorder.X, uvBorder.MaxX(), uv.MaxX(), repeat.X),
			Y: sliceAxis(p.Y, rect.Y, borderRect.Y, borderRect.MaxY(), rect.MaxY(),
				uv.Y, uvBorder.Y, uvBorder.MaxY(), uv.MaxY(), repeat.Y),
		}
	}
	return Remap(p, rect, uv)
}

// sliceAxis maps one axis of a 9-sliced point. The axis is split into three
// segments at the two border boundaries; segment boundaries are half-open
// (v < boundary selects the lower segment) so a value exactly on a boundary
// is deterministic. With repeat > 0 the middle segment tiles: its
// interpolation parameter is scaled by repeat and wrapped to [0, 1).
func sliceAxis(v, lo, borderLo, borderHi, hi, uvLo, uvBorderLo, uvBorderHi, uvHi, repeat float64) float64 {
	switch {
	case v < borderLo:
		return lerp(uvLo, uvBorderLo, inverseLerp(lo, borderLo, v))
	case v < borderHi:
		t := inverseLerp(borderLo, borderHi, v)
		if repeat > 0 {
			t *= repeat
			t -= math.Floor(t)
		}
		return lerp(uvBorderLo, uvBorderHi, t)
	default:
		return lerp(uvBorderHi, uvHi, inverseLerp(borderHi, hi, v))
	}
}
