package softmask

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// It doubles as the channel-weight vector: a mask sample is the dot product of
// the (straight-alpha) mask texel and a weight color.
type Color struct {
	R, G, B, A float64
}

// Vec2 is a 2D vector used for positions, sizes, UV coordinates, and
// tile-repeat factors throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Border holds 9-slice cut sizes, one per side. For sprite borders the unit
// is texels; for mask-rect borders the unit is the mask's local space.
type Border struct {
	Left, Top, Right, Bottom float64
}

// IsZero reports whether all four sides are zero (no slicing).
func (b Border) IsZero() bool {
	return b.Left == 0 && b.Top == 0 && b.Right == 0 && b.Bottom == 0
}

// BorderMode selects how the mask image is mapped onto the mask rect.
type BorderMode uint8

const (
	// BorderModeSimple stretches the whole image across the mask rect.
	BorderModeSimple BorderMode = iota
	// BorderModeSliced applies a 9-slice mapping: corners keep their size,
	// edges and center stretch.
	BorderModeSliced
	// BorderModeTiled applies a 9-slice mapping with a tiling center and
	// edges instead of stretching ones.
	BorderModeTiled
)

// normalized maps unknown border-mode values to BorderModeSimple so a
// corrupted or future value degrades deterministically instead of
// misrendering.
func (m BorderMode) normalized() BorderMode {
	if m > BorderModeTiled {
		return BorderModeSimple
	}
	return m
}

// Channel selects which part of the mask texel produces the mask value.
type Channel uint8

const (
	// ChannelAlpha uses the texel's alpha (the default).
	ChannelAlpha Channel = iota
	// ChannelRed uses the red component.
	ChannelRed
	// ChannelGreen uses the green component.
	ChannelGreen
	// ChannelBlue uses the blue component.
	ChannelBlue
	// ChannelGray uses the texel's luminance.
	ChannelGray
	// ChannelCustom uses the weight color set with Mask.SetWeights.
	ChannelCustom
)

// Weights returns the weight color for a built-in channel. ChannelCustom
// returns the zero color; the mask substitutes its configured weights.
func (c Channel) Weights() Color {
	switch c {
	case ChannelAlpha:
		return Color{0, 0, 0, 1}
	case ChannelRed:
		return Color{1, 0, 0, 0}
	case ChannelGreen:
		return Color{0, 1, 0, 0}
	case ChannelBlue:
		return Color{0, 0, 1, 0}
	case ChannelGray:
		// Rec. 601 luma weights.
		return Color{0.299, 0.587, 0.114, 0}
	}
	return Color{}
}
