package softmask

import "errors"

// Sampling errors. Callers performing hit testing must treat a sampling
// error as a pass (fail-open): breaking input entirely is worse than
// skipping mask filtering for a degraded mask.
var (
	// ErrMaskDead reports sampling against a destroyed mask.
	ErrMaskDead = errors.New("softmask: mask is destroyed")
	// ErrUnreadableTexture reports a mask texture that cannot be sampled on
	// demand (not yet resolved, or deallocated by the host).
	ErrUnreadableTexture = errors.New("softmask: mask texture cannot be sampled")
)

// SampleAt evaluates the mask at a world-space point using the last computed
// parameters: the point is transformed into mask-local space, mapped through
// the same border-mode math as the shaders, and the texel's channel-weighted
// value (with inversion applied) is returned in [0, 1].
func (m *Mask) SampleAt(worldX, worldY float64) (float64, error) {
	if !m.alive {
		return 0, ErrMaskDead
	}
	p := &m.params
	px, py := transformPoint(p.WorldToMask, worldX, worldY)
	if !p.MaskRect.Contains(px, py) {
		if p.InvertOutside {
			return 1, nil
		}
		return 0, nil
	}
	if p.Texture == nil {
		return 0, ErrUnreadableTexture
	}
	uv := XYToUV(Vec2{X: px, Y: py}, p.BorderMode,
		p.MaskRect, p.BorderRect, p.MaskUVRect, p.BorderUVRect, p.TileRepeat)
	tx := texelIndex(uv.X, p.MaskUVRect.X, p.MaskUVRect.MaxX())
	ty := texelIndex(uv.Y, p.MaskUVRect.Y, p.MaskUVRect.MaxY())
	r16, g16, b16, a16 := p.Texture.At(tx, ty).RGBA()
	v := weightedValue(r16, g16, b16, a16, p.Weights)
	if p.InvertInside {
		v = 1 - v
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return v, nil
}

// texelIndex converts a UV coordinate to a texel index inside [lo, hi). The
// mask rect's max edge is inclusive and maps to hi exactly; reading there
// would leave the region, so the index clamps to the region's last texel.
func texelIndex(v, lo, hi float64) int {
	i := int(v)
	if last := int(hi) - 1; i > last {
		i = last
	}
	if first := int(lo); i < first {
		i = first
	}
	return i
}

// weightedValue converts a premultiplied 16-bit texel to straight alpha and
// applies the channel-weight dot product, mirroring the shaders.
func weightedValue(r16, g16, b16, a16 uint32, w Color) float64 {
	a := float64(a16) / 0xffff
	var r, g, b float64
	if a > 0 {
		r = float64(r16) / 0xffff / a
		g = float64(g16) / 0xffff / a
		b = float64(b16) / 0xffff / a
	}
	return r*w.R + g*w.G + b*w.B + a*w.A
}

// RaycastPass reports whether a world-space point passes the mask's raycast
// threshold. Sampling failures pass and warn once: input keeps working even
// when the mask cannot be read back.
func (m *Mask) RaycastPass(worldX, worldY float64) bool {
	v, err := m.SampleAt(worldX, worldY)
	if err != nil {
		m.warnings.warnOnce(
			warnKey{kind: warnUnreadableSample, image: m.params.Texture},
			"raycast sampling failed (%v); treating point as passing", err)
		return true
	}
	return v >= m.raycastThreshold
}
