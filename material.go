package softmask

import "github.com/hajimehoshi/ebiten/v2"

// Material describes how a graphic is drawn: a Kage shader plus its uniform
// values and source images. Images[0] is the graphic's own texture; for
// replacements built over the default sprite pipeline the owning mask's cache
// fills it from the graphic's sprite. softmask writes the mask texture into
// Images[1] of replacement materials, so custom shaders handled by a Replacer
// must keep image slot 1 free.
//
// Materials assigned by the application author are never mutated by softmask;
// parameter pushes only ever touch replacement materials owned by a mask's
// cache.
type Material struct {
	Shader   *ebiten.Shader
	Images   [4]*ebiten.Image
	Uniforms map[string]any

	// Variants optionally maps border modes to shader variants. When present
	// on a replacement material, each parameter push swaps Shader to the
	// variant matching the mask's current border mode, so exactly one
	// border-mode variant is ever active.
	Variants map[BorderMode]*ebiten.Shader

	destroyed bool
}

// Draw submits vertices with this material using DrawTrianglesShader.
// Vertices use the usual Ebitengine convention: DstX/DstY in destination
// pixels, SrcX/SrcY in texels of Images[0].
func (m *Material) Draw(dst *ebiten.Image, vertices []ebiten.Vertex, indices []uint16) {
	if m.Shader == nil {
		return
	}
	op := ebiten.DrawTrianglesShaderOptions{Uniforms: m.Uniforms}
	op.Images = m.Images
	dst.DrawTrianglesShader(vertices, indices, m.Shader, &op)
}

// destroy releases the material's references. Only the owning cache calls
// this; shaders are shared singletons and are not deallocated here.
func (m *Material) destroy() {
	m.destroyed = true
	m.Shader = nil
	m.Images = [4]*ebiten.Image{}
	m.Uniforms = nil
	m.Variants = nil
}

// Parameters is the render-ready block computed from a mask's configuration
// and resolved source. Exactly one instance exists per mask per recompute; it
// is replaced wholesale on the next recompute and pushed into every live
// replacement material.
type Parameters struct {
	Texture       *ebiten.Image
	MaskRect      Rect // mask-local space
	MaskUVRect    Rect // texels of Texture
	BorderRect    Rect // mask-local space; sliced and tiled modes only
	BorderUVRect  Rect // texels of Texture; sliced and tiled modes only
	TileRepeat    Vec2 // tiled mode only
	WorldToMask   [6]float64
	Weights       Color
	InvertInside  bool
	InvertOutside bool
	BorderMode    BorderMode
}

// rectUniform packs a rect as vec4(minX, minY, maxX, maxY) for the shaders.
func rectUniform(r Rect) []float32 {
	return []float32{float32(r.X), float32(r.Y), float32(r.MaxX()), float32(r.MaxY())}
}

func boolUniform(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// writeTo pushes the parameter block into a replacement material: mask
// texture into image slot 1, the shader variant for the current border mode,
// and the uniform set that variant declares. Border uniforms are only present
// for sliced and tiled modes, and the tile-repeat vector only for tiled, so
// the uniform map always matches the active shader's declarations.
func (p *Parameters) writeTo(m *Material) {
	if m.destroyed {
		return
	}
	mode := p.BorderMode.normalized()
	if m.Variants != nil {
		if s, ok := m.Variants[mode]; ok {
			m.Shader = s
		}
	}
	m.Images[1] = p.Texture

	u := m.Uniforms
	if u == nil {
		u = make(map[string]any, 9)
		m.Uniforms = u
	}
	clear(u)
	u["MaskRect"] = rectUniform(p.MaskRect)
	u["MaskUVRect"] = rectUniform(p.MaskUVRect)
	u["ChannelWeights"] = []float32{
		float32(p.Weights.R), float32(p.Weights.G),
		float32(p.Weights.B), float32(p.Weights.A),
	}
	w := p.WorldToMask
	u["WorldToMask"] = []float32{
		float32(w[0]), float32(w[1]), float32(w[2]),
		float32(w[3]), float32(w[4]), float32(w[5]),
	}
	u["InvertInside"] = boolUniform(p.InvertInside)
	u["InvertOutside"] = boolUniform(p.InvertOutside)
	if mode != BorderModeSimple {
		u["BorderRect"] = rectUniform(p.BorderRect)
		u["BorderUVRect"] = rectUniform(p.BorderUVRect)
	}
	if mode == BorderModeTiled {
		u["TileRepeat"] = []float32{float32(p.TileRepeat.X), float32(p.TileRepeat.Y)}
	}
}
