package softmask

import "github.com/hajimehoshi/ebiten/v2"

// Built-in Kage shaders for the default sprite pipeline, one per border mode.
// All shaders use //kage:unit pixels as required by Ebitengine. Ebitengine
// uses premultiplied alpha; the mask texel is un-premultiplied before the
// channel-weight dot product, and the (premultiplied) source color is scaled
// by the resulting mask value.
//
// Rect uniforms are packed as vec4(minX, minY, maxX, maxY). UV rects are in
// texels of the mask image (image 1). The per-pixel mapping must agree with
// XYToUV so raycast filtering matches what is rendered; change them together.

const simpleMaskShaderSrc = `//kage:unit pixels
package main

var MaskRect vec4
var MaskUVRect vec4
var ChannelWeights vec4
var WorldToMask [6]float
var InvertInside float
var InvertOutside float

func remapc(v, a, b, ua, ub float) float {
	d := b - a
	if d == 0 {
		return ua
	}
	t := clamp((v-a)/d, 0, 1)
	return ua + t*(ub-ua)
}

func maskValueAt(uv vec2) float {
	t := imageSrc1At(imageSrc1Origin() + uv)
	if t.a > 0 {
		t.rgb /= t.a
	}
	v := dot(t, ChannelWeights)
	return mix(v, 1.0-v, InvertInside)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src) * color
	px := WorldToMask[0]*dst.x + WorldToMask[2]*dst.y + WorldToMask[4]
	py := WorldToMask[1]*dst.x + WorldToMask[3]*dst.y + WorldToMask[5]
	if px < MaskRect.x || px > MaskRect.z || py < MaskRect.y || py > MaskRect.w {
		return c * InvertOutside
	}
	u := remapc(px, MaskRect.x, MaskRect.z, MaskUVRect.x, MaskUVRect.z)
	v := remapc(py, MaskRect.y, MaskRect.w, MaskUVRect.y, MaskUVRect.w)
	return c * maskValueAt(vec2(u, v))
}
`

const slicedMaskShaderSrc = `//kage:unit pixels
package main

var MaskRect vec4
var MaskUVRect vec4
var BorderRect vec4
var BorderUVRect vec4
var ChannelWeights vec4
var WorldToMask [6]float
var InvertInside float
var InvertOutside float

func remapc(v, a, b, ua, ub float) float {
	d := b - a
	if d == 0 {
		return ua
	}
	t := clamp((v-a)/d, 0, 1)
	return ua + t*(ub-ua)
}

func sliceAxis(v, lo, blo, bhi, hi, ulo, ublo, ubhi, uhi float) float {
	if v < blo {
		return remapc(v, lo, blo, ulo, ublo)
	}
	if v < bhi {
		return remapc(v, blo, bhi, ublo, ubhi)
	}
	return remapc(v, bhi, hi, ubhi, uhi)
}

func maskValueAt(uv vec2) float {
	t := imageSrc1At(imageSrc1Origin() + uv)
	if t.a > 0 {
		t.rgb /= t.a
	}
	v := dot(t, ChannelWeights)
	return mix(v, 1.0-v, InvertInside)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src) * color
	px := WorldToMask[0]*dst.x + WorldToMask[2]*dst.y + WorldToMask[4]
	py := WorldToMask[1]*dst.x + WorldToMask[3]*dst.y + WorldToMask[5]
	if px < MaskRect.x || px > MaskRect.z || py < MaskRect.y || py > MaskRect.w {
		return c * InvertOutside
	}
	u := sliceAxis(px, MaskRect.x, BorderRect.x, BorderRect.z, MaskRect.z,
		MaskUVRect.x, BorderUVRect.x, BorderUVRect.z, MaskUVRect.z)
	v := sliceAxis(py, MaskRect.y, BorderRect.y, BorderRect.w, MaskRect.w,
		MaskUVRect.y, BorderUVRect.y, BorderUVRect.w, MaskUVRect.w)
	return c * maskValueAt(vec2(u, v))
}
`

const tiledMaskShaderSrc = `//kage:unit pixels
package main

var MaskRect vec4
var MaskUVRect vec4
var BorderRect vec4
var BorderUVRect vec4
var TileRepeat vec2
var ChannelWeights vec4
var WorldToMask [6]float
var InvertInside float
var InvertOutside float

func remapc(v, a, b, ua, ub float) float {
	d := b - a
	if d == 0 {
		return ua
	}
	t := clamp((v-a)/d, 0, 1)
	return ua + t*(ub-ua)
}

func tileAxis(v, lo, blo, bhi, hi, ulo, ublo, ubhi, uhi, repeat float) float {
	if v < blo {
		return remapc(v, lo, blo, ulo, ublo)
	}
	if v < bhi {
		d := bhi - blo
		t := 0.0
		if d != 0 {
			t = (v - blo) / d
		}
		t = mod(t*repeat, 1.0)
		return ublo + t*(ubhi-ublo)
	}
	return remapc(v, bhi, hi, ubhi, uhi)
}

func maskValueAt(uv vec2) float {
	t := imageSrc1At(imageSrc1Origin() + uv)
	if t.a > 0 {
		t.rgb /= t.a
	}
	v := dot(t, ChannelWeights)
	return mix(v, 1.0-v, InvertInside)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src) * color
	px := WorldToMask[0]*dst.x + WorldToMask[2]*dst.y + WorldToMask[4]
	py := WorldToMask[1]*dst.x + WorldToMask[3]*dst.y + WorldToMask[5]
	if px < MaskRect.x || px > MaskRect.z || py < MaskRect.y || py > MaskRect.w {
		return c * InvertOutside
	}
	u := tileAxis(px, MaskRect.x, BorderRect.x, BorderRect.z, MaskRect.z,
		MaskUVRect.x, BorderUVRect.x, BorderUVRect.z, MaskUVRect.z, TileRepeat.x)
	v := tileAxis(py, MaskRect.y, BorderRect.y, BorderRect.w, MaskRect.w,
		MaskUVRect.y, BorderUVRect.y, BorderUVRect.w, MaskUVRect.w, TileRepeat.y)
	return c * maskValueAt(vec2(u, v))
}
`

// --- Lazy shader compilation (no sync.Once — softmask is single-threaded) ---

var (
	simpleMaskShader *ebiten.Shader
	slicedMaskShader *ebiten.Shader
	tiledMaskShader  *ebiten.Shader
)

func ensureSimpleMaskShader() *ebiten.Shader {
	if simpleMaskShader == nil {
		s, err := ebiten.NewShader([]byte(simpleMaskShaderSrc))
		if err != nil {
			panic("softmask: failed to compile simple mask shader: " + err.Error())
		}
		simpleMaskShader = s
	}
	return simpleMaskShader
}

func ensureSlicedMaskShader() *ebiten.Shader {
	if slicedMaskShader == nil {
		s, err := ebiten.NewShader([]byte(slicedMaskShaderSrc))
		if err != nil {
			panic("softmask: failed to compile sliced mask shader: " + err.Error())
		}
		slicedMaskShader = s
	}
	return slicedMaskShader
}

func ensureTiledMaskShader() *ebiten.Shader {
	if tiledMaskShader == nil {
		s, err := ebiten.NewShader([]byte(tiledMaskShaderSrc))
		if err != nil {
			panic("softmask: failed to compile tiled mask shader: " + err.Error())
		}
		tiledMaskShader = s
	}
	return tiledMaskShader
}

// maskShaderVariants builds the border-mode → shader table SpriteReplacer
// installs on its replacement materials.
func maskShaderVariants() map[BorderMode]*ebiten.Shader {
	return map[BorderMode]*ebiten.Shader{
		BorderModeSimple: ensureSimpleMaskShader(),
		BorderModeSliced: ensureSlicedMaskShader(),
		BorderModeTiled:  ensureTiledMaskShader(),
	}
}
