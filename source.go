package softmask

import "github.com/hajimehoshi/ebiten/v2"

// sourceDescriptor is the resolved, mode-tagged view of "what image defines
// the mask this frame". It is rebuilt on every dirty cycle and never
// persisted; Parameters is the durable product.
type sourceDescriptor struct {
	texture *ebiten.Image
	rect    Rect    // texel rect within texture
	border  Border  // 9-slice border, texels
	scale   float64 // texels per local unit
	solid   bool    // full-rect solid-fill fallback
}

// solidDescriptor is the degraded fallback: a full-rect solid fill. Masking
// still functions, just as an unshaped rectangle.
func solidDescriptor() sourceDescriptor {
	return sourceDescriptor{
		texture: ensureWhitePixel(),
		rect:    Rect{Width: 1, Height: 1},
		scale:   1,
		solid:   true,
	}
}

// resolveSource builds the source descriptor for the mask's configured
// source kind. Missing images and sprites that cannot satisfy the border
// mode degrade to a solid fill with a one-time warning instead of failing.
func (m *Mask) resolveSource() sourceDescriptor {
	switch m.kind {
	case SourceSprite:
		return m.descriptorFromSprite(m.sprite)
	case SourceTexture:
		if m.texture == nil {
			return solidDescriptor()
		}
		rect := m.textureRect
		if rect.Width <= 0 || rect.Height <= 0 {
			b := m.texture.Bounds()
			rect = Rect{
				X:      float64(b.Min.X),
				Y:      float64(b.Min.Y),
				Width:  float64(b.Dx()),
				Height: float64(b.Dy()),
			}
		}
		return sourceDescriptor{texture: m.texture, rect: rect, scale: 1}
	}
	// SourceGraphic (and any unknown kind): read the mask node's own graphic.
	g := m.node.Graphic()
	if g == nil {
		return solidDescriptor()
	}
	sprite, ok := g.Sprite()
	if !ok {
		return solidDescriptor()
	}
	return m.descriptorFromSprite(sprite)
}

func (m *Mask) descriptorFromSprite(s Sprite) sourceDescriptor {
	if s.Image == nil {
		return solidDescriptor()
	}
	if m.borderMode != BorderModeSimple && !s.sliceable() {
		m.warnings.warnOnce(
			warnKey{kind: warnDegradedSprite, image: s.Image},
			"sprite region is rotated or trimmed and cannot be 9-sliced; masking degrades to a solid rectangle")
		return solidDescriptor()
	}
	return sourceDescriptor{
		texture: s.Image,
		rect:    s.texelRect(),
		border:  s.Border,
		scale:   s.scale(),
	}
}

// buildParameters runs the geometry engine over the resolved source and the
// mask node's current rect and transform.
func (m *Mask) buildParameters(desc sourceDescriptor) Parameters {
	mode := m.borderMode.normalized()
	if desc.solid {
		mode = BorderModeSimple
	}

	maskRect := m.node.LocalRect()
	if m.preserveAspect && mode == BorderModeSimple && !desc.solid {
		content := Vec2{
			X: desc.rect.Width / desc.scale,
			Y: desc.rect.Height / desc.scale,
		}
		maskRect = PreserveAspectRatio(maskRect, content)
	}

	// Border sizes come from the source in texels; convert to the mask's
	// local units, then scale down overlapping pairs.
	localBorder := Border{
		Left:   desc.border.Left / desc.scale,
		Top:    desc.border.Top / desc.scale,
		Right:  desc.border.Right / desc.scale,
		Bottom: desc.border.Bottom / desc.scale,
	}
	localBorder = AdjustBorders(localBorder, maskRect)
	borderRect := ApplyBorder(maskRect, localBorder)

	uvRect := desc.rect
	uvBorderRect := ApplyBorder(desc.rect, desc.border)

	repeat := Vec2{X: 1, Y: 1}
	if mode == BorderModeTiled {
		repeat = MaskRepeat(desc.rect, desc.border, borderRect, desc.scale)
	}

	return Parameters{
		Texture:       desc.texture,
		MaskRect:      maskRect,
		MaskUVRect:    uvRect,
		BorderRect:    borderRect,
		BorderUVRect:  uvBorderRect,
		TileRepeat:    repeat,
		WorldToMask:   invertAffine(m.node.WorldTransform()),
		Weights:       m.Weights(),
		InvertInside:  m.invertInside,
		InvertOutside: m.invertOutside,
		BorderMode:    mode,
	}
}
