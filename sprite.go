package softmask

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite describes a texture region with optional 9-slice metadata, as
// produced by the host's atlas pipeline.
type Sprite struct {
	// Image is the atlas page or standalone texture holding the sprite. It
	// must not be a SubImage: region selection goes through Rect, and the
	// mask shaders resolve the image origin themselves, so a sub-image's
	// offset would be applied twice.
	Image *ebiten.Image
	// Rect is the sub-rectangle within Image, in texels. A zero rect means
	// the full image bounds.
	Rect Rect
	// Border holds the 9-slice cut sizes in texels. Zero means no slicing.
	Border Border
	// PixelsPerUnit converts texels to the host's local-space units.
	// Zero or negative is treated as 1.
	PixelsPerUnit float64
	// Rotated marks regions stored 90 degrees rotated in their atlas page.
	// Such regions cannot be 9-sliced; sliced and tiled masks degrade to a
	// solid rectangle.
	Rotated bool
	// Trimmed marks regions whose transparent edges were cropped by the
	// packer. Trimmed regions cannot be 9-sliced either.
	Trimmed bool
}

// texelRect returns the sprite's region in texels, defaulting to the full
// image bounds when Rect is zero.
func (s Sprite) texelRect() Rect {
	if s.Rect.Width > 0 && s.Rect.Height > 0 {
		return s.Rect
	}
	if s.Image == nil {
		return Rect{}
	}
	b := s.Image.Bounds()
	return Rect{
		X:      float64(b.Min.X),
		Y:      float64(b.Min.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

// scale returns the texels-per-unit factor, defaulting to 1.
func (s Sprite) scale() float64 {
	if s.PixelsPerUnit > 0 {
		return s.PixelsPerUnit
	}
	return 1
}

// sliceable reports whether the sprite's 9-slice metadata is usable for
// border-mode math.
func (s Sprite) sliceable() bool {
	return !s.Rotated && !s.Trimmed
}

// whitePixel is a 1x1 opaque white image used as the solid-fill fallback
// texture (lazy, no sync.Once — softmask is single-threaded).
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}
