package softmask

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RevealTween animates a mask's channel weights toward a target color over
// time, producing reveal/conceal effects without touching descendants. Call
// Update(dt) each frame; the tween marks the mask dirty so the next
// BeforeRender pushes fresh weights. If the mask is destroyed mid-flight the
// tween stops immediately.
//
// There is no global animation manager — hosts call Update themselves.
type RevealTween struct {
	mask   *Mask
	tweens [4]*gween.Tween
	Done   bool
}

// NewRevealTween creates a tween from the mask's current effective weights
// to the given target, over duration seconds with the given easing function.
func NewRevealTween(m *Mask, to Color, duration float32, fn ease.TweenFunc) *RevealTween {
	from := m.Weights()
	t := &RevealTween{mask: m}
	t.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	t.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	t.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	t.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	return t
}

// Update advances the tween by dt seconds and writes the interpolated
// weights to the mask. Finished or dead-mask tweens set Done and do nothing.
func (t *RevealTween) Update(dt float32) {
	if t.Done {
		return
	}
	if !t.mask.Alive() {
		t.Done = true
		return
	}
	var w Color
	allDone := true
	fields := [4]*float64{&w.R, &w.G, &w.B, &w.A}
	for i, tw := range t.tweens {
		val, finished := tw.Update(dt)
		*fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.mask.SetWeights(w)
	t.Done = allDone
}
