package softmask

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewNilNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil, ...) should panic")
		}
	}()
	New(nil, acceptAllChain())
}

func TestActivateIsIdempotent(t *testing.T) {
	root := newTestNode()
	child := newTestGraphicNode()
	root.addChild(child)
	m := New(root, acceptAllChain())
	t.Cleanup(m.Destroy)

	m.Activate()
	m.Activate()
	m.Tick()
	if m.cache.size() != 1 {
		t.Errorf("double activation created %d cache entries, want 1", m.cache.size())
	}
}

func TestCleanTickSkipsRecompute(t *testing.T) {
	root := newTestNode()
	m := New(root, acceptAllChain())
	t.Cleanup(m.Destroy)
	m.SetSprite(Sprite{}) // no image: solid fallback
	m.Activate()
	m.Tick()

	if m.Parameters().MaskRect.Width != 100 {
		t.Fatalf("mask rect = %v, want node rect", m.Parameters().MaskRect)
	}

	// The node's rect changes, but without Invalidate the mask must keep
	// serving the stored parameters.
	root.rect = Rect{Width: 40, Height: 40}
	m.Tick()
	if m.Parameters().MaskRect.Width != 100 {
		t.Error("clean tick must not recompute")
	}

	m.Invalidate()
	m.Tick()
	if m.Parameters().MaskRect.Width != 40 {
		t.Error("Invalidate should force a recompute on the next tick")
	}
}

func TestSolidFallbackWhenSourceMissing(t *testing.T) {
	root := newTestNode() // no graphic at all
	m := New(root, acceptAllChain())
	t.Cleanup(m.Destroy)
	m.SetBorderMode(BorderModeSliced)
	m.Activate()
	m.Tick()

	p := m.Parameters()
	if p.Texture == nil {
		t.Fatal("solid fallback should still carry a texture")
	}
	if p.BorderMode != BorderModeSimple {
		t.Error("solid fallback should degrade to simple mode")
	}
}

func TestDegradedSpriteFallsBackToSolid(t *testing.T) {
	root := newTestNode()
	m := New(root, acceptAllChain())
	t.Cleanup(m.Destroy)
	m.SetBorderMode(BorderModeSliced)
	m.SetSprite(Sprite{
		Image:   ebiten.NewImage(8, 8),
		Border:  Border{Left: 2, Top: 2, Right: 2, Bottom: 2},
		Rotated: true, // packed rotated: 9-slice math is impossible
	})
	m.Activate()
	m.Tick()

	p := m.Parameters()
	if p.BorderMode != BorderModeSimple {
		t.Error("rotated sprite with sliced mode should degrade to simple")
	}
	if p.Texture != whitePixel {
		t.Error("degraded source should use the solid-fill texture")
	}
}

func TestSlicedParametersFromSprite(t *testing.T) {
	root := newTestNode() // 100x100 local rect
	m := New(root, acceptAllChain())
	t.Cleanup(m.Destroy)
	m.SetBorderMode(BorderModeSliced)
	m.SetSprite(Sprite{
		Image:  ebiten.NewImage(30, 30),
		Border: Border{Left: 10, Top: 10, Right: 10, Bottom: 10},
	})
	m.Activate()
	m.Tick()

	p := m.Parameters()
	if p.BorderMode != BorderModeSliced {
		t.Fatalf("border mode = %d, want sliced", p.BorderMode)
	}
	if p.BorderRect != (Rect{X: 10, Y: 10, Width: 80, Height: 80}) {
		t.Errorf("border rect = %v", p.BorderRect)
	}
	if p.BorderUVRect != (Rect{X: 10, Y: 10, Width: 10, Height: 10}) {
		t.Errorf("border uv rect = %v", p.BorderUVRect)
	}
}

func TestTiledParametersComputeRepeat(t *testing.T) {
	root := newTestNode()
	m := New(root, acceptAllChain())
	t.Cleanup(m.Destroy)
	m.SetBorderMode(BorderModeTiled)
	m.SetSprite(Sprite{
		Image:  ebiten.NewImage(30, 30),
		Border: Border{Left: 10, Top: 10, Right: 10, Bottom: 10},
	})
	m.Activate()
	m.Tick()

	p := m.Parameters()
	// Target interior 80 local units over a 10-texel source interior.
	if p.TileRepeat.X != 8 || p.TileRepeat.Y != 8 {
		t.Errorf("tile repeat = %v, want (8, 8)", p.TileRepeat)
	}
}

func TestOverlappingBordersNeverProduceNegativeRect(t *testing.T) {
	root := newTestNode()
	root.rect = Rect{Width: 10, Height: 10}
	m := New(root, acceptAllChain())
	t.Cleanup(m.Destroy)
	m.SetBorderMode(BorderModeSliced)
	m.SetSprite(Sprite{
		Image:  ebiten.NewImage(30, 30),
		Border: Border{Left: 10, Top: 10, Right: 10, Bottom: 10},
	})
	m.Activate()
	m.Tick()

	p := m.Parameters()
	if p.BorderRect.Width < 0 || p.BorderRect.Height < 0 {
		t.Errorf("border rect has negative extent: %v", p.BorderRect)
	}
	// 10+10 texel borders over a 10-unit rect scale to 5+5.
	if p.BorderRect.X != 5 || p.BorderRect.Width != 0 {
		t.Errorf("border rect = %v, want degenerate interior at x=5", p.BorderRect)
	}
}

func TestPreserveAspectShrinksMaskRect(t *testing.T) {
	root := newTestNode()
	root.rect = Rect{Width: 200, Height: 100}
	m := New(root, acceptAllChain())
	t.Cleanup(m.Destroy)
	m.SetSprite(Sprite{Image: ebiten.NewImage(16, 16)})
	m.SetPreserveAspect(true)
	m.Activate()
	m.Tick()

	p := m.Parameters()
	if p.MaskRect.Width != 100 || p.MaskRect.X != 50 {
		t.Errorf("mask rect = %v, want width 100 centered at x=50", p.MaskRect)
	}
}

func TestBeforeRenderPushesParameters(t *testing.T) {
	m, _, child := buildMaskedTree(t)
	m.BeforeRender()

	u := child.graphic.override.Uniforms
	for _, key := range []string{"MaskRect", "MaskUVRect", "ChannelWeights", "WorldToMask", "InvertInside", "InvertOutside"} {
		if _, ok := u[key]; !ok {
			t.Errorf("missing uniform %q after BeforeRender", key)
		}
	}
	// Simple mode: no border or tiling uniforms.
	for _, key := range []string{"BorderRect", "BorderUVRect", "TileRepeat"} {
		if _, ok := u[key]; ok {
			t.Errorf("uniform %q must be absent in simple mode", key)
		}
	}
}

func TestBeforeRenderDrainsLateArrivals(t *testing.T) {
	m, root, _ := buildMaskedTree(t)
	late := newTestGraphicNode()
	root.addChild(late)
	m.NotifyChildAdded(late) // after Tick already ran this frame

	m.BeforeRender()
	p := m.ProxyFor(late)
	if p == nil || p.State() != ProxyAttached {
		t.Fatal("late attachment request should drain before the parameter push")
	}
	if late.graphic.override == nil || late.graphic.override.Uniforms["MaskRect"] == nil {
		t.Error("late proxy should receive parameters in the same frame")
	}
}

func TestDeactivateDestroysEverything(t *testing.T) {
	m, _, child := buildMaskedTree(t)
	rep := m.ProxyFor(child).Replacement()

	m.Deactivate()
	if m.cache.size() != 0 {
		t.Error("no replacement entry may survive deactivation")
	}
	if !rep.destroyed {
		t.Error("replacements must be force-destroyed")
	}
	if m.ProxyFor(child) != nil {
		t.Error("proxies must transition to absent")
	}
	if child.graphic.override != nil {
		t.Error("author's material must be restored")
	}
	if m.GetReplacement(nil, nil) != nil {
		t.Error("inactive masks must not hand out replacements")
	}
}

func TestDestroyAnswersLiveness(t *testing.T) {
	m, _, _ := buildMaskedTree(t)
	if !m.Alive() {
		t.Fatal("fresh mask should be alive")
	}
	m.Destroy()
	if m.Alive() {
		t.Error("destroyed mask must report not alive")
	}
	if m.Active() {
		t.Error("destroyed mask must not be active")
	}
}

func TestNearestMask(t *testing.T) {
	root := newTestNode()
	mid := newTestNode()
	leaf := newTestGraphicNode()
	root.addChild(mid)
	mid.addChild(leaf)

	m := New(root, acceptAllChain())
	t.Cleanup(m.Destroy)
	if NearestMask(leaf) != nil {
		t.Error("inactive masks are not found")
	}
	m.Activate()
	if NearestMask(leaf) != m {
		t.Error("leaf should find the active ancestor mask")
	}
	if NearestMask(root) != nil {
		t.Error("a mask node's own mask does not mask itself")
	}
}
