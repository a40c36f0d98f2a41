package softmask

import "github.com/hajimehoshi/ebiten/v2"

// SourceKind selects what image defines the mask.
type SourceKind uint8

const (
	// SourceGraphic derives the mask image from the mask node's own graphic.
	SourceGraphic SourceKind = iota
	// SourceSprite uses an explicitly assigned sprite.
	SourceSprite
	// SourceTexture uses an explicitly assigned texture with an optional
	// texel sub-rect.
	SourceTexture
)

// Mask masks every renderable descendant of the node it is bound to. The
// host drives it through four phases: Activate when the node becomes
// enabled, Tick once per update, BeforeRender after layout and before draw
// submission, and Deactivate on disable or destroy.
//
// All state is single-threaded; every method must be called from the host's
// update loop.
type Mask struct {
	node  Node
	chain *Chain

	// Configuration.
	kind             SourceKind
	sprite           Sprite
	texture          *ebiten.Image
	textureRect      Rect
	borderMode       BorderMode
	channel          Channel
	customWeights    Color
	invertInside     bool
	invertOutside    bool
	preserveAspect   bool
	raycastThreshold float64

	// Derived state.
	params   Parameters
	dirty    bool
	active   bool
	alive    bool
	cache    substitutionCache
	proxies  proxyManager
	warnings warnSet
}

// New creates a mask bound to the given node. A nil chain uses the default
// registry's chain. Panics if node is nil.
func New(node Node, chain *Chain) *Mask {
	if node == nil {
		panic("softmask: cannot bind a mask to a nil node")
	}
	if chain == nil {
		chain = DefaultChain()
	}
	m := &Mask{
		node:     node,
		chain:    chain,
		channel:  ChannelAlpha,
		dirty:    true,
		alive:    true,
		warnings: make(warnSet),
	}
	m.cache = newSubstitutionCache(chain)
	m.proxies = newProxyManager(m)
	return m
}

// Node returns the node the mask is bound to.
func (m *Mask) Node() Node { return m.node }

// Alive reports whether the mask still exists. It answers truthfully even
// while destruction is in progress, so deferred proxy work can bail out.
func (m *Mask) Alive() bool { return m.alive }

// Active reports whether the mask is currently masking its subtree.
func (m *Mask) Active() bool { return m.active }

// Parameters returns the last computed parameter block.
func (m *Mask) Parameters() Parameters { return m.params }

// ProxyFor returns the mask's proxy for a descendant node, or nil.
func (m *Mask) ProxyFor(n Node) *Proxy { return m.proxies.proxyFor(n) }

// --- Configuration ---

// invalidateConfig marks derived state stale after a source or mode change
// and resets warning dedup: a changed configuration warns afresh. Changes
// that cannot alter which configuration offends (weights, inversion) only
// set the dirty flag.
func (m *Mask) invalidateConfig() {
	m.dirty = true
	clear(m.warnings)
}

// SetSourceGraphic derives the mask image from the mask node's own graphic.
func (m *Mask) SetSourceGraphic() {
	m.kind = SourceGraphic
	m.invalidateConfig()
}

// SetSprite masks with an explicit sprite.
func (m *Mask) SetSprite(s Sprite) {
	m.kind = SourceSprite
	m.sprite = s
	m.invalidateConfig()
}

// SetTexture masks with an explicit texture. rect selects a texel sub-rect;
// a zero rect uses the full image bounds. img must not be a SubImage; select
// regions with rect.
func (m *Mask) SetTexture(img *ebiten.Image, rect Rect) {
	m.kind = SourceTexture
	m.texture = img
	m.textureRect = rect
	m.invalidateConfig()
}

// SetBorderMode selects simple, sliced, or tiled mapping. Unknown values
// degrade to simple.
func (m *Mask) SetBorderMode(mode BorderMode) {
	m.borderMode = mode.normalized()
	m.invalidateConfig()
}

// SetChannel selects which texel channel produces the mask value.
func (m *Mask) SetChannel(c Channel) {
	m.channel = c
	m.dirty = true
}

// SetWeights sets a custom channel-weight color and switches the mask to
// ChannelCustom.
func (m *Mask) SetWeights(w Color) {
	m.channel = ChannelCustom
	m.customWeights = w
	m.dirty = true
}

// Weights returns the effective channel-weight color.
func (m *Mask) Weights() Color {
	if m.channel == ChannelCustom {
		return m.customWeights
	}
	return m.channel.Weights()
}

// SetInvertInside inverts the mask value inside the mask rect.
func (m *Mask) SetInvertInside(invert bool) {
	m.invertInside = invert
	m.dirty = true
}

// SetInvertOutside makes the area outside the mask rect visible instead of
// hidden.
func (m *Mask) SetInvertOutside(invert bool) {
	m.invertOutside = invert
	m.dirty = true
}

// SetPreserveAspect keeps the mask image's aspect ratio by shrinking the
// longer axis of the mask rect. Only meaningful in simple border mode.
func (m *Mask) SetPreserveAspect(preserve bool) {
	m.preserveAspect = preserve
	m.dirty = true
}

// SetRaycastThreshold sets the minimum sampled mask value for RaycastPass to
// report a hit. Zero (the default) passes everything inside the mask.
func (m *Mask) SetRaycastThreshold(threshold float64) {
	m.raycastThreshold = threshold
}

// RaycastThreshold returns the current threshold.
func (m *Mask) RaycastThreshold() float64 { return m.raycastThreshold }

// Invalidate marks the mask's derived state stale. The host calls it when
// the mask node's rect or transform changed, or when the underlying
// graphic's content changed. The next Tick or BeforeRender recomputes.
func (m *Mask) Invalidate() {
	m.dirty = true
}

// --- Lifecycle phases ---

// Activate starts masking the node's subtree. Proxy attachment for existing
// descendants is queued, not immediate; the queue drains on the next Tick.
func (m *Mask) Activate() {
	if !m.alive || m.active {
		return
	}
	m.active = true
	m.dirty = true
	activeMasks[m.node] = m
	m.proxies.scheduleSubtree(m.node)
	debugf("mask %p activated", m)
}

// Deactivate stops masking: every replacement entry is force-destroyed and
// the proxy set is re-evaluated, detaching all proxies and restoring the
// authors' materials.
func (m *Mask) Deactivate() {
	if !m.active {
		return
	}
	m.active = false
	delete(activeMasks, m.node)
	m.cache.destroyAllAndClear()
	m.proxies.refresh()
	debugf("mask %p deactivated", m)
}

// Destroy deactivates the mask and marks it dead. Pending proxy work checks
// Alive and bails out; a destroyed mask never touches the scene again.
func (m *Mask) Destroy() {
	m.Deactivate()
	m.alive = false
}

// Tick drains the proxy attach queue and recomputes parameters if dirty.
// Call once per update tick.
func (m *Mask) Tick() {
	if !m.alive || !m.active {
		return
	}
	m.proxies.drain()
	if m.dirty {
		m.recompute()
	}
}

// BeforeRender performs the final per-frame push: a second queue drain for
// attachment requests that arrived after Tick, a recompute if still dirty,
// and a parameter write into every live replacement material. On clean
// frames the stored parameters are simply reapplied, so masking stays
// consistent however often the host calls this.
func (m *Mask) BeforeRender() {
	if !m.alive || !m.active {
		return
	}
	m.proxies.drain()
	if m.dirty {
		m.recompute()
	}
	m.cache.applyAll(&m.params)
}

// --- Scene-graph notifications ---

// NotifyChildAdded queues proxy attachment for a node (and its descendants)
// that appeared under the mask this tick.
func (m *Mask) NotifyChildAdded(n Node) {
	if !m.alive || !m.active {
		return
	}
	m.proxies.visitForSchedule(n)
}

// UpdateProxySet re-evaluates proxy attachment after a change that could add
// or remove coverage (subtree moved, nodes disabled, nested mask toggled).
// The whole proxy set is walked; root is accepted for interface symmetry
// with hosts that track change scopes but does not narrow the walk.
func (m *Mask) UpdateProxySet(root Node) {
	_ = root
	m.proxies.refresh()
}

// --- Replacement contract (called by proxies) ---

// GetReplacement returns the cached replacement for a source material,
// building one on first sight. texture is the requesting graphic's own
// texture; default-pipeline sources (nil material) substitute per texture and
// the replacement carries it in image slot 0. Nil means every strategy
// declined; the caller keeps the original material.
func (m *Mask) GetReplacement(src *Material, texture *ebiten.Image) *Material {
	if !m.alive || !m.active {
		return nil
	}
	return m.cache.get(src, texture)
}

// ReleaseReplacement returns a replacement obtained from GetReplacement.
// The entry is destroyed when its last holder releases.
func (m *Mask) ReleaseReplacement(rep *Material) {
	m.cache.release(rep)
}

// recompute resolves the mask source and rebuilds the parameter block. The
// previous block is replaced wholesale.
func (m *Mask) recompute() {
	desc := m.resolveSource()
	m.params = m.buildParameters(desc)
	m.dirty = false
	debugf("mask %p recomputed: mode=%d solid=%t", m, m.params.BorderMode, desc.solid)
}
