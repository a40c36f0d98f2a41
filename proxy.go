package softmask

import "github.com/hajimehoshi/ebiten/v2"

// ProxyState tracks a proxy through its lifecycle.
type ProxyState uint8

const (
	// ProxyAbsent means no proxy exists for the node.
	ProxyAbsent ProxyState = iota
	// ProxyPending means attachment is queued for the next drain.
	ProxyPending
	// ProxyAttached means the proxy holds (or declined) a replacement and
	// the node renders under the mask.
	ProxyAttached
)

// Proxy marks a descendant node as currently subject to an ancestor mask. It
// back-references its owning mask and holds the replacement material acquired
// for the node's graphic, if any strategy accepted it.
type Proxy struct {
	node        Node
	mask        *Mask
	state       ProxyState
	replacement *Material
}

// Node returns the scene node this proxy marks.
func (p *Proxy) Node() Node { return p.node }

// Mask returns the owning mask.
func (p *Proxy) Mask() *Mask { return p.mask }

// State returns the proxy's lifecycle state.
func (p *Proxy) State() ProxyState { return p.state }

// Replacement returns the replacement material applied to the node's
// graphic, or nil if every strategy declined (masking inactive for the node).
func (p *Proxy) Replacement() *Material { return p.replacement }

// NotifyMaterialChanged re-runs substitution after the author assigned a new
// material or texture to the node's graphic. The old replacement is released;
// the graphic's current material and texture go through the owning mask's
// cache like any first encounter.
func (p *Proxy) NotifyMaterialChanged() {
	if p.state != ProxyAttached {
		return
	}
	p.releaseReplacement()
	p.acquireReplacement()
}

func (p *Proxy) acquireReplacement() {
	g := p.node.Graphic()
	if g == nil {
		return
	}
	src := g.Material()
	var texture *ebiten.Image
	if s, ok := g.Sprite(); ok {
		texture = s.Image
	}
	rep := p.mask.GetReplacement(src, texture)
	if rep == nil {
		p.mask.warnings.warnOnce(
			warnKey{kind: warnUnsupportedMaterial, material: src},
			"no replacement strategy accepted material %p; masking inactive for this node", src)
		return
	}
	p.replacement = rep
	g.SetMaterialOverride(rep)
}

func (p *Proxy) releaseReplacement() {
	if p.replacement == nil {
		return
	}
	if p.node.Alive() {
		if g := p.node.Graphic(); g != nil {
			g.SetMaterialOverride(nil)
		}
	}
	p.mask.ReleaseReplacement(p.replacement)
	p.replacement = nil
}

// proxyManager maintains the proxy set for one mask. Attachment requests go
// through a batched FIFO queue rather than attaching immediately: other host
// systems may still be wiring up a freshly created node's renderable
// component within the same tick, and a proxy must never observe a graphic
// that does not exist yet. The queue is drained once per tick and once more
// right before the per-frame parameter push to catch late arrivals.
type proxyManager struct {
	mask    *Mask
	proxies map[Node]*Proxy
	pending []Node
}

func newProxyManager(m *Mask) proxyManager {
	return proxyManager{mask: m, proxies: make(map[Node]*Proxy)}
}

// schedule queues attachment for one node. Nodes that already carry a live
// proxy for this mask are skipped, so duplicate requests before a drain
// produce exactly one proxy.
func (pm *proxyManager) schedule(n Node) {
	if n == nil {
		return
	}
	if p, ok := pm.proxies[n]; ok && p.state != ProxyAbsent {
		return
	}
	pm.proxies[n] = &Proxy{node: n, mask: pm.mask, state: ProxyPending}
	pm.pending = append(pm.pending, n)
}

// scheduleSubtree queues attachment for every maskable node under root
// (root itself excluded when it is the mask's own node). Descent stops at
// disabled nodes and at nodes owning another active mask, which claims its
// own subtree.
func (pm *proxyManager) scheduleSubtree(root Node) {
	if root == nil || !root.Alive() || !root.Enabled() {
		return
	}
	for _, child := range root.Children() {
		pm.visitForSchedule(child)
	}
}

func (pm *proxyManager) visitForSchedule(n Node) {
	if n == nil || !n.Alive() || !n.Enabled() {
		return
	}
	if m, ok := activeMasks[n]; ok && m != pm.mask && m.Active() {
		return // nested mask owns this subtree
	}
	if n.Graphic() != nil {
		pm.schedule(n)
	}
	for _, child := range n.Children() {
		pm.visitForSchedule(child)
	}
}

// drain applies all queued attachments in FIFO order. Every request
// re-checks liveness of both the node and the owning mask first: either may
// have been destroyed between scheduling and draining, and the check subsumes
// cancellation.
func (pm *proxyManager) drain() {
	if len(pm.pending) == 0 {
		return
	}
	// Detach the queue instead of truncating it: attach callbacks may
	// re-enter schedule, and an append into the array still being iterated
	// would overwrite entries not yet visited.
	queue := pm.pending
	pm.pending = nil
	for _, n := range queue {
		p, ok := pm.proxies[n]
		if !ok || p.state != ProxyPending {
			continue // already attached or detached this tick
		}
		if !pm.mask.Alive() || !pm.mask.Active() || !n.Alive() {
			delete(pm.proxies, n)
			continue
		}
		if n.Graphic() == nil {
			delete(pm.proxies, n)
			continue
		}
		p.state = ProxyAttached
		p.acquireReplacement()
	}
}

// refresh recomputes the proxy set against the mask's current descendant
// coverage. Called on "mask might have changed" notifications (disable,
// destroy, configuration change, subtree moves); the manager never polls.
func (pm *proxyManager) refresh() {
	if !pm.mask.Alive() || !pm.mask.Active() {
		pm.detachAll()
		return
	}
	covered := map[Node]struct{}{}
	pm.collectCovered(covered, pm.mask.node)
	for n, p := range pm.proxies {
		if _, ok := covered[n]; !ok {
			pm.detach(p)
		}
	}
	for n := range covered {
		pm.schedule(n) // no-op for nodes already pending or attached
	}
}

func (pm *proxyManager) collectCovered(out map[Node]struct{}, root Node) {
	if root == nil || !root.Alive() || !root.Enabled() {
		return
	}
	for _, child := range root.Children() {
		pm.visitForCover(out, child)
	}
}

func (pm *proxyManager) visitForCover(out map[Node]struct{}, n Node) {
	if n == nil || !n.Alive() || !n.Enabled() {
		return
	}
	if m, ok := activeMasks[n]; ok && m != pm.mask && m.Active() {
		return
	}
	if n.Graphic() != nil {
		out[n] = struct{}{}
	}
	for _, child := range n.Children() {
		pm.visitForCover(out, child)
	}
}

// detach returns a proxy to ProxyAbsent, restoring the author's material and
// releasing the replacement reference.
func (pm *proxyManager) detach(p *Proxy) {
	if p.state == ProxyAttached {
		p.releaseReplacement()
	}
	p.state = ProxyAbsent
	delete(pm.proxies, p.node)
}

// detachAll detaches every proxy. The pending queue is dropped too; queued
// nodes were never attached.
func (pm *proxyManager) detachAll() {
	for _, p := range pm.proxies {
		pm.detach(p)
	}
	pm.pending = nil
}

// proxyFor returns the live proxy for a node, or nil.
func (pm *proxyManager) proxyFor(n Node) *Proxy {
	return pm.proxies[n]
}
