package softmask

// Node is the surface softmask needs from a host scene-graph node. The host
// implements it over its own node type; softmask never stores scene state of
// its own beyond proxy markers keyed by Node.
//
// Node values are used as map keys, so the host must implement the interface
// with a comparable type (typically a pointer to its node struct) and hand
// softmask the same value for the same node every time.
type Node interface {
	// Alive reports whether the node still exists. Deferred proxy work
	// re-checks this before acting; it must stay truthful once the node
	// enters teardown.
	Alive() bool
	// Enabled reports whether the node is active in the hierarchy. Disabled
	// subtrees are not masked.
	Enabled() bool
	Parent() Node
	Children() []Node
	// LocalRect is the node's rectangle in its own coordinate space. For a
	// mask node this is the mask rect the mask image maps onto.
	LocalRect() Rect
	// WorldTransform is the node's local-to-world affine matrix in the
	// [a, b, c, d, tx, ty] layout.
	WorldTransform() [6]float64
	// Graphic returns the node's renderable content, or nil for pure
	// containers.
	Graphic() Graphic
}

// Graphic is a node's renderable content.
type Graphic interface {
	// Material returns the author-assigned material. Nil means the host's
	// default sprite pipeline.
	Material() *Material
	// SetMaterialOverride makes the graphic render with the given material
	// instead of the author's. Nil restores the author's material. Only
	// softmask proxies call this; the author-assigned material is never
	// touched.
	SetMaterialOverride(m *Material)
	// Sprite returns the graphic's current sprite, or ok=false if the
	// graphic has no texture content.
	Sprite() (s Sprite, ok bool)
}

// activeMasks tracks which nodes currently own an active mask, so subtree
// walks can stop at nested masks and hit testing can find the nearest
// enclosing mask. Plain map, no lock — softmask is single-threaded.
var activeMasks = map[Node]*Mask{}

// NearestMask walks a node's ancestors and returns the closest enabled
// ancestor that owns an active mask, or nil. The node's own mask (if any)
// does not count: a mask masks its descendants, not itself.
func NearestMask(n Node) *Mask {
	if n == nil {
		return nil
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if !p.Enabled() {
			continue
		}
		if m, ok := activeMasks[p]; ok && m.Active() {
			return m
		}
	}
	return nil
}
