package softmask

import "sort"

// Replacer is a material replacement strategy. Replace returns a new
// mask-capable material equivalent to m, or nil to decline. The source
// material may itself be nil, which denotes the host's default sprite
// pipeline (no explicit material assigned).
//
// Replace must never mutate or return the source material; replacements are
// owned and destroyed by the requesting mask's cache.
type Replacer interface {
	// Order determines evaluation position within a chain; lower runs first.
	Order() int
	Replace(m *Material) *Material
}

// Chain evaluates an ordered sequence of replacers: ascending Order, first
// non-nil result wins. A Chain is itself a Replacer whose Order is the
// minimum order among its members, so chains nest.
//
// Members are sorted once at construction with a stable sort, so replacers
// with equal Order keep their registration order. Callers relying on
// tie-breaking must not reorder members between registries.
type Chain struct {
	replacers []Replacer
}

// NewChain builds a chain from the given replacers. Nil replacers panic.
func NewChain(replacers ...Replacer) *Chain {
	c := &Chain{replacers: make([]Replacer, 0, len(replacers))}
	for _, r := range replacers {
		if r == nil {
			panic("softmask: nil replacer in chain")
		}
		c.replacers = append(c.replacers, r)
	}
	sort.SliceStable(c.replacers, func(i, j int) bool {
		return c.replacers[i].Order() < c.replacers[j].Order()
	})
	return c
}

// Order returns the minimum order among members, or 0 for an empty chain.
func (c *Chain) Order() int {
	if len(c.replacers) == 0 {
		return 0
	}
	return c.replacers[0].Order()
}

// Replace returns the first member's non-nil replacement, or nil if every
// member declines. A nil result is a normal outcome: masking simply stays
// inactive for that material.
func (c *Chain) Replace(m *Material) *Material {
	for _, r := range c.replacers {
		if out := r.Replace(m); out != nil {
			return out
		}
	}
	return nil
}

// Handle identifies a registration within a Registry and can be passed to
// Unregister.
type Handle int

// Registry collects replacement strategies the host registers at startup.
// Registration order is significant: replacers with equal Order are evaluated
// in the order they were registered.
type Registry struct {
	items   []Replacer
	handles []Handle
	next    Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a replacer and returns a handle for later removal.
// Panics if r is nil; the check happens at registration time, not at first
// use.
func (g *Registry) Register(r Replacer) Handle {
	if r == nil {
		panic("softmask: cannot register nil replacer")
	}
	g.next++
	g.items = append(g.items, r)
	g.handles = append(g.handles, g.next)
	return g.next
}

// Unregister removes the replacer registered under h. Unknown handles are
// ignored. Chains built before the call are unaffected.
func (g *Registry) Unregister(h Handle) {
	for i, have := range g.handles {
		if have == h {
			g.items = append(g.items[:i], g.items[i+1:]...)
			g.handles = append(g.handles[:i], g.handles[i+1:]...)
			return
		}
	}
}

// Chain builds a sorted snapshot of the current registrations. Later
// registrations do not affect previously built chains.
func (g *Registry) Chain() *Chain {
	return NewChain(g.items...)
}

// defaultRegistry backs the package-level Register/DefaultChain convenience
// functions. Masks created with a nil chain use it.
var defaultRegistry = NewRegistry()

// Register adds a replacer to the default registry.
func Register(r Replacer) Handle {
	return defaultRegistry.Register(r)
}

// Unregister removes a replacer from the default registry.
func Unregister(h Handle) {
	defaultRegistry.Unregister(h)
}

// DefaultChain builds a chain from the default registry's current
// registrations.
func DefaultChain() *Chain {
	return defaultRegistry.Chain()
}

// SpriteReplacer replaces the host's default sprite pipeline (a nil material,
// or a material with no shader) with the built-in mask shaders. Materials
// carrying a custom shader are declined: softmask cannot know how to graft
// mask sampling onto an unknown rendering technique.
type SpriteReplacer struct{}

// Order returns 0, placing the sprite replacer after negative-order custom
// strategies and before positive-order fallbacks.
func (SpriteReplacer) Order() int { return 0 }

// Replace builds a fresh replacement material with the three border-mode
// shader variants installed. The source's images carry over so the graphic's
// own texture stays in slot 0.
func (SpriteReplacer) Replace(m *Material) *Material {
	if m != nil && m.Shader != nil {
		return nil
	}
	out := &Material{
		Variants: maskShaderVariants(),
		Uniforms: make(map[string]any, 9),
	}
	out.Shader = out.Variants[BorderModeSimple]
	if m != nil {
		out.Images = m.Images
		out.Images[1] = nil // reserved for the mask texture
	}
	return out
}
