package softmask

import "github.com/hajimehoshi/ebiten/v2"

// sourceKey identifies one distinct substitution source. Explicit materials
// key by identity alone; the material carries its own images. A nil material
// denotes the host's default sprite pipeline, which keys per graphic texture:
// graphics sharing an atlas page share one replacement, graphics on different
// pages get their own.
type sourceKey struct {
	material *Material
	texture  *ebiten.Image
}

// replacementEntry pairs one distinct source with the replacement built for
// it. The entry exists iff refs > 0; refs equals the number of proxies
// currently holding the replacement.
type replacementEntry struct {
	key         sourceKey
	replacement *Material
	refs        int
}

// substitutionCache is a mask's private material cache. Replacements are
// never shared across masks, even when two masks see the same source
// material: each mask owns its entries and their lifetimes.
type substitutionCache struct {
	chain         *Chain
	bySource      map[sourceKey]*replacementEntry
	byReplacement map[*Material]*replacementEntry
}

func newSubstitutionCache(chain *Chain) substitutionCache {
	return substitutionCache{
		chain:         chain,
		bySource:      make(map[sourceKey]*replacementEntry),
		byReplacement: make(map[*Material]*replacementEntry),
	}
}

// get returns the replacement for the source, building one through the chain
// on first sight and bumping the reference count on every hit. texture is the
// requesting graphic's own texture; for default-pipeline sources it is
// written into the replacement's image slot 0 so the material is render-ready
// without further host work. A nil return means every strategy declined; the
// caller keeps the original material and masking stays inactive for it. That
// is a normal outcome, not an error.
func (c *substitutionCache) get(src *Material, texture *ebiten.Image) *Material {
	key := sourceKey{material: src}
	if src == nil {
		key.texture = texture
	}
	if e, ok := c.bySource[key]; ok {
		e.refs++
		return e.replacement
	}
	rep := c.chain.Replace(src)
	if rep == nil {
		return nil
	}
	if src == nil && rep.Images[0] == nil {
		rep.Images[0] = texture
	}
	e := &replacementEntry{key: key, replacement: rep, refs: 1}
	c.bySource[key] = e
	c.byReplacement[rep] = e
	return rep
}

// release drops one reference to a replacement previously returned by get.
// At zero the entry is removed and the replacement destroyed. Unknown
// materials are ignored (the entry may already be gone after a forced clear).
func (c *substitutionCache) release(rep *Material) {
	e, ok := c.byReplacement[rep]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(c.bySource, e.key)
	delete(c.byReplacement, rep)
	e.replacement.destroy()
}

// applyAll pushes the current parameter block into every live entry's
// replacement material.
func (c *substitutionCache) applyAll(p *Parameters) {
	for _, e := range c.byReplacement {
		p.writeTo(e.replacement)
	}
}

// destroyAllAndClear force-destroys every entry regardless of reference
// count. Used when the owning mask is disabled or destroyed; proxies learn
// of the teardown through the detach walk and must not release afterwards
// (release tolerates that).
func (c *substitutionCache) destroyAllAndClear() {
	for _, e := range c.byReplacement {
		e.replacement.destroy()
	}
	clear(c.bySource)
	clear(c.byReplacement)
}

// size returns the number of live entries.
func (c *substitutionCache) size() int {
	return len(c.byReplacement)
}
