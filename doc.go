// Package softmask provides soft-edged (alpha-graded) masking for
// retained-mode 2D scene graphs built on [Ebitengine].
//
// A [Mask] is bound to a node in the host's scene graph and masks every
// renderable descendant of that node. Instead of requiring authors to write
// masking-aware shaders, softmask transparently substitutes the materials
// used by descendants: each descendant gets a lightweight [Proxy] marker, and
// the proxy swaps the author's material for a mask-capable replacement drawn
// from a per-mask, reference-counted cache. The author's materials are never
// mutated.
//
// # Host integration
//
// softmask does not own a scene graph. The host implements [Node] and
// [Graphic] over its own node type and drives each mask through four phases
// per frame:
//
//	mask := softmask.New(node, nil)
//	mask.Activate()            // when the node becomes enabled
//	mask.Tick()                // once per update tick
//	mask.BeforeRender()        // after layout, before draw submission
//	mask.Deactivate()          // when the node is disabled or destroyed
//
// Hierarchy changes are reported with [Mask.NotifyChildAdded] and
// [Mask.UpdateProxySet]; content and configuration changes with
// [Mask.Invalidate].
//
// # Replacement strategies
//
// Material substitution is driven by an ordered chain of [Replacer]
// strategies. The host registers strategies at startup:
//
//	softmask.Register(softmask.SpriteReplacer{})
//
// [SpriteReplacer] handles the default sprite pipeline with built-in Kage
// shaders covering all three border modes (simple, 9-slice stretch, 9-slice
// tiled). Custom pipelines register their own strategies; a strategy that
// does not recognize a material declines, and masking stays inactive for
// that material only.
//
// # Degradation
//
// Nothing in softmask is fatal. Unsupported materials, atlas regions that
// cannot be 9-sliced, and unreadable sample textures all degrade masking
// fidelity locally and warn once per distinct configuration.
//
// [Ebitengine]: https://ebitengine.org
package softmask
