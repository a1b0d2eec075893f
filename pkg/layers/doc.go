// Package layers derives the ordered layer stack of a thumbnail.
//
// [Build] turns a style configuration and an optional background image into
// a [Stack]: a list of tagged layer variants in fixed paint order, bottom
// first. Optional layers that are switched off are simply absent; the
// relative order of the rest never changes.
//
// Each variant carries only the fields its painter needs, so a layer's
// appearance is a function of its own descriptor and the canvas box.
// Stacks are plain values and encode canonically, which makes [Stack.Hash]
// usable as a render cache key:
//
//	stack := layers.Build(cfg, img)
//	key, _ := stack.Hash()
package layers
