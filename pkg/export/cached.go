package export

import (
	"context"

	"github.com/matzehuels/thumbstudio/pkg/cache"
	"github.com/matzehuels/thumbstudio/pkg/compose"
	"github.com/matzehuels/thumbstudio/pkg/observability"
)

// RenderVersion is mixed into cache keys. Changing how any layer paints
// must change it.
const RenderVersion = "1"

const cacheKeyType = "render"

// CachedCapturer reuses earlier captures of identical surfaces. Cache
// errors are never fatal; they degrade to a fresh capture.
type CachedCapturer struct {
	Inner Capturer
	Cache cache.Cache
	Keyer cache.Keyer
}

// NewCachedCapturer wraps inner. Nil arguments fall back to the
// Rasterizer, a NullCache and the default keyer.
func NewCachedCapturer(inner Capturer, c cache.Cache, k cache.Keyer) *CachedCapturer {
	if inner == nil {
		inner = Rasterizer{}
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	return &CachedCapturer{Inner: inner, Cache: c, Keyer: k}
}

// Capture implements Capturer.
func (c *CachedCapturer) Capture(ctx context.Context, s compose.Surface, req Request) ([]byte, error) {
	data, _, err := c.CaptureWithCacheInfo(ctx, s, req)
	return data, err
}

// CaptureWithCacheInfo captures s and reports whether the bytes came from
// the cache.
func (c *CachedCapturer) CaptureWithCacheInfo(ctx context.Context, s compose.Surface, req Request) ([]byte, bool, error) {
	key, ok := c.key(s, req)
	if ok {
		if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	data, err := c.Inner.Capture(ctx, s, req)
	if err != nil {
		return nil, false, err
	}
	if ok {
		if err := c.Cache.Set(ctx, key, data, 0); err == nil {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return data, false, nil
}

// key hashes the stack plus everything in req that changes pixels. The
// surface's on-screen width only matters through req.Scale.
func (c *CachedCapturer) key(s compose.Surface, req Request) (string, bool) {
	h, err := s.Stack.Hash()
	if err != nil {
		return "", false
	}
	return c.Keyer.RenderKey(h, cache.RenderKeyOpts{
		Width:   req.Width,
		Height:  req.Height,
		Scale:   req.Scale,
		Version: RenderVersion,
	}), true
}
