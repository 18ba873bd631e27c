package cache

import "sync"
import "image"
import "testing"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/glyphrain/mask"

func newEmptyGlyphMask(width, height int) GlyphMask {
	return image.NewAlpha(image.Rect(0, 0, width, height))
}

func TestDefaultCache(t *testing.T) {
	masks := make([]GlyphMask, 6)
	for i := range masks { masks[i] = newEmptyGlyphMask(10, 10) }
	refSize := GlyphMaskByteSize(masks[0])

	cache := NewDefaultCache(int(refSize*3))
	if cache.ApproxByteSize() != 0 { t.Fatalf("expected empty cache, got %d bytes", cache.ApproxByteSize()) }
	if cache.PeakSize() != 0 { t.Fatalf("expected zero peak, got %d", cache.PeakSize()) }

	mask, found := cache.GetMask([3]uint64{0, 0, 1})
	if found { t.Fatal("didn't expect to find mask") }
	if mask != nil { t.Fatal("expected nil mask") }

	for i := 1; i <= 3; i++ {
		cache.PassMask([3]uint64{0, 0, uint64(i)}, masks[i])
	}
	for i := 1; i <= 3; i++ {
		mask, found = cache.GetMask([3]uint64{0, 0, uint64(i)})
		if !found { t.Fatalf("expected to find mask %d", i) }
		if mask != masks[i] { t.Fatalf("wrong mask for key %d", i) }
	}

	// heat up masks 1 and 3, leave 2 cold
	for i := 0; i < 20; i++ {
		cache.GetMask([3]uint64{0, 0, 1})
		cache.GetMask([3]uint64{0, 0, 3})
	}

	cache.PassMask([3]uint64{0, 0, 4}, masks[4])
	_, found = cache.GetMask([3]uint64{0, 0, 2})
	if found { t.Fatal("expected cold mask to be evicted") }
	for _, i := range []int{1, 3, 4} {
		_, found = cache.GetMask([3]uint64{0, 0, uint64(i)})
		if !found { t.Fatalf("expected mask %d to be present", i) }
	}

	expectSize := int(refSize*3)
	if cache.ApproxByteSize() != expectSize { t.Fatalf("expected %d, got %d", expectSize, cache.ApproxByteSize()) }
	if cache.PeakSize() != expectSize { t.Fatalf("expected %d, got %d", expectSize, cache.PeakSize()) }
	if cache.NumEntries() != 3 { t.Fatalf("expected 3 entries, got %d", cache.NumEntries()) }

	// masks above the byte limit are never stored
	cache.PassMask([3]uint64{9, 9, 9}, newEmptyGlyphMask(40, 40))
	_, found = cache.GetMask([3]uint64{9, 9, 9})
	if found { t.Fatal("oversized mask shouldn't be cached") }

	// passing an existing key doesn't replace the stored mask
	cache.PassMask([3]uint64{0, 0, 4}, masks[5])
	mask, _ = cache.GetMask([3]uint64{0, 0, 4})
	if mask != masks[4] { t.Fatal("cached mask was replaced") }
}

func TestDefaultHandler(t *testing.T) {
	var rast mask.DefaultRasterizer
	cache := NewDefaultCache(1024*1024)
	handler := cache.NewHandler()
	handler.NotifyFontChange(nil)
	handler.NotifyRasterizerChange(&rast)
	handler.NotifySizeChange(fixed.I(12))

	if handler.Cache() != cache { t.Fatal("handler doesn't point to its cache") }
	_, found := handler.GetMask(9)
	if found { t.Fatal("no mask in the cache") }

	handler.PassMask(9, nil)
	mask, found := handler.GetMask(9)
	if !found { t.Fatal("expected mask in cache") }
	if mask != nil { t.Fatal("expected nil mask") }
	if cache.PeakSize() != constMaskSizeFactor {
		t.Fatalf("expected %d bytes, got %d", constMaskSizeFactor, cache.PeakSize())
	}

	mask, found = cache.GetMask([3]uint64{0, 0, (768 << 32) | 9})
	if !found { t.Fatal("expected mask at the given key") }

	// a different size must not hit the same entry
	handler.NotifySizeChange(fixed.I(13))
	_, found = handler.GetMask(9)
	if found { t.Fatal("size change should change the key") }
}

func TestDefaultCacheConcurrent(t *testing.T) {
	limit := int(GlyphMaskByteSize(newEmptyGlyphMask(8, 8)))*16
	cache := NewDefaultCache(limit)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			handler := cache.NewHandler()
			handler.NotifySizeChange(fixed.I(worker + 1))
			for i := 0; i < 64; i++ {
				glyph := uint16(i % 24)
				if _, found := handler.GetMask(glyphIndex(glyph)); !found {
					handler.PassMask(glyphIndex(glyph), newEmptyGlyphMask(8, 8))
				}
			}
		}(w)
	}
	wg.Wait()

	if cache.ApproxByteSize() > limit {
		t.Fatalf("cache grew beyond its limit: %d > %d", cache.ApproxByteSize(), limit)
	}
	if cache.NumEntries() == 0 { t.Fatal("expected some cached masks") }
}

func glyphIndex(n uint16) sfnt.GlyphIndex { return sfnt.GlyphIndex(n) }
