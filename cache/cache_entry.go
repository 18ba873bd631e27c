package cache

// Fixed overhead estimated for each stored mask.
const constMaskSizeFactor = 56

// Cached masks and their usage stats. Only accessed while
// holding the cache mutex.
type cachedMaskEntry struct {
	Mask GlyphMask
	ByteSize uint32
	addedAt uint32 // cache tick
	accessCount uint32
}

// Bytes accessed per tick since the entry was added, plus an
// eviction cost. Entries with the lowest values are evicted first.
func (self *cachedMaskEntry) Hotness(tick uint32) uint32 {
	const EvictionCost = 1000
	elapsed := tick - self.addedAt
	if elapsed == 0 { elapsed = 1 }
	return (EvictionCost + self.ByteSize*self.accessCount)/elapsed
}

func newCachedMaskEntry(mask GlyphMask, tick uint32) *cachedMaskEntry {
	return &cachedMaskEntry{
		Mask: mask,
		ByteSize: GlyphMaskByteSize(mask),
		addedAt: tick,
		accessCount: 1,
	}
}

// Returns the approximate number of bytes a mask takes once stored
// in a cache. Nil masks (like spaces) are stored too, so they still
// count the fixed overhead.
func GlyphMaskByteSize(mask GlyphMask) uint32 {
	if mask == nil { return constMaskSizeFactor }
	return uint32(mask.Rect.Dx()*mask.Rect.Dy()) + constMaskSizeFactor
}
