package cache

import "sync"

// The default glyph mask cache. It is concurrent-safe, bounded by a
// byte size limit and evicts cold entries by random sampling.
//
// Hotness is measured against a logical clock that advances with each
// mask passed to the cache, so eviction only depends on the access
// pattern and never on wall time.
type DefaultCache struct {
	mutex sync.Mutex
	entries map[[3]uint64]*cachedMaskEntry
	tick uint32
	limit int
	used int
	peak int
}

// Creates a new cache bounded by the given size in bytes. Negative
// sizes panic.
func NewDefaultCache(maxByteSize int) *DefaultCache {
	if maxByteSize < 0 { panic("maxByteSize < 0") }
	return &DefaultCache{
		entries: make(map[[3]uint64]*cachedMaskEntry, 128),
		limit: maxByteSize,
	}
}

// Stores the given mask with the given key. Keys already present keep
// their mask. If there's no room, colder entries are evicted; when that
// isn't enough, the mask is simply not stored.
func (self *DefaultCache) PassMask(key [3]uint64, mask GlyphMask) {
	self.mutex.Lock()
	defer self.mutex.Unlock()

	self.tick += 1
	if _, found := self.entries[key]; found { return }
	entry := newCachedMaskEntry(mask, self.tick)
	size := int(entry.ByteSize)
	if size > self.limit { return }

	hotness := entry.Hotness(self.tick)
	for self.used + size > self.limit {
		if !self.evictColderThan(hotness) { return }
	}
	self.entries[key] = entry
	self.used += size
	if self.used > self.peak { self.peak = self.used }
}

// Samples a few entries and evicts the coldest one if it's colder
// than the given hotness. Returns false if nothing was evicted.
// Must be called with the mutex held.
func (self *DefaultCache) evictColderThan(hotness uint32) bool {
	const SampleSize = 10

	// map iteration order is already randomized
	var coldestKey [3]uint64
	coldest := ^uint32(0)
	samples := 0
	for key, entry := range self.entries {
		if entryHotness := entry.Hotness(self.tick); entryHotness < coldest {
			coldest, coldestKey = entryHotness, key
		}
		samples += 1
		if samples == SampleSize { break }
	}
	if coldest >= hotness { return false }

	self.used -= int(self.entries[coldestKey].ByteSize)
	delete(self.entries, coldestKey)
	return true
}

// Gets the mask associated to the given key.
func (self *DefaultCache) GetMask(key [3]uint64) (GlyphMask, bool) {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	entry, found := self.entries[key]
	if !found { return nil, false }
	entry.accessCount += 1
	return entry.Mask, true
}

// Returns the number of masks currently stored in the cache.
func (self *DefaultCache) NumEntries() int {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return len(self.entries)
}

// Returns the approximate number of bytes taken by the masks
// currently stored in the cache.
func (self *DefaultCache) ApproxByteSize() int {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.used
}

// Returns the highest value [DefaultCache.ApproxByteSize]() has
// reached during the life of the cache.
func (self *DefaultCache) PeakSize() int {
	self.mutex.Lock()
	defer self.mutex.Unlock()
	return self.peak
}

// Returns a new handler for the cache. The cache can be shared, but
// each handler belongs to a single renderer, so every frame worker
// needs its own.
func (self *DefaultCache) NewHandler() *DefaultCacheHandler {
	return &DefaultCacheHandler{ cache: self }
}
