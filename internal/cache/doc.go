// Package cache memoizes nearest-color lookups.
//
// Remapping a photo asks the matcher the same question many times: large
// regions share a handful of exact RGB values. Index remembers the palette
// index found for each RGB key so repeated colors skip the linear palette
// scan. Entries are spread over 16 shards, each with its own lock and LRU
// list, so concurrent row bands rarely contend.
//
//	idx := cache.NewIndex(4096)
//	i := idx.GetOrCompute(c.Key(), func() int { return pal.FindClosest(c) })
//
// The cached value is a pure function of the key and the palette, so an
// Index must only be shared by lookups against the same palette.
package cache
