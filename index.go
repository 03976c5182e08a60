// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

// entrySize is sizeof(indexEntry) for the table-size computation in
// Params.tableSize (spec §5 "Memory").
const entrySize = 8 // offset uint32 + checksum uint32

// indexEntry is one bucketed-index slot (spec §3 "Index entry"). Offset 0
// means the slot is empty; an entry is stale once offset <= lowLimit.
type indexEntry struct {
	offset   uint32
	checksum uint32
}

// index is the fixed-size bucketed hash index (spec §3 "Bucket", §4.2).
// entries holds 1<<hashLog slots grouped into buckets of 1<<bucketSizeLog;
// cursors holds one round-robin write cursor per bucket. Both slices are
// allocated once, up front (spec §5 "no allocation on the hot path").
type index struct {
	entries       []indexEntry
	cursors       []byte
	bucketSizeLog int
}

// newIndex allocates an index sized for the given parameters.
func newIndex(p Params) *index {
	numEntries := 1 << p.HashLog
	numBuckets := 1 << (p.HashLog - p.BucketSizeLog)
	return &index{
		entries:       make([]indexEntry, numEntries),
		cursors:       make([]byte, numBuckets),
		bucketSizeLog: p.BucketSizeLog,
	}
}

// bucket returns the 1<<bucketSizeLog-entry slice for hash, which must be
// in [0, numBuckets).
func (idx *index) bucket(hash uint32) []indexEntry {
	bucketSize := 1 << idx.bucketSizeLog
	start := int(hash) << idx.bucketSizeLog
	return idx.entries[start : start+bucketSize]
}

// insert writes entry at the bucket's current cursor slot and advances the
// cursor, round-robin (spec §4.2 "insert").
func (idx *index) insert(hash uint32, entry indexEntry) {
	bucketSize := 1 << idx.bucketSizeLog
	cursor := idx.cursors[hash]
	idx.bucket(hash)[cursor] = entry
	idx.cursors[hash] = byte((int(cursor) + 1) % bucketSize)
}

// reduce renormalises every entry by delta (spec §4.2 "reduce"): entries
// that would underflow are zeroed (empty), others shift down by delta.
// Invoked by the window's overflow-correction path (spec §4.3).
func (idx *index) reduce(delta uint32) {
	for i := range idx.entries {
		if idx.entries[i].offset < delta {
			idx.entries[i].offset = 0
		} else {
			idx.entries[i].offset -= delta
		}
	}
}
