// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexInsertRoundRobin(t *testing.T) {
	p := Params{WindowLog: 20, HashLog: 10, BucketSizeLog: 2}
	require.NoError(t, p.adjust())
	idx := newIndex(p)

	const hash = 3
	for i := range uint32(6) {
		idx.insert(hash, indexEntry{offset: i + 1, checksum: i})
	}

	// bucket size is 1<<2 == 4, so the round-robin cursor should have
	// wrapped once, leaving the last 4 inserts in the bucket.
	bucket := idx.bucket(hash)
	require.Len(t, bucket, 4)

	offsets := make([]uint32, len(bucket))
	for i, e := range bucket {
		offsets[i] = e.offset
	}
	assert.ElementsMatch(t, []uint32{5, 6, 3, 4}, offsets)
}

func TestIndexReduce(t *testing.T) {
	p := Params{WindowLog: 20, HashLog: 10, BucketSizeLog: 2}
	require.NoError(t, p.adjust())
	idx := newIndex(p)

	idx.entries[0] = indexEntry{offset: 1000, checksum: 7}
	idx.entries[1] = indexEntry{offset: 10, checksum: 9}

	idx.reduce(100)

	assert.Equal(t, uint32(900), idx.entries[0].offset)
	assert.Equal(t, uint32(0), idx.entries[1].offset) // underflowed -> cleared
}
