// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowAppendAndByteAt(t *testing.T) {
	w := &window{}
	w.append([]byte("hello"))
	w.append([]byte("world"))

	assert.Equal(t, uint32(10), w.nextSrc())
	assert.Equal(t, byte('w'), w.byteAt(5))
	assert.Equal(t, byte('d'), w.byteAt(9))
}

func TestWindowSetDictPlacesDictBeforePrefix(t *testing.T) {
	w := &window{}

	dict := []byte("dictionary-content")
	w.setDict(dict)
	w.append([]byte("more-prefix"))

	assert.True(t, w.hasExtDict())
	assert.Equal(t, byte('d'), w.byteAt(w.dictAnchor))
	assert.Equal(t, byte('m'), w.byteAt(w.dictLimit))
}

func TestWindowEnforceMaxDistAdvancesLowLimit(t *testing.T) {
	w := &window{}
	w.append(make([]byte, 1000))

	w.enforceMaxDist(100)
	assert.Equal(t, uint32(900), w.lowLimit)
}

func TestWindowCompactDropsStaleBytes(t *testing.T) {
	w := &window{}
	w.append(make([]byte, 1000))
	w.enforceMaxDist(100)
	w.compact()

	assert.Equal(t, uint32(900), w.base)
	assert.Len(t, w.prefix, 100)
	assert.True(t, w.inBounds(999))
	assert.False(t, w.inBounds(899))
}

func TestWindowOverflowCorrection(t *testing.T) {
	const maxDist = 500
	const current = uint32(math.MaxUint32) - 10

	w := &window{}
	w.logicalPos = uint64(current)
	w.base = current - 100
	w.dictLimit = w.base
	w.lowLimit = w.base
	w.loadedDictEnd = w.base

	require.True(t, w.needOverflowCorrection(maxDist, 20))

	idx := newIndex(Params{WindowLog: 20, HashLog: 10, BucketSizeLog: 2})
	idx.entries[0] = indexEntry{offset: current - 50, checksum: 1}

	correction := w.correctOverflow(idx, maxDist)
	assert.Equal(t, current-maxDist, correction)
	assert.Equal(t, uint32(maxDist), w.nextSrc())
	assert.Equal(t, uint32(0), w.loadedDictEnd)
	assert.Equal(t, uint32(maxDist-50), idx.entries[0].offset)
}

func TestWindowCopyRangeAcrossDictBoundary(t *testing.T) {
	w := &window{}
	w.setDict([]byte("DDDDDD"))
	w.append([]byte("BBBB"))

	out := w.copyRange(nil, w.dictAnchor+4, w.dictLimit+2)
	assert.Equal(t, []byte("DDBB"), out)
}
