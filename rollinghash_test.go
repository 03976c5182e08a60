// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRollingHashSplitsAreContentDefined verifies Testable Property 7:
// the same byte stream fed as one contiguous slice or split across
// arbitrary chunk boundaries produces identical split positions, since
// the gear hash's state depends only on the bytes already consumed.
func TestRollingHashSplitsAreContentDefined(t *testing.T) {
	src := make([]byte, 64*1024)
	rand.New(rand.NewSource(1)).Read(src)

	wholeSplits := collectSplits(t, src, len(src))
	chunkedSplits := collectSplits(t, src, 777) // an awkward, non-power-of-2 chunk size

	assert.Equal(t, wholeSplits, chunkedSplits)
}

func collectSplits(t *testing.T, src []byte, feedSize int) []int {
	t.Helper()
	state := initRollingHash(defaultMinMatchLength, hashRateLogShift)
	buf := make([]int, lookaheadSplits)

	var all []int
	base := 0
	off := 0
	for off < len(src) {
		end := off + feedSize
		if end > len(src) {
			end = len(src)
		}
		chunk := src[off:end]
		relOff := 0
		for relOff < len(chunk) {
			consumed, n := state.feed(chunk[relOff:], buf)
			for i := range n {
				all = append(all, base+relOff+buf[i])
			}
			relOff += consumed
		}
		base += len(chunk)
		off = end
	}
	return all
}

func TestRollingHashDeterministicAcrossRuns(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again")

	a := collectSplits(t, src, len(src))
	b := collectSplits(t, src, len(src))

	assert.Equal(t, a, b)
}
