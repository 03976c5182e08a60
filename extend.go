// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

// countForward counts how far the bytes at cur and match agree, starting at
// the given absolute indices, bounded by curLimit/matchLimit (exclusive). Grounded on
// ZSTD_count / ZSTD_count_2segments in zstd_ldm.c, collapsed into a single
// byte-at-a-time loop since this package has no SIMD/word-at-a-time
// primitives to reach for — see DESIGN.md.
func countForward(w *window, cur, match, curLimit, matchLimit uint32) uint32 {
	limit := curLimit
	if matchLimit-match < limit-cur {
		limit = cur + (matchLimit - match)
	}
	var n uint32
	for cur+n < limit && w.byteAt(cur+n) == w.byteAt(match+n) {
		n++
	}
	return n
}

// countBackward counts how far the bytes agree walking backwards from cur-1
// and match-1, stopping at curFloor/matchFloor (inclusive lower bounds).
// Grounded on ZSTD_ldm_countBackwardsMatch /
// ZSTD_ldm_countBackwardsMatch_2segments in zstd_ldm.c.
func countBackward(w *window, cur, match, curFloor, matchFloor uint32) uint32 {
	var n uint32
	for cur-n > curFloor && match-n > matchFloor && w.byteAt(cur-n-1) == w.byteAt(match-n-1) {
		n++
	}
	return n
}

// extendMatch grows a candidate match in both directions from the anchor
// position (cur, matching candidate match) outward to [start, end), and
// reports the extended bounds plus total length (spec §2 C5 "Match
// extender"). anchor is the lowest index the backward extension may not
// cross (the end of the previous emitted sequence's literals), matching
// zstd_ldm.c's use of `lowLimit = MAX(dictLimit, lowestIndex)` style
// floors for the two legs of the dual-buffer search.
func extendMatch(w *window, cur, match, anchor, end uint32) (start, matchStart uint32, length uint32) {
	fwd := countForward(w, cur, match, end, end)

	curFloor := anchor
	matchFloor := w.lowLimit
	if w.hasExtDict() {
		// A match that starts in the dictionary cannot extend backward
		// past the dictionary's own lower bound, and one that starts in
		// the prefix cannot cross into the dictionary going backward
		// past dictLimit once its source leg is entirely in the prefix.
		if match >= w.dictLimit {
			matchFloor = w.dictLimit
		}
	}
	back := countBackward(w, cur, match, curFloor, matchFloor)

	return cur - back, match - back, back + fwd
}
