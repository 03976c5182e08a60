// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

import "math"

// window is the logical view of the input as it slides past (spec §3
// "Window descriptor", §9 "Dual-buffer window"). Rather than the tagged
// union spec §9 suggests, this keeps a single flat struct with a
// hasExtDict flag — the same preference for flat structs over
// polymorphism the teacher shows in slidingWindowDict.
//
// prefix holds the retained in-memory tail of the stream, bounded to
// roughly maxDist bytes by compact(); prefix[0] corresponds to absolute
// index base. dict, when non-nil, is a separate external-dictionary
// buffer whose dict[0] corresponds to absolute index dictAnchor and which
// logically ends exactly where the prefix begins (dictLimit).
type window struct {
	prefix []byte
	base   uint32

	dictLimit uint32
	lowLimit  uint32

	dict       []byte
	dictAnchor uint32

	loadedDictEnd uint32

	// logicalPos is the true total byte count ever fed to the window,
	// never corrected. totalCorrection is the cumulative amount already
	// subtracted from base/dictLimit/lowLimit/dictAnchor so that
	// nextSrc() = logicalPos - totalCorrection + originShift always fits
	// in a uint32. originShift re-anchors the coordinate origin once, at
	// setDict time, so an external dictionary can occupy addresses below
	// absolute index 0 without underflowing.
	logicalPos      uint64
	totalCorrection uint64
	originShift     uint32
}

// nextSrc returns the absolute index one past the last ingested byte.
func (w *window) nextSrc() uint32 {
	return uint32(w.logicalPos-w.totalCorrection) + w.originShift
}

// hasExtDict reports whether an external dictionary region is active.
func (w *window) hasExtDict() bool {
	return w.dict != nil && w.lowLimit < w.dictLimit
}

// setDict installs dict as the external-dictionary region immediately
// preceding the current prefix (spec §8 scenario S5). Must be called
// before the first GenerateSequences call on a fresh Context, before any
// bytes have been ingested — re-anchoring the window's coordinate origin
// so the dictionary can occupy addresses below absolute index 0 without
// the uint32 arithmetic underflowing.
func (w *window) setDict(dict []byte) {
	w.originShift = uint32(len(dict))
	w.dict = dict
	w.dictAnchor = 0
	w.base = w.originShift
	w.dictLimit = w.base
	w.lowLimit = 0
	w.loadedDictEnd = w.dictLimit
}

// append ingests chunk, advancing logicalPos and the retained prefix.
func (w *window) append(chunk []byte) {
	w.prefix = append(w.prefix, chunk...)
	w.logicalPos += uint64(len(chunk))
}

// needOverflowCorrection reports whether feeding chunkSize more bytes
// risks the absolute index exceeding what a uint32 can represent
// (spec §4.3 step 1).
func (w *window) needOverflowCorrection(maxDist uint32, chunkSize int) bool {
	projected := w.logicalPos - w.totalCorrection + uint64(chunkSize)
	return projected > math.MaxUint32-uint64(maxDist)
}

// correctOverflow subtracts a correction from every absolute index tracked
// by the window (and, via idx.reduce, from every stored index entry),
// bringing nextSrc back down to maxDist (spec §4.3 step 1). Any loaded
// static dictionary is invalidated, matching zstd_ldm.c's
// ZSTD_window_correctOverflow + "loadedDictEnd = 0" on overflow.
func (w *window) correctOverflow(idx *index, maxDist uint32) uint32 {
	correction := w.nextSrc() - maxDist

	w.base -= correction
	w.dictLimit -= correction
	w.lowLimit -= correction
	w.dictAnchor -= correction
	w.totalCorrection += uint64(correction)
	w.loadedDictEnd = 0

	idx.reduce(correction)
	return correction
}

// enforceMaxDist advances lowLimit so that nextSrc-lowLimit <= maxDist
// (spec §4.3 step 2), and drops loadedDictEnd if it falls below the new
// lowLimit.
func (w *window) enforceMaxDist(maxDist uint32) {
	next := w.nextSrc()
	if next > maxDist && next-maxDist > w.lowLimit {
		w.lowLimit = next - maxDist
	}
	if w.loadedDictEnd != 0 && w.loadedDictEnd < w.lowLimit {
		w.loadedDictEnd = 0
	}
}

// compact drops retained prefix bytes below lowLimit, bounding memory use
// to roughly maxDist bytes (spec §2 C4 "Sliding window").
func (w *window) compact() {
	if w.lowLimit > w.base {
		drop := w.lowLimit - w.base
		if int(drop) >= len(w.prefix) {
			w.prefix = w.prefix[:0]
		} else {
			w.prefix = append(w.prefix[:0], w.prefix[drop:]...)
		}
		w.base = w.lowLimit
	}
}

// byteAt resolves the byte stored at absolute index i, reading through
// whichever buffer currently backs that index (dict vs prefix).
func (w *window) byteAt(i uint32) byte {
	if w.hasExtDict() && i < w.dictLimit {
		return w.dict[i-w.dictAnchor]
	}
	return w.prefix[i-w.base]
}

// inBounds reports whether absolute index i currently resolves to a live
// byte (not stale, not past nextSrc).
func (w *window) inBounds(i uint32) bool {
	if i < w.lowLimit || i >= w.nextSrc() {
		return false
	}
	if w.hasExtDict() && i < w.dictLimit {
		return i >= w.dictAnchor
	}
	return i >= w.base
}

// copyRange appends the bytes of [start, end) to dst, transparently
// crossing the dict/prefix boundary when the range straddles dictLimit,
// and returns the grown slice. Used to materialise a contiguous window
// for hashing when the bytes of interest may not live in a single
// backing buffer (spec §9 "Dual-buffer window").
func (w *window) copyRange(dst []byte, start, end uint32) []byte {
	if w.hasExtDict() && start < w.dictLimit {
		dictEnd := end
		if dictEnd > w.dictLimit {
			dictEnd = w.dictLimit
		}
		dst = append(dst, w.dict[start-w.dictAnchor:dictEnd-w.dictAnchor]...)
		start = dictEnd
	}
	if start < end {
		dst = append(dst, w.prefix[start-w.base:end-w.base]...)
	}
	return dst
}
