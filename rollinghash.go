// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

// rollingHashState is the gear rolling hash carried across feed calls
// (spec §3 "Rolling-hash state"). Split offsets depend only on gearTable,
// stopMask, and prior bytes, never on absolute position, so the same byte
// stream split into arbitrary chunks reproduces identical splits
// (Testable Property 7).
type rollingHashState struct {
	rolling  uint64
	stopMask uint64
}

// initRollingHash derives stopMask from minMatchLength/hashRateLog per
// spec §3's stopMask derivation and resets rolling to its initial state.
func initRollingHash(minMatchLength, hashRateLog int) rollingHashState {
	maxBits := min(minMatchLength, 64)
	minBits := hashRateLog

	var mask uint64
	if minBits > 0 && minBits <= maxBits {
		mask = (uint64(1)<<uint(minBits) - 1) << uint(maxBits-minBits)
	} else {
		mask = uint64(1)<<uint(minBits) - 1
	}

	return rollingHashState{
		rolling:  uint64(^uint32(0)), // 0xFFFFFFFF, per spec §3
		stopMask: mask,
	}
}

// feed consumes data left to right, appending a split offset (relative to
// the start of data) each time the stop predicate fires, up to
// lookaheadSplits splits or the end of data, whichever comes first. It
// returns how many bytes were consumed. splits must have capacity for at
// least lookaheadSplits entries; each call writes its splits from index 0.
//
// Grounded on ZSTD_ldm_gear_feed's scalar form in zstd_ldm.c (the #if 1
// branch); the disabled 4-lane variant is non-normative per spec §9.
func (s *rollingHashState) feed(data []byte, splits []int) (consumed int, numSplits int) {
	hash := s.rolling
	mask := s.stopMask
	n := 0
	size := len(data)

	for n < size {
		hash = (hash << 1) + gearTable[data[n]]
		n++
		if hash&mask == 0 {
			splits[numSplits] = n
			numSplits++
			if numSplits == lookaheadSplits {
				break
			}
		}
	}

	s.rolling = hash
	return n, numSplits
}
