// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

import "github.com/pkg/errors"

// Tuning ranges from spec §6 (bit-exact, compatibility-critical).
const (
	windowLogMin = 10
	windowLogMax = 31

	hashLogMin = 6
	hashLogMax = 26

	bucketSizeLogMin = 1
	bucketSizeLogMax = 8

	minMatchLengthMin = 4
	minMatchLengthMax = 4096

	// defaultBucketSizeLog, defaultMinMatchLength, hashRateLogShift are the
	// LDM_BUCKET_SIZE_LOG / LDM_MIN_MATCH_LENGTH / LDM_HASH_RLOG constants.
	defaultBucketSizeLog  = 3
	defaultMinMatchLength = 64
	hashRateLogShift      = 7

	// lookaheadSplits bounds how many split offsets feed batches per call
	// (spec §6 LDM_LOOKAHEAD_SPLITS).
	lookaheadSplits = 64

	// hashReadSize resolves the spec §9 Open Question: "HASH_READ_SIZE is
	// referenced but not defined in the excerpt; assume 8".
	hashReadSize = 8

	// defaultMaxChunkSize is the spec §6 chunk size.
	defaultMaxChunkSize = 1 << 20
)

// Params holds the LDM tuning parameters (spec §3 "LDM parameters").
// Immutable after Params.adjust() has run; Context.Params returns a copy.
type Params struct {
	// WindowLog is log2 of the maximum back-reference distance.
	WindowLog int
	// HashLog is log2 of the number of index entries (1<<HashLog total,
	// grouped into buckets of 1<<BucketSizeLog). Zero means "derive from
	// WindowLog".
	HashLog int
	// BucketSizeLog is log2 of the number of slots per bucket. Zero means
	// "use the default", still subject to the final min(BucketSizeLog,
	// HashLog) clamp.
	BucketSizeLog int
	// MinMatchLength is the minimum length of an emitted match. Zero means
	// "use the default (64)".
	MinMatchLength int
	// HashRateLog controls how sparsely intermediate positions are sampled
	// into the index between explicit split anchors (spec §4.5a). Zero
	// means "derive from WindowLog-HashLog".
	HashRateLog int
	// EnableLDM is read by callers deciding whether to invoke the LDM at
	// all; the LDM package itself does not gate GenerateSequences on it.
	EnableLDM bool
}

// adjust applies the spec §3 adjustment rule in the order the reference
// implementation actually runs it (zstd_ldm.c ZSTD_ldm_adjustParameters):
// defaults are filled in first, and the bucketSizeLog-vs-hashLog clamp is
// applied last, after HashLog itself has been defaulted. spec.md lists the
// clamp first, but doing it before HashLog is resolved would clamp against
// a stale value of zero; we follow the original source on this ordering.
func (p *Params) adjust() error {
	if p.BucketSizeLog == 0 {
		p.BucketSizeLog = defaultBucketSizeLog
	}
	if p.MinMatchLength == 0 {
		p.MinMatchLength = defaultMinMatchLength
	}
	if p.HashLog == 0 {
		p.HashLog = max(hashLogMin, p.WindowLog-hashRateLogShift)
	}
	if p.HashRateLog == 0 {
		if p.WindowLog >= p.HashLog {
			p.HashRateLog = p.WindowLog - p.HashLog
		} else {
			p.HashRateLog = 0
		}
	}
	p.BucketSizeLog = min(p.BucketSizeLog, p.HashLog)

	return p.validate()
}

func (p Params) validate() error {
	switch {
	case p.WindowLog < windowLogMin || p.WindowLog > windowLogMax:
		return errors.Wrapf(ErrParamOutOfBounds, "windowLog=%d out of [%d,%d]", p.WindowLog, windowLogMin, windowLogMax)
	case p.HashLog < hashLogMin || p.HashLog > hashLogMax:
		return errors.Wrapf(ErrParamOutOfBounds, "hashLog=%d out of [%d,%d]", p.HashLog, hashLogMin, hashLogMax)
	case p.BucketSizeLog < bucketSizeLogMin || p.BucketSizeLog > bucketSizeLogMax:
		return errors.Wrapf(ErrParamOutOfBounds, "bucketSizeLog=%d out of [%d,%d]", p.BucketSizeLog, bucketSizeLogMin, bucketSizeLogMax)
	case p.MinMatchLength < minMatchLengthMin || p.MinMatchLength > minMatchLengthMax:
		return errors.Wrapf(ErrParamOutOfBounds, "minMatchLength=%d out of [%d,%d]", p.MinMatchLength, minMatchLengthMin, minMatchLengthMax)
	case p.HashRateLog < 0 || p.HashRateLog > max(0, p.WindowLog-p.HashLog):
		return errors.Wrapf(ErrParamOutOfBounds, "hashRateLog=%d out of [0,%d]", p.HashRateLog, max(0, p.WindowLog-p.HashLog))
	}
	return nil
}

// tableSize returns the byte size of the index allocation (spec §5
// "Memory"): 2^hashLog entries plus 2^(hashLog-bucketSizeLog) cursor bytes.
func (p Params) tableSize() int {
	entries := 1 << p.HashLog
	cursors := 1 << (p.HashLog - p.BucketSizeLog)
	return entries*entrySize + cursors
}

// maxSequences returns the maximum number of sequences a chunk of the given
// size can produce (spec §5: "chunkSize / minMatchLength").
func (p Params) maxSequences(chunkSize int) int {
	return chunkSize / p.MinMatchLength
}
