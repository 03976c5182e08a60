// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package ldm

import "errors"

// Sentinel errors for parameter validation and sequence generation.
var (
	// ErrParamOutOfBounds is returned when a Params field falls outside the
	// ranges in the tuning table (windowLog, hashLog, bucketSizeLog,
	// minMatchLength, hashRateLog). Context construction fails.
	ErrParamOutOfBounds = errors.New("ldm: parameter outside bounds")

	// ErrSeqStoreFull is returned from GenerateSequences when the raw
	// sequence store fills up before a chunk finishes. The sequences
	// produced so far remain valid and may be consumed.
	ErrSeqStoreFull = errors.New("ldm: raw sequence store full")

	// ErrEmptyInput is returned when GenerateSequences is called with no
	// bytes to scan.
	ErrEmptyInput = errors.New("ldm: empty input")

	// ErrReentrant is returned by GenerateSequences if called while the
	// same Context is already inside a GenerateSequences call. Reentering
	// the LDM from inside the block compressor is explicitly undefined
	// behavior; this is the one place we guard against it instead of
	// corrupting state.
	ErrReentrant = errors.New("ldm: reentrant call into block compress")
)
