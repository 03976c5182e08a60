// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package ldm

// Strategy identifies which downstream (short-range) search strategy a
// BlockCompressor uses, since the LDM hands matches off differently
// depending on it (spec §6 "External interfaces").
type Strategy int

const (
	// StrategyFast covers the cheaper downstream strategies: an LDM match
	// is emitted outright, the block compressor's own search skips the
	// matched span entirely.
	StrategyFast Strategy = iota
	// StrategyBtopt covers btopt-and-above downstream strategies, which
	// get more from running their own optimal parser over a span than
	// from skipping it — the LDM instead seeds a repeat-offset hint and
	// only bounds how much of the span feeds the short-range hash table.
	StrategyBtopt
)

// MatchState is the contract a downstream block compressor's match-finder
// state must satisfy for BlockCompress to hand off LDM matches to it
// without redoing the LDM's own search (spec §6).
type MatchState interface {
	// UpdateTable inserts short-range hash-table entries for src[from:to],
	// bounded by limitTableUpdate for long matches.
	UpdateTable(src []byte, from, to uint32)
	// SetRepeatOffset seeds the block compressor's repeat-offset history
	// with rep, the 3-entry repeat-offset ring BlockCompress maintains and
	// shifts around every LDM match — the same ring a short-range
	// repeat-match code would check first.
	SetRepeatOffset(rep [3]uint32)
}

// BlockCompressor is the minimal downstream compressor contract
// BlockCompress drives (spec §6 "External interfaces"): a thing that
// accepts literal runs and match back-references in source order and
// maintains its own MatchState.
type BlockCompressor interface {
	MatchState
	EmitLiterals(lit []byte)
	EmitMatch(offset, matchLength uint32)
}

// maxTableUpdateLength bounds how much of a long LDM match actually feeds
// the downstream short-range hash table (spec §6 "limitTableUpdate"):
// updating every position of a multi-hundred-KB match would be wasted
// work once the match is already known to cover that span.
const maxTableUpdateLength = 1 << 12

// limitTableUpdate returns how many bytes of an LDM match of the given
// length should be inserted into the downstream hash table, grounded on
// the bounded table-update loop in ZSTD_ldm_blockCompress.
func limitTableUpdate(matchLength uint32) uint32 {
	if matchLength > maxTableUpdateLength {
		return maxTableUpdateLength
	}
	return matchLength
}

// BlockCompress drives bc over seqs, a sequence of (already block-split,
// see SeqConsumer.Take) raw sequences covering src in order. Literal runs
// are handed to bc.EmitLiterals untouched. Around every LDM match it
// shifts its own 3-entry repeat-offset ring (rep[2]=rep[1], rep[1]=rep[0],
// rep[0]=sequence.offset, per spec §6) and hands the updated ring to
// bc.SetRepeatOffset, then either emits the match directly (fast
// strategies, which skip their own search over the matched span) or only
// issues a bounded table update (btopt and above, which re-run their own
// optimal search over the span but benefit from the seeded repeat offset
// and a primed hash table) — mirroring the two downstream paths in
// ZSTD_ldm_blockCompress.
func BlockCompress(bc BlockCompressor, src []byte, seqs []RawSeq, strategy Strategy) {
	var rep [3]uint32
	var pos uint32
	for _, s := range seqs {
		if s.LitLength > 0 {
			bc.EmitLiterals(src[pos : pos+s.LitLength])
			pos += s.LitLength
		}
		if s.MatchLength == 0 {
			continue
		}

		rep[2], rep[1], rep[0] = rep[1], rep[0], s.Offset
		bc.SetRepeatOffset(rep)

		switch strategy {
		case StrategyBtopt:
			bc.UpdateTable(src, pos, pos+limitTableUpdate(s.MatchLength))
		default:
			bc.EmitMatch(s.Offset, s.MatchLength)
		}
		pos += s.MatchLength
	}
}
