// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

/*
Package ldm implements the long-distance matching pre-pass of a
block-based LZ compressor: a content-defined chunker built on a gear
rolling hash, a bucketed hash index of MinMatchLength-byte anchors (64
bytes by default), and a
sequence generator that emits back-references (litLength, matchLength,
offset) over a window much larger than a short-range matcher's (128 MiB
to 2 GiB).

The LDM does not entropy-code, frame, or otherwise finish compressing
anything. It hands its raw sequences to a downstream block compressor
(see BlockCompressor) which processes the literal runs between matches
with its own short-range matcher.

# Generating sequences

	ctx, err := ldm.New(ldm.Params{WindowLog: 27})
	if err != nil {
		// ...
	}
	store := ldm.NewSeqStore(len(data) / ctx.Params().MinMatchLength)
	if err := ctx.GenerateSequences(store, data); err != nil {
		// ErrSeqStoreFull: store.Sequences() so far is still valid.
	}

# Feeding a block compressor

	consumer := ldm.NewSeqConsumer(store)
	seqs := consumer.Take(uint32(len(block)), uint32(ctx.Params().MinMatchLength))
	ldm.BlockCompress(blockCompressor, block, seqs, ldm.StrategyFast)
*/
package ldm
