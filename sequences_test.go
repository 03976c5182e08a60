// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilledStore(t *testing.T, seqs ...RawSeq) *SeqStore {
	t.Helper()
	store := NewSeqStore(len(seqs))
	for _, s := range seqs {
		require.NoError(t, store.append(s))
	}
	return store
}

func TestSeqStoreFullReturnsError(t *testing.T) {
	store := NewSeqStore(1)
	require.NoError(t, store.append(RawSeq{LitLength: 1}))
	assert.ErrorIs(t, store.append(RawSeq{LitLength: 1}), ErrSeqStoreFull)
}

func TestSeqConsumerTakePassesThroughWhenNoSplit(t *testing.T) {
	store := newFilledStore(t, RawSeq{LitLength: 10, MatchLength: 20, Offset: 100})
	c := NewSeqConsumer(store)

	out := c.Take(30, 4)
	require.Len(t, out, 2)
	assert.Equal(t, RawSeq{LitLength: 10}, out[0])
	assert.Equal(t, RawSeq{MatchLength: 20, Offset: 100}, out[1])
	assert.True(t, c.Done())
}

func TestSeqConsumerTakeSplitsMatchAtBoundary(t *testing.T) {
	store := newFilledStore(t, RawSeq{LitLength: 0, MatchLength: 100, Offset: 50})
	c := NewSeqConsumer(store)

	first := c.Take(40, 4)
	require.Len(t, first, 1)
	assert.Equal(t, RawSeq{MatchLength: 40, Offset: 50}, first[0])
	assert.False(t, c.Done())

	second := c.Take(60, 4)
	require.Len(t, second, 1)
	assert.Equal(t, RawSeq{MatchLength: 60, Offset: 50}, second[0])
	assert.True(t, c.Done())
}

func TestSeqConsumerFoldsShortSplitTailIntoLiterals(t *testing.T) {
	// Splitting a 10-byte match at 7 would leave a 3-byte tail, below
	// minMatchLength (4): the whole remaining match must fold into
	// literals instead of producing a sub-minimum back-reference.
	store := newFilledStore(t, RawSeq{LitLength: 0, MatchLength: 10, Offset: 50})
	c := NewSeqConsumer(store)

	out := c.Take(7, 4)
	require.Len(t, out, 1)
	assert.Equal(t, RawSeq{LitLength: 10}, out[0])
	assert.True(t, c.Done())
}

func TestSeqConsumerSkip(t *testing.T) {
	store := newFilledStore(t,
		RawSeq{LitLength: 5, MatchLength: 10, Offset: 20},
		RawSeq{LitLength: 3, MatchLength: 0, Offset: 0},
	)
	c := NewSeqConsumer(store)

	c.Skip(8) // consumes all 5 literal bytes plus 3 of the match
	out := c.Take(7, 4)
	require.Len(t, out, 1)
	assert.Equal(t, RawSeq{MatchLength: 7, Offset: 20}, out[0])
	assert.False(t, c.Done())

	rest := c.Take(3, 4)
	require.Len(t, rest, 1)
	assert.Equal(t, RawSeq{LitLength: 3}, rest[0])
	assert.True(t, c.Done())
}

func TestSeqConsumerTakeAcrossManySequences(t *testing.T) {
	store := newFilledStore(t,
		RawSeq{LitLength: 4},
		RawSeq{MatchLength: 8, Offset: 16},
		RawSeq{LitLength: 2},
	)
	c := NewSeqConsumer(store)

	out := c.Take(14, 4)
	require.Len(t, out, 3)
	assert.True(t, c.Done())
}
