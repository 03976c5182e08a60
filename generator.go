// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package ldm

import "github.com/sirupsen/logrus"

// Context is the long-distance matcher (spec §2 overview): it owns the
// bucketed index, the sliding window, and the rolling-hash state, and
// drives GenerateSequences across however many chunks the caller feeds it.
// A Context is not safe for concurrent use (spec §5 "Concurrency &
// resource model" — one Context per goroutine, call sequentially).
type Context struct {
	params Params

	idx *index
	win *window

	gear    rollingHashState
	tagHash *tagRollingHash

	anchor uint32 // absolute index of the first unconsumed literal byte
	// leftoverLits carries literal bytes left over from a chunk that ended
	// without a sequence reaching its end, to be prepended to the next
	// sequence emitted (in this chunk or a later one) — spec §4.5 step 8.
	leftoverLits uint32
	maxDist      uint32

	maxChunkSize int
	logger       logrus.FieldLogger

	scratch  []byte
	splitBuf []int

	active bool // guards against reentrant/concurrent GenerateSequences calls
}

// New constructs a Context from params, applying defaults/validation
// (Params.adjust) and any Options. Returns ErrParamOutOfBounds if params
// cannot be adjusted into a valid configuration.
func New(params Params, opts ...Option) (*Context, error) {
	if err := params.adjust(); err != nil {
		return nil, err
	}

	c := &Context{
		params:       params,
		idx:          newIndex(params),
		win:          &window{},
		gear:         initRollingHash(params.MinMatchLength, params.HashRateLog),
		tagHash:      newTagRollingHash(params.MinMatchLength),
		maxDist:      uint32(1) << uint(params.WindowLog),
		maxChunkSize: defaultMaxChunkSize,
		splitBuf:     make([]int, lookaheadSplits),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Params returns a copy of the adjusted parameters this Context was built
// with.
func (c *Context) Params() Params {
	return c.params
}

// SetDict installs dict as an external-dictionary region immediately
// preceding the data that will be fed to GenerateSequences (spec §8
// scenario S5 "Dictionary-seeded match"). Must be called before the first
// GenerateSequences call. The dictionary's own content is pre-indexed
// (grounded on ZSTD_ldm_fillHashTable) so that later live content matching
// the dictionary can actually be found — nothing else ever inserts
// entries pointing into the dictionary region.
func (c *Context) SetDict(dict []byte) {
	c.win.setDict(dict)
	c.anchor = c.win.nextSrc()
	c.fillDictIndex(dict)
}

// fillDictIndex runs the content-defined chunker over dict using a
// throwaway rolling-hash state and inserts an index entry at each split,
// without any match search (there is nothing "live" yet to match against).
// Split windows are computed with the same splitPtr = trigger - minMatchLength
// convention processChunk/handleSplit use for live data, so dictionary
// entries line up with how a later live split will hash its own window.
func (c *Context) fillDictIndex(dict []byte) {
	minMatch := uint32(c.params.MinMatchLength)
	if uint32(len(dict)) < minMatch {
		return
	}

	gear := initRollingHash(c.params.MinMatchLength, c.params.HashRateLog)
	splitBuf := make([]int, lookaheadSplits)
	bucketBits := c.params.HashLog - c.params.BucketSizeLog

	relOff := 0
	for relOff < len(dict) {
		consumed, numSplits := gear.feed(dict[relOff:], splitBuf)
		for i := range numSplits {
			triggerLocal := uint32(relOff + splitBuf[i])
			if triggerLocal < minMatch {
				continue
			}
			splitPtr := c.win.dictAnchor + triggerLocal - minMatch
			c.scratch = c.win.copyRange(c.scratch[:0], splitPtr, splitPtr+minMatch)
			h64 := splitHash64(c.scratch)
			bh, cksum := bucketHash(h64, bucketBits)
			c.idx.insert(bh, indexEntry{offset: splitPtr, checksum: cksum})
		}
		relOff += consumed
	}
}

// GenerateSequences is the C6 "sequence generator": it feeds data through
// the content-defined chunker, searches the index for long-distance
// matches at each split, and appends raw sequences to store (spec §2 C6,
// grounded on ZSTD_ldm_generateSequences/generateSequences_internal).
// Input is internally processed in maxChunkSize-byte chunks; any trailing
// unmatched bytes remain pending as literals and are only finalized once
// Flush is called (there is always at least a final implicit flush inside
// GenerateSequences itself once every chunk has been fed).
func (c *Context) GenerateSequences(store *SeqStore, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if c.active {
		return ErrReentrant
	}
	c.active = true
	defer func() { c.active = false }()

	off := 0
	for off < len(data) {
		end := min(off+c.maxChunkSize, len(data))
		if err := c.processChunk(store, data[off:end]); err != nil {
			return err
		}
		off = end
	}
	return c.Flush(store)
}

// Flush emits the trailing literal run (from the current anchor to the
// end of ingested data, plus any still-pending leftoverLits) as a
// match-less sequence, if any bytes remain unconsumed. GenerateSequences
// calls Flush itself after its last chunk, so every GenerateSequences call
// ends with all ingested bytes accounted for and a further Flush call finds
// nothing left and returns nil.
func (c *Context) Flush(store *SeqStore) error {
	end := c.win.nextSrc()
	litLength := (end - c.anchor) + c.leftoverLits
	if litLength == 0 {
		return nil
	}
	c.anchor = end
	c.leftoverLits = 0
	return store.append(RawSeq{LitLength: litLength})
}

// processChunk ingests one chunk: overflow-corrects if needed, appends the
// bytes to the window, re-primes the rolling hash fresh for this chunk,
// runs it to find content-defined splits, searches the index at each
// split, fills the index further via the §4.5a secondary tag hash between
// splits, then renormalises the window.
func (c *Context) processChunk(store *SeqStore, chunk []byte) error {
	if c.win.needOverflowCorrection(c.maxDist, len(chunk)) {
		correction := c.win.correctOverflow(c.idx, c.maxDist)
		c.anchor -= correction
		c.logf("ldm: overflow correction applied, delta=%d", correction)
	}

	chunkStart := c.win.nextSrc()
	c.win.append(chunk)

	// Bytes between anchor and this chunk's start are leftover literals
	// from a chunk that ended without a sequence reaching its end; fold
	// them into leftoverLits and reset anchor to this chunk's own start
	// (spec §4.5 step 2: "anchor = chunkStart", step 8's leftover
	// threading).
	if c.anchor < chunkStart {
		c.leftoverLits += chunkStart - c.anchor
		c.anchor = chunkStart
	}

	minMatch := uint32(c.params.MinMatchLength)

	// Re-initialise and prime the rolling hash at the start of every
	// internal chunk (spec §4.5 step 2, grounded on ZSTD_ldm_gear_init
	// plus the priming loop in ZSTD_ldm_generateSequences_internal):
	// splits produced while priming are discarded, and hash state never
	// survives across chunk boundaries.
	c.gear = initRollingHash(c.params.MinMatchLength, c.params.HashRateLog)
	primeLen := len(chunk)
	if primeLen > int(minMatch) {
		primeLen = int(minMatch)
	}
	relOff := 0
	for relOff < primeLen {
		consumed, _ := c.gear.feed(chunk[relOff:primeLen], c.splitBuf)
		relOff += consumed
	}

	// Splits are only searched up to ilimit = chunkEnd - hashReadSize
	// (spec §4.5 step 3); the trailing hashReadSize bytes of each chunk
	// become leftover literal instead, matching ZSTD_ldm_generateSequences
	// _internal's own `while (ip < ilimit)` bound.
	var splits []uint32
	if scanLimit := len(chunk) - hashReadSize; scanLimit > relOff {
		for relOff < scanLimit {
			consumed, numSplits := c.gear.feed(chunk[relOff:scanLimit], c.splitBuf)
			for i := range numSplits {
				triggerPos := chunkStart + uint32(relOff) + uint32(c.splitBuf[i])
				splits = append(splits, triggerPos-minMatch)
			}
			relOff += consumed
		}
	}

	for _, splitPtr := range splits {
		if err := c.handleSplit(store, splitPtr); err != nil {
			return err
		}
	}

	c.fillIndexBetweenSplits(chunkStart, c.win.nextSrc())

	c.win.enforceMaxDist(c.maxDist)
	c.win.compact()
	return nil
}

// handleSplit performs the index lookup and optional match emission for
// one content-defined split anchor, splitPtr (spec §4.5 steps 3-6,
// grounded on the per-split body of ZSTD_ldm_generateSequences_internal).
// splitPtr is the start of the minMatchLength-byte window the gear hash
// just finished scanning (the trigger position minus minMatchLength),
// matching `splitPtr = ip + s - minMatchLength` in spec §4.5 step 3.
func (c *Context) handleSplit(store *SeqStore, splitPtr uint32) error {
	minMatch := uint32(c.params.MinMatchLength)
	if splitPtr < c.anchor {
		return nil // already covered by a previously emitted match
	}
	if splitPtr < c.win.lowLimit {
		return nil
	}

	c.scratch = c.win.copyRange(c.scratch[:0], splitPtr, splitPtr+minMatch)
	h64 := splitHash64(c.scratch)
	bucketBits := c.params.HashLog - c.params.BucketSizeLog
	bh, cksum := bucketHash(h64, bucketBits)

	var bestOffset, bestStart, bestMatchStart, bestLen uint32
	for _, e := range c.idx.bucket(bh) {
		if e.offset <= c.win.lowLimit || e.checksum != cksum {
			continue
		}
		if !c.win.inBounds(e.offset) || splitPtr-e.offset > c.maxDist {
			continue
		}
		start, matchStart, length := extendMatch(c.win, splitPtr, e.offset, c.anchor, c.win.nextSrc())
		if length > bestLen {
			bestLen, bestStart, bestMatchStart = length, start, matchStart
			bestOffset = bestStart - bestMatchStart
		}
	}

	c.idx.insert(bh, indexEntry{offset: splitPtr, checksum: cksum})

	if bestLen < minMatch {
		return nil
	}

	litLength := (bestStart - c.anchor) + c.leftoverLits
	c.leftoverLits = 0
	if err := store.append(RawSeq{Offset: bestOffset, LitLength: litLength, MatchLength: bestLen}); err != nil {
		return err
	}
	c.anchor = bestStart + bestLen
	return nil
}

// fillIndexBetweenSplits implements spec §4.5a: between explicit gear-hash
// splits, a cheaper rolling hash is evaluated at every position and used
// to Bernoulli-sample extra index entries without paying for a full
// secondary hash everywhere. The sampled entries are keyed by the rolling
// hash's own bits (tagSmallHash/tagChecksum), while handleSplit looks
// entries up by the XXH64 bucket and checksum of its window, so a sampled
// entry passes a split's checksum test only by coincidence.
// Grounded on ZSTD_ldm_generateSequences's "hashRateLog" tag-table fill.
func (c *Context) fillIndexBetweenSplits(from, to uint32) {
	minMatch := uint32(c.params.MinMatchLength)
	if to < minMatch {
		return
	}
	bucketBits := c.params.HashLog - c.params.BucketSizeLog
	mask := tagMask(bucketBits, c.params.HashRateLog)

	start := from
	if floor := c.win.lowLimit + minMatch; start < floor {
		start = floor
	}

	primed := false
	for pos := start; pos < to; pos++ {
		if pos < c.anchor {
			primed = false
			continue
		}
		windowStart := pos - minMatch
		if !primed {
			c.scratch = c.win.copyRange(c.scratch[:0], windowStart, pos)
			c.tagHash.reset(c.scratch)
			primed = true
		} else {
			c.tagHash.rotate(c.win.byteAt(windowStart-1), c.win.byteAt(pos-1))
		}
		if c.tagHash.value&mask != mask {
			continue
		}
		small := tagSmallHash(c.tagHash.value, bucketBits)
		cksum := tagChecksum(c.tagHash.value, bucketBits)
		c.idx.insert(small, indexEntry{offset: pos, checksum: cksum})
	}
}

func (c *Context) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
