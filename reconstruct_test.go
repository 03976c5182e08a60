// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lzo

package ldm

import "fmt"

// Reconstruct decodes seqs against the literal bytes of src, using plain
// LZ back-reference semantics (offset measured from the current output
// position, length may exceed offset for self-overlapping runs), and
// returns the reconstructed byte stream. It is the test-side counterpart
// to GenerateSequences: if seqs are correct, Reconstruct(seqs, src) must
// reproduce src exactly (Testable Property 4, "matches are real").
//
// This is adapted from the teacher package's copyBackRef: the same
// distance-doubling technique for overlapping copies, generalised from a
// fixed-size destination buffer to one grown on demand.
func Reconstruct(seqs []RawSeq, src []byte) ([]byte, error) {
	out := make([]byte, 0, len(src))
	pos := 0
	for _, s := range seqs {
		if s.LitLength > 0 {
			end := pos + int(s.LitLength)
			if end > len(src) {
				return nil, fmt.Errorf("ldm: literal run overruns source at pos=%d litLength=%d", pos, s.LitLength)
			}
			out = append(out, src[pos:end]...)
			pos = end
		}
		if s.MatchLength > 0 {
			if err := copyBackRef(&out, int(s.Offset), int(s.MatchLength)); err != nil {
				return nil, err
			}
			pos += int(s.MatchLength)
		}
	}
	return out, nil
}

// copyBackRef appends length bytes to *dst, copied from dist bytes behind
// the current end of *dst. When dist < length the copy is self-overlapping
// (the match reaches into bytes it is itself producing); handled by
// seeding one dist-sized chunk and then doubling, mirroring how a real LZ
// decoder would replay this same back-reference.
func copyBackRef(dst *[]byte, dist, length int) error {
	d := *dst
	outputPos := len(d)
	mPos := outputPos - dist
	if dist <= 0 || mPos < 0 {
		return fmt.Errorf("ldm: invalid back-reference distance=%d at pos=%d", dist, outputPos)
	}

	d = append(d, make([]byte, length)...)

	if dist >= length {
		copy(d[outputPos:outputPos+length], d[mPos:mPos+length])
		*dst = d
		return nil
	}

	copy(d[outputPos:outputPos+dist], d[mPos:outputPos])
	copied := dist
	for copied < length {
		n := copy(d[outputPos+copied:outputPos+length], d[outputPos:outputPos+copied])
		copied += n
	}

	*dst = d
	return nil
}
