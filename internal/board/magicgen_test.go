package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A freshly searched magic must produce the same lookup table as the
// slow ray-casting reference for every occupancy subset of the mask,
// whatever seed the search was started from.
func TestFindMagicBishop(t *testing.T) {
	sq := D4
	magic, shift, err := FindMagic(sq, true, 1)
	require.NoError(t, err)

	mask := bishopMask(sq)
	bits := mask.PopCount()
	require.Equal(t, uint8(64-bits), shift)

	verifyMagic(t, sq, mask, magic, shift, true)
}

func TestFindMagicRook(t *testing.T) {
	sq := A1
	magic, shift, err := FindMagic(sq, false, 7)
	require.NoError(t, err)

	mask := rookMask(sq)
	verifyMagic(t, sq, mask, magic, shift, false)
}

func TestFindMagicCornerSquares(t *testing.T) {
	for _, sq := range []Square{A1, H1, A8, H8, D4, E5} {
		_, _, err := FindMagic(sq, true, int64(sq)+1)
		require.NoError(t, err, "bishop %s", sq)
		_, _, err = FindMagic(sq, false, int64(sq)+100)
		require.NoError(t, err, "rook %s", sq)
	}
}

func verifyMagic(t *testing.T, sq Square, mask Bitboard, magic uint64, shift uint8, bishop bool) {
	t.Helper()
	bits := mask.PopCount()
	size := 1 << bits
	seen := make(map[uint64]Bitboard, size)

	for i := 0; i < size; i++ {
		occ := indexToOccupancy(i, bits, mask)
		var want Bitboard
		if bishop {
			want = bishopAttacksSlow(sq, occ)
		} else {
			want = rookAttacksSlow(sq, occ)
		}

		idx := (uint64(occ) * magic) >> shift
		if prior, ok := seen[idx]; ok {
			require.Equal(t, prior, want, "collision at index %d", idx)
		} else {
			seen[idx] = want
		}
	}
}
