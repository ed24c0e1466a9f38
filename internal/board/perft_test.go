package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// countLeaves counts the number of leaf nodes at the given depth,
// without tallying captures/checks/etc — the baseline correctness
// check for move generation and Apply/Undo. Perft (perft.go) produces
// the fully annotated PerftInfo used by the UCI "perft" command.
func countLeaves(b *Board, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Count)
	}
	var nodes int64
	for _, m := range moves.Slice() {
		extended := b.Apply(m)
		nodes += countLeaves(b, depth-1)
		b.Undo(extended)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	b := NewBoard()

	cases := []struct {
		depth int
		want  int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, countLeaves(b, tc.depth), "depth %d", tc.depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	b, err := LoadFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	require.NoError(t, err)

	cases := []struct {
		depth int
		want  int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, countLeaves(b, tc.depth), "depth %d", tc.depth)
	}
}

func TestPerftPosition3(t *testing.T) {
	b, err := LoadFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	require.NoError(t, err)

	cases := []struct {
		depth int
		want  int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, countLeaves(b, tc.depth), "depth %d", tc.depth)
	}
}

func TestPerftThreadedMatchesSequential(t *testing.T) {
	b := NewBoard()

	for _, depth := range []int{1, 2, 3} {
		want := Perft(b, depth)
		got, err := PerftThreaded(b, depth, 4)
		require.NoError(t, err)
		require.Equal(t, want, got, "depth %d", depth)
	}
}

func TestPerftThreadedSingleWorkerFallsBackToSequential(t *testing.T) {
	b := NewBoard()
	want := Perft(b, 3)
	got, err := PerftThreaded(b, 3, 1)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestPerftEnPassantPin(t *testing.T) {
	// Black pawn on e4 could capture en passant on d3, but doing so
	// would expose the black king on a4 to the white rook on h4.
	b, err := LoadFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	require.NoError(t, err)

	cases := []struct {
		depth int
		want  int64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, countLeaves(b, tc.depth), "depth %d", tc.depth)
	}
}
