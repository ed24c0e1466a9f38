package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFENStartPos(t *testing.T) {
	b, err := LoadFEN(StartFEN)
	require.NoError(t, err)
	require.Equal(t, StartFEN, b.FormatFEN())
	require.Equal(t, WhiteCode, b.SideToMove)
	require.Equal(t, AllCastlingRights, b.Castling)
	require.False(t, b.EPPresent)
	require.Equal(t, E1, b.KingSquare[WhiteCode])
	require.Equal(t, E8, b.KingSquare[BlackCode])
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w kq - 3 7",
	}
	for _, fen := range fens {
		b, err := LoadFEN(fen)
		require.NoError(t, err, fen)
		require.Equal(t, fen, b.FormatFEN(), fen)

		again, err := LoadFEN(b.FormatFEN())
		require.NoError(t, err)
		require.Equal(t, b.FormatFEN(), again.FormatFEN())
	}
}

func TestLoadFENRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
	}
	for _, fen := range cases {
		_, err := LoadFEN(fen)
		require.Error(t, err, fen)
		var malformed *MalformedFEN
		require.ErrorAs(t, err, &malformed)
	}
}
