package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeMoveRoundTrip(t *testing.T) {
	m := EncodeMove(E2, E4, Pawn, Pawn, WhiteCode)
	require.Equal(t, E2, m.Src())
	require.Equal(t, E4, m.Dst())
	require.Equal(t, Pawn, m.Piece())
	require.Equal(t, Pawn, m.Promotion())
	require.Equal(t, WhiteCode, m.Color())
	require.Equal(t, "e2e4", m.String())
}

func TestEncodeMovePromotion(t *testing.T) {
	m := EncodeMove(A7, A8, Pawn, Queen, WhiteCode)
	require.Equal(t, Queen, m.Promotion())
	require.Equal(t, "a7a8q", m.String())
}

func TestExtendRoundTrip(t *testing.T) {
	m := EncodeMove(D2, D4, Pawn, Pawn, WhiteCode)
	info := EncodeInfo(WhiteCode, AllCastlingRights, 0, false)
	extended := m.Extend(Knight, info, false)

	require.Equal(t, Knight, extended.Captured())
	require.True(t, extended.IsCapture())
	require.False(t, extended.IsEnPassantCapture())
	require.Equal(t, info, extended.PrevInfo())
	// Low 19 bits (src/dst/piece/promo/color) are unchanged by Extend.
	require.Equal(t, m.Src(), extended.Src())
	require.Equal(t, m.Dst(), extended.Dst())
}

func TestNoCaptureSentinel(t *testing.T) {
	m := EncodeMove(B1, C3, Knight, Pawn, WhiteCode)
	extended := m.Extend(NoPieceType, Info(0), false)
	require.False(t, extended.IsCapture())
}

func TestIsCastling(t *testing.T) {
	king := EncodeMove(E1, G1, King, Pawn, WhiteCode)
	require.True(t, king.IsCastling())

	quiet := EncodeMove(E1, F1, King, Pawn, WhiteCode)
	require.False(t, quiet.IsCastling())
}

func TestParseLAN(t *testing.T) {
	b := NewBoard()
	m, err := ParseLAN(b, "e2e4")
	require.NoError(t, err)
	require.Equal(t, E2, m.Src())
	require.Equal(t, E4, m.Dst())
	require.Equal(t, Pawn, m.Piece())

	_, err = ParseLAN(b, "e2")
	require.Error(t, err)

	_, err = ParseLAN(b, "e3e4")
	require.Error(t, err, "no piece on e3")
}
