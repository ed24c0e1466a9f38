package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckmate(t *testing.T) {
	// White: Ka1, Ra8. Black: Kh8, pawns g7/h7 boxing the king in.
	// Black to move and already checkmated.
	b, err := LoadFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)

	b.UpdateCheckers()
	require.True(t, b.InCheck())
	require.True(t, b.IsCheckmate())
	require.False(t, b.IsStalemate())
}

func TestStalemate(t *testing.T) {
	// Classic stalemate: Black king boxed in on a8 with no checks and
	// no legal moves, Black to move after White delivered stalemate.
	b, err := LoadFEN("k7/2Q5/1K6/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	b.UpdateCheckers()
	require.False(t, b.InCheck())
	require.True(t, b.IsStalemate())
	require.False(t, b.IsCheckmate())
}
