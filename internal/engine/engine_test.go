package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/uciengine/internal/board"
)

func TestMateInOne(t *testing.T) {
	b, err := board.LoadFEN("1k6/6R1/1K6/8/8/8/8/8 w - - 0 0")
	require.NoError(t, err)

	e := New(2)
	e.SeedTieBreak(1)
	best := e.Search(b, Limits{Depth: 1})
	require.Equal(t, "g7g8", best.String())
}

func TestMateInTwo(t *testing.T) {
	b, err := board.LoadFEN("8/1k6/6R1/K6R/8/8/8/8 w - - 0 0")
	require.NoError(t, err)

	e := New(2)
	e.SeedTieBreak(1)
	best := e.Search(b, Limits{Depth: 3})
	require.Equal(t, "h5h7", best.String())
}

func TestSearchDoesNotMutateRootBoard(t *testing.T) {
	b := board.NewBoard()
	before := b.FormatFEN()

	e := New(2)
	e.Search(b, Limits{Depth: 3})

	require.Equal(t, before, b.FormatFEN())
}

func TestSearchRespectsSearchMoves(t *testing.T) {
	b := board.NewBoard()
	restrict, err := board.ParseLAN(b, "a2a3")
	require.NoError(t, err)

	e := New(2)
	best := e.Search(b, Limits{Depth: 2, SearchMoves: []board.Move{restrict}})
	require.Equal(t, "a2a3", best.String())
}

func TestSearchHonorsMoveTime(t *testing.T) {
	b := board.NewBoard()
	e := New(2)

	start := time.Now()
	best := e.Search(b, Limits{MoveTime: 50 * time.Millisecond})
	elapsed := time.Since(start)

	require.NotEqual(t, board.NoMove, best)
	require.Less(t, elapsed, 5*time.Second)
}

func TestStopAbandonsSearch(t *testing.T) {
	b := board.NewBoard()
	e := New(2)

	done := make(chan board.Move, 1)
	go func() {
		done <- e.Search(b, Limits{Infinite: true})
	}()

	time.Sleep(20 * time.Millisecond)
	e.Stop()

	select {
	case best := <-done:
		require.NotEqual(t, board.NoMove, best)
	case <-time.After(5 * time.Second):
		t.Fatal("search did not honor Stop")
	}
}
