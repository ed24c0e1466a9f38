package engine

import "github.com/kestrelchess/uciengine/internal/board"

// alphaBeta is fail-hard negamax: the static evaluation at depth 0,
// otherwise the best score obtainable for the side to move, with
// branches pruned once a move is at least as good as the opponent
// could already guarantee elsewhere (weight >= beta).
func (e *Engine) alphaBeta(b *board.Board, alpha, beta, depth int) int {
	e.nodes.Add(1)

	if depth == 0 {
		return perspective(b)
	}

	// A side with no legal moves (mated or stalemated) falls through the
	// loop untouched, returning alpha as received from the caller; the
	// caller's negation then scores forcing that position as maximally
	// good for whichever side caused it, checkmate or stalemate alike.
	moves := b.GenerateLegalMoves().Slice()

	for _, m := range moves {
		extended := b.Apply(m)
		weight := -e.alphaBeta(b, -beta, -alpha, depth-1)
		b.Undo(extended)

		if e.state.Stop() {
			return alpha
		}

		if weight >= beta {
			return beta
		}
		if weight > alpha {
			alpha = weight
		}
	}

	return alpha
}

// perspective returns the material evaluation from the side-to-move's
// point of view, as negamax requires.
func perspective(b *board.Board) int {
	score := board.Evaluate(b)
	if b.SideToMove == board.BlackCode {
		return -score
	}
	return score
}
