package board

// Apply mutates b by playing m and returns the extended form of m
// (captured piece + pre-move Info folded in) that must be passed back
// to Undo to reverse the mutation. Apply never allocates and never
// copies the board; callers that need to explore alternatives and
// backtrack use Apply/Undo in a stack-like fashion.
func (b *Board) Apply(m Move) Move {
	prevInfo := b.Info()

	src, dst := m.Src(), m.Dst()
	piece := m.Piece()
	us := m.Color().Color()

	captured := NoPieceType
	enPassant := false

	if piece == Pawn && src.File() != dst.File() && b.IsEmpty(dst) {
		enPassant = true
		capSq := enPassantCaptureSquare(dst, us)
		captured, _, _ = b.removePieceAt(capSq)
	} else if cp, _, ok := b.PieceAt(dst); ok {
		captured = cp
		b.removePieceAt(dst)
	}

	b.movePieceAt(src, dst, piece, us)

	promo := m.Promotion()
	if promo != Pawn {
		b.Pieces[Index(Pawn, us)] &^= SquareBB(dst)
		b.Pieces[Index(promo, us)] |= SquareBB(dst)
	}

	if m.IsCastling() {
		rookFrom, rookTo := castleRookSquares(src, dst)
		b.movePieceAt(rookFrom, rookTo, Rook, us)
	}

	b.updateCastlingRights(src, dst, piece)

	b.EPPresent = false
	if piece == Pawn && absInt(int(dst)-int(src)) == 16 {
		b.EPPresent = true
		b.EPFile = src.File()
	}

	if piece == Pawn || captured != NoPieceType {
		b.HalfMoveClock = 0
	} else {
		b.HalfMoveClock++
	}
	if us == Black {
		b.FullMoveNumber++
	}

	b.SideToMove = b.SideToMove.Other()
	b.refreshOccupied()
	b.UpdateCheckers()

	return m.Extend(captured, prevInfo, enPassant)
}

// Undo reverses an extended move produced by Apply, restoring b's pieces,
// side to move, castling rights, en-passant state and full-move number
// to what they were immediately before that Apply call. HalfMoveClock is
// not restored: the extended move does not carry it.
func (b *Board) Undo(m Move) {
	src, dst := m.Src(), m.Dst()
	piece := m.Piece()
	us := m.Color().Color()

	if us == Black {
		b.FullMoveNumber--
	}

	promo := m.Promotion()
	if promo != Pawn {
		b.Pieces[Index(promo, us)] &^= SquareBB(dst)
		b.Pieces[Index(Pawn, us)] |= SquareBB(dst)
	}

	b.movePieceAt(dst, src, piece, us)

	if m.IsCastling() {
		rookFrom, rookTo := castleRookSquares(src, dst)
		b.movePieceAt(rookTo, rookFrom, Rook, us)
	}

	if m.IsCapture() {
		captured := m.Captured()
		if m.IsEnPassantCapture() {
			capSq := enPassantCaptureSquare(dst, us)
			b.setPiece(captured, us.Other(), capSq)
		} else {
			b.setPiece(captured, us.Other(), dst)
		}
	}

	b.setInfo(m.PrevInfo())
	b.refreshOccupied()
	b.UpdateCheckers()
}

// enPassantCaptureSquare returns the square the captured pawn actually
// sits on for an en-passant capture landing on dst, by the mover us.
func enPassantCaptureSquare(dst Square, us Color) Square {
	if us == White {
		return dst - 8
	}
	return dst + 8
}

// castleRookSquares returns the rook's home and destination squares
// for a castling king move from src to dst.
func castleRookSquares(src, dst Square) (Square, Square) {
	rank := src.Rank()
	if dst > src {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// updateCastlingRights clears castling rights invalidated by a king or
// rook move (or a rook being captured on its home square).
func (b *Board) updateCastlingRights(src, dst Square, piece PieceType) {
	if piece == King {
		if src == E1 {
			b.Castling &^= WhiteKingSide | WhiteQueenSide
		} else if src == E8 {
			b.Castling &^= BlackKingSide | BlackQueenSide
		}
	}
	if src == A1 || dst == A1 {
		b.Castling &^= WhiteQueenSide
	}
	if src == H1 || dst == H1 {
		b.Castling &^= WhiteKingSide
	}
	if src == A8 || dst == A8 {
		b.Castling &^= BlackQueenSide
	}
	if src == H8 || dst == H8 {
		b.Castling &^= BlackKingSide
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
