package board

// GenerateLegalMoves returns every legal move for the side to move, in
// the deterministic order: pawns, knights, bishops, rooks, queens,
// king, then castling.
func (b *Board) GenerateLegalMoves() *MoveList {
	ml := &MoveList{}
	b.generatePseudoLegal(ml)
	return b.filterLegal(ml)
}

// GeneratePseudoLegalMoves returns every pseudo-legal move (some may
// leave the mover's own king in check).
func (b *Board) GeneratePseudoLegalMoves() *MoveList {
	ml := &MoveList{}
	b.generatePseudoLegal(ml)
	return ml
}

func (b *Board) generatePseudoLegal(ml *MoveList) {
	us := b.SideToMove.Color()
	them := us.Other()
	occupied := b.AllOccupied
	own := b.Occupied[us.Code()]
	enemies := b.Occupied[them.Code()]

	b.genPawnMoves(ml, us, enemies, occupied)
	b.genPieceMoves(ml, us, Knight, own, occupied, func(sq Square, occ Bitboard) Bitboard { return KnightAttacks(sq) })
	b.genPieceMoves(ml, us, Bishop, own, occupied, BishopAttacks)
	b.genPieceMoves(ml, us, Rook, own, occupied, RookAttacks)
	b.genPieceMoves(ml, us, Queen, own, occupied, QueenAttacks)
	b.genKingMoves(ml, us, own)
	b.genCastling(ml, us)
}

func (b *Board) genPieceMoves(ml *MoveList, us Color, pt PieceType, own, occupied Bitboard, attacksFn func(Square, Bitboard) Bitboard) {
	cc := us.Code()
	pieces := b.Pieces[Index(pt, us)]
	for pieces != 0 {
		from := pieces.PopLSB()
		targets := attacksFn(from, occupied) &^ own
		for targets != 0 {
			to := targets.PopLSB()
			ml.Push(EncodeMove(from, to, pt, Pawn, cc))
		}
	}
}

func (b *Board) genKingMoves(ml *MoveList, us Color, own Bitboard) {
	cc := us.Code()
	from := b.KingSquare[cc]
	targets := KingAttacks(from) &^ own
	for targets != 0 {
		to := targets.PopLSB()
		ml.Push(EncodeMove(from, to, King, Pawn, cc))
	}
}

func (b *Board) genPawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	cc := us.Code()
	pawns := b.Pieces[Index(Pawn, us)]
	empty := ^occupied

	var push1, push2, attackL, attackR Bitboard
	var promoRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promoRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promoRank = Rank1
		pushDir = -8
	}

	addPawn := func(bb Bitboard, delta int) {
		for bb != 0 {
			to := bb.PopLSB()
			from := Square(int(to) - delta)
			if SquareBB(to)&promoRank != 0 {
				ml.Push(EncodeMove(from, to, Pawn, Queen, cc))
				ml.Push(EncodeMove(from, to, Pawn, Rook, cc))
				ml.Push(EncodeMove(from, to, Pawn, Bishop, cc))
				ml.Push(EncodeMove(from, to, Pawn, Knight, cc))
			} else {
				ml.Push(EncodeMove(from, to, Pawn, Pawn, cc))
			}
		}
	}

	addPawn(push1, pushDir)
	for push2 != 0 {
		to := push2.PopLSB()
		from := Square(int(to) - 2*pushDir)
		ml.Push(EncodeMove(from, to, Pawn, Pawn, cc))
	}
	addPawn(attackL, pushDir-1)
	addPawn(attackR, pushDir+1)

	if b.EPPresent {
		epSq := b.EnPassantSquare()
		epBB := SquareBB(epSq)
		var attackers Bitboard
		if us == White {
			attackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			attackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for attackers != 0 {
			from := attackers.PopLSB()
			ml.Push(EncodeMove(from, epSq, Pawn, Pawn, cc))
		}
	}
}

func (b *Board) genCastling(ml *MoveList, us Color) {
	them := us.Other()
	cc := us.Code()
	if us == White {
		if b.Castling&WhiteKingSide != 0 && b.AllOccupied&(SquareBB(F1)|SquareBB(G1)) == 0 {
			if !b.IsSquareAttacked(E1, them) && !b.IsSquareAttacked(F1, them) && !b.IsSquareAttacked(G1, them) {
				ml.Push(EncodeMove(E1, G1, King, Pawn, cc))
			}
		}
		if b.Castling&WhiteQueenSide != 0 && b.AllOccupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 {
			if !b.IsSquareAttacked(E1, them) && !b.IsSquareAttacked(D1, them) && !b.IsSquareAttacked(C1, them) {
				ml.Push(EncodeMove(E1, C1, King, Pawn, cc))
			}
		}
	} else {
		if b.Castling&BlackKingSide != 0 && b.AllOccupied&(SquareBB(F8)|SquareBB(G8)) == 0 {
			if !b.IsSquareAttacked(E8, them) && !b.IsSquareAttacked(F8, them) && !b.IsSquareAttacked(G8, them) {
				ml.Push(EncodeMove(E8, G8, King, Pawn, cc))
			}
		}
		if b.Castling&BlackQueenSide != 0 && b.AllOccupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 {
			if !b.IsSquareAttacked(E8, them) && !b.IsSquareAttacked(D8, them) && !b.IsSquareAttacked(C8, them) {
				ml.Push(EncodeMove(E8, C8, King, Pawn, cc))
			}
		}
	}
}

func (b *Board) filterLegal(ml *MoveList) *MoveList {
	result := &MoveList{}
	for _, m := range ml.Slice() {
		if b.IsLegal(m) {
			result.Push(m)
		}
	}
	return result
}

// IsLegal reports whether applying m leaves the mover's own king safe.
// King moves (including castling, already validated not to pass through
// check during generation) are checked directly against the vacated
// occupancy; every other move is applied, checked, and undone.
func (b *Board) IsLegal(m Move) bool {
	us := m.Color().Color()
	them := us.Other()
	from := m.Src()
	ksq := b.KingSquare[us.Code()]

	if from == ksq {
		if m.IsCastling() {
			return true
		}
		occ := b.AllOccupied &^ SquareBB(from)
		return b.AttackersByColor(m.Dst(), them, occ) == 0
	}

	hmc := b.HalfMoveClock
	extended := b.Apply(m)
	attacked := b.IsSquareAttacked(ksq, them)
	b.Undo(extended)
	b.HalfMoveClock = hmc
	return !attacked
}
