package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// MalformedFEN reports a FEN string that could not be parsed, along
// with which part of it was at fault.
type MalformedFEN struct {
	FEN    string
	Reason string
}

func (e *MalformedFEN) Error() string {
	return fmt.Sprintf("malformed FEN %q: %s", e.FEN, e.Reason)
}

// LoadFEN parses a FEN string into a Board.
func LoadFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, &MalformedFEN{fen, fmt.Sprintf("need at least 4 fields, got %d", len(parts))}
	}

	b := &Board{FullMoveNumber: 1}

	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, &MalformedFEN{fen, err.Error()}
	}

	switch parts[1] {
	case "w":
		b.SideToMove = WhiteCode
	case "b":
		b.SideToMove = BlackCode
	default:
		return nil, &MalformedFEN{fen, fmt.Sprintf("invalid side to move %q", parts[1])}
	}

	if err := parseCastlingRights(b, parts[2]); err != nil {
		return nil, &MalformedFEN{fen, err.Error()}
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, &MalformedFEN{fen, fmt.Sprintf("invalid en passant square %q", parts[3])}
		}
		b.EPPresent = true
		b.EPFile = sq.File()
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, &MalformedFEN{fen, fmt.Sprintf("invalid half-move clock %q", parts[4])}
		}
		b.HalfMoveClock = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, &MalformedFEN{fen, fmt.Sprintf("invalid full-move number %q", parts[5])}
		}
		b.FullMoveNumber = fmn
	}

	b.refreshOccupied()
	b.findKings()
	b.UpdateCheckers()

	return b, nil
}

func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pt, color, ok := pieceFromChar(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character %q", c)
			}
			b.setPiece(pt, color, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

func parseCastlingRights(b *Board, castling string) error {
	if castling == "-" {
		b.Castling = NoCastlingRights
		return nil
	}
	for _, c := range castling {
		switch c {
		case 'K':
			b.Castling |= WhiteKingSide
		case 'Q':
			b.Castling |= WhiteQueenSide
		case 'k':
			b.Castling |= BlackKingSide
		case 'q':
			b.Castling |= BlackQueenSide
		default:
			return fmt.Errorf("invalid castling character %q", c)
		}
	}
	return nil
}

// FormatFEN renders the board back to FEN notation.
func (b *Board) FormatFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			pt, c, ok := b.PieceAt(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pieceChar(pt, c))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.SideToMove == WhiteCode {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(b.enPassantSquareString())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullMoveNumber))

	return sb.String()
}
