package board

// PieceType identifies one of the six kinds of chess piece, numbered
// 0..5 in the order the data model assigns them.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// PieceValue is the material value of the piece type, in pawns, per the
// material-only evaluation: pawn=1, knight=3, bishop=3, rook=5, queen=8.
var PieceValue = [7]int{1, 3, 3, 5, 8, 0, 0}

// Color is the value added to a piece kind to index Board.Pieces:
// WHITE = 0, BLACK = 6. This is the literal color encoding the data
// model uses for piece-array offsets, distinct from the compact 1-bit
// ColorCode carried inside Move and Board.Info.
type Color uint8

const (
	White   Color = 0
	Black   Color = 6
	NoColor Color = 12
)

// Other returns the opposing color (color XOR 6).
func (c Color) Other() Color { return c ^ Black }

// Code returns the compact 1-bit color code used inside Move and Info.
func (c Color) Code() ColorCode { return ColorCode(c / Black) }

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// ColorCode is the compact 1-bit color representation carried in Move
// and Board.Info: WHITE -> 0, BLACK -> 1.
type ColorCode uint8

const (
	WhiteCode ColorCode = 0
	BlackCode ColorCode = 1
)

// Other returns the opposing compact color code.
func (c ColorCode) Other() ColorCode { return c ^ 1 }

// Color expands the compact code back to the literal Color value.
func (c ColorCode) Color() Color {
	if c == WhiteCode {
		return White
	}
	return Black
}

// Piece combines a PieceType and a Color into the single 0..11 index
// used to address Board.Pieces. Encoded as pieceType + color, which
// since Color is already 0 or 6 lands every white piece in 0..5 and
// every black piece in 6..11.
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)
	WhiteKnight Piece = Piece(Knight) + Piece(White)
	WhiteBishop Piece = Piece(Bishop) + Piece(White)
	WhiteRook   Piece = Piece(Rook) + Piece(White)
	WhiteQueen  Piece = Piece(Queen) + Piece(White)
	WhiteKing   Piece = Piece(King) + Piece(White)
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)
	BlackKnight Piece = Piece(Knight) + Piece(Black)
	BlackBishop Piece = Piece(Bishop) + Piece(Black)
	BlackRook   Piece = Piece(Rook) + Piece(Black)
	BlackQueen  Piece = Piece(Queen) + Piece(Black)
	BlackKing   Piece = Piece(King) + Piece(Black)
	NoPiece     Piece = 12
)

// Index returns the Board.Pieces slot for a piece kind and color
// (pieceType + color).
func Index(pt PieceType, c Color) int { return int(pt) + int(c) }

// NewPiece builds the combined index from a piece kind and a color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || (c != White && c != Black) {
		return NoPiece
	}
	return Piece(pt) + Piece(c)
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the literal Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	if p < 6 {
		return White
	}
	return Black
}

// String returns the FEN character for the piece: uppercase for white,
// lowercase for black.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	chars := "PNBRQKpnbrqk"
	return string(chars[p])
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// pieceFromChar splits a FEN piece character into kind and color.
func pieceFromChar(c byte) (PieceType, Color, bool) {
	p := PieceFromChar(c)
	if p == NoPiece {
		return NoPieceType, White, false
	}
	return p.Type(), p.Color(), true
}

// pieceChar returns the FEN character for a piece kind and color.
func pieceChar(pt PieceType, c Color) byte { return NewPiece(pt, c).String()[0] }

// Value returns the material value of the piece, in pawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
