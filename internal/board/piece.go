package board

import "strings"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

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

// ParseColor converts "white"/"black" (or "w"/"b", any case) to a Color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	}
	return White, false
}

// PieceType represents the type of a chess piece.
// The zero value is an empty square.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
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

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType | color<<3, so NoPiece is the zero value.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = Piece(Pawn) | Piece(White)<<3
	WhiteKnight Piece = Piece(Knight) | Piece(White)<<3
	WhiteBishop Piece = Piece(Bishop) | Piece(White)<<3
	WhiteRook   Piece = Piece(Rook) | Piece(White)<<3
	WhiteQueen  Piece = Piece(Queen) | Piece(White)<<3
	WhiteKing   Piece = Piece(King) | Piece(White)<<3
	BlackPawn   Piece = Piece(Pawn) | Piece(Black)<<3
	BlackKnight Piece = Piece(Knight) | Piece(Black)<<3
	BlackBishop Piece = Piece(Bishop) | Piece(Black)<<3
	BlackRook   Piece = Piece(Rook) | Piece(Black)<<3
	BlackQueen  Piece = Piece(Queen) | Piece(Black)<<3
	BlackKing   Piece = Piece(King) | Piece(Black)<<3
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType || pt > King || c > Black {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return PieceType(p & 7)
}

// Color returns the Color of the piece. Meaningless for NoPiece.
func (p Piece) Color() Color {
	return Color(p>>3) & 1
}

// IsEmpty reports whether p is NoPiece.
func (p Piece) IsEmpty() bool {
	return p.Type() == NoPieceType
}

// String returns the piece letter.
// Uppercase for white, lowercase for black, "." for an empty square.
func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	chars := " PNBRQK"
	c := chars[p.Type()]
	if p.Color() == Black {
		c += 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar converts a piece letter to a Piece.
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
