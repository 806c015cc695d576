package board

import (
	"fmt"
	"strings"
)

// Heading is the direction a pawn advances in, as a rank delta.
type Heading int8

const (
	NoHeading Heading = 0
	Down      Heading = 1  // toward increasing index (pawns that start on top)
	Up        Heading = -1 // toward decreasing index (pawns that start on the bottom)
)

// Cell is the state of one board square.
//
// Piece-specific data lives in named fields: Unmoved only means something for
// kings and rooks (castling eligibility), Heading and EnPassant only for pawns.
type Cell struct {
	Piece     Piece
	Selected  bool
	Candidate bool
	EnPassant bool    // pawn just advanced two squares; lasts one ply
	Unmoved   bool    // king or rook has not moved yet
	Heading   Heading // pawn direction, fixed at setup
}

// Board is the 64-square game board.
// It is a plain value: assigning or calling Copy yields an independent board.
type Board struct {
	cells [64]Cell
}

// Setup returns a board in the starting formation with the given side on top.
// The top side's pawns head Down. With White on top the back rank reads
// R N B K Q B N R from the left, so the display is the usual board rotated.
func Setup(top Color) *Board {
	b := &Board{}
	bottom := top.Other()

	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	if top == White {
		backRank[3], backRank[4] = King, Queen
	}

	for file, pt := range backRank {
		b.put(NewSquare(file, 0), NewPiece(pt, top), top)
		b.put(NewSquare(file, 1), NewPiece(Pawn, top), top)
		b.put(NewSquare(file, 6), NewPiece(Pawn, bottom), top)
		b.put(NewSquare(file, 7), NewPiece(pt, bottom), top)
	}
	return b
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// At returns the cell at sq.
func (b *Board) At(sq Square) Cell {
	return b.cells[sq]
}

// PieceAt returns the piece at sq, or NoPiece if empty.
func (b *Board) PieceAt(sq Square) Piece {
	return b.cells[sq].Piece
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.cells[sq].Piece.IsEmpty()
}

// Select sets or clears the selection flag of sq.
func (b *Board) Select(sq Square, on bool) {
	b.cells[sq].Selected = on
}

// ClearSelection removes the selection flag from every square.
func (b *Board) ClearSelection() {
	for i := range b.cells {
		b.cells[i].Selected = false
	}
}

// ClearCandidates removes every candidate mark.
func (b *Board) ClearCandidates() {
	for i := range b.cells {
		b.cells[i].Candidate = false
	}
}

// Unmark removes the candidate mark from sq.
func (b *Board) Unmark(sq Square) {
	b.cells[sq].Candidate = false
}

// IsCandidate reports whether sq currently carries a candidate mark.
func (b *Board) IsCandidate(sq Square) bool {
	return b.cells[sq].Candidate
}

// Candidates returns the marked squares in index order.
func (b *Board) Candidates() []Square {
	var out []Square
	for i := range b.cells {
		if b.cells[i].Candidate {
			out = append(out, Square(i))
		}
	}
	return out
}

// KingSquare returns the square of c's king, or NoSquare if there is none.
func (b *Board) KingSquare(c Color) Square {
	k := NewPiece(King, c)
	for i := range b.cells {
		if b.cells[i].Piece == k {
			return Square(i)
		}
	}
	return NoSquare
}

// Count returns how many pieces of type pt and color c are on the board.
func (b *Board) Count(pt PieceType, c Color) int {
	p := NewPiece(pt, c)
	n := 0
	for i := range b.cells {
		if b.cells[i].Piece == p {
			n++
		}
	}
	return n
}

// PieceCount returns the number of occupied squares.
func (b *Board) PieceCount() int {
	n := 0
	for i := range b.cells {
		if !b.cells[i].Piece.IsEmpty() {
			n++
		}
	}
	return n
}

// SquareView is the rendering view of one square.
type SquareView struct {
	Piece     Piece
	Selected  bool
	Candidate bool
}

// Snapshot is a read-only copy of what a renderer needs from the board.
type Snapshot [64]SquareView

// Snapshot returns the current rendering view.
func (b *Board) Snapshot() Snapshot {
	var s Snapshot
	for i, c := range b.cells {
		s[i] = SquareView{Piece: c.Piece, Selected: c.Selected, Candidate: c.Candidate}
	}
	return s
}

// String returns a visual representation of the board.
// Candidate squares are shown as '*' when empty.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 0; rank < 8; rank++ {
		fmt.Fprintf(&sb, "%2d  ", rank*8)
		for file := 0; file < 8; file++ {
			c := b.cells[NewSquare(file, rank)]
			if c.Piece.IsEmpty() && c.Candidate {
				sb.WriteString("* ")
			} else {
				sb.WriteString(c.Piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
