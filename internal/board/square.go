// Package board implements the chess rules core: a 64-cell board, pseudo-legal
// move marking, king-safety filtering by simulation, and move application.
package board

import "strconv"

// Square represents a square on the chess board (0-63).
// Squares are row-major with rank 0 at the top of the display:
// index 0 is the top-left corner, 63 the bottom-right.
type Square uint8

// NoSquare marks the absence of a square.
const NoSquare Square = 64

// File returns the column of the square (0-7, left to right).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the row of the square (0-7, top to bottom).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// String returns the square index, or "-" for NoSquare.
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return strconv.Itoa(int(sq))
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Offset returns the square df files and dr ranks away.
// The second result is false when the target falls off the board, so that
// moves never wrap from one edge of a row to the other.
func (sq Square) Offset(df, dr int) (Square, bool) {
	f, r := sq.File()+df, sq.Rank()+dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}
