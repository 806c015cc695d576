package board

import "fmt"

// MoveResult describes what Apply did.
type MoveResult struct {
	From, To   Square
	Moved      Piece // piece that left From
	Captured   Piece // NoPiece if nothing was taken
	Castled    bool
	EnPassant  bool
	Promoted   bool
	DoubleStep bool
}

// IsCapture reports whether the move removed an enemy piece.
func (r MoveResult) IsCapture() bool {
	return !r.Captured.IsEmpty()
}

// Apply plays the piece on from to to, handling castling, en passant and
// promotion. The move is assumed to be one MarkMoves produced; an empty
// origin is a caller bug and panics.
func (b *Board) Apply(from, to Square) MoveResult {
	if !from.IsValid() || !to.IsValid() {
		panic(fmt.Sprintf("board: apply %v->%v: square out of range", from, to))
	}
	mover := b.cells[from]
	if mover.Piece.IsEmpty() {
		panic(fmt.Sprintf("board: apply %v->%v: no piece on origin", from, to))
	}

	// En passant vulnerability lasts exactly one ply.
	for i := range b.cells {
		b.cells[i].EnPassant = false
	}

	res := MoveResult{
		From:     from,
		To:       to,
		Moved:    mover.Piece,
		Captured: b.cells[to].Piece,
	}
	dest := Cell{Piece: mover.Piece}

	switch mover.Piece.Type() {
	case Pawn:
		switch {
		case to.Rank() == 0 || to.Rank() == 7:
			dest.Piece = NewPiece(Queen, mover.Piece.Color())
			res.Promoted = true
		case b.IsEmpty(to) && from.File() != to.File():
			// The captured pawn stands beside the origin, not on the destination.
			victim := NewSquare(to.File(), from.Rank())
			res.Captured = b.cells[victim].Piece
			res.EnPassant = true
			b.cells[victim] = Cell{}
			dest.Heading = mover.Heading
		default:
			dest.Heading = mover.Heading
			if d := to.Rank() - from.Rank(); d == 2 || d == -2 {
				dest.EnPassant = true
				res.DoubleStep = true
			}
		}

	case King:
		if df := to.File() - from.File(); df == 2 || df == -2 {
			b.castleRook(from, to, df)
			res.Castled = true
		}
	}
	// Kings and rooks leave with Unmoved cleared; knights, bishops and
	// queens carry no flags, so dest needs nothing more.

	b.cells[to] = dest
	b.cells[from] = Cell{}
	b.ClearCandidates()
	return res
}

// castleRook moves the corner rook on the side the king travelled to the
// square next to the king's destination, toward the king's origin.
func (b *Board) castleRook(from, to Square, df int) {
	cornerFile, rookFile := 7, to.File()-1
	if df < 0 {
		cornerFile, rookFile = 0, to.File()+1
	}
	corner := NewSquare(cornerFile, from.Rank())
	b.cells[NewSquare(rookFile, from.Rank())] = Cell{Piece: b.cells[corner].Piece}
	b.cells[corner] = Cell{}
}
