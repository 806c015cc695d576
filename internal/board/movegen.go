package board

// Direction vectors as (file delta, rank delta).
var (
	diagonalDirs   = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	orthogonalDirs = [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	knightOffsets  = [8][2]int{{-1, -2}, {1, -2}, {-2, -1}, {2, -1}, {-2, 1}, {2, 1}, {-1, 2}, {1, 2}}
	kingOffsets    = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)

// MarkMoves marks every pseudo-legal destination of the piece on from as a
// candidate. King safety is not considered. from must hold a piece.
func (b *Board) MarkMoves(from Square) {
	switch b.cells[from].Piece.Type() {
	case Pawn:
		b.markPawnMoves(from)
	case Knight:
		b.markSteps(from, knightOffsets[:])
	case Bishop:
		b.markRays(from, diagonalDirs[:])
	case Rook:
		b.markRays(from, orthogonalDirs[:])
	case Queen:
		b.markRays(from, diagonalDirs[:])
		b.markRays(from, orthogonalDirs[:])
	case King:
		b.markSteps(from, kingOffsets[:])
		b.markCastling(from)
	}
}

// markSquare applies the shared square rule for the piece on from moving to to.
// An empty square is marked and sliding continues; an enemy square is marked
// and sliding stops; an own piece stops sliding without a mark.
func (b *Board) markSquare(from, to Square) (cont bool) {
	target := b.cells[to].Piece
	if target.IsEmpty() {
		b.cells[to].Candidate = true
		return true
	}
	if target.Color() != b.cells[from].Piece.Color() {
		b.cells[to].Candidate = true
	}
	return false
}

func (b *Board) markSteps(from Square, offsets [][2]int) {
	for _, d := range offsets {
		if to, ok := from.Offset(d[0], d[1]); ok {
			b.markSquare(from, to)
		}
	}
}

func (b *Board) markRays(from Square, dirs [][2]int) {
	for _, d := range dirs {
		sq := from
		for {
			next, ok := sq.Offset(d[0], d[1])
			if !ok || !b.markSquare(from, next) {
				break
			}
			sq = next
		}
	}
}

// pawnStartRank returns the rank a pawn with heading h starts from.
func pawnStartRank(h Heading) int {
	if h == Down {
		return 1
	}
	return 6
}

func (b *Board) markPawnMoves(from Square) {
	pawn := b.cells[from]
	dr := int(pawn.Heading)
	us := pawn.Piece.Color()

	// Forward pushes never capture.
	if one, ok := from.Offset(0, dr); ok && b.IsEmpty(one) {
		b.cells[one].Candidate = true
		if from.Rank() == pawnStartRank(pawn.Heading) {
			if two, ok := from.Offset(0, 2*dr); ok && b.IsEmpty(two) {
				b.cells[two].Candidate = true
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := from.Offset(df, dr)
		if !ok {
			continue
		}
		target := b.cells[to].Piece
		if !target.IsEmpty() {
			if target.Color() != us {
				b.cells[to].Candidate = true
			}
			continue
		}
		// En passant: the victim sits beside the pawn, the capture lands behind it.
		beside, _ := from.Offset(df, 0)
		victim := b.cells[beside]
		if victim.Piece == NewPiece(Pawn, us.Other()) && victim.EnPassant {
			b.cells[to].Candidate = true
		}
	}
}

// markCastling marks the castling destinations of an unmoved king.
func (b *Board) markCastling(from Square) {
	king := b.cells[from]
	if !king.Unmoved {
		return
	}
	rook := NewPiece(Rook, king.Piece.Color())

	for _, cornerFile := range [2]int{0, 7} {
		corner := NewSquare(cornerFile, from.Rank())
		if c := b.cells[corner]; c.Piece != rook || !c.Unmoved {
			continue
		}

		step := 1
		if cornerFile < from.File() {
			step = -1
		}
		pathEmpty := true
		for f := from.File() + step; f != cornerFile; f += step {
			if !b.IsEmpty(NewSquare(f, from.Rank())) {
				pathEmpty = false
				break
			}
		}
		if to, ok := from.Offset(2*step, 0); ok && pathEmpty {
			b.markSquare(from, to)
		}
	}
}
