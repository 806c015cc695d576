package board

// IsSafeMove reports whether moving the piece on from to to leaves mover's
// king out of reach of every enemy piece on the following ply.
// The move is simulated on a scratch copy; b is not modified.
func (b *Board) IsSafeMove(from, to Square, mover Color) bool {
	scratch := *b
	scratch.Apply(from, to)
	return !scratch.kingCapturable(mover)
}

// InCheck reports whether c's king could be taken by the side to move next
// if it were that side's turn now.
func (b *Board) InCheck(c Color) bool {
	scratch := *b
	scratch.ClearCandidates()
	return scratch.kingCapturable(c)
}

// kingCapturable generates every enemy piece's moves in turn and reports
// whether any of them lands on victim's king. Marks are cleared after each
// piece so one piece's reach never leaks into the next. It scribbles on b,
// so callers pass a scratch copy.
func (b *Board) kingCapturable(victim Color) bool {
	king := NewPiece(King, victim)
	for i := range b.cells {
		p := b.cells[i].Piece
		if p.IsEmpty() || p.Color() == victim {
			continue
		}
		b.MarkMoves(Square(i))
		for j := range b.cells {
			if b.cells[j].Candidate && b.cells[j].Piece == king {
				return true
			}
		}
		b.ClearCandidates()
	}
	return false
}

// MarkLegal marks the pseudo-legal moves of the piece on from, then unmarks
// every one that would leave mover's king capturable. It returns the
// surviving destinations in index order.
func (b *Board) MarkLegal(from Square, mover Color) []Square {
	b.ClearCandidates()
	b.MarkMoves(from)
	var legal []Square
	for _, to := range b.Candidates() {
		if b.IsSafeMove(from, to, mover) {
			legal = append(legal, to)
		} else {
			b.Unmark(to)
		}
	}
	return legal
}

// LegalMoves returns the legal destinations of the piece on from without
// leaving any marks on b.
func (b *Board) LegalMoves(from Square) []Square {
	scratch := *b
	return scratch.MarkLegal(from, b.cells[from].Piece.Color())
}
