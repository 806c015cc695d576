package board

import (
	"fmt"
	"strings"
)

// ParseLayout builds a board from eight rows of eight characters, top row
// first: '.' for an empty square, PNBRQK for white and pnbrqk for black.
// Whitespace around and inside rows is ignored.
//
// top names the side that started on top. Its pawns head Down and the other
// side's pawns head Up; a king on its starting square and a rook in one of
// its own back-rank corners are marked unmoved. No pawn is en passant vulnerable.
func ParseLayout(layout string, top Color) (*Board, error) {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		row := strings.Join(strings.Fields(line), "")
		if row != "" {
			rows = append(rows, row)
		}
	}
	if len(rows) != 8 {
		return nil, fmt.Errorf("invalid layout: need 8 rows, got %d", len(rows))
	}

	b := &Board{}
	for rank, row := range rows {
		if len(row) != 8 {
			return nil, fmt.Errorf("invalid layout: row %d has %d squares", rank, len(row))
		}
		for file := 0; file < 8; file++ {
			c := row[file]
			if c == '.' {
				continue
			}
			piece := PieceFromChar(c)
			if piece == NoPiece {
				return nil, fmt.Errorf("invalid piece character: %c", c)
			}
			b.put(NewSquare(file, rank), piece, top)
		}
	}
	return b, nil
}

// put places piece on sq, deriving its flags from which side started on top.
func (b *Board) put(sq Square, piece Piece, top Color) {
	c := Cell{Piece: piece}
	home := 7
	if piece.Color() == top {
		home = 0
	}
	switch piece.Type() {
	case King:
		c.Unmoved = sq.Rank() == home && sq.File() == kingFile(top)
	case Rook:
		c.Unmoved = sq.Rank() == home && (sq.File() == 0 || sq.File() == 7)
	case Pawn:
		if piece.Color() == top {
			c.Heading = Down
		} else {
			c.Heading = Up
		}
	}
	b.cells[sq] = c
}

// kingFile is the starting file of both kings. With White on top the kings
// start on file 3.
func kingFile(top Color) int {
	if top == White {
		return 3
	}
	return 4
}
