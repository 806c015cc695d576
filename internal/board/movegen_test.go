package board

import (
	"slices"
	"testing"
)

// marks runs MarkMoves on a copy of b and returns the marked squares.
func marks(b *Board, from Square) []Square {
	c := b.Copy()
	c.ClearCandidates()
	c.MarkMoves(from)
	return c.Candidates()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// middlegame is a crowded position used by the property tests.
const middlegame = `
	r.bqk..r
	pp...ppp
	..np.n..
	..b.p...
	..B.P...
	...P.N..
	PPP..PPP
	RNBQK..R`

func TestNeverMarksOwnPiece(t *testing.T) {
	boards := map[string]*Board{
		"start black on top": Setup(Black),
		"start white on top": Setup(White),
		"middlegame":         mustLayout(t, middlegame, Black),
	}
	for name, b := range boards {
		t.Run(name, func(t *testing.T) {
			for from := Square(0); from < NoSquare; from++ {
				p := b.PieceAt(from)
				if p.IsEmpty() {
					continue
				}
				for _, to := range marks(b, from) {
					if q := b.PieceAt(to); !q.IsEmpty() && q.Color() == p.Color() {
						t.Errorf("%v on %v marks own %v on %v", p, from, q, to)
					}
				}
			}
		})
	}
}

func TestKnightNeverWraps(t *testing.T) {
	for from := Square(0); from < NoSquare; from++ {
		b := &Board{}
		b.put(from, WhiteKnight, Black)

		got := marks(b, from)
		want := 0
		for _, d := range knightOffsets {
			f, r := from.File()+d[0], from.Rank()+d[1]
			if f >= 0 && f < 8 && r >= 0 && r < 8 {
				want++
			}
		}
		if len(got) != want {
			t.Errorf("knight on %v marks %d squares, want %d: %v", from, len(got), want, got)
		}
		for _, to := range got {
			df, dr := abs(to.File()-from.File()), abs(to.Rank()-from.Rank())
			if !(df == 1 && dr == 2) && !(df == 2 && dr == 1) {
				t.Errorf("knight on %v marks %v (file delta %d, rank delta %d)", from, to, df, dr)
			}
		}
	}
}

func TestKingNeverWraps(t *testing.T) {
	for from := Square(0); from < NoSquare; from++ {
		b := &Board{}
		b.cells[from] = Cell{Piece: BlackKing}
		for _, to := range marks(b, from) {
			if abs(to.File()-from.File()) > 1 || abs(to.Rank()-from.Rank()) > 1 {
				t.Errorf("king on %v marks %v", from, to)
			}
		}
	}
}

// TestSlidersStopAtFirstPiece checks that every marked square is reached
// along a clear ray.
func TestSlidersStopAtFirstPiece(t *testing.T) {
	b := mustLayout(t, middlegame, Black)
	for _, pt := range []PieceType{Bishop, Rook, Queen} {
		for from := Square(0); from < NoSquare; from++ {
			probe := b.Copy()
			if !probe.IsEmpty(from) {
				continue
			}
			probe.cells[from] = Cell{Piece: NewPiece(pt, White)}

			for _, to := range marks(probe, from) {
				df, dr := to.File()-from.File(), to.Rank()-from.Rank()
				if df != 0 && dr != 0 && abs(df) != abs(dr) {
					t.Fatalf("%v on %v marks off-ray square %v", pt, from, to)
				}
				sf, sr := sign(df), sign(dr)
				for cur, _ := from.Offset(sf, sr); cur != to; cur, _ = cur.Offset(sf, sr) {
					if !probe.IsEmpty(cur) {
						t.Errorf("%v on %v marks %v beyond the piece on %v", pt, from, to, cur)
						break
					}
				}
			}
		}
	}
}

func TestRookRays(t *testing.T) {
	b := mustLayout(t, `
		....k...
		........
		...p....
		........
		.N.R..p.
		........
		........
		....K...`, Black)
	got := marks(b, sq(3, 4))
	want := []Square{sq(3, 2), sq(3, 3), sq(2, 4), sq(4, 4), sq(5, 4), sq(6, 4), sq(3, 5), sq(3, 6), sq(3, 7)}
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("rook marks = %v, want %v", got, want)
	}
}

func TestPawnPushes(t *testing.T) {
	b := Setup(Black)
	if got := marks(b, 52); !slices.Equal(got, []Square{36, 44}) {
		t.Errorf("white e-pawn marks = %v, want [36 44]", got)
	}
	if got := marks(b, 12); !slices.Equal(got, []Square{20, 28}) {
		t.Errorf("black e-pawn marks = %v, want [20 28]", got)
	}

	// A piece on the intervening square blocks the double step too.
	blocked := mustLayout(t, `
		....k...
		........
		........
		........
		........
		....n...
		....P...
		....K...`, Black)
	if got := marks(blocked, 52); len(got) != 0 {
		t.Errorf("blocked pawn marks = %v, want none", got)
	}

	// Target blocked, intervening square free: single step only.
	far := mustLayout(t, `
		....k...
		........
		........
		........
		....n...
		........
		....P...
		....K...`, Black)
	if got := marks(far, 52); !slices.Equal(got, []Square{44}) {
		t.Errorf("pawn marks = %v, want [44]", got)
	}
}

func TestPawnDoubleStepOnlyFromStartRank(t *testing.T) {
	b := mustLayout(t, `
		....k...
		........
		........
		........
		........
		....P...
		........
		....K...`, Black)
	if got := marks(b, 44); !slices.Equal(got, []Square{36}) {
		t.Errorf("advanced pawn marks = %v, want [36]", got)
	}
}

func TestPawnCaptures(t *testing.T) {
	b := mustLayout(t, `
		....k...
		........
		........
		........
		...n.R..
		....P...
		........
		....K...`, Black)
	// Captures the knight on the left, not the own rook on the right.
	if got := marks(b, 44); !slices.Equal(got, []Square{35, 36}) {
		t.Errorf("pawn marks = %v, want [35 36]", got)
	}
}

func TestPawnOnEdgeFileDoesNotWrap(t *testing.T) {
	b := mustLayout(t, `
		....k...
		........
		.......n
		........
		P.......
		........
		........
		....K...`, Black)
	// 32-9 lands on the knight at the far edge of the board.
	if got := marks(b, 32); !slices.Equal(got, []Square{24}) {
		t.Errorf("a-file pawn marks = %v, want [24]", got)
	}
}

func TestCastlingMarks(t *testing.T) {
	b := mustLayout(t, `
		r...k..r
		pppppppp
		........
		........
		........
		........
		PPPPPPPP
		R...K..R`, Black)
	got := marks(b, 60)
	want := []Square{58, 59, 61, 62}
	if !slices.Equal(got, want) {
		t.Errorf("king marks = %v, want %v", got, want)
	}
	if got := marks(b, 4); !slices.Equal(got, []Square{2, 3, 5, 6}) {
		t.Errorf("black king marks = %v, want [2 3 5 6]", got)
	}
}

func TestCastlingWhiteOnTop(t *testing.T) {
	b := mustLayout(t, `
		R..K...R
		PPPPPPPP
		........
		........
		........
		........
		pppppppp
		r..k...r`, White)
	if got := marks(b, 3); !slices.Equal(got, []Square{1, 2, 4, 5}) {
		t.Errorf("king marks = %v, want [1 2 4 5]", got)
	}
}

func TestCastlingBlocked(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   []Square
	}{
		{"piece between", `
			....k...
			........
			........
			........
			........
			........
			........
			RN..K.BR`, []Square{51, 52, 53, 59, 61}},
		{"no rook", `
			....k...
			........
			........
			........
			........
			........
			........
			....K...`, []Square{51, 52, 53, 59, 61}},
		{"enemy rook in corner", `
			....k...
			........
			........
			........
			........
			........
			........
			r...K..r`, []Square{51, 52, 53, 59, 61}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustLayout(t, tc.layout, Black)
			got := marks(b, 60)
			if !slices.Equal(got, tc.want) {
				t.Errorf("king marks = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("rook has moved", func(t *testing.T) {
		b := mustLayout(t, `
			....k...
			........
			........
			........
			........
			........
			........
			R...K..R`, Black)
		b.cells[63].Unmoved = false
		if got := marks(b, 60); slices.Contains(got, 62) {
			t.Errorf("king marks %v, kingside castle should be gone", got)
		}
		if got := marks(b, 60); !slices.Contains(got, 58) {
			t.Errorf("king marks %v, queenside castle should remain", got)
		}
	})

	t.Run("king has moved", func(t *testing.T) {
		b := mustLayout(t, `
			....k...
			........
			........
			........
			........
			........
			........
			R...K..R`, Black)
		b.cells[60].Unmoved = false
		got := marks(b, 60)
		if slices.Contains(got, 58) || slices.Contains(got, 62) {
			t.Errorf("king marks %v, no castling expected", got)
		}
	})
}

func TestCastlingNextToCorner(t *testing.T) {
	layout := `
		....k...
		........
		........
		........
		........
		........
		........
		......KR`
	want := []Square{53, 54, 55, 61}

	t.Run("parsed king", func(t *testing.T) {
		b := mustLayout(t, layout, Black)
		if b.At(62).Unmoved {
			t.Fatal("a king off its starting file must not be unmoved")
		}
		if got := b.MarkLegal(62, White); !slices.Equal(got, want) {
			t.Errorf("legal king moves = %v, want %v", got, want)
		}
	})

	// Two files to the right of g1 is off the board.
	t.Run("unmoved flag forced", func(t *testing.T) {
		b := mustLayout(t, layout, Black)
		b.cells[62].Unmoved = true
		b.cells[63].Unmoved = true
		if got := marks(b, 62); !slices.Equal(got, want) {
			t.Errorf("king marks = %v, want %v", got, want)
		}
		if got := b.MarkLegal(62, White); !slices.Equal(got, want) {
			t.Errorf("legal king moves = %v, want %v", got, want)
		}
		// Black's moves are validated against the white king's reach.
		if b.InCheck(Black) {
			t.Error("black king reported in check")
		}
		if got := b.LegalMoves(4); len(got) != 5 {
			t.Errorf("black king moves = %v, want 5 squares", got)
		}
	})
}
