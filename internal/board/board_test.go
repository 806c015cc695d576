package board

import (
	"slices"
	"strings"
	"testing"
)

func mustLayout(t *testing.T, layout string, top Color) *Board {
	t.Helper()
	b, err := ParseLayout(layout, top)
	if err != nil {
		t.Fatalf("Failed to parse layout: %v", err)
	}
	return b
}

func sq(file, rank int) Square {
	return NewSquare(file, rank)
}

func TestSetupBlackOnTop(t *testing.T) {
	b := Setup(Black)
	t.Log(b)

	if b.PieceCount() != 32 {
		t.Fatalf("PieceCount = %d, want 32", b.PieceCount())
	}
	if got := b.PieceAt(4); got != BlackKing {
		t.Errorf("square 4 = %v, want k", got)
	}
	if got := b.PieceAt(60); got != WhiteKing {
		t.Errorf("square 60 = %v, want K", got)
	}
	if got := b.PieceAt(59); got != WhiteQueen {
		t.Errorf("square 59 = %v, want Q", got)
	}

	for _, s := range []Square{0, 4, 7, 56, 60, 63} {
		if !b.At(s).Unmoved {
			t.Errorf("square %v should start unmoved", s)
		}
	}
	for f := 0; f < 8; f++ {
		if h := b.At(sq(f, 1)).Heading; h != Down {
			t.Errorf("black pawn on file %d heading = %d, want Down", f, h)
		}
		if h := b.At(sq(f, 6)).Heading; h != Up {
			t.Errorf("white pawn on file %d heading = %d, want Up", f, h)
		}
		if b.At(sq(f, 1)).Unmoved || b.At(sq(f, 6)).Unmoved {
			t.Errorf("pawns on file %d must not carry the unmoved flag", f)
		}
	}
}

func TestSetupWhiteOnTop(t *testing.T) {
	b := Setup(White)
	t.Log(b)

	if got := b.PieceAt(3); got != WhiteKing {
		t.Errorf("square 3 = %v, want K", got)
	}
	if got := b.PieceAt(4); got != WhiteQueen {
		t.Errorf("square 4 = %v, want Q", got)
	}
	if got := b.PieceAt(59); got != BlackKing {
		t.Errorf("square 59 = %v, want k", got)
	}
	if h := b.At(12).Heading; h != Down {
		t.Errorf("white pawn heading = %d, want Down", h)
	}
	if h := b.At(52).Heading; h != Up {
		t.Errorf("black pawn heading = %d, want Up", h)
	}
}

func TestSetupHasNoTransientFlags(t *testing.T) {
	for _, top := range []Color{White, Black} {
		b := Setup(top)
		for i := Square(0); i < NoSquare; i++ {
			c := b.At(i)
			if c.Selected || c.Candidate || c.EnPassant {
				t.Errorf("top=%v square %v has transient flags set: %+v", top, i, c)
			}
		}
	}
}

func TestSquareOffset(t *testing.T) {
	tests := []struct {
		from   Square
		df, dr int
		want   Square
		ok     bool
	}{
		{0, -1, 0, NoSquare, false},
		{7, 1, 0, NoSquare, false},
		{7, 1, 1, NoSquare, false}, // would wrap to 16 with index arithmetic
		{8, -1, 1, NoSquare, false},
		{63, 0, 1, NoSquare, false},
		{27, 2, -1, 21, true},
		{0, 1, 2, 17, true},
	}
	for _, tc := range tests {
		got, ok := tc.from.Offset(tc.df, tc.dr)
		if got != tc.want || ok != tc.ok {
			t.Errorf("%v.Offset(%d,%d) = %v,%v want %v,%v", tc.from, tc.df, tc.dr, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseLayout(t *testing.T) {
	b := mustLayout(t, `
		r...k..r
		........
		........
		...p....
		........
		........
		P.......
		R...K..R`, Black)

	if b.PieceCount() != 8 {
		t.Errorf("PieceCount = %d, want 8", b.PieceCount())
	}
	if !b.At(60).Unmoved || !b.At(63).Unmoved || !b.At(0).Unmoved {
		t.Error("back-rank kings and rooks should be unmoved")
	}
	if b.At(27).Heading != Down || b.At(48).Heading != Up {
		t.Error("pawn headings not derived from the top side")
	}

	moved := mustLayout(t, `
		....k...
		........
		........
		........
		....R...
		........
		........
		....K...`, Black)
	if moved.At(36).Unmoved {
		t.Error("a rook off its back rank must not be unmoved")
	}

	tests := []struct {
		name   string
		layout string
		top    Color
		sq     Square
		want   bool
	}{
		{"king on e-file", "....k.../......../......../......../......../......../......../....K...", Black, 60, true},
		{"king on g-file", "....k.../......../......../......../......../......../......../......K.", Black, 62, false},
		{"king on d-file, white on top", "...K..../......../......../......../......../......../......../...k....", White, 3, true},
		{"king on e-file, white on top", "....K.../......../......../......../......../......../......../...k....", White, 4, false},
		{"rook in corner", "....k.../......../......../......../......../......../......../....K..R", Black, 63, true},
		{"rook beside corner", "....k.../......../......../......../......../......../......../....K.R.", Black, 62, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustLayout(t, strings.ReplaceAll(tc.layout, "/", "\n"), tc.top)
			if got := b.At(tc.sq).Unmoved; got != tc.want {
				t.Errorf("Unmoved on %d = %v, want %v", tc.sq, got, tc.want)
			}
		})
	}
}

func TestParseLayoutErrors(t *testing.T) {
	cases := map[string]string{
		"short":     "........\n........",
		"wide row":  "........\n........\n........\n........\n........\n........\n........\n.........",
		"bad piece": "x.......\n........\n........\n........\n........\n........\n........\n........",
	}
	for name, layout := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseLayout(layout, Black); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCopyIsIndependent(t *testing.T) {
	b := Setup(Black)
	c := b.Copy()
	c.Apply(52, 36)
	if b.PieceAt(52) != WhitePawn || !b.IsEmpty(36) {
		t.Error("applying a move to a copy changed the original")
	}
}

func TestSnapshot(t *testing.T) {
	b := Setup(Black)
	b.Select(52, true)
	b.MarkMoves(52)
	s := b.Snapshot()
	if !s[52].Selected || s[52].Piece != WhitePawn {
		t.Errorf("snapshot[52] = %+v", s[52])
	}
	var marked []Square
	for i, v := range s {
		if v.Candidate {
			marked = append(marked, Square(i))
		}
	}
	if !slices.Equal(marked, []Square{36, 44}) {
		t.Errorf("snapshot candidates = %v, want [36 44]", marked)
	}
}
