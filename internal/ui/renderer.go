package ui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/clickchess/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	CandidateDot   color.RGBA
	CandidateRing  color.RGBA // candidate squares holding an enemy piece
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255},
		DarkSquare:     color.RGBA{181, 136, 99, 255},
		SelectedSquare: color.RGBA{247, 247, 105, 180},
		CandidateDot:   color.RGBA{130, 151, 105, 200},
		CandidateRing:  color.RGBA{130, 151, 105, 160},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		Background:     color.RGBA{40, 44, 52, 255},
	}
}

// Renderer draws the board in logical pixels, scaled for HiDPI.
// Square 0 is always drawn top-left; which side sits there is decided by
// the session's layout, not by the renderer.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	scale      float64
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
		scale:      1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
	r.sprites.SetScale(scale)
}

func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the squares and the coordinate labels for the given layout.
func (r *Renderer) DrawBoard(screen *ebiten.Image, top board.Color) {
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		c := r.theme.LightSquare
		if (sq.File()+sq.Rank())%2 == 1 {
			c = r.theme.DarkSquare
		}
		r.fillSquare(screen, sq, c)
	}
	r.drawCoordinates(screen, top)
}

// drawCoordinates labels files along the bottom edge and ranks along the
// left edge in algebraic terms: with Black on top the top-left square is a8,
// with White on top it is h1.
func (r *Renderer) drawCoordinates(screen *ebiten.Image, top board.Color) {
	face := Face(false, 11*r.scale)
	if face == nil {
		return
	}
	for i := 0; i < 8; i++ {
		file, rank := byte('a'+i), 8-i
		if top == board.White {
			file, rank = byte('h'-i), i+1
		}

		// Label color contrasts with the square it sits on.
		fileSq := board.NewSquare(i, 7)
		rankSq := board.NewSquare(0, i)

		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(r.s((i+1)*r.squareSize))-10*r.scale, float64(r.s(r.boardSize))-15*r.scale)
		op.ColorScale.ScaleWithColor(r.labelColor(fileSq))
		text.Draw(screen, string(file), face, op)

		op = &text.DrawOptions{}
		op.GeoM.Translate(3*r.scale, float64(r.s(i*r.squareSize))+2*r.scale)
		op.ColorScale.ScaleWithColor(r.labelColor(rankSq))
		text.Draw(screen, strconv.Itoa(rank), face, op)
	}
}

func (r *Renderer) labelColor(sq board.Square) color.RGBA {
	if (sq.File()+sq.Rank())%2 == 1 {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// DrawHighlights draws the last move, the selected square and, when dots is
// set, a marker on every candidate square.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, snap board.Snapshot, last board.MoveResult, dots bool) {
	if last.From != board.NoSquare {
		r.fillSquare(screen, last.From, r.theme.LastMoveColor)
		r.fillSquare(screen, last.To, r.theme.LastMoveColor)
	}

	for i, v := range snap {
		sq := board.Square(i)
		if v.Selected {
			r.fillSquare(screen, sq, r.theme.SelectedSquare)
		}
		if v.Candidate && dots {
			r.drawCandidate(screen, sq, !v.Piece.IsEmpty())
		}
	}
}

// DrawCheck tints the square of a king in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	if kingSq.IsValid() {
		r.fillSquare(screen, kingSq, r.theme.CheckColor)
	}
}

func (r *Renderer) fillSquare(screen *ebiten.Image, sq board.Square, c color.Color) {
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), c, false)
}

// drawCandidate draws a dot on an empty target or a ring around an occupied one.
func (r *Renderer) drawCandidate(screen *ebiten.Image, sq board.Square, capture bool) {
	x, y := r.SquareToScreen(sq)
	size := r.s(r.squareSize)
	cx, cy := r.s(x)+size/2, r.s(y)+size/2

	if capture {
		vector.StrokeCircle(screen, cx, cy, size*0.45, size*0.08, r.theme.CandidateRing, true)
		return
	}
	vector.DrawFilledCircle(screen, cx, cy, size*0.15, r.theme.CandidateDot, true)
}

// DrawPieces draws every piece in snap, offset by any running shake.
func (r *Renderer) DrawPieces(screen *ebiten.Image, snap board.Snapshot, anims *AnimationManager) {
	for i, v := range snap {
		if v.Piece.IsEmpty() {
			continue
		}
		sq := board.Square(i)
		x, y := r.SquareToScreen(sq)

		var dx float64
		if anims != nil {
			dx = anims.ShakeOffset(sq)
		}
		r.sprites.DrawPieceAt(screen, v.Piece, float64(r.s(x))+dx*r.scale, float64(r.s(y)))
	}
}

// SquareToScreen returns the logical top-left corner of sq.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	return sq.File() * r.squareSize, sq.Rank() * r.squareSize
}

// ScreenToSquare converts logical coordinates to a square, or NoSquare when
// the point is off the board.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	return board.NewSquare(x/r.squareSize, y/r.squareSize)
}

// SquareSize returns the size of one square in logical pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
