// Package session turns square clicks into selections and moves.
//
// A Session owns one board and the side to move. Each click is resolved
// against the current selection: picking up a piece marks its legal
// destinations, clicking a marked square plays the move, clicking the
// selected piece again puts it back down.
package session

import (
	"fmt"
	"log"

	"github.com/hailam/clickchess/internal/board"
)

// Action says what a click did.
type Action int

const (
	Ignored Action = iota
	Selected
	Deselected
	Moved
)

func (a Action) String() string {
	switch a {
	case Ignored:
		return "ignored"
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case Moved:
		return "moved"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Result describes the outcome of one click.
type Result struct {
	Action  Action
	Square  board.Square     // the clicked square
	Targets []board.Square   // legal destinations, set when Action is Selected
	Move    board.MoveResult // set when Action is Moved
}

// Session is a single game driven by clicks. It is not safe for concurrent use.
type Session struct {
	board      *board.Board
	top        board.Color
	sideToMove board.Color
	selected   board.Square
	targets    []board.Square
	lastMove   board.MoveResult
	moveCount  int
}

// New starts a game from the initial formation with top on the upper edge.
// White moves first.
func New(top board.Color) *Session {
	return NewFromBoard(board.Setup(top), top, board.White)
}

// NewFromBoard starts a session on an existing board. top records the
// orientation the board was built with and side is the side to move.
// Any selection or candidate marks on b are cleared.
func NewFromBoard(b *board.Board, top, side board.Color) *Session {
	b.ClearSelection()
	b.ClearCandidates()
	return &Session{
		board:      b,
		top:        top,
		sideToMove: side,
		selected:   board.NoSquare,
		lastMove:   board.MoveResult{From: board.NoSquare, To: board.NoSquare},
	}
}

// Reset discards the current game and sets up a fresh one.
func (s *Session) Reset(top board.Color) {
	*s = *New(top)
}

// Click resolves a click on sq. sq must be on the board.
func (s *Session) Click(sq board.Square) Result {
	if !sq.IsValid() {
		panic(fmt.Sprintf("session: click on square %d out of range", sq))
	}
	if s.selected == board.NoSquare {
		return s.clickIdle(sq)
	}
	return s.clickSelected(sq)
}

func (s *Session) clickIdle(sq board.Square) Result {
	if !s.ownPiece(sq) {
		return Result{Action: Ignored, Square: sq}
	}
	return s.selectSquare(sq)
}

func (s *Session) clickSelected(sq board.Square) Result {
	switch {
	case s.board.IsCandidate(sq):
		return s.makeMove(s.selected, sq)
	case sq == s.selected:
		log.Printf("[SELECT] Put down %v on %v", s.board.PieceAt(sq), sq)
		s.clearSelection()
		return Result{Action: Deselected, Square: sq}
	case s.ownPiece(sq):
		return s.selectSquare(sq)
	}
	return Result{Action: Ignored, Square: sq}
}

// selectSquare picks up the piece on sq and marks where it may go.
func (s *Session) selectSquare(sq board.Square) Result {
	s.clearSelection()
	s.selected = sq
	s.board.Select(sq, true)
	s.targets = s.board.MarkLegal(sq, s.sideToMove)
	log.Printf("[SELECT] %v on %v: %d legal targets %v", s.board.PieceAt(sq), sq, len(s.targets), s.targets)
	return Result{Action: Selected, Square: sq, Targets: s.Targets()}
}

func (s *Session) clearSelection() {
	s.board.ClearSelection()
	s.board.ClearCandidates()
	s.selected = board.NoSquare
	s.targets = nil
}

func (s *Session) makeMove(from, to board.Square) Result {
	log.Printf("[MOVE] Before: SideToMove=%v, from=%v to=%v piece=%v",
		s.sideToMove, from, to, s.board.PieceAt(from))

	s.clearSelection()
	res := s.board.Apply(from, to)
	s.sideToMove = s.sideToMove.Other()
	s.lastMove = res
	s.moveCount++

	log.Printf("[MOVE] After: SideToMove=%v captured=%v castled=%v enpassant=%v promoted=%v",
		s.sideToMove, res.Captured, res.Castled, res.EnPassant, res.Promoted)
	return Result{Action: Moved, Square: to, Move: res}
}

func (s *Session) ownPiece(sq board.Square) bool {
	p := s.board.PieceAt(sq)
	return !p.IsEmpty() && p.Color() == s.sideToMove
}

// HandleSquareClicked resolves a click and returns the board to render along
// with the side to move afterwards.
func (s *Session) HandleSquareClicked(sq board.Square) (board.Snapshot, board.Color) {
	s.Click(sq)
	return s.board.Snapshot(), s.sideToMove
}

// Snapshot returns the current rendering view of the board.
func (s *Session) Snapshot() board.Snapshot {
	return s.board.Snapshot()
}

// Board returns a copy of the current board.
func (s *Session) Board() *board.Board {
	return s.board.Copy()
}

// SideToMove returns the color whose turn it is.
func (s *Session) SideToMove() board.Color {
	return s.sideToMove
}

// Top returns the side that started on the upper edge.
func (s *Session) Top() board.Color {
	return s.top
}

// Selected returns the selected square, or NoSquare.
func (s *Session) Selected() board.Square {
	return s.selected
}

// Targets returns the legal destinations of the selected piece.
func (s *Session) Targets() []board.Square {
	return append([]board.Square(nil), s.targets...)
}

// LastMove returns the most recent move. From and To are NoSquare before
// the first move.
func (s *Session) LastMove() board.MoveResult {
	return s.lastMove
}

// MoveCount returns the number of moves played so far.
func (s *Session) MoveCount() int {
	return s.moveCount
}

// InCheck reports whether the side to move has its king attacked.
func (s *Session) InCheck() bool {
	return s.board.InCheck(s.sideToMove)
}
