package remote

import (
	"strings"

	"github.com/hailam/clickchess/internal/board"
	"github.com/hailam/clickchess/internal/session"
)

// SquareState is one square as clients see it.
type SquareState struct {
	Piece     string `json:"piece,omitempty"` // PNBRQK / pnbrqk, empty when vacant
	Selected  bool   `json:"selected,omitempty"`
	Candidate bool   `json:"candidate,omitempty"`
}

// MoveState is a played move.
type MoveState struct {
	From      int  `json:"from"`
	To        int  `json:"to"`
	Capture   bool `json:"capture,omitempty"`
	Castle    bool `json:"castle,omitempty"`
	EnPassant bool `json:"enPassant,omitempty"`
	Promotion bool `json:"promotion,omitempty"`
}

// EventState reports what the click that produced a state did.
type EventState struct {
	Action string `json:"action"`
	Square int    `json:"square"`
}

// State is the JSON document sent for every accepted event.
type State struct {
	Squares    [64]SquareState `json:"squares"`
	SideToMove string          `json:"sideToMove"`
	Top        string          `json:"top"`
	Selected   int             `json:"selected"` // -1 when nothing is selected
	InCheck    bool            `json:"inCheck"`
	MoveCount  int             `json:"moveCount"`
	LastMove   *MoveState      `json:"lastMove,omitempty"`
	Event      *EventState     `json:"event,omitempty"`
}

func stateOf(s *session.Session, res *session.Result) State {
	st := State{
		SideToMove: strings.ToLower(s.SideToMove().String()),
		Top:        strings.ToLower(s.Top().String()),
		Selected:   -1,
		InCheck:    s.InCheck(),
		MoveCount:  s.MoveCount(),
	}

	for i, v := range s.Snapshot() {
		sq := SquareState{Selected: v.Selected, Candidate: v.Candidate}
		if !v.Piece.IsEmpty() {
			sq.Piece = v.Piece.String()
		}
		st.Squares[i] = sq
	}

	if sel := s.Selected(); sel != board.NoSquare {
		st.Selected = int(sel)
	}
	if lm := s.LastMove(); lm.From != board.NoSquare {
		st.LastMove = &MoveState{
			From:      int(lm.From),
			To:        int(lm.To),
			Capture:   lm.IsCapture(),
			Castle:    lm.Castled,
			EnPassant: lm.EnPassant,
			Promotion: lm.Promoted,
		}
	}
	if res != nil {
		st.Event = &EventState{Action: res.Action.String(), Square: int(res.Square)}
	}
	return st
}
