// Package console drives a click session from line-oriented text input.
//
// Each input line is one command; each command answers with one or more
// lines on the output. It is meant for scripting and for playing without a
// window:
//
//	new [white|black]        start over with that side on top (default black)
//	click N | N              click square N (0-63, top-left is 0)
//	layout TOP SIDE ROWS     load a position: ROWS is eight rows joined by '/'
//	board | d                print the board
//	moves                    list every legal move of the side to move
//	turn                     print the side to move
//	quit                     stop reading
package console

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/hailam/clickchess/internal/board"
	"github.com/hailam/clickchess/internal/session"
)

// Console reads commands from in and writes replies to out.
type Console struct {
	session *session.Session
	in      io.Reader
	out     io.Writer
}

// New creates a console with a fresh game, Black on top.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		session: session.New(board.Black),
		in:      in,
		out:     out,
	}
}

// Session returns the session the console drives.
func (c *Console) Session() *session.Session {
	return c.session
}

// Run processes commands until quit or end of input.
func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "quit", "exit":
			return nil
		case "new":
			c.handleNew(args)
		case "click":
			if len(args) != 1 {
				c.errorf("usage: click N")
				continue
			}
			c.handleClick(args[0])
		case "layout":
			c.handleLayout(args)
		case "board", "d":
			c.printBoard()
		case "moves":
			c.handleMoves()
		case "turn":
			c.handleTurn()
		default:
			// A bare square number is a click.
			if _, err := strconv.Atoi(cmd); err == nil && len(args) == 0 {
				c.handleClick(cmd)
				continue
			}
			c.errorf("unknown command %q", parts[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

func (c *Console) handleNew(args []string) {
	top := board.Black
	if len(args) > 0 {
		var ok bool
		if top, ok = board.ParseColor(args[0]); !ok {
			c.errorf("unknown side %q", args[0])
			return
		}
	}
	c.session.Reset(top)
	log.Printf("[CONSOLE] New game, %v on top", top)
	fmt.Fprintf(c.out, "new %s\n", sideName(top))
}

func (c *Console) handleClick(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n >= int(board.NoSquare) {
		c.errorf("square must be 0-63, got %q", arg)
		return
	}

	res := c.session.Click(board.Square(n))
	switch res.Action {
	case session.Selected:
		fmt.Fprintf(c.out, "selected %d:%s\n", res.Square, squareList(res.Targets))
	case session.Moved:
		fmt.Fprintf(c.out, "moved %d %d%s\n", res.Move.From, res.Move.To, moveTags(res.Move))
		if c.session.InCheck() {
			fmt.Fprintf(c.out, "check %s\n", sideName(c.session.SideToMove()))
		}
	case session.Deselected:
		fmt.Fprintf(c.out, "deselected %d\n", res.Square)
	default:
		fmt.Fprintf(c.out, "ignored %d\n", res.Square)
	}
}

// handleLayout parses "layout TOP SIDE r0/r1/.../r7".
func (c *Console) handleLayout(args []string) {
	if len(args) != 3 {
		c.errorf("usage: layout TOP SIDE ROWS")
		return
	}
	top, ok := board.ParseColor(args[0])
	if !ok {
		c.errorf("unknown side %q", args[0])
		return
	}
	side, ok := board.ParseColor(args[1])
	if !ok {
		c.errorf("unknown side %q", args[1])
		return
	}
	b, err := board.ParseLayout(strings.ReplaceAll(args[2], "/", "\n"), top)
	if err != nil {
		c.errorf("%v", err)
		return
	}
	c.session = session.NewFromBoard(b, top, side)
	fmt.Fprintf(c.out, "layout %s to move\n", sideName(side))
}

func (c *Console) printBoard() {
	b := c.session.Board()
	for _, line := range strings.Split(strings.TrimPrefix(b.String(), "\n"), "\n") {
		if line != "" {
			fmt.Fprintln(c.out, line)
		}
	}
}

// handleMoves prints "N: t1 t2 ..." for every piece of the side to move
// that has at least one legal move.
func (c *Console) handleMoves() {
	b := c.session.Board()
	side := c.session.SideToMove()
	total := 0
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() || p.Color() != side {
			continue
		}
		targets := b.LegalMoves(sq)
		if len(targets) == 0 {
			continue
		}
		total += len(targets)
		fmt.Fprintf(c.out, "%d:%s\n", sq, squareList(targets))
	}
	fmt.Fprintf(c.out, "total %d\n", total)
}

func (c *Console) handleTurn() {
	if c.session.InCheck() {
		fmt.Fprintf(c.out, "%s check\n", sideName(c.session.SideToMove()))
		return
	}
	fmt.Fprintln(c.out, sideName(c.session.SideToMove()))
}

func (c *Console) errorf(format string, args ...any) {
	fmt.Fprintf(c.out, "error: "+format+"\n", args...)
}

func sideName(c board.Color) string {
	return strings.ToLower(c.String())
}

func squareList(squares []board.Square) string {
	var sb strings.Builder
	for _, sq := range squares {
		fmt.Fprintf(&sb, " %d", sq)
	}
	return sb.String()
}

func moveTags(r board.MoveResult) string {
	var tags []string
	if r.IsCapture() {
		tags = append(tags, "capture")
	}
	if r.Castled {
		tags = append(tags, "castle")
	}
	if r.EnPassant {
		tags = append(tags, "enpassant")
	}
	if r.Promoted {
		tags = append(tags, "promote")
	}
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ")
}
