package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hailam/clickchess/internal/board"
	"github.com/hailam/clickchess/internal/console"
)

var (
	top     = flag.String("top", "black", "side placed on the upper edge (white or black)")
	verbose = flag.Bool("v", false, "log selections and moves to stderr")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	side, ok := board.ParseColor(*top)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown side %q\n", *top)
		os.Exit(2)
	}

	c := console.New(os.Stdin, os.Stdout)
	c.Session().Reset(side)

	if err := c.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "clickchess-cli: %v\n", err)
		os.Exit(1)
	}
}
