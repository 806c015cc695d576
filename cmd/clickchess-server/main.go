// Command clickchess-server shares one click-driven game over HTTP.
//
// Open http://localhost:8080/ in any number of browsers; every click is
// applied to the same board and pushed to every page over a websocket.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/hailam/clickchess/internal/board"
	"github.com/hailam/clickchess/internal/remote"
)

var (
	port = flag.Int("port", 8080, "port to listen on")
	top  = flag.String("top", "black", "side placed on the upper edge (white or black)")
)

func main() {
	flag.Parse()

	side, ok := board.ParseColor(*top)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown side %q\n", *top)
		os.Exit(2)
	}

	srv := remote.NewServer(side, os.Stdout)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[SERVER] Listening on http://localhost%s (%v on top)", addr, side)
	log.Fatal(http.ListenAndServe(addr, srv))
}
