// ClickChess - a click-to-move chess board built with Ebitengine
package main

import (
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/clickchess/internal/board"
	"github.com/hailam/clickchess/internal/ui"
)

func main() {
	// "clickchess b" puts Black at the bottom (White on top) for this run.
	var top *board.Color
	if len(os.Args) > 1 && strings.HasPrefix(strings.ToLower(os.Args[1]), "b") {
		white := board.White
		top = &white
	}

	game := ui.NewGame(top)
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("ClickChess")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
