// Package ui is the desktop front end: an Ebitengine window that turns mouse
// clicks into session clicks and draws the board the session reports.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/clickchess/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// SpriteManager rasterizes the piece set once and draws it scaled.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	size        int     // logical square size
	renderScale float64 // oversampling factor for the rasterized SVGs
	scale       float64 // HiDPI factor
}

// NewSpriteManager loads all twelve pieces at the given square size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
		scale:       1.0,
	}
	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.Pawn; pt <= board.King; pt++ {
			p := board.NewPiece(pt, c)
			img, err := sm.rasterize(pieceAssetPath(p))
			if err != nil {
				log.Printf("Failed to load piece %v: %v", p, err)
				continue
			}
			sm.pieces[p] = img
		}
	}
	return sm
}

// pieceAssetPath names the SVG for p: "wP", "bK" and so on.
func pieceAssetPath(p board.Piece) string {
	prefix := "w"
	if p.Color() == board.Black {
		prefix = "b"
	}
	return fmt.Sprintf("assets/pieces/%s%s.svg", prefix, board.NewPiece(p.Type(), board.White))
}

func (sm *SpriteManager) rasterize(path string) (*ebiten.Image, error) {
	data, err := pieceAssets.ReadFile(path)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	px := int(float64(sm.size) * sm.renderScale)
	icon.SetTarget(0, 0, float64(px), float64(px))

	rgba := image.NewRGBA(image.Rect(0, 0, px, px))
	scanner := rasterx.NewScannerGV(px, px, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(px, px, scanner), 1.0)

	return ebiten.NewImageFromImage(rgba), nil
}

// SetScale sets the HiDPI factor applied when drawing.
func (sm *SpriteManager) SetScale(scale float64) {
	sm.scale = scale
}

// DrawPieceAt draws p with its top-left corner at the device pixel (x, y).
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y float64) {
	sprite := sm.pieces[p]
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	s := sm.scale / sm.renderScale
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
