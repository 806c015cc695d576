package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/clickchess/internal/board"
)

// Panel dimensions
const (
	PanelPadding    = 20
	SectionSpacing  = 28
	ButtonHeight    = 40
	TabHeight       = 34
	CollapsedWidth  = 20
	CollapseButtonW = 16
	CollapseButtonH = 48
	SectionLabelH   = 20
	statRowHeight   = 22
)

// Panel colors
var (
	panelBg       = color.RGBA{38, 40, 45, 255}
	sectionBg     = color.RGBA{48, 52, 58, 255}
	toggleOnBg    = color.RGBA{76, 132, 96, 255}
	buttonBg      = color.RGBA{50, 54, 60, 255}
	buttonHoverBg = color.RGBA{65, 70, 78, 255}
	buttonPressBg = color.RGBA{40, 44, 50, 255}
	buttonBorder  = color.RGBA{70, 75, 82, 255}
	accentColor   = color.RGBA{76, 175, 120, 255}
	accentHover   = color.RGBA{96, 195, 140, 255}
	accentPressed = color.RGBA{56, 155, 100, 255}
	textPrimary   = color.RGBA{240, 240, 245, 255}
	textSecondary = color.RGBA{160, 165, 175, 255}
	textMuted     = color.RGBA{120, 125, 135, 255}
	dividerColor  = color.RGBA{60, 65, 72, 255}
	statusCheck   = color.RGBA{255, 120, 100, 255}
)

type buttonStyle int

const (
	stylePrimary buttonStyle = iota
	styleSecondary
	styleToggle
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	style      buttonStyle
	on         func() bool // toggles only
	hovered    bool
	pressed    bool
}

func (b *Button) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Panel is the side bar: game controls, status and statistics.
type Panel struct {
	game      *Game
	collapsed bool
	scale     float64

	collapseBtn *Button
	buttons     []*Button
	statusY     int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g, scale: 1.0}
	p.layout()
	return p
}

// SetScale sets the HiDPI factor.
func (p *Panel) SetScale(scale float64) {
	p.scale = scale
}

func (p *Panel) layout() {
	tabY := (ScreenHeight - CollapseButtonH) / 2
	x := BoardSize
	if p.collapsed {
		x = BoardSize + 2
	}
	p.collapseBtn = &Button{X: x, Y: tabY, W: CollapseButtonW, H: CollapseButtonH, OnClick: p.toggleCollapse}

	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2
	y := PanelPadding + 8

	newGame := &Button{X: contentX, Y: y, W: contentW, H: ButtonHeight, Label: "New Game",
		OnClick: p.game.NewGameAction, style: stylePrimary}
	y += ButtonHeight + 8

	flip := &Button{X: contentX, Y: y, W: contentW, H: ButtonHeight - 6, Label: "Flip Board",
		OnClick: p.game.FlipBoardAction, style: styleSecondary}
	y += ButtonHeight - 6 + 8

	half := contentW / 2
	sound := &Button{X: contentX, Y: y, W: half, H: TabHeight, Label: "Sound",
		OnClick: p.game.ToggleSoundAction, style: styleToggle,
		on: func() bool { return p.game.Preferences().SoundEnabled }}
	dots := &Button{X: contentX + half, Y: y, W: contentW - half, H: TabHeight, Label: "Dots",
		OnClick: p.game.ToggleDotsAction, style: styleToggle,
		on: func() bool { return p.game.Preferences().ShowMoveDots }}
	y += TabHeight + SectionSpacing

	p.buttons = []*Button{newGame, flip, sound, dots}
	p.statusY = y
}

// HandleInput processes pointer input for the panel. It returns true when
// the panel consumed a click.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	p.collapseBtn.hovered = p.collapseBtn.contains(mx, my)
	if input.Clicked() && p.collapseBtn.hovered {
		p.collapseBtn.OnClick()
		return true
	}
	if p.collapsed {
		return false
	}

	for _, b := range p.buttons {
		b.hovered = b.contains(mx, my)
		b.pressed = b.hovered && input.Held()
	}
	if !input.Clicked() {
		return false
	}
	for _, b := range p.buttons {
		if b.hovered {
			b.OnClick()
			return true
		}
	}
	return false
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	if p.collapseBtn.hovered {
		return true
	}
	if p.collapsed {
		return false
	}
	for _, b := range p.buttons {
		if b.hovered {
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	width := PanelWidth
	if p.collapsed {
		width = CollapsedWidth
	}
	p.rect(screen, BoardSize, 0, width, ScreenHeight, panelBg)
	p.drawCollapseButton(screen)
	if p.collapsed {
		return
	}

	for _, b := range p.buttons {
		p.drawButton(screen, b)
	}

	x := BoardSize + PanelPadding
	y := p.drawStatus(screen, x, p.statusY)
	p.drawStats(screen, x, y+SectionSpacing)
}

func (p *Panel) drawStatus(screen *ebiten.Image, x, y int) int {
	s := p.game.Session()
	p.drawText(screen, "Status", x, y, textMuted)
	y += SectionLabelH

	turn := s.SideToMove().String() + " to move"
	c := textPrimary
	if s.InCheck() {
		turn = s.SideToMove().String() + " is in check"
		c = statusCheck
	}
	p.drawText(screen, turn, x, y, c)
	y += statRowHeight

	p.drawText(screen, fmt.Sprintf("Moves played: %d", s.MoveCount()), x, y, textSecondary)
	y += statRowHeight

	if lm := s.LastMove(); lm.From != board.NoSquare {
		p.drawText(screen, fmt.Sprintf("Last: %v %v → %v", lm.Moved.Type(), lm.From, lm.To), x, y, textSecondary)
	} else {
		p.drawText(screen, "No moves yet", x, y, textMuted)
	}
	return y + statRowHeight
}

func (p *Panel) drawStats(screen *ebiten.Image, x, y int) {
	st := p.game.Stats()
	p.rect(screen, x, y-10, PanelWidth-PanelPadding*2, 1, dividerColor)
	p.drawText(screen, "Statistics", x, y, textMuted)
	y += SectionLabelH

	rows := []struct {
		label string
		value string
	}{
		{"Games", fmt.Sprint(st.GamesStarted)},
		{"Moves", fmt.Sprint(st.MovesPlayed)},
		{"Captures", fmt.Sprintf("%d (%.0f%%)", st.Captures, st.CaptureRate())},
		{"Castles", fmt.Sprint(st.Castles)},
		{"Promotions", fmt.Sprint(st.Promotions)},
		{"En passant", fmt.Sprint(st.EnPassant)},
		{"Time played", st.TotalPlayTime.Round(time.Second).String()},
	}
	for _, r := range rows {
		p.drawText(screen, r.label, x, y, textSecondary)
		p.drawText(screen, r.value, x+120, y, textPrimary)
		y += statRowHeight
	}
}

func (p *Panel) drawCollapseButton(screen *ebiten.Image) {
	b := p.collapseBtn
	bg := panelBg
	if b.hovered {
		bg = sectionBg
	}
	p.rect(screen, b.X, b.Y, b.W, b.H, bg)

	arrow := "‹"
	if p.collapsed {
		arrow = "›"
	}
	c := textMuted
	if b.hovered {
		c = textPrimary
	}
	p.drawTextCentered(screen, arrow, b.X+b.W/2, b.Y+b.H/2, c)
}

func (p *Panel) drawButton(screen *ebiten.Image, b *Button) {
	var bg, border, fg color.RGBA
	switch b.style {
	case stylePrimary:
		bg, border, fg = accentColor, accentPressed, textPrimary
		if b.pressed {
			bg = accentPressed
		} else if b.hovered {
			bg, border = accentHover, color.RGBA{116, 215, 160, 255}
		}
	default:
		bg, border, fg = buttonBg, buttonBorder, textSecondary
		if b.style == styleToggle && b.on() {
			bg, border, fg = toggleOnBg, toggleOnBg, textPrimary
		} else if b.pressed {
			bg = buttonPressBg
		} else if b.hovered {
			bg, border = buttonHoverBg, accentColor
		}
	}

	p.rect(screen, b.X, b.Y, b.W, b.H, bg)
	vector.StrokeRect(screen, p.f(b.X), p.f(b.Y), p.f(b.W), p.f(b.H), 1, border, false)
	p.drawTextCentered(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, fg)
}

func (p *Panel) f(v int) float32 {
	return float32(float64(v) * p.scale)
}

func (p *Panel) rect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	vector.DrawFilledRect(screen, p.f(x), p.f(y), p.f(w), p.f(h), c, false)
}

func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := Face(false, bodyFontSize*p.scale)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.f(x)), float64(p.f(y)))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, cx, cy int, c color.Color) {
	face := Face(true, titleFontSize*p.scale)
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.f(cx))-w/2, float64(p.f(cy))-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// Collapsed returns whether the panel is collapsed.
func (p *Panel) Collapsed() bool {
	return p.collapsed
}

// toggleCollapse toggles the panel collapsed state and resizes the window.
func (p *Panel) toggleCollapse() {
	p.collapsed = !p.collapsed
	p.layout()

	if p.collapsed {
		ebiten.SetWindowSize(BoardSize+CollapsedWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	}
}
