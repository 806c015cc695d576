package ui

import (
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/clickchess/internal/board"
	"github.com/hailam/clickchess/internal/session"
	"github.com/hailam/clickchess/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 900
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// Game implements ebiten.Game on top of a click session.
type Game struct {
	session *session.Session
	started time.Time

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.PlayStats

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager

	keys []keyBinding

	// HiDPI scaling
	scale float64
}

type keyBinding struct {
	key    ebiten.Key
	action func()
}

// NewGame opens storage, applies the saved preferences and starts a game.
// A non-nil top puts that side on top for this run instead of the saved
// preference.
func NewGame(top *board.Color) *Game {
	g := &Game{
		renderer: NewRenderer(BoardSize, SquareSize),
		input:    NewInputHandler(),
		feedback: NewFeedbackManager(),
		scale:    1.0,
	}

	var err error
	g.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}
	g.loadPreferences()

	g.panel = NewPanel(g)
	g.keys = []keyBinding{
		{ebiten.KeyN, g.NewGameAction},
		{ebiten.KeyF, g.FlipBoardAction},
		{ebiten.KeyS, g.ToggleSoundAction},
		{ebiten.KeyD, g.ToggleDotsAction},
	}

	g.StartNew(startingTop(g.prefs.TopSide, top))
	g.checkFirstLaunch()
	return g
}

func topOf(s storage.Side) board.Color {
	if s == storage.SideWhite {
		return board.White
	}
	return board.Black
}

// startingTop picks the side on top for the first game of a run.
func startingTop(saved storage.Side, override *board.Color) board.Color {
	if override != nil {
		return *override
	}
	return topOf(saved)
}

func sideOf(c board.Color) storage.Side {
	if c == board.White {
		return storage.SideWhite
	}
	return storage.SideBlack
}

func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	g.stats = storage.NewPlayStats()
	if g.storage == nil {
		return
	}

	prefs, err := g.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
	} else {
		g.prefs = prefs
	}

	stats, err := g.storage.LoadStats()
	if err != nil {
		log.Printf("Warning: Failed to load stats: %v", err)
	} else {
		g.stats = stats
	}

	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
}

func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// checkFirstLaunch greets a new player with the controls.
func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}
	first, err := g.storage.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if !first {
		return
	}

	g.feedback.toasts.Show("Click a piece, then click where it should go", ToastInfo, 6*time.Second)
	g.feedback.toasts.Show("N new game · F flip · S sound · D dots", ToastInfo, 6*time.Second)
	if err := g.storage.MarkFirstLaunchComplete(); err != nil {
		log.Printf("Warning: Failed to mark first launch complete: %v", err)
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update(g.scale)
	g.feedback.Update()

	for _, kb := range g.keys {
		if KeyPressed(kb.key) {
			kb.action()
		}
	}

	if !g.panel.HandleInput(g.input) {
		g.handleBoardInput()
	}

	if g.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
	return nil
}

// handleBoardInput forwards a click on the board to the session.
func (g *Game) handleBoardInput() {
	if !g.input.Clicked() {
		return
	}
	sq := g.renderer.ScreenToSquare(g.input.MousePosition())
	if sq == board.NoSquare {
		return
	}
	g.Click(sq)
}

// Click applies one click and reacts to what it did.
func (g *Game) Click(sq board.Square) session.Result {
	res := g.session.Click(sq)

	switch res.Action {
	case session.Selected:
		g.feedback.OnSelected(sq, len(res.Targets))
	case session.Moved:
		inCheck := g.session.InCheck()
		g.feedback.OnMoved(res.Move, inCheck)
		g.recordMove(res.Move)
		if inCheck {
			log.Printf("[MOVE] %v is in check", g.session.SideToMove())
		}
	case session.Ignored:
		if !g.session.Board().PieceAt(sq).IsEmpty() {
			g.feedback.OnIgnored(sq)
		}
	}
	return res
}

func (g *Game) recordMove(m board.MoveResult) {
	if g.storage == nil {
		return
	}
	err := g.storage.RecordMove(storage.MoveRecord{
		Side:      strings.ToLower(m.Moved.Color().String()),
		Capture:   m.IsCapture(),
		Castle:    m.Castled,
		Promotion: m.Promoted,
		EnPassant: m.EnPassant,
	})
	if err != nil {
		log.Printf("Warning: Failed to record move: %v", err)
		return
	}
	if stats, err := g.storage.LoadStats(); err == nil {
		g.stats = stats
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	g.panel.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)

	snap := g.session.Snapshot()
	g.renderer.DrawBoard(screen, g.session.Top())
	g.renderer.DrawHighlights(screen, snap, g.session.LastMove(), g.prefs.ShowMoveDots)
	if g.session.InCheck() {
		b := g.session.Board()
		g.renderer.DrawCheck(screen, b.KingSquare(g.session.SideToMove()))
	}
	g.renderer.DrawPieces(screen, snap, g.feedback.Animations())

	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen)
}

// Layout returns the game's screen dimensions in device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}

	w := ScreenWidth
	if g.panel != nil && g.panel.Collapsed() {
		w = BoardSize + CollapsedWidth
	}
	return int(float64(w) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// StartNew discards the current game and sets up a fresh one with top on
// the upper edge. The time spent on the previous game goes to the stats.
func (g *Game) StartNew(top board.Color) {
	if g.storage != nil {
		var previous time.Duration
		if g.session != nil {
			previous = time.Since(g.started)
		}
		if err := g.storage.RecordGameStarted(previous); err != nil {
			log.Printf("Warning: Failed to record game: %v", err)
		} else if stats, err := g.storage.LoadStats(); err == nil {
			g.stats = stats
		}
	}

	if g.session == nil {
		g.session = session.New(top)
	} else {
		g.session.Reset(top)
	}
	g.started = time.Now()
	log.Printf("[GAME] New game, %v on top", top)
}

// NewGameAction restarts with the current layout.
func (g *Game) NewGameAction() {
	g.StartNew(g.session.Top())
}

// FlipBoardAction restarts with the other side on top and remembers it.
func (g *Game) FlipBoardAction() {
	top := g.session.Top().Other()
	g.prefs.TopSide = sideOf(top)
	g.savePreferences()
	g.StartNew(top)
	g.feedback.Toast(top.String()+" on top", ToastInfo)
}

// ToggleSoundAction turns sound effects on or off.
func (g *Game) ToggleSoundAction() {
	g.prefs.SoundEnabled = !g.prefs.SoundEnabled
	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
	g.savePreferences()
}

// ToggleDotsAction shows or hides the candidate markers.
func (g *Game) ToggleDotsAction() {
	g.prefs.ShowMoveDots = !g.prefs.ShowMoveDots
	g.savePreferences()
}

// Session returns the session the window drives.
func (g *Game) Session() *session.Session {
	return g.session
}

// Stats returns the play statistics as last loaded.
func (g *Game) Stats() *storage.PlayStats {
	return g.stats
}

// Preferences returns the live preferences.
func (g *Game) Preferences() *storage.UserPreferences {
	return g.prefs
}

// Close records the running game and closes storage.
func (g *Game) Close() {
	if g.storage == nil {
		return
	}
	stats, err := g.storage.LoadStats()
	if err == nil {
		stats.TotalPlayTime += time.Since(g.started)
		err = g.storage.SaveStats(stats)
	}
	if err != nil {
		log.Printf("Warning: Failed to save play time: %v", err)
	}
	g.storage.Close()
}
