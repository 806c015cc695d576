package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/clickchess/internal/board"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastSuccess
)

var toastColors = map[ToastType]color.RGBA{
	ToastInfo:    {50, 100, 150, 220},
	ToastWarning: {180, 140, 20, 220},
	ToastSuccess: {50, 150, 50, 220},
}

// Toast is a message shown over the board for a while.
type Toast struct {
	Message  string
	Type     ToastType
	Start    time.Time
	Duration time.Duration
}

// ToastManager keeps the last few toasts.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast notification.
func (tm *ToastManager) Show(message string, typ ToastType, d time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{Message: message, Type: typ, Start: time.Now(), Duration: d})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update(now time.Time) {
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.Start) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// Draw renders the toasts stacked near the top of the board.
func (tm *ToastManager) Draw(screen *ebiten.Image, scale float64) {
	face := Face(false, bodyFontSize*scale)
	if face == nil {
		return
	}

	y := 50.0 * scale
	for _, t := range tm.toasts {
		alpha := fade(time.Since(t.Start).Seconds(), t.Duration.Seconds(), 0.2)

		bg := toastColors[t.Type]
		bg.A = uint8(float64(bg.A) * alpha)
		fg := color.RGBA{255, 255, 255, uint8(255 * alpha)}

		w, h := MeasureText(t.Message, face)
		pad := 12.0 * scale
		boxW, boxH := w+pad*2, h+pad*2
		x := float64(BoardSize)*scale/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bg, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+pad, y+pad)
		op.ColorScale.ScaleWithColor(fg)
		text.Draw(screen, t.Message, face, op)

		y += boxH + 8*scale
	}
}

// fade returns an opacity ramping in and out over edge seconds.
func fade(elapsed, total, edge float64) float64 {
	switch {
	case elapsed < edge:
		return elapsed / edge
	case elapsed > total-edge:
		return math.Max(0, (total-elapsed)/edge)
	}
	return 1
}

type squareEffect struct {
	square   board.Square
	start    time.Time
	duration time.Duration
	color    color.RGBA // flashes only
}

func (e *squareEffect) progress(now time.Time) float64 {
	return now.Sub(e.start).Seconds() / e.duration.Seconds()
}

// AnimationManager runs short per-square effects.
type AnimationManager struct {
	shakes  []*squareEffect
	flashes []*squareEffect
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake wobbles the piece on sq.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &squareEffect{square: sq, start: time.Now(), duration: 300 * time.Millisecond})
}

// StartFlash briefly tints sq.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &squareEffect{square: sq, start: time.Now(), duration: 400 * time.Millisecond, color: c})
}

// Update removes expired animations.
func (am *AnimationManager) Update(now time.Time) {
	am.shakes = prune(am.shakes, now)
	am.flashes = prune(am.flashes, now)
}

func prune(effects []*squareEffect, now time.Time) []*squareEffect {
	active := effects[:0]
	for _, e := range effects {
		if e.progress(now) < 1 {
			active = append(active, e)
		}
	}
	return active
}

// ShakeOffset returns the horizontal offset, in logical pixels, of a piece
// being shaken on sq.
func (am *AnimationManager) ShakeOffset(sq board.Square) float64 {
	for _, s := range am.shakes {
		if s.square != sq {
			continue
		}
		p := s.progress(time.Now())
		if p >= 1 {
			return 0
		}
		// Damped sine.
		return 8 * math.Exp(-5*p) * math.Sin(40*p)
	}
	return 0
}

// DrawFlashes renders all active flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer) {
	now := time.Now()
	for _, f := range am.flashes {
		p := f.progress(now)
		if p >= 1 {
			continue
		}
		c := f.color
		c.A = uint8(float64(c.A) * (1 - p))
		r.fillSquare(screen, f.square, c)
	}
}

// FeedbackManager turns session events into sounds, toasts and animations.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager() *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(),
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	now := time.Now()
	fm.toasts.Update(now)
	fm.animations.Update(now)
}

// Draw renders all feedback overlays.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer) {
	fm.animations.DrawFlashes(screen, r)
	fm.toasts.Draw(screen, r.scale)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Audio returns the audio manager for settings access.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// Toast shows a message.
func (fm *FeedbackManager) Toast(msg string, typ ToastType) {
	fm.toasts.Show(msg, typ, 2*time.Second)
}

// OnSelected handles a piece being picked up. A piece with nowhere to go
// shakes.
func (fm *FeedbackManager) OnSelected(sq board.Square, targets int) {
	if targets == 0 {
		fm.animations.StartShake(sq)
		fm.audio.Play(SoundIgnored)
		return
	}
	fm.audio.Play(SoundSelect)
}

// OnIgnored handles a click that changed nothing.
func (fm *FeedbackManager) OnIgnored(sq board.Square) {
	fm.animations.StartFlash(sq, color.RGBA{255, 80, 80, 150})
	fm.audio.Play(SoundIgnored)
}

// OnMoved handles a played move. inCheck reports whether the side now to
// move is in check.
func (fm *FeedbackManager) OnMoved(res board.MoveResult, inCheck bool) {
	switch {
	case inCheck:
		fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
		fm.audio.Play(SoundCheck)
	case res.Promoted:
		fm.toasts.Show("Promoted to queen", ToastSuccess, 2*time.Second)
		fm.audio.Play(SoundPromote)
	case res.Castled:
		fm.audio.Play(SoundCastle)
	case res.IsCapture():
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}
}
