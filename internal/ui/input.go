package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler samples the pointer once per frame in logical coordinates.
// The game only reacts to presses; there is no dragging.
type InputHandler struct {
	x, y        int
	pressed     bool
	justPressed bool
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update samples the pointer. scale is the device scale factor used to map
// raw cursor positions back to logical pixels.
func (ih *InputHandler) Update(scale float64) {
	if scale < 1.0 {
		scale = 1.0
	}
	rawX, rawY := ebiten.CursorPosition()
	ih.x = int(float64(rawX) / scale)
	ih.y = int(float64(rawY) / scale)

	ih.justPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	// A tap counts as a click at the touch point.
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		tx, ty := ebiten.TouchPosition(ids[0])
		ih.x = int(float64(tx) / scale)
		ih.y = int(float64(ty) / scale)
		ih.justPressed = true
	}
}

// MousePosition returns the pointer in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.x, ih.y
}

// Clicked reports whether the primary button went down this frame.
func (ih *InputHandler) Clicked() bool {
	return ih.justPressed
}

// Held reports whether the primary button is down.
func (ih *InputHandler) Held() bool {
	return ih.pressed
}

// Inside reports whether the pointer is within the rectangle.
func (ih *InputHandler) Inside(x, y, w, h int) bool {
	return ih.x >= x && ih.x < x+w && ih.y >= y && ih.y < y+h
}

// KeyPressed reports whether key went down this frame.
func KeyPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
