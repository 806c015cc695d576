package ui

import (
	"bytes"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	bodyFontSize  = 14.0
	titleFontSize = 16.0
)

type faceKey struct {
	bold bool
	size float64
}

var (
	fontOnce      sync.Once
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource

	facesMu sync.Mutex
	faces   = make(map[faceKey]*text.GoTextFace)
)

func loadFonts() {
	var err error
	if regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		log.Printf("Failed to load regular font: %v", err)
	}
	if boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		log.Printf("Failed to load bold font: %v", err)
	}
}

// Face returns a Go font face of the given weight and pixel size, or nil if
// the embedded fonts failed to load. Faces are cached per weight and size.
func Face(bold bool, size float64) *text.GoTextFace {
	fontOnce.Do(loadFonts)

	src := regularSource
	if bold {
		src = boldSource
	}
	if src == nil {
		return nil
	}

	facesMu.Lock()
	defer facesMu.Unlock()
	k := faceKey{bold, size}
	if f, ok := faces[k]; ok {
		return f
	}
	f := &text.GoTextFace{Source: src, Size: size}
	faces[k] = f
	return f
}

// MeasureText returns the width and height of s in face.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
