package render

import (
	"bytes"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	faceSourceOnce sync.Once
	faceSource     *text.GoTextFaceSource
	faces          = map[float64]text.Face{}
	facesMu        sync.Mutex
)

// Face returns the cached Go regular face at size.
func Face(size float64) text.Face {
	faceSourceOnce.Do(func() {
		s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic("render: load font: " + err.Error())
		}
		faceSource = s
	})

	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: faceSource, Size: size}
	faces[size] = f
	return f
}
