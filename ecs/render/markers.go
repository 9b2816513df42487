package render

import (
	"image/color"
	"maps"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/weatherbox/ecs"
)

type marker struct {
	token string
	x, y  float64
}

// MarkerLayer is the on-screen overlay of material tokens. It implements
// system.MarkerSink and draws every marker centred on its last position.
type MarkerLayer struct {
	Size  float64
	Color color.Color

	markers map[ecs.Entity]*marker
}

func NewMarkerLayer(size float64) *MarkerLayer {
	return &MarkerLayer{
		Size:    size,
		Color:   color.White,
		markers: make(map[ecs.Entity]*marker),
	}
}

func (l *MarkerLayer) Create(e ecs.Entity, token string) {
	if l.markers == nil {
		l.markers = make(map[ecs.Entity]*marker)
	}
	l.markers[e] = &marker{token: token}
}

func (l *MarkerLayer) UpdatePosition(e ecs.Entity, x, y float64) {
	m, ok := l.markers[e]
	if !ok {
		return
	}
	m.x, m.y = x, y
}

func (l *MarkerLayer) Destroy(e ecs.Entity) {
	delete(l.markers, e)
}

// Len returns the number of markers on screen.
func (l *MarkerLayer) Len() int {
	return len(l.markers)
}

func (l *MarkerLayer) Draw(screen *ebiten.Image) {
	if screen == nil || len(l.markers) == 0 {
		return
	}
	face := Face(l.Size)
	for _, e := range slices.Sorted(maps.Keys(l.markers)) {
		m := l.markers[e]
		op := &text.DrawOptions{}
		op.GeoM.Translate(m.x, m.y)
		op.ColorScale.ScaleWithColor(l.Color)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, m.token, face, op)
	}
}
