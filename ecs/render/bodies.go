package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/ecs/component"
	"github.com/milk9111/weatherbox/material"
)

var (
	groundFill   = color.RGBA{R: 0x2b, G: 0x2f, B: 0x3a, A: 0xff}
	groundStroke = color.RGBA{R: 0x4a, G: 0x50, B: 0x5e, A: 0xff}
	untaggedFill = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// DrawBodies draws every live body: tagged balls with their material colours,
// static boxes as the ground.
func DrawBodies(screen *ebiten.Image, w *ecs.World, reg *material.Registry) {
	if screen == nil || w == nil {
		return
	}
	for _, b := range w.Bodies() {
		p := b.Params()
		pos := b.Position()

		if p.Radius <= 0 {
			x := float32(pos.X - p.Width/2)
			y := float32(pos.Y - p.Height/2)
			vector.FillRect(screen, x, y, float32(p.Width), float32(p.Height), groundFill, false)
			vector.StrokeRect(screen, x, y, float32(p.Width), float32(p.Height), 1.0, groundStroke, false)
			continue
		}

		fill, stroke, lineWidth := color.Color(untaggedFill), color.Color(nil), 0.0
		if tag, ok := ecs.Get(w, b.Entity(), component.MaterialComponent.Kind()); ok {
			if def, ok := reg.Find(tag.ID); ok {
				fill, stroke, lineWidth = def.Fill, def.Stroke, def.LineWidth
			}
		}
		if fill != nil {
			vector.FillCircle(screen, float32(pos.X), float32(pos.Y), float32(p.Radius), fill, true)
		}
		if stroke != nil && lineWidth > 0 {
			vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), float32(p.Radius), float32(lineWidth), stroke, true)
		}
	}
}
