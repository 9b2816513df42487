package main

import (
	"image/color"
	"strings"

	"github.com/milk9111/weatherbox/common"
	"github.com/milk9111/weatherbox/material"
	"github.com/milk9111/weatherbox/weather"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// HUD is the top strip: one button per spawnable material and one per
// weather kind.
type HUD struct {
	UI *ebitenui.UI

	materialButtons map[material.ID]*widget.Button
}

// NewHUD builds the HUD. onMaterial and onWeather run on the update goroutine
// when a button is clicked.
func NewHUD(materials []material.ID, kinds []weather.Kind, onMaterial func(material.ID), onWeather func(weather.Kind)) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	materialImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	weatherImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x1f, G: 0x3a, B: 0x5c, A: 255})
	hoverImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	btnSize := widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(96, 36))

	hud := &HUD{materialButtons: make(map[material.ID]*widget.Button, len(materials))}

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 14, Bottom: 14, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth, common.HUDHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchHorizontal:  true,
			}),
		),
	)

	for _, id := range materials {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: materialImg, Hover: hoverImg, Pressed: hoverImg}),
			widget.ButtonOpts.Text(materialLabel(id, false), &face, btnTextColor),
			btnSize,
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onMaterial(id)
			}),
		)
		hud.materialButtons[id] = btn
		bar.AddChild(btn)
	}

	for _, kind := range kinds {
		bar.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: weatherImg, Hover: hoverImg, Pressed: hoverImg}),
			widget.ButtonOpts.Text(weatherLabel(kind), &face, btnTextColor),
			btnSize,
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onWeather(kind)
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)

	hud.UI = &ebitenui.UI{Container: root}
	return hud
}

// Select marks id as the active material.
func (h *HUD) Select(id material.ID) {
	for other, btn := range h.materialButtons {
		if text := btn.Text(); text != nil {
			text.Label = materialLabel(other, other == id)
		}
	}
}

func materialLabel(id material.ID, selected bool) string {
	if selected {
		return "[" + string(id) + "]"
	}
	return string(id)
}

func weatherLabel(kind weather.Kind) string {
	return strings.ReplaceAll(string(kind), "_", " ")
}
