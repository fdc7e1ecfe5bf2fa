package main

import (
	"fmt"
	"image/color"

	"github.com/milk9111/freelook/common"
	"github.com/milk9111/freelook/ecs/component"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	textColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor = &widget.ButtonTextColor{Idle: textColor}
)

type pauseTheme struct {
	face   ebtext.Face
	btnImg *widget.ButtonImage
}

// NewPauseUI builds the centered pause menu: look tuning rows plus Resume
// and Quit. Buttons are colored nine-slices so no theme assets are needed.
func NewPauseUI(g *Game) *ebitenui.UI {
	// semi-transparent panel background
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	theme := &pauseTheme{
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
		btnImg: &widget.ButtonImage{Idle: btnIdle, Pressed: btnPressed},
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(theme.text("Paused"))
	panel.AddChild(theme.settingRow("Horizontal sensitivity", 10, g, func(s *component.LookSettings) *float64 { return &s.SensitivityX }))
	panel.AddChild(theme.settingRow("Vertical sensitivity", 10, g, func(s *component.LookSettings) *float64 { return &s.SensitivityY }))
	panel.AddChild(theme.settingRow("Mouse scale", 0.01, g, func(s *component.LookSettings) *float64 { return &s.MouseSensitivity }))
	panel.AddChild(theme.invertRow(g))
	panel.AddChild(theme.button("Resume", func() { g.setPaused(false) }))
	panel.AddChild(theme.button("Quit", func() { g.quit = true }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func (t *pauseTheme) text(label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &t.face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (t *pauseTheme) button(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(t.btnImg),
		widget.ButtonOpts.Text(label, &t.face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (t *pauseTheme) row(children ...widget.PreferredSizeLocateableWidget) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	for _, c := range children {
		row.AddChild(c)
	}
	return row
}

// settingRow shows one numeric look setting with - and + buttons.
func (t *pauseTheme) settingRow(name string, step float64, g *Game, field func(*component.LookSettings) *float64) *widget.Container {
	label := t.text("")
	refresh := func() {
		if rot := g.lookRotator(); rot != nil {
			label.Label = fmt.Sprintf("%s: %.2f", name, *field(&rot.Settings))
		}
	}
	nudge := func(delta float64) func() {
		return func() {
			rot := g.lookRotator()
			if rot == nil {
				return
			}
			v := field(&rot.Settings)
			*v = max(*v+delta, 0)
			refresh()
		}
	}
	refresh()
	return t.row(t.button("-", nudge(-step)), label, t.button("+", nudge(step)))
}

func (t *pauseTheme) invertRow(g *Game) *widget.Container {
	label := t.text("")
	refresh := func() {
		if rot := g.lookRotator(); rot != nil {
			label.Label = fmt.Sprintf("Invert Y: %v", rot.Settings.InvertY)
		}
	}
	refresh()
	return t.row(label, t.button("Toggle", func() {
		if rot := g.lookRotator(); rot != nil {
			rot.Settings.InvertY = !rot.Settings.InvertY
			refresh()
		}
	}))
}
