package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/mrexhibit/common"
)

var backgroundColor = color.NRGBA{R: 0x1b, G: 0x26, B: 0x1e, A: 0xff}

type Game struct {
	app *App
}

func NewGame(app *App) *Game {
	return &Game{app: app}
}

func (g *Game) Update() error {
	return g.app.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.app.Draw(screen)

	if g.app.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f    mode: %s", ebiten.ActualFPS(), g.app.coordinator.Mode()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
