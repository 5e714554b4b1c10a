package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/CoolKrit/Ronin/arena"
	"github.com/CoolKrit/Ronin/component"
)

const hudLines = 6

// HUD draws health and the recent combat log with the built-in basic font.
type HUD struct {
	face   ebtext.Face
	lines  []string
	notice string
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Reset() {
	h.lines = h.lines[:0]
}

// Push records a combat event in the scrolling log. Phase events are too
// chatty to show.
func (h *HUD) Push(evt component.CombatEvent) {
	var line string
	switch evt.Type {
	case component.EventHit:
		line = fmt.Sprintf("%s hits %s for %d", short(evt.AttackerID), short(evt.TargetID), evt.Damage)
	case component.EventDeath:
		line = fmt.Sprintf("%s falls", short(evt.TargetID))
	case component.EventRetarget:
		line = fmt.Sprintf("%s turns toward %s", short(evt.AttackerID), evt.To)
	default:
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > hudLines {
		h.lines = h.lines[len(h.lines)-hudLines:]
	}
}

// short trims generated ids for display.
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (h *HUD) Draw(screen *ebiten.Image, a *arena.Arena) {
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if a != nil && a.Player() != nil {
		hp := a.Player().Health()
		h.text(screen, fmt.Sprintf("HP %d/%d   %s   tick %d   FPS %.0f",
			hp.CurrentHP(), hp.MaxHP(), a.Level().Name, a.Tick(), ebiten.ActualFPS()), 8, 8, white)
		frac := float32(hp.Fraction())
		vector.FillRect(screen, 8, 26, 160, 6, color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}, false)
		vector.FillRect(screen, 8, 26, 160*frac, 6, color.NRGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}, false)
	}
	for i, line := range h.lines {
		h.text(screen, line, 8, 40+float64(i)*15, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff})
	}
	if h.notice != "" {
		h.text(screen, h.notice, 8, float64(screen.Bounds().Dy())-22, color.NRGBA{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff})
	}
}

func (h *HUD) text(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, h.face, op)
}
