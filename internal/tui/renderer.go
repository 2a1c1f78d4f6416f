// Package tui draws the simulation into a tcell screen.
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	balls "github.com/zegevlier/bevy-balls"
)

const (
	ballRune = '●'
	wallRune = '·'
)

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// projection maps world coordinates (y-up, origin at the cage center) onto
// screen cells (y-down, origin top-left). Terminal cells are roughly twice
// as tall as wide, so x gets double the scale to keep the cage round.
type projection struct {
	centerX int
	centerY int
	scale   float64
}

// newProjection fits the cage plus wall into a width×height cell area,
// reserving the bottom row for the status line.
func newProjection(width, height int, cfg balls.Config) projection {
	extent := cfg.CageRadius + cfg.WallThickness
	if extent <= 0 {
		extent = 1
	}

	usableH := height - 1
	scaleV := float64(usableH-1) / (2 * extent)
	scaleH := float64(width-1) / (4 * extent)
	scale := math.Min(scaleV, scaleH)
	if scale < 0 {
		scale = 0
	}

	return projection{
		centerX: width / 2,
		centerY: usableH / 2,
		scale:   scale,
	}
}

// cell returns the screen cell for a world position.
func (p projection) cell(pos mgl64.Vec2) (int, int) {
	x := p.centerX + int(math.Round(pos.X()*p.scale*2))
	y := p.centerY - int(math.Round(pos.Y()*p.scale))
	return x, y
}

// Renderer paints world snapshots onto one screen.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw clears the screen and paints the cage wall, every ball, and the
// status line, then flushes.
func (r *Renderer) Draw(snapshot []balls.Ball, cfg balls.Config, tick uint64) {
	r.screen.Clear()

	width, height := r.screen.Size()
	proj := newProjection(width, height, cfg)

	r.drawCage(proj, cfg)
	for _, ball := range snapshot {
		x, y := proj.cell(ball.Pos)
		r.screen.SetContent(x, y, ballRune, nil, ballStyle(ball.Color))
	}
	r.drawStatus(height, tick, len(snapshot), cfg.Seed)

	r.screen.Show()
}

func (r *Renderer) drawCage(proj projection, cfg balls.Config) {
	radius := cfg.CageRadius + cfg.WallThickness/2
	// Enough samples that adjacent boundary cells touch.
	steps := int(4 * math.Pi * radius * math.Max(proj.scale, 1))
	if steps < 64 {
		steps = 64
	}
	for i := 0; i < steps; i++ {
		angle := float64(i) / float64(steps) * 2 * math.Pi
		point := mgl64.Vec2{radius * math.Cos(angle), radius * math.Sin(angle)}
		x, y := proj.cell(point)
		r.screen.SetContent(x, y, wallRune, nil, wallStyle)
	}
}

func (r *Renderer) drawStatus(height int, tick uint64, count int, seed string) {
	status := fmt.Sprintf("tick %d  balls %d  seed %s  [space] reset+spawn  [esc] quit",
		tick, count, seed)
	for i, ch := range status {
		r.screen.SetContent(i, height-1, ch, nil, statusStyle)
	}
}

func ballStyle(c balls.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(
		channel(c.R), channel(c.G), channel(c.B)))
}

func channel(v float64) int32 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int32(math.Round(v * 255))
}
