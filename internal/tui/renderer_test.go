package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	balls "github.com/zegevlier/bevy-balls"
)

func TestProjectionCentersOrigin(t *testing.T) {
	proj := newProjection(80, 25, balls.DefaultConfig())

	x, y := proj.cell(mgl64.Vec2{})

	assert.Equal(t, 40, x)
	assert.Equal(t, 12, y)
}

func TestProjectionFlipsYAndDoublesX(t *testing.T) {
	proj := newProjection(200, 50, balls.DefaultConfig())

	upX, upY := proj.cell(mgl64.Vec2{0, 50})
	rightX, rightY := proj.cell(mgl64.Vec2{50, 0})
	centerX, centerY := proj.cell(mgl64.Vec2{})

	// y-up in world space is up (smaller row) on screen.
	assert.Less(t, upY, centerY)
	assert.Equal(t, centerX, upX)
	// Horizontal displacement covers twice the cells of an equal vertical
	// one, compensating the cell aspect.
	assert.Equal(t, centerY, rightY)
	assert.Equal(t, (centerY-upY)*2, rightX-centerX)
}

func TestProjectionKeepsCageOnScreen(t *testing.T) {
	cfg := balls.DefaultConfig()
	proj := newProjection(60, 20, cfg)

	extent := cfg.CageRadius + cfg.WallThickness
	for _, pos := range []mgl64.Vec2{
		{extent, 0}, {-extent, 0}, {0, extent}, {0, -extent},
	} {
		x, y := proj.cell(pos)
		assert.GreaterOrEqual(t, x, 0)
		assert.Less(t, x, 60)
		assert.GreaterOrEqual(t, y, 0)
		assert.Less(t, y, 19, "bottom row is reserved for status")
	}
}

func TestDrawPaintsBallAndStatus(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 24)

	cfg := balls.DefaultConfig()
	cfg.Seed = "tui"
	renderer := NewRenderer(screen)

	renderer.Draw([]balls.Ball{{
		ID:    "ball-1",
		Pos:   mgl64.Vec2{},
		Color: balls.Color{R: 1},
	}}, cfg, 7)

	proj := newProjection(80, 24, cfg)
	x, y := proj.cell(mgl64.Vec2{})
	ch, _, _, _ := screen.GetContent(x, y)
	assert.Equal(t, ballRune, ch)

	ch, _, _, _ = screen.GetContent(0, 23)
	assert.Equal(t, 't', ch)
}

func TestChannelClamps(t *testing.T) {
	assert.Equal(t, int32(0), channel(-0.5))
	assert.Equal(t, int32(255), channel(1.5))
	assert.Equal(t, int32(128), channel(0.5))
}
