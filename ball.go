package balls

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Color is a display tint in unit RGB floats. It never enters collision
// math.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Ball is one simulated body inside the cage. Vectors are y-up with the
// cage center at the origin.
type Ball struct {
	ID      string     `json:"id"`
	Pos     mgl64.Vec2 `json:"pos"`
	Vel     mgl64.Vec2 `json:"vel"`
	Radius  float64    `json:"radius"`
	Gravity float64    `json:"gravity"`
	Color   Color      `json:"color"`
}

// randomDirection samples both components from [-1, 1) and normalizes.
// Component sampling is kept over angle sampling even though it biases
// toward the diagonals. A zero-length sample falls back to unit +X.
func randomDirection(rng *rand.Rand) mgl64.Vec2 {
	dir := mgl64.Vec2{rng.Float64()*2 - 1, rng.Float64()*2 - 1}
	if dir.LenSqr() == 0 {
		return mgl64.Vec2{1, 0}
	}
	return dir.Normalize()
}

func randomColor(rng *rand.Rand) Color {
	return Color{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
}
