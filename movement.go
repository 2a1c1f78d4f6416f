package balls

import "github.com/go-gl/mathgl/mgl64"

// applyGravity accelerates every ball vertically. Gravity has no horizontal
// component.
func (w *World) applyGravity(dt float64) {
	for _, ball := range w.balls {
		ball.Vel[1] += ball.Gravity * dt
	}
}

// applyVelocity advances every ball by its velocity.
func (w *World) applyVelocity(dt float64) {
	for _, ball := range w.balls {
		ball.Pos = ball.Pos.Add(ball.Vel.Mul(dt))
	}
}

// reflect mirrors v about the unit normal n.
func reflect(v, n mgl64.Vec2) mgl64.Vec2 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// collideCage bounces balls off the cage boundary. The effective collision
// radius is half the ball radius, and the push-back resolves the
// penetration in the same tick it is detected.
func (w *World) collideCage() []CageHit {
	var hits []CageHit
	cageRadius := w.config.CageRadius
	for _, ball := range w.balls {
		distance := ball.Pos.Len()
		if distance+ball.Radius/2 <= cageRadius {
			continue
		}
		if distance == 0 {
			// No normal exists at the exact center; treat as no collision
			// this tick.
			continue
		}
		normal := ball.Pos.Mul(-1 / distance)
		ball.Vel = reflect(ball.Vel, normal)
		overlap := ball.Radius/2 + distance - cageRadius
		ball.Pos = ball.Pos.Add(normal.Mul(overlap))
		hits = append(hits, CageHit{Ball: ball.ID})
	}
	return hits
}

// collideBalls bounces overlapping balls off each other. All checks run
// against positions snapshotted before any pair correction, so each side
// resolves independently and a colliding pair reports both (A,B) and
// (B,A). Balls at exactly identical positions are skipped; the same guard
// keeps a ball from colliding with itself.
func (w *World) collideBalls() []BallHit {
	if len(w.balls) < 2 {
		return nil
	}
	snapshot := make([]mgl64.Vec2, len(w.balls))
	for i, ball := range w.balls {
		snapshot[i] = ball.Pos
	}

	var hits []BallHit
	for i, ball := range w.balls {
		pos := snapshot[i]
		for j, otherPos := range snapshot {
			if pos == otherPos {
				continue
			}
			other := w.balls[j]
			distance := pos.Sub(otherPos).Len()
			if distance >= ball.Radius/2+other.Radius/2 {
				continue
			}
			normal := otherPos.Sub(pos).Mul(1 / distance)
			ball.Vel = reflect(ball.Vel, normal)
			overlap := ball.Radius/2 + other.Radius/2 - distance
			ball.Pos = ball.Pos.Sub(normal.Mul(overlap))
			hits = append(hits, BallHit{Ball: ball.ID, Other: other.ID})
		}
	}
	return hits
}
