package balls

// CueKind labels the audio cue groups derived from one tick's collisions.
type CueKind string

const (
	CueWall CueKind = "wall"
	CueBall CueKind = "ball"
)

// CageHit records one ball striking the cage boundary.
type CageHit struct {
	Ball string `json:"ball"`
}

// BallHit records one side of an overlapping pair. Detection is symmetric,
// so a colliding pair produces both (A,B) and (B,A) within the same tick;
// consumers must not assume one event per pair.
type BallHit struct {
	Ball  string `json:"ball"`
	Other string `json:"other"`
}

// StepEvents carries everything one tick produced. The values are
// transient: built and consumed within the tick, never queued across ticks.
type StepEvents struct {
	CageHits []CageHit
	BallHits []BallHit
	Spawned  *Ball
	Cues     []CueKind
}
