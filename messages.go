package balls

// TickEvents is the wire form of one tick's collision events. Both sides of
// an overlapping pair appear under Ball; consumers must not deduplicate by
// pair.
type TickEvents struct {
	Cage []CageHit `json:"cage,omitempty"`
	Ball []BallHit `json:"ball,omitempty"`
}

// StateMessage is the per-tick broadcast sent to every subscriber.
type StateMessage struct {
	Ver        int        `json:"ver"`
	Type       string     `json:"type"`
	Tick       uint64     `json:"tick"`
	ServerTime int64      `json:"serverTime"`
	Balls      []Ball     `json:"balls"`
	Events     TickEvents `json:"events"`
	Cues       []CueKind  `json:"cues,omitempty"`
	Spawned    string     `json:"spawned,omitempty"`
}

// JoinResponse answers a viewer join with its session ID, the effective
// configuration, and the current snapshot.
type JoinResponse struct {
	Ver    int    `json:"ver"`
	ID     string `json:"id"`
	Config Config `json:"config"`
	Tick   uint64 `json:"tick"`
	Balls  []Ball `json:"balls"`
}
