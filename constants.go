package balls

import "time"

const (
	ProtocolVersion = 1

	writeWait         = 10 * time.Second
	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval
	catchupMaxTicks   = 4

	defaultTickRate      = 64
	maxTickRate          = 240
	defaultBallRadius    = 10.0
	defaultStartingSpeed = 200.0
	defaultGravity       = -300.0
	defaultCageRadius    = 100.0
	// The wall thickness is purely visual; collision math never reads it.
	defaultWallThickness = 2.0
	defaultSpawnChance   = 0.1
)
