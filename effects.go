package balls

// rollSpawn spawns at most one ball per tick. The probability roll happens
// only when at least one cage hit occurred, so the RNG stream is untouched
// on quiet ticks.
func (w *World) rollSpawn(cageHits []CageHit) *Ball {
	if len(cageHits) == 0 {
		return nil
	}
	if w.rng.Float64() >= w.config.SpawnChance {
		return nil
	}
	return w.Spawn()
}

// deriveCues reduces a tick's collisions to at most one cue per kind.
func deriveCues(events StepEvents) []CueKind {
	var cues []CueKind
	if len(events.CageHits) > 0 {
		cues = append(cues, CueWall)
	}
	if len(events.BallHits) > 0 {
		cues = append(cues, CueBall)
	}
	return cues
}
