package balls

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollSpawnNeedsCageHits(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.SpawnChance = 1
	w := NewWorld(cfg)

	require.Nil(t, w.rollSpawn(nil))
	assert.Zero(t, w.Len())
}

func TestRollSpawnLuckyRollSpawnsExactlyOne(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.SpawnChance = 1
	w := NewWorld(cfg)

	spawned := w.rollSpawn([]CageHit{{Ball: "ball-1"}, {Ball: "ball-2"}})

	require.NotNil(t, spawned)
	assert.Equal(t, mgl64.Vec2{}, spawned.Pos)
	assert.Equal(t, 1, w.Len())
}

func TestRollSpawnUnluckyRollSpawnsNothing(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.SpawnChance = 0
	w := NewWorld(cfg)

	require.Nil(t, w.rollSpawn([]CageHit{{Ball: "ball-1"}}))
	assert.Zero(t, w.Len())
}

func TestRollSpawnLeavesRNGUntouchedOnQuietTicks(t *testing.T) {
	a := NewWorld(defaultTestConfig())
	b := NewWorld(defaultTestConfig())

	for i := 0; i < 10; i++ {
		a.rollSpawn(nil)
	}

	// The quiet rolls consumed nothing, so both streams still align.
	assert.Equal(t, *a.Spawn(), *b.Spawn())
}

func TestDeriveCues(t *testing.T) {
	tests := []struct {
		name   string
		events StepEvents
		want   []CueKind
	}{
		{name: "no collisions"},
		{
			name:   "cage hits only",
			events: StepEvents{CageHits: []CageHit{{Ball: "ball-1"}}},
			want:   []CueKind{CueWall},
		},
		{
			name:   "ball hits only",
			events: StepEvents{BallHits: []BallHit{{Ball: "ball-1", Other: "ball-2"}}},
			want:   []CueKind{CueBall},
		},
		{
			name: "one cue per kind however many hits",
			events: StepEvents{
				CageHits: []CageHit{{Ball: "ball-1"}, {Ball: "ball-2"}, {Ball: "ball-3"}},
				BallHits: []BallHit{
					{Ball: "ball-1", Other: "ball-2"},
					{Ball: "ball-2", Other: "ball-1"},
				},
			},
			want: []CueKind{CueWall, CueBall},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, deriveCues(tc.events))
		})
	}
}

func TestStepSpawnsOnCageHitWithCertainChance(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.SpawnChance = 1
	w := NewWorld(cfg)
	addBall(w, "ball-1", mgl64.Vec2{0, 99}, mgl64.Vec2{0, 50})

	events := w.Step(0)

	require.NotNil(t, events.Spawned)
	assert.Equal(t, 2, w.Len())
	assert.Contains(t, events.Cues, CueWall)
}
