package balls

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsAlreadyNormalized(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg, cfg.Normalized())
}

func TestNormalizedClampsFields(t *testing.T) {
	cfg := Config{
		TickRate:      -5,
		BallRadius:    0,
		StartingSpeed: -10,
		CageRadius:    -1,
		WallThickness: -3,
		SpawnChance:   4,
		Seed:          "  padded  ",
	}

	normalized := cfg.Normalized()

	assert.Equal(t, defaultTickRate, normalized.TickRate)
	assert.Equal(t, defaultBallRadius, normalized.BallRadius)
	assert.Zero(t, normalized.StartingSpeed)
	assert.Equal(t, defaultCageRadius, normalized.CageRadius)
	assert.Zero(t, normalized.WallThickness)
	assert.Equal(t, 1.0, normalized.SpawnChance)
	assert.Equal(t, "padded", normalized.Seed)
}

func TestNormalizedBoundsTickRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 100000

	assert.Equal(t, maxTickRate, cfg.Normalized().TickRate)
}

func TestNormalizedClampsNegativeSpawnChance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnChance = -0.2

	assert.Zero(t, cfg.Normalized().SpawnChance)
}

func TestLoadConfigEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cageRadius: 50\nseed: yaml-seed\n"), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.CageRadius)
	assert.Equal(t, "yaml-seed", cfg.Seed)
	assert.Equal(t, DefaultConfig().BallRadius, cfg.BallRadius)
	assert.Equal(t, DefaultConfig().Gravity, cfg.Gravity)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cageRadius: [not a number"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
