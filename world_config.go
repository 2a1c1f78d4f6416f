package balls

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the tunable simulation parameters. The zero value is not
// usable directly; start from DefaultConfig or pass through Normalized.
type Config struct {
	TickRate      int     `json:"tickRate" yaml:"tickRate"`
	BallRadius    float64 `json:"ballRadius" yaml:"ballRadius"`
	StartingSpeed float64 `json:"startingSpeed" yaml:"startingSpeed"`
	Gravity       float64 `json:"gravity" yaml:"gravity"`
	CageRadius    float64 `json:"cageRadius" yaml:"cageRadius"`
	WallThickness float64 `json:"wallThickness" yaml:"wallThickness"`
	SpawnChance   float64 `json:"spawnChance" yaml:"spawnChance"`
	Seed          string  `json:"seed" yaml:"seed"`
}

func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.TickRate <= 0 {
		normalized.TickRate = defaultTickRate
	}
	if normalized.TickRate > maxTickRate {
		normalized.TickRate = maxTickRate
	}
	if normalized.BallRadius <= 0 {
		normalized.BallRadius = defaultBallRadius
	}
	if normalized.StartingSpeed < 0 {
		normalized.StartingSpeed = 0
	}
	if normalized.CageRadius <= 0 {
		normalized.CageRadius = defaultCageRadius
	}
	if normalized.WallThickness < 0 {
		normalized.WallThickness = 0
	}
	if normalized.SpawnChance < 0 {
		normalized.SpawnChance = 0
	}
	if normalized.SpawnChance > 1 {
		normalized.SpawnChance = 1
	}
	return normalized
}

// Normalized returns a config with every field clamped to a usable value.
// An empty seed is left empty; NewWorld fills it so the effective seed can
// be reported back.
func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

// DefaultConfig mirrors the constants the simulation was tuned with.
func DefaultConfig() Config {
	return Config{
		TickRate:      defaultTickRate,
		BallRadius:    defaultBallRadius,
		StartingSpeed: defaultStartingSpeed,
		Gravity:       defaultGravity,
		CageRadius:    defaultCageRadius,
		WallThickness: defaultWallThickness,
		SpawnChance:   defaultSpawnChance,
	}
}

// LoadConfig reads a YAML file over the defaults, so absent fields keep
// their default values. An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg.Normalized(), nil
}
