// Package config defines the tunable parameters for map generation and loads
// YAML presets for them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Generation carries every knob one generation pass reads. Construct with
// Default and adjust fields, or load a preset with Load. A value handed to a
// generation service is treated as read-only for the rest of that pass.
type Generation struct {
	// Elevation noise shape.
	Frequency   float64 `yaml:"frequency"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`

	// Moisture samples its own field at an independent frequency.
	MoistureFrequency float64 `yaml:"moisture_frequency"`

	// Classification thresholds over the raw [0, 1] noise range.
	SeaLevel          float64 `yaml:"sea_level"`
	MountainThreshold float64 `yaml:"mountain_threshold"`

	// RiverPercentage budgets committed river cells against the land cell
	// count.
	RiverPercentage float64 `yaml:"river_percentage"`

	// River source selection tuning. The defaults are the values the rest of
	// the generator was balanced against; changing them silently changes
	// every map.
	SourceFitnessFloor float64 `yaml:"source_fitness_floor"`
	SourceScoreMid     float64 `yaml:"source_score_mid"`
	SourceScoreHigh    float64 `yaml:"source_score_high"`
	SourceWeightLow    int     `yaml:"source_weight_low"`
	SourceWeightMid    int     `yaml:"source_weight_mid"`
	SourceWeightHigh   int     `yaml:"source_weight_high"`
}

// Default returns the generation parameters used when no preset is supplied.
func Default() Generation {
	return Generation{
		Frequency:          0.08,
		Octaves:            4,
		Persistence:        0.5,
		Lacunarity:         2.0,
		MoistureFrequency:  0.2,
		SeaLevel:           0.4,
		MountainThreshold:  0.8,
		RiverPercentage:    0.1,
		SourceFitnessFloor: 0.25,
		SourceScoreMid:     0.5,
		SourceScoreHigh:    0.75,
		SourceWeightLow:    1,
		SourceWeightMid:    2,
		SourceWeightHigh:   4,
	}
}

// Load reads a YAML preset from path. Fields absent from the file keep their
// defaults; the merged result is validated before being returned.
func Load(path string) (Generation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Generation{}, fmt.Errorf("read generation config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Generation{}, fmt.Errorf("parse generation config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Generation{}, err
	}
	return cfg, nil
}

// Validate checks the ranges the generation services assume. It is the single
// checkpoint: services themselves do not re-validate.
func (g Generation) Validate() error {
	if g.Frequency <= 0 {
		return fmt.Errorf("generation.frequency invalid: %g (must be > 0)", g.Frequency)
	}
	if g.Octaves < 1 {
		return fmt.Errorf("generation.octaves invalid: %d (must be >= 1)", g.Octaves)
	}
	if g.Persistence <= 0 || g.Persistence > 1 {
		return fmt.Errorf("generation.persistence invalid: %g (must be in (0, 1])", g.Persistence)
	}
	if g.Lacunarity < 1 {
		return fmt.Errorf("generation.lacunarity invalid: %g (must be >= 1)", g.Lacunarity)
	}
	if g.MoistureFrequency <= 0 {
		return fmt.Errorf("generation.moisture_frequency invalid: %g (must be > 0)", g.MoistureFrequency)
	}
	if g.SeaLevel <= 0 || g.SeaLevel >= 1 {
		return fmt.Errorf("generation.sea_level invalid: %g (must be in (0, 1))", g.SeaLevel)
	}
	if g.MountainThreshold <= g.SeaLevel || g.MountainThreshold > 1 {
		return fmt.Errorf("generation.mountain_threshold invalid: %g (must be in (sea_level, 1])", g.MountainThreshold)
	}
	if g.RiverPercentage < 0 || g.RiverPercentage > 1 {
		return fmt.Errorf("generation.river_percentage invalid: %g (must be in [0, 1])", g.RiverPercentage)
	}
	if g.SourceFitnessFloor < 0 || g.SourceFitnessFloor > 1 {
		return fmt.Errorf("generation.source_fitness_floor invalid: %g (must be in [0, 1])", g.SourceFitnessFloor)
	}
	if g.SourceScoreMid >= g.SourceScoreHigh {
		return fmt.Errorf("generation.source_score_mid invalid: %g (must be below source_score_high %g)",
			g.SourceScoreMid, g.SourceScoreHigh)
	}
	if g.SourceWeightLow < 1 || g.SourceWeightMid < 1 || g.SourceWeightHigh < 1 {
		return fmt.Errorf("generation.source_weights invalid: %d/%d/%d (must all be >= 1)",
			g.SourceWeightLow, g.SourceWeightMid, g.SourceWeightHigh)
	}
	return nil
}
