package water

import (
	"encoding/json"
	"fmt"
	"os"

	"OceanFFT/internal/ocean"
)

// Config is an exportable config for saving/loading water settings
type Config struct {
	Ocean               ocean.Config `json:"ocean"`
	WaveSpeedMultiplier float64      `json:"wave_speed_multiplier"`
	FixedStep           float64      `json:"fixed_step"`
	Detail              Detail       `json:"detail"`
}

// DefaultConfig returns the demo ocean at normal speed with a 60 Hz fixed step.
func DefaultConfig() Config {
	return Config{
		Ocean:               ocean.DefaultConfig(),
		WaveSpeedMultiplier: 1,
		FixedStep:           1.0 / 60,
	}
}

// LoadConfig reads a JSON config. Fields missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as indented JSON.
func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
