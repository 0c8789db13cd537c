package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/neonhall/chipwave/parameter"
)

// Config holds runtime audio settings
type Config struct {
	Enabled      bool    `json:"enabled"`
	MasterVolume float64 `json:"masterVolume"` // 0.0-1.0
	SampleRate   int     `json:"sampleRate"`
	Seed         int     `json:"seed"`
}

// DefaultConfig returns the baseline configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.8,
		SampleRate:   parameter.AudioSampleRate,
		Seed:         1,
	}
}

// LoadConfig builds configuration from environment variables, starting
// from defaults; malformed values are ignored, not errors
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("CHIPWAVE_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volume as 0-100 for shell ergonomics
	if volume := os.Getenv("CHIPWAVE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampUnit(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv("CHIPWAVE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if seed := os.Getenv("CHIPWAVE_SEED"); seed != "" {
		if val, err := strconv.Atoi(seed); err == nil {
			cfg.Seed = val
		}
	}

	return cfg
}

// LoadConfigFile overlays JSON file settings onto cfg
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return err
	}
	cfg.MasterVolume = clampUnit(cfg.MasterVolume)
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	return nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
