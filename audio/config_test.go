package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/neonhall/chipwave/parameter"
)

// TestDefaultConfig verifies baseline values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Enabled {
		t.Error("Expected audio enabled by default")
	}
	if cfg.MasterVolume != 0.8 {
		t.Errorf("Expected default volume 0.8, got %v", cfg.MasterVolume)
	}
	if cfg.SampleRate != parameter.AudioSampleRate {
		t.Errorf("Expected default sample rate %d, got %d", parameter.AudioSampleRate, cfg.SampleRate)
	}
	if cfg.Seed != 1 {
		t.Errorf("Expected default seed 1, got %d", cfg.Seed)
	}
}

// TestLoadConfigFromEnv verifies environment overrides
func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CHIPWAVE_ENABLED", "false")
	t.Setenv("CHIPWAVE_MASTER_VOLUME", "45")
	t.Setenv("CHIPWAVE_SAMPLE_RATE", "22050")
	t.Setenv("CHIPWAVE_SEED", "7")

	cfg := LoadConfig()

	if cfg.Enabled {
		t.Error("Expected audio disabled")
	}
	if cfg.MasterVolume != 0.45 {
		t.Errorf("Expected volume 0.45, got %v", cfg.MasterVolume)
	}
	if cfg.SampleRate != 22050 {
		t.Errorf("Expected sample rate 22050, got %d", cfg.SampleRate)
	}
	if cfg.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", cfg.Seed)
	}
}

// TestLoadConfigMalformedEnv verifies malformed values fall back to defaults
func TestLoadConfigMalformedEnv(t *testing.T) {
	t.Setenv("CHIPWAVE_ENABLED", "maybe")
	t.Setenv("CHIPWAVE_MASTER_VOLUME", "loud")
	t.Setenv("CHIPWAVE_SAMPLE_RATE", "-1")
	t.Setenv("CHIPWAVE_SEED", "abc")

	cfg := LoadConfig()
	def := DefaultConfig()

	if cfg.Enabled != def.Enabled || cfg.MasterVolume != def.MasterVolume ||
		cfg.SampleRate != def.SampleRate || cfg.Seed != def.Seed {
		t.Errorf("Expected defaults for malformed env, got %+v", cfg)
	}
}

// TestLoadConfigVolumeClamped verifies out-of-range volumes clamp to [0, 1]
func TestLoadConfigVolumeClamped(t *testing.T) {
	t.Setenv("CHIPWAVE_MASTER_VOLUME", "250")
	if cfg := LoadConfig(); cfg.MasterVolume != 1.0 {
		t.Errorf("Expected clamp to 1.0, got %v", cfg.MasterVolume)
	}

	t.Setenv("CHIPWAVE_MASTER_VOLUME", "-5")
	if cfg := LoadConfig(); cfg.MasterVolume != 0.0 {
		t.Errorf("Expected clamp to 0.0, got %v", cfg.MasterVolume)
	}
}

// TestLoadConfigFile verifies the JSON overlay and its clamping
func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.json")
	data := `{"enabled": true, "masterVolume": 1.5, "sampleRate": 0, "seed": 99}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg := DefaultConfig()
	if err := LoadConfigFile(path, cfg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.MasterVolume != 1.0 {
		t.Errorf("Expected volume clamped to 1.0, got %v", cfg.MasterVolume)
	}
	if cfg.SampleRate != parameter.AudioSampleRate {
		t.Errorf("Expected zero sample rate replaced with default, got %d", cfg.SampleRate)
	}
	if cfg.Seed != 99 {
		t.Errorf("Expected seed 99, got %d", cfg.Seed)
	}
}

// TestLoadConfigFileErrors verifies missing and malformed files fail
func TestLoadConfigFileErrors(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadConfigFile("/nonexistent/audio.json", cfg); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if err := LoadConfigFile(path, cfg); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

// TestWatchConfig verifies a rewrite of the watched file delivers a
// fresh config
func TestWatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.json")
	if err := os.WriteFile(path, []byte(`{"seed": 1}`), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	configs := make(chan *Config, 1)
	errs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	if err := WatchConfig(path, configs, errs, done); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"seed": 42}`), 0o644); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}

	select {
	case cfg := <-configs:
		if cfg.Seed != 42 {
			t.Errorf("Expected reloaded seed 42, got %d", cfg.Seed)
		}
	case err := <-errs:
		t.Fatalf("Unexpected watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for config reload")
	}
}

// TestWatchConfigMissingFile verifies watching a missing path fails up front
func TestWatchConfigMissingFile(t *testing.T) {
	configs := make(chan *Config)
	errs := make(chan error)
	done := make(chan struct{})
	defer close(done)

	if err := WatchConfig("/nonexistent/audio.json", configs, errs, done); err == nil {
		t.Error("Expected error for missing watch path")
	}
}
