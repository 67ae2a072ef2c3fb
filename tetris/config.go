package tetris

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the board dimensions and gravity timing rules.
type Config struct {
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	DropStart     time.Duration `yaml:"dropStart"`     // gravity interval at level 1
	DropMin       time.Duration `yaml:"dropMin"`       // fastest gravity interval
	AccelPerLevel time.Duration `yaml:"accelPerLevel"` // interval reduction per level
	LinesPerLevel int           `yaml:"linesPerLevel"`
	Ghost         bool          `yaml:"ghost"` // project the landing position in Snapshot.Cells
}

func DefaultConfig() Config {
	return Config{
		Width:         10,
		Height:        20,
		DropStart:     800 * time.Millisecond,
		DropMin:       90 * time.Millisecond,
		AccelPerLevel: 60 * time.Millisecond,
		LinesPerLevel: 10,
		Ghost:         true,
	}
}

func (c Config) Validate() error {
	if c.Width < 4 {
		return fmt.Errorf("%w: width must be at least 4, got %d", ErrInvalidConfig, c.Width)
	}
	if c.Height < 2 {
		return fmt.Errorf("%w: height must be at least 2, got %d", ErrInvalidConfig, c.Height)
	}
	if c.DropStart <= 0 || c.DropMin <= 0 {
		return fmt.Errorf("%w: drop intervals must be positive", ErrInvalidConfig)
	}
	if c.DropMin > c.DropStart {
		return fmt.Errorf("%w: dropMin %s exceeds dropStart %s", ErrInvalidConfig, c.DropMin, c.DropStart)
	}
	if c.AccelPerLevel < 0 {
		return fmt.Errorf("%w: accelPerLevel must not be negative", ErrInvalidConfig)
	}
	if c.LinesPerLevel < 1 {
		return fmt.Errorf("%w: linesPerLevel must be at least 1, got %d", ErrInvalidConfig, c.LinesPerLevel)
	}
	return nil
}

// DropInterval returns the gravity interval for a level.
func (c Config) DropInterval(level int) time.Duration {
	return max(c.DropMin, c.DropStart-time.Duration(level-1)*c.AccelPerLevel)
}

// ParseConfig decodes YAML over the defaults. Keys missing from the
// document keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}
