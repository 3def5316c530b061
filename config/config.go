package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/iulianpascalau/graphite-check/threshold"
	"github.com/pelletier/go-toml/v2"
)

// RunConfig is the immutable configuration of one evaluation run, fully
// resolved before any network activity happens
type RunConfig struct {
	Host    string
	Targets []string
	// Period is the backend's own relative-time grammar (e.g. "2hours"),
	// passed through verbatim
	Period                   string
	UpdatedSinceSeconds      int64
	AcceptableDiffPercentage float64

	CheckIncreasing     bool
	CheckLast           bool
	CheckAverage        bool
	CheckAveragePercent bool
	CheckPercentile     bool

	LastLevels           threshold.Levels
	AverageLevels        threshold.Levels
	AveragePercentLevels threshold.Levels
	PercentileLevels     threshold.Levels

	GreaterThan  bool
	Percentile   int
	DataPoints   int
	IgnoreNulls  bool
	ConcatOutput bool
	ShortOutput  bool

	Username string
	Password string
}

// Validate checks the configuration before the run starts. Failures here are
// reported without touching the backend.
func (c RunConfig) Validate() error {
	if len(c.Host) == 0 {
		return errors.New("no host given")
	}
	if len(c.Targets) == 0 {
		return errors.New("no target given")
	}
	for _, target := range c.Targets {
		if len(target) == 0 {
			return errors.New("empty target in target list")
		}
	}
	if c.Percentile < 1 || c.Percentile > 100 {
		return fmt.Errorf("percentile must be between 1 and 100, got %d", c.Percentile)
	}
	if c.DataPoints < 1 {
		return fmt.Errorf("data points window must be at least 1, got %d", c.DataPoints)
	}
	if c.UpdatedSinceSeconds < 1 {
		return fmt.Errorf("updated since must be at least 1 second, got %d", c.UpdatedSinceSeconds)
	}
	if c.AcceptableDiffPercentage < 0 {
		return fmt.Errorf("acceptable diff percentage can not be negative, got %g", c.AcceptableDiffPercentage)
	}
	if !c.hasEnabledCheck() {
		return errors.New("no check enabled")
	}

	return nil
}

func (c RunConfig) hasEnabledCheck() bool {
	return c.CheckIncreasing || c.CheckLast || c.CheckAverage || c.CheckAveragePercent || c.CheckPercentile
}

// FileConfig maps to the optional TOML defaults file. Values act as defaults
// for the matching command line flags.
type FileConfig struct {
	Host                string `toml:"Host"`
	Period              string `toml:"Period"`
	UpdatedSinceSeconds int64  `toml:"UpdatedSinceSeconds"`
	DataPoints          int    `toml:"DataPoints"`
	Percentile          int    `toml:"Percentile"`
	Username            string `toml:"Username"`
	Password            string `toml:"Password"`
}

// LoadFileConfig parses a TOML file into the FileConfig struct
func LoadFileConfig(filepath string) (*FileConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg FileConfig
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &cfg, nil
}
