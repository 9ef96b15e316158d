package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/sim"
)

const (
	DefaultScenario = "oscillator"
	DefaultLevel    = "info"
	DefaultFormat   = "console"
)

type Config struct {
	Scenario string `yaml:"scenario"`
	// Zero values below defer to the scenario's own defaults.
	Dt           float64            `yaml:"dt"`
	TMax         float64            `yaml:"tmax"`
	SampleEvery  int                `yaml:"sample_every"`
	CaptureEvery float64            `yaml:"capture_every"`
	Mode         string             `yaml:"mode"`
	Rate         float64            `yaml:"rate"`
	Params       map[string]float64 `yaml:"params,omitempty"`
	Output       OutputConfig       `yaml:"output"`
	Log          LogConfig          `yaml:"log"`
}

type OutputConfig struct {
	CSV    string `yaml:"csv"`
	PNGDir string `yaml:"png_dir"`
	// Frames is the directory for frame captures; the prefix names the
	// files inside it.
	Frames      string `yaml:"frames"`
	FramePrefix string `yaml:"frame_prefix"`
	ASCII       bool   `yaml:"ascii"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: DefaultScenario,
		Output:   OutputConfig{FramePrefix: "frame"},
		Log: LogConfig{
			Level:      DefaultLevel,
			Format:     DefaultFormat,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields that are set. Unset fields are filled in by
// the scenario and checked when the run starts.
func (c *Config) Validate() error {
	if c.Scenario == "" {
		return fmt.Errorf("%w: no scenario", dynamo.ErrInvalidConfig)
	}
	if c.Dt < 0 || c.TMax < 0 || c.CaptureEvery < 0 || c.SampleEvery < 0 {
		return fmt.Errorf("%w: dt, tmax, sample_every and capture_every must not be negative", dynamo.ErrInvalidConfig)
	}
	if c.Rate < 0 {
		return fmt.Errorf("%w: rate must not be negative, got %f", dynamo.ErrInvalidConfig, c.Rate)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format: %s", dynamo.ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Sim returns the run settings for the simulation core.
func (c *Config) Sim() sim.Config {
	return sim.Config{
		Dt:           c.Dt,
		TMax:         c.TMax,
		SampleEvery:  c.SampleEvery,
		CaptureEvery: c.CaptureEvery,
		Mode:         c.Mode,
	}
}

// SetParam records a scenario parameter override.
func (c *Config) SetParam(name string, value float64) {
	if c.Params == nil {
		c.Params = make(map[string]float64)
	}
	c.Params[name] = value
}
