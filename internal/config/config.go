package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	DefaultSize      = 30
	DefaultAlgorithm = "bubble"
	DefaultPattern   = "random"
	DefaultSpeed     = playback.DefaultSpeed
	DefaultTheme     = "classic"
	DefaultDataDir   = ".sortviz"
)

var (
	// ErrOutOfRange indicates a numeric setting outside its allowed range.
	ErrOutOfRange = errors.New("config: value out of range")

	// ErrUnknownTheme indicates a theme name the UI does not provide.
	ErrUnknownTheme = errors.New("config: unknown theme")
)

type Config struct {
	Size      int    `yaml:"size"`
	Algorithm string `yaml:"algorithm"`
	Pattern   string `yaml:"pattern"`
	Speed     int    `yaml:"speed"`
	Seed      int64  `yaml:"seed"`
	Theme     string `yaml:"theme"`
	DataDir   string `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:      DefaultSize,
		Algorithm: DefaultAlgorithm,
		Pattern:   DefaultPattern,
		Speed:     DefaultSpeed,
		Theme:     DefaultTheme,
		DataDir:   DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate checks ranges and enum values.
func (c *Config) Validate() error {
	if c.Size < arrays.MinSize || c.Size > arrays.MaxSize {
		return fmt.Errorf("%w: size %d not in [%d, %d]", ErrOutOfRange, c.Size, arrays.MinSize, arrays.MaxSize)
	}
	if c.Speed < playback.MinSpeed || c.Speed > playback.MaxSpeed {
		return fmt.Errorf("%w: speed %d not in [%d, %d]", ErrOutOfRange, c.Speed, playback.MinSpeed, playback.MaxSpeed)
	}
	if _, err := trace.Parse(c.Algorithm); err != nil {
		return err
	}
	if _, err := arrays.ParsePattern(c.Pattern); err != nil {
		return err
	}
	return nil
}

// ValidateTheme checks Theme against the names the UI provides. An empty
// theme selects the default.
func (c *Config) ValidateTheme(known []string) error {
	if c.Theme == "" {
		return nil
	}
	for _, name := range known {
		if name == c.Theme {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, c.Theme, strings.Join(known, ", "))
}

// AlgorithmValue returns the parsed algorithm; call Validate first.
func (c *Config) AlgorithmValue() trace.Algorithm {
	alg, err := trace.Parse(c.Algorithm)
	if err != nil {
		return trace.Bubble
	}
	return alg
}

// PatternValue returns the parsed pattern; call Validate first.
func (c *Config) PatternValue() arrays.Pattern {
	p, err := arrays.ParsePattern(c.Pattern)
	if err != nil {
		return arrays.Random
	}
	return p
}
