package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinelab/internal/sim"
	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viewport"
)

const (
	DefaultHeight   = 50.0
	DefaultStart    = 0.0
	DefaultSpeed    = 5.0
	DefaultDuration = 5.0
	DefaultDataDir  = ".kinelab"
	DefaultVariant  = "ball"
)

var (
	ErrUnknownMotion  = errors.New("config: unknown motion")
	ErrUnknownVariant = errors.New("config: unknown sprite variant")
)

// Variants are the cosmetic sprites a run can be drawn with.
var Variants = []string{"ball", "parachute"}

type Config struct {
	Motion   string         `yaml:"motion"`
	Variant  string         `yaml:"variant"`
	DataDir  string         `yaml:"data_dir"`
	Realtime bool           `yaml:"realtime"`
	Debug    bool           `yaml:"debug"`
	FreeFall FreeFallConfig `yaml:"freefall"`
	Uniform  UniformConfig  `yaml:"uniform"`
	Viewport ViewportConfig `yaml:"viewport"`
}

type FreeFallConfig struct {
	Height   float64 `yaml:"height"`
	Velocity float64 `yaml:"velocity"`
}

type UniformConfig struct {
	Start    float64  `yaml:"start"`
	Velocity float64  `yaml:"velocity"`
	Target   *float64 `yaml:"target,omitempty"`
	Duration float64  `yaml:"duration"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Motion:  string(telemetry.FreeFall),
		Variant: DefaultVariant,
		DataDir: DefaultDataDir,
		FreeFall: FreeFallConfig{
			Height: DefaultHeight,
		},
		Uniform: UniformConfig{
			Start:    DefaultStart,
			Velocity: DefaultSpeed,
			Duration: DefaultDuration,
		},
		Viewport: ViewportConfig{
			Width:  viewport.DefaultWidth,
			Height: viewport.DefaultHeight,
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
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
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

// Validate checks the selectors. Physical values are checked by the drivers
// when a run starts.
func (c *Config) Validate() error {
	switch telemetry.Motion(c.Motion) {
	case telemetry.FreeFall, telemetry.Uniform:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMotion, c.Motion)
	}
	for _, v := range Variants {
		if v == c.Variant {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownVariant, c.Variant)
}

func (c *Config) FreeFallParams() sim.FreeFallParams {
	return sim.FreeFallParams{Height: c.FreeFall.Height, Velocity: c.FreeFall.Velocity}
}

func (c *Config) UniformParams() sim.UniformParams {
	p := sim.UniformParams{
		Start:    c.Uniform.Start,
		Velocity: c.Uniform.Velocity,
		Duration: c.Uniform.Duration,
	}
	if c.Uniform.Target != nil {
		t := *c.Uniform.Target
		p.Target = &t
	}
	return p
}

func (c *Config) ViewportSize() viewport.Viewport {
	return viewport.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height}.Resolve()
}

// LoadEnv reads the given dotenv files (".env" when none are named) into the
// process environment and applies the KINELAB_* variables on top of c. A
// missing file is not an error.
func (c *Config) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load env: %w", err)
	}
	return c.ApplyEnv(os.LookupEnv)
}

// ApplyEnv overlays the KINELAB_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("KINELAB_MOTION"); ok && v != "" {
		c.Motion = v
	}
	if v, ok := lookup("KINELAB_VARIANT"); ok && v != "" {
		c.Variant = v
	}
	if v, ok := lookup("KINELAB_DATA_DIR"); ok && v != "" {
		c.DataDir = v
	}
	for name, dst := range map[string]*bool{
		"KINELAB_REALTIME": &c.Realtime,
		"KINELAB_DEBUG":    &c.Debug,
	} {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
		*dst = b
	}
	return nil
}
