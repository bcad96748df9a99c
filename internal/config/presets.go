package config

import "sort"

func ptr(v float64) *float64 { return &v }

var Presets = map[string]map[string]*Config{
	"freefall": {
		"drop": {
			Motion: "freefall", Variant: "ball",
			FreeFall: FreeFallConfig{Height: 50, Velocity: 0},
		},
		"toss": {
			Motion: "freefall", Variant: "ball",
			FreeFall: FreeFallConfig{Height: 20, Velocity: -10},
		},
		"dive": {
			Motion: "freefall", Variant: "parachute",
			FreeFall: FreeFallConfig{Height: 120, Velocity: 5},
		},
		"ground": {
			Motion: "freefall", Variant: "ball",
			FreeFall: FreeFallConfig{Height: 0, Velocity: 0},
		},
	},
	"uniform": {
		"walk": {
			Motion: "uniform", Variant: "ball",
			Uniform: UniformConfig{Start: 0, Velocity: 5, Duration: 5},
		},
		"reverse": {
			Motion: "uniform", Variant: "ball",
			Uniform: UniformConfig{Start: 20, Velocity: -4, Duration: 5},
		},
		"target": {
			Motion: "uniform", Variant: "ball",
			Uniform: UniformConfig{Start: 0, Target: ptr(100), Duration: 10},
		},
		"still": {
			Motion: "uniform", Variant: "ball",
			Uniform: UniformConfig{Start: 10, Target: ptr(10), Duration: 2},
		},
	},
}

func GetPreset(motion, preset string) *Config {
	motionPresets, ok := Presets[motion]
	if !ok {
		return nil
	}
	cfg, ok := motionPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(motion string) []string {
	motionPresets, ok := Presets[motion]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(motionPresets))
	for name := range motionPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the motion parameters of a preset onto c. Selectors other
// than Motion and Variant are left alone.
func (c *Config) Apply(p *Config) {
	c.Motion = p.Motion
	if p.Variant != "" {
		c.Variant = p.Variant
	}
	switch p.Motion {
	case "freefall":
		c.FreeFall = p.FreeFall
	case "uniform":
		c.Uniform = p.Uniform
		if p.Uniform.Target != nil {
			c.Uniform.Target = ptr(*p.Uniform.Target)
		}
	}
}
