// Package config provides configuration loading and access for the Wigner
// precompute and playback pipeline. A Config is immutable for the lifetime
// of one run.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid tags configuration validation failures so callers can tell a
// caller bug apart from a numeric fault. Use errors.Is to match.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all run parameters.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Sweep     SweepConfig     `yaml:"sweep"`
	Potential PotentialConfig `yaml:"potential"`
	Packet    PacketConfig    `yaml:"packet"`
	Sampling  SamplingConfig  `yaml:"sampling"`
	Display   DisplayConfig   `yaml:"display"`
	Numerics  NumericsConfig  `yaml:"numerics"`
}

// GridConfig holds the spatial grid and time step used by single-resolution
// runs and, for the time step and domain width, by every sweep segment.
type GridConfig struct {
	N  int     `yaml:"n"`  // spatial samples; even, power of two recommended
	L  float64 `yaml:"l"`  // domain width; samples span [-L/2, L/2)
	Dt float64 `yaml:"dt"` // integration time step; zero is a legal no-op
}

// SweepConfig describes the multi-resolution sweep. A list with two or more
// entries overrides Grid.N and Sampling.Frames: each listed grid size runs
// for FramesPerN frames and the segments are concatenated in order.
type SweepConfig struct {
	NList      []int `yaml:"n_list"`
	FramesPerN int   `yaml:"frames_per_n"`
}

// PotentialConfig parameterizes the symmetric double well
// V(x) = BarrierHeight * ((x/(Separation/2))^2 - 1)^2.
type PotentialConfig struct {
	BarrierHeight float64 `yaml:"barrier_height"`
	Separation    float64 `yaml:"separation"`
}

// PacketConfig holds the initial Gaussian wave packet.
type PacketConfig struct {
	X0    float64 `yaml:"x0"`    // packet center
	P0    float64 `yaml:"p0"`    // mean momentum
	Sigma float64 `yaml:"sigma"` // packet width
}

// SamplingConfig controls how often frames are recorded.
type SamplingConfig struct {
	Frames        int `yaml:"frames"`          // recorded frames (single-resolution mode)
	StepsPerFrame int `yaml:"steps_per_frame"` // integration steps between frames
}

// DisplayConfig holds the fixed display resolution the precompute pass
// down-samples to, plus the value mapping used by the playback surface.
// VMin/VMax clamp the color band; ZScale exaggerates surface height.
type DisplayConfig struct {
	MeshNX   int           `yaml:"mesh_nx"`
	MeshNY   int           `yaml:"mesh_ny"`
	VMin     float64       `yaml:"vmin"`
	VMax     float64       `yaml:"vmax"`
	ZScale   float64       `yaml:"z_scale"`
	FPS      int           `yaml:"fps"`
	Colormap [3][3]float64 `yaml:"colormap"` // low, mid, high RGB stops
}

// NumericsConfig holds numeric safety limits.
type NumericsConfig struct {
	// NormTolerance is the allowed drift of total probability relative to
	// the value at the start of a segment before the run aborts.
	NormTolerance float64 `yaml:"norm_tolerance"`
}

// Load returns the embedded defaults, optionally overridden by the YAML
// file at path, validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MultiMode reports whether the run is a multi-resolution sweep.
func (c *Config) MultiMode() bool {
	return len(c.Sweep.NList) >= 2
}

// TotalFrames reports how many frames the precompute pass will produce.
func (c *Config) TotalFrames() int {
	if c.MultiMode() {
		return len(c.Sweep.NList) * c.Sweep.FramesPerN
	}
	return c.Sampling.Frames
}

// Validate checks every field a run depends on. All failures wrap
// ErrInvalid.
func (c *Config) Validate() error {
	if err := validGridSize(c.Grid.N); err != nil {
		return err
	}
	for _, n := range c.Sweep.NList {
		if err := validGridSize(n); err != nil {
			return err
		}
	}
	if c.MultiMode() && c.Sweep.FramesPerN < 1 {
		return fmt.Errorf("%w: sweep.frames_per_n must be at least 1, got %d", ErrInvalid, c.Sweep.FramesPerN)
	}
	if c.Grid.L <= 0 {
		return fmt.Errorf("%w: grid.l must be positive, got %g", ErrInvalid, c.Grid.L)
	}
	if math.IsNaN(c.Grid.Dt) || math.IsInf(c.Grid.Dt, 0) {
		return fmt.Errorf("%w: grid.dt must be finite", ErrInvalid)
	}
	if c.Potential.Separation <= 0 {
		return fmt.Errorf("%w: potential.separation must be positive, got %g", ErrInvalid, c.Potential.Separation)
	}
	if c.Packet.Sigma <= 0 {
		return fmt.Errorf("%w: packet.sigma must be positive, got %g", ErrInvalid, c.Packet.Sigma)
	}
	if c.Sampling.Frames < 1 {
		return fmt.Errorf("%w: sampling.frames must be at least 1, got %d", ErrInvalid, c.Sampling.Frames)
	}
	if c.Sampling.StepsPerFrame < 1 {
		return fmt.Errorf("%w: sampling.steps_per_frame must be at least 1, got %d", ErrInvalid, c.Sampling.StepsPerFrame)
	}
	if c.Display.MeshNX < 2 || c.Display.MeshNY < 2 {
		return fmt.Errorf("%w: display mesh resolution must be at least 2x2, got %dx%d", ErrInvalid, c.Display.MeshNX, c.Display.MeshNY)
	}
	if !(c.Display.VMax > c.Display.VMin) {
		return fmt.Errorf("%w: display.vmax (%g) must exceed display.vmin (%g)", ErrInvalid, c.Display.VMax, c.Display.VMin)
	}
	if math.IsNaN(c.Display.ZScale) || math.IsInf(c.Display.ZScale, 0) {
		return fmt.Errorf("%w: display.z_scale must be finite", ErrInvalid)
	}
	if c.Display.FPS < 1 {
		return fmt.Errorf("%w: display.fps must be at least 1, got %d", ErrInvalid, c.Display.FPS)
	}
	if c.Numerics.NormTolerance <= 0 {
		return fmt.Errorf("%w: numerics.norm_tolerance must be positive, got %g", ErrInvalid, c.Numerics.NormTolerance)
	}
	return nil
}

// validGridSize enforces the even-n requirement of the centered Wigner
// transform.
func validGridSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: grid size must be positive, got %d", ErrInvalid, n)
	}
	if n%2 != 0 {
		return fmt.Errorf("%w: grid size must be even, got %d", ErrInvalid, n)
	}
	return nil
}
