package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"barswing/internal/game"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultDt        = 0.016
	DefaultFrameRate = 30
	DefaultAddr      = ":8080"
)

type Config struct {
	Dt        float64      `yaml:"dt"`
	Seed      int64        `yaml:"seed"`
	FrameRate int          `yaml:"frame_rate"`
	Addr      string       `yaml:"addr"`
	StaticDir string       `yaml:"static_dir"`
	Arena     ArenaConfig  `yaml:"arena"`
	Tuning    TuningConfig `yaml:"tuning"`
}

type ArenaConfig struct {
	Bars []BarConfig `yaml:"bars"`
	Mats []MatConfig `yaml:"mats"`
}

type BarConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Radius float64 `yaml:"radius"`
}

type MatConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// TuningConfig overrides a subset of the physics constants. Zero values mean
// "keep the default", so a config file only states what it changes.
type TuningConfig struct {
	Gravity       float64 `yaml:"gravity"`
	SwingRadius   float64 `yaml:"swing_radius"`
	Damping       float64 `yaml:"damping"`
	MaxSwingForce float64 `yaml:"max_swing_force"`
	ReleaseBoost  float64 `yaml:"release_boost"`
	GrabRadius    float64 `yaml:"grab_radius"`
	ResetDelay    float64 `yaml:"reset_delay"`
}

func DefaultConfig() *Config {
	arena := game.DefaultArena()
	cfg := &Config{
		Dt:        DefaultDt,
		FrameRate: DefaultFrameRate,
		Addr:      DefaultAddr,
	}
	for _, b := range arena.Bars {
		cfg.Arena.Bars = append(cfg.Arena.Bars, BarConfig{
			X: b.Pos.X(), Y: b.Pos.Y(), Z: b.Pos.Z(), Radius: b.Radius,
		})
	}
	for _, m := range arena.Mats {
		cfg.Arena.Mats = append(cfg.Arena.Mats, MatConfig{X: m.Pos.X(), Y: m.Pos.Y(), Z: m.Pos.Z()})
	}
	return cfg
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if len(c.Arena.Bars) != 2 {
		return fmt.Errorf("arena needs exactly 2 bars, got %d", len(c.Arena.Bars))
	}
	if len(c.Arena.Mats) == 0 {
		return fmt.Errorf("arena needs at least one mat")
	}
	return nil
}

// GameArena converts the configured layout into the core's types.
func (c *Config) GameArena() game.Arena {
	var a game.Arena
	for _, b := range c.Arena.Bars {
		a.Bars = append(a.Bars, game.Bar{Pos: mgl64.Vec3{b.X, b.Y, b.Z}, Radius: b.Radius})
	}
	for _, m := range c.Arena.Mats {
		a.Mats = append(a.Mats, game.Mat{Pos: mgl64.Vec3{m.X, m.Y, m.Z}})
	}
	return a
}

// GameTuning applies the configured overrides on top of the defaults.
func (c *Config) GameTuning() game.Tuning {
	tn := game.DefaultTuning()
	if c.Tuning.Gravity != 0 {
		tn.Gravity = c.Tuning.Gravity
	}
	if c.Tuning.SwingRadius != 0 {
		tn.SwingRadius = c.Tuning.SwingRadius
	}
	if c.Tuning.Damping != 0 {
		tn.Damping = c.Tuning.Damping
	}
	if c.Tuning.MaxSwingForce != 0 {
		tn.MaxSwingForce = c.Tuning.MaxSwingForce
	}
	if c.Tuning.ReleaseBoost != 0 {
		tn.ReleaseBoost = c.Tuning.ReleaseBoost
	}
	if c.Tuning.GrabRadius != 0 {
		tn.GrabRadius = c.Tuning.GrabRadius
	}
	if c.Tuning.ResetDelay != 0 {
		tn.ResetDelay = c.Tuning.ResetDelay
	}
	return tn
}

// NewSession builds a game session from the configuration.
func (c *Config) NewSession() *game.Session {
	return game.NewSession(c.GameArena(), c.GameTuning(), c.Seed)
}
