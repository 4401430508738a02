package config

import "sort"

type presetFn func(*Config)

var presets = map[string]presetFn{
	"default": func(c *Config) {},
	"low-gravity": func(c *Config) {
		c.Tuning.Gravity = -2.5
		c.Tuning.MaxSwingForce = 6
	},
	"tight-bars": func(c *Config) {
		c.Arena.Bars[0].X = -1
		c.Arena.Bars[1].X = 1
		c.Tuning.ReleaseBoost = 1.5
	},
	"long-swing": func(c *Config) {
		c.Tuning.SwingRadius = 1.6
		c.Arena.Bars[0].Y = 3.6
		c.Arena.Bars[1].Y = 4.6
	},
}

// GetPreset returns a config with the named preset applied over the
// defaults, or nil if the name is unknown.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	fn(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
