package config

import "sort"

func center(x float64) *float64 { return &x }

var Presets = map[string]*Config{
	"reference": {
		Width: 2048, Height: 2048,
		XMin: -2, XMax: 1, YMin: -1.5, YMax: 1.5,
		MaxIterations: 255, OutDir: DefaultOutDir,
	},
	"small": {
		Width: 31, Height: 31,
		XMin: -2, XMax: 1, YMin: -1.5, YMax: 1.5,
		MaxIterations: 255, OutDir: DefaultOutDir,
	},
	"preview": {
		Width: 256, Height: 256,
		XMin: -2, XMax: 1, YMin: -1.5, YMax: 1.5,
		MaxIterations: 64, OutDir: DefaultOutDir,
	},
	"widescreen": {
		Width: 960, Height: 540,
		YMin: -1.5, YMax: 1.5, XCenter: center(-0.75),
		MaxIterations: 255, OutDir: DefaultOutDir,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
