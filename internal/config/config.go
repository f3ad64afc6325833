package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/escapetime/internal/mandel"
)

const (
	DefaultOutDir = "."
)

type Config struct {
	Width         int      `yaml:"width"`
	Height        int      `yaml:"height"`
	XMin          float64  `yaml:"x_min"`
	XMax          float64  `yaml:"x_max"`
	YMin          float64  `yaml:"y_min"`
	YMax          float64  `yaml:"y_max"`
	MaxIterations int      `yaml:"max_iterations"`
	XCenter       *float64 `yaml:"x_center,omitempty"`
	OutDir        string   `yaml:"out_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:         mandel.DefaultWidth,
		Height:        mandel.DefaultHeight,
		XMin:          mandel.DefaultXMin,
		XMax:          mandel.DefaultXMax,
		YMin:          mandel.DefaultYMin,
		YMax:          mandel.DefaultYMax,
		MaxIterations: mandel.DefaultMaxIterations,
		OutDir:        DefaultOutDir,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the file at path onto cfg; keys absent from the file
// keep their current values. Explicit x bounds without an x_center drop
// any center cfg already carried.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, hasMin := keys["x_min"]
	_, hasMax := keys["x_max"]
	_, hasCenter := keys["x_center"]
	if (hasMin || hasMax) && !hasCenter {
		cfg.XCenter = nil
	}

	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the config into render parameters. When XCenter is set
// the real-axis bounds are derived from it so the plane keeps the raster's
// aspect ratio, and XMin/XMax are ignored.
func (c *Config) Params() mandel.Params {
	p := mandel.Params{
		Width:         c.Width,
		Height:        c.Height,
		XMin:          c.XMin,
		XMax:          c.XMax,
		YMin:          c.YMin,
		YMax:          c.YMax,
		MaxIterations: c.MaxIterations,
	}
	if c.XCenter != nil && c.Width > 0 && c.Height > 0 {
		p.XMin, p.XMax = mandel.FitAspect(c.Width, c.Height, c.YMin, c.YMax, *c.XCenter)
	}
	return p
}

func (c *Config) Clone() *Config {
	cp := *c
	if c.XCenter != nil {
		x := *c.XCenter
		cp.XCenter = &x
	}
	return &cp
}
