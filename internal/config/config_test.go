package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/escapetime/internal/mandel"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Params() != mandel.DefaultParams() {
		t.Errorf("default config params = %+v, want %+v", cfg.Params(), mandel.DefaultParams())
	}
	if cfg.OutDir != "." {
		t.Errorf("expected out dir '.', got %s", cfg.OutDir)
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	data := []byte("width: 31\nheight: 31\nmax_iterations: 100\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	p := cfg.Params()
	if p.Width != 31 || p.Height != 31 || p.MaxIterations != 100 {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.XMin != -2 || p.YMax != 1.5 {
		t.Errorf("unset fields should keep defaults: %+v", p)
	}
}

func TestLoadInto_KeepsUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(path, []byte("max_iterations: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := GetPreset("small")
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Width != 31 || cfg.Height != 31 || cfg.MaxIterations != 100 {
		t.Errorf("expected 31x31 with 100 iterations, got %+v", cfg)
	}
}

func TestLoadInto_XCenter(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		keepCenter bool
	}{
		{"unrelated keys", "width: 640\n", true},
		{"explicit bounds", "x_min: -2.5\nx_max: 1\n", false},
		{"bounds and center", "x_min: 0\nx_max: 0\nx_center: -0.5\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "render.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}

			cfg := GetPreset("widescreen")
			if err := LoadInto(path, cfg); err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if (cfg.XCenter != nil) != tt.keepCenter {
				t.Errorf("XCenter = %v, keep = %v", cfg.XCenter, tt.keepCenter)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")

	cfg := GetPreset("widescreen")
	cfg.OutDir = "renders"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Params() != cfg.Params() {
		t.Errorf("round trip: got %+v, want %+v", loaded.Params(), cfg.Params())
	}
	if loaded.OutDir != "renders" {
		t.Errorf("out dir = %q", loaded.OutDir)
	}
}

func TestParams_XCenter(t *testing.T) {
	cfg := GetPreset("widescreen")
	p := cfg.Params()

	if err := p.Validate(); err != nil {
		t.Fatalf("widescreen preset invalid: %v", err)
	}
	if math.Abs((p.XMax-p.XMin)/(p.YMax-p.YMin)-960.0/540.0) > 1e-12 {
		t.Errorf("aspect not preserved: [%v, %v]", p.XMin, p.XMax)
	}
	if math.Abs((p.XMin+p.XMax)/2+0.75) > 1e-12 {
		t.Errorf("center = %v, want -0.75", (p.XMin+p.XMax)/2)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Width != 31 || cfg.Height != 31 {
		t.Errorf("expected 31x31, got %dx%d", cfg.Width, cfg.Height)
	}

	cfg.Width = 5
	if Presets["small"].Width != 31 {
		t.Error("GetPreset must not expose the shared preset")
	}

	wide := GetPreset("widescreen")
	*wide.XCenter = 0
	if *Presets["widescreen"].XCenter != -0.75 {
		t.Error("GetPreset must deep-copy the center")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	expected := []string{"preview", "reference", "small", "widescreen"}
	if len(presets) != len(expected) {
		t.Fatalf("got %v, want %v", presets, expected)
	}
	for i := range expected {
		if presets[i] != expected[i] {
			t.Errorf("preset %d: got %s, want %s", i, presets[i], expected[i])
		}
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Params().Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
