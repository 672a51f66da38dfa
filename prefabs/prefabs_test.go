package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfigLoads(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if cfg.Canvas.Width != 1200 || cfg.Canvas.Height != 700 {
		t.Fatalf("canvas = %vx%v, want 1200x700", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Boss.PatternScript == "" {
		t.Fatalf("boss pattern script not set")
	}
	if _, err := LoadScript(cfg.Boss.PatternScript); err != nil {
		t.Fatalf("load pattern script %q: %v", cfg.Boss.PatternScript, err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero canvas", func(c *Config) { c.Canvas.Width = 0 }},
		{"zero kills per wave", func(c *Config) { c.Spawn.KillsPerWave = 0 }},
		{"negative weight", func(c *Config) {
			for k := range c.Spawn.Distribution {
				c.Spawn.Distribution[k] = -1
				break
			}
		}},
		{"empty distribution", func(c *Config) { c.Spawn.Distribution = nil }},
		{"no boss pattern", func(c *Config) { c.Boss.Pattern = nil }},
		{"inverted boss cooldown", func(c *Config) { c.Boss.CooldownMax = c.Boss.CooldownMin - 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := MustDefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestColor(t *testing.T) {
	cfg := MustDefaultConfig()
	fallback := color.NRGBA{R: 1, G: 2, B: 3, A: 4}

	if got := cfg.Color("treasure_chest", fallback); got != (color.NRGBA{R: 0xff, G: 0xd7, A: 0xff}) {
		t.Fatalf("treasure_chest = %v", got)
	}
	if got := cfg.Color("field", fallback); got.A != 0x66 {
		t.Fatalf("field alpha = %#x, want 0x66", got.A)
	}
	if got := cfg.Color("no_such_entry", fallback); got != fallback {
		t.Fatalf("missing entry = %v, want fallback", got)
	}
	var nilCfg *Config
	if got := nilCfg.Color("player", fallback); got != fallback {
		t.Fatalf("nil config = %v, want fallback", got)
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{`"#102030"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{`"#10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{`"#123"`, color.NRGBA{}, true},
		{`"#zz2030"`, color.NRGBA{}, true},
		{`[1, 2]`, color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := c.RGBA8(color.NRGBA{}); got != tt.want {
				t.Fatalf("color = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		name, dir, want string
	}{
		{"config.yaml", "", "config.yaml"},
		{"prefabs/config.yaml", "", "config.yaml"},
		{"boss_pattern.tengo", "scripts", "scripts/boss_pattern.tengo"},
		{"scripts/boss_pattern.tengo", "scripts", "scripts/boss_pattern.tengo"},
		{"prefabs/scripts/boss_pattern.tengo", "scripts", "scripts/boss_pattern.tengo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanPath(tt.name, tt.dir); got != tt.want {
				t.Fatalf("cleanPath(%q, %q) = %q, want %q", tt.name, tt.dir, got, tt.want)
			}
		})
	}
}

func TestLoadAbsolutePath(t *testing.T) {
	data, err := Load(DefaultConfigName)
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	file := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(file, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(file); err != nil {
		t.Fatalf("load absolute: %v", err)
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	script := filepath.Join(dir, "pattern.tengo")
	if err := os.WriteFile(script, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != script {
			t.Fatalf("event for %q, want %q", got, script)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for edited script")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for range w.Events {
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want ReloadKind
	}{
		{"prefabs/config.yaml", ReloadConfig},
		{"tuning.YML", ReloadConfig},
		{"prefabs/scripts/boss_pattern.tengo", ReloadScript},
		{"notes.txt", ReloadNone},
		{"config.yaml~", ReloadNone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := KindOf(tt.path); got != tt.want {
				t.Fatalf("KindOf(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
