package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "svg2png.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults are invalid: %s", err)
	}
	if cfg.Render.DefaultSize != 512 || cfg.Render.DPI != 96 || cfg.Render.Strict || cfg.Render.Opacity != 1 {
		t.Errorf("unexpected render defaults %+v", cfg.Render)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render != Default().Render {
		t.Errorf("Load(\"\") = %+v, want the defaults", cfg.Render)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[render]
default_size = 256
strict = true
opacity = 0.5

[assets]
dir = "bundle"

[resources]
dir = "res"
[resources.ids]
"0x7f0e0001" = "raw/logo.svg"
"12" = "raw/other.svg"

[log]
level = "debug"
file = "svg2png.log"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.DefaultSize != 256 || !cfg.Render.Strict || cfg.Render.Opacity != 0.5 {
		t.Errorf("render = %+v", cfg.Render)
	}
	// untouched keys keep their default
	if cfg.Render.DPI != 96 || cfg.Render.MaxDimension != 16384 || cfg.Log.MaxSizeMB != 10 {
		t.Errorf("defaults lost: %+v %+v", cfg.Render, cfg.Log)
	}
	if cfg.Assets.Dir != "bundle" || cfg.Log.Level != "debug" || cfg.Log.File != "svg2png.log" {
		t.Errorf("unexpected config %+v", cfg)
	}
	ids, err := cfg.ResourceIDs()
	if err != nil {
		t.Fatal(err)
	}
	if ids[0x7f0e0001] != "raw/logo.svg" || ids[12] != "raw/other.svg" {
		t.Errorf("resource ids = %v", ids)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"syntax", "[render\n", "loading config"},
		{"unknown key", "[render]\ncolour = 1\n", "unknown keys"},
		{"default size", "[render]\ndefault_size = 0\n", "default_size"},
		{"above max", "[render]\ndefault_size = 100\nmax_dimension = 50\n", "exceeds"},
		{"dpi", "[render]\ndpi = -1.0\n", "dpi"},
		{"opacity", "[render]\nopacity = 1.5\n", "render.opacity"},
		{"level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"resource id", "[resources.ids]\nlogo = \"logo.svg\"\n", "invalid identifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
