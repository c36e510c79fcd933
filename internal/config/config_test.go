package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestValidateDefaultConfig(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default configuration should be valid: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexmesh.yaml")
	data := `
grid:
  chunkCountX: 2
metrics:
  terracesPerSlope: 3
features:
  walls: false
workers: 4
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.ChunkCountX != 2 || cfg.Grid.ChunkCountZ != Default().Grid.ChunkCountZ {
		t.Fatalf("grid = %+v", cfg.Grid)
	}
	if cfg.Metrics.TerracesPerSlope != 3 || cfg.Metrics.OuterRadius != 10 {
		t.Fatalf("metrics = %+v", cfg.Metrics)
	}
	if cfg.Features.Walls || !cfg.Features.Rivers {
		t.Fatalf("features = %+v", cfg.Features)
	}
	if cfg.Workers != 4 {
		t.Fatalf("workers = %d, want 4", cfg.Workers)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Fatalf("log level = %v, want debug", cfg.LogLevel())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := cfg.Decode(strings.NewReader("grid:\n  chunkCount: 3\n"))
	if err == nil {
		t.Fatalf("unknown key accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file accepted")
	}
}

func TestValidateDetectsInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero chunk count",
			mutate:  func(c *Config) { c.Grid.ChunkCountX = 0 },
			wantErr: "grid chunk counts must be positive",
		},
		{
			name:    "solid factor out of range",
			mutate:  func(c *Config) { c.Metrics.SolidFactor = 1 },
			wantErr: "metrics.solidFactor",
		},
		{
			name:    "no terraces",
			mutate:  func(c *Config) { c.Metrics.TerracesPerSlope = 0 },
			wantErr: "metrics.terracesPerSlope",
		},
		{
			name:    "bad palette entry",
			mutate:  func(c *Config) { c.Palette[1] = "green" },
			wantErr: "palette[1]",
		},
		{
			name:    "no workers",
			mutate:  func(c *Config) { c.Workers = 0 },
			wantErr: "workers must be at least 1",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: "log.level",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("error %v does not wrap ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Workers = 0
	cfg.Noise.Size = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "workers") || !strings.Contains(err.Error(), "noise.size") {
		t.Fatalf("error = %v, want both problems", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Grid.ChunkSizeX = 7
	cfg.Noise.Source = "https://example.com/noise.png"
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got := Default()
	if err := got.Decode(&buf); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("round trip: got %+v, want %+v", got, cfg)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff000080")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c.X() != 1 || c.Y() != 0 || c.Z() != 0 || c.W() != float32(0x80)/255 {
		t.Fatalf("ParseColor = %v", c)
	}
	if c, _ := ParseColor("00ff00"); c.Y() != 1 || c.W() != 1 {
		t.Fatalf("ParseColor without # = %v", c)
	}
	for _, s := range []string{"", "#12345", "#gggggg"} {
		if _, err := ParseColor(s); err == nil {
			t.Fatalf("ParseColor(%q) accepted", s)
		}
	}
}

func TestMetricsParamsUsesPalette(t *testing.T) {
	cfg := Default()
	p := cfg.MetricsParams()
	if len(p.Palette) != len(cfg.Palette) {
		t.Fatalf("palette: got %d colors, want %d", len(p.Palette), len(cfg.Palette))
	}
}
