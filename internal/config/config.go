// Package config loads the YAML configuration of the hexmesh tool. An
// empty path yields Default; a file only needs the keys it overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"hexmesh/internal/meshing"
	"hexmesh/internal/metrics"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Grid     GridConfig       `yaml:"grid"`
	Metrics  metrics.Params   `yaml:"metrics"`
	Palette  []string         `yaml:"palette"` // "#rrggbb" or "#rrggbbaa" per terrain type
	Features meshing.Features `yaml:"features"`
	Noise    NoiseConfig      `yaml:"noise"`
	Hash     HashConfig       `yaml:"hash"`
	Workers  int              `yaml:"workers"` // 1 rebuilds chunks on the caller
	Log      LogConfig        `yaml:"log"`
}

type GridConfig struct {
	ChunkCountX int `yaml:"chunkCountX"`
	ChunkCountZ int `yaml:"chunkCountZ"`
	ChunkSizeX  int `yaml:"chunkSizeX"`
	ChunkSizeZ  int `yaml:"chunkSizeZ"`
}

type NoiseConfig struct {
	Seed   int64  `yaml:"seed"`
	Size   int    `yaml:"size"`   // texture is resampled to size x size
	Source string `yaml:"source"` // path or URL of a noise image; generated when empty
}

type HashConfig struct {
	Seed int64 `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

func Default() *Config {
	return &Config{
		Grid: GridConfig{
			ChunkCountX: 4,
			ChunkCountZ: 3,
			ChunkSizeX:  5,
			ChunkSizeZ:  5,
		},
		Metrics:  metrics.DefaultParams(),
		Palette:  []string{"#e3cc8c", "#709e45", "#785c40", "#8c8c8c", "#f2f2f7"},
		Features: meshing.AllFeatures(),
		Noise: NoiseConfig{
			Seed: 1234,
			Size: 256,
		},
		Hash:    HashConfig{Seed: 1234},
		Workers: 1,
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads configuration from a YAML file if provided. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := cfg.Decode(f); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays YAML from r onto c and validates the result.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// Encode writes c as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	g := c.Grid
	if g.ChunkCountX <= 0 || g.ChunkCountZ <= 0 {
		bad("grid chunk counts must be positive, got %dx%d", g.ChunkCountX, g.ChunkCountZ)
	}
	if g.ChunkSizeX <= 0 || g.ChunkSizeZ <= 0 {
		bad("grid chunk sizes must be positive, got %dx%d", g.ChunkSizeX, g.ChunkSizeZ)
	}

	m := c.Metrics
	if m.OuterRadius <= 0 {
		bad("metrics.outerRadius must be positive")
	}
	if m.SolidFactor <= 0 || m.SolidFactor >= 1 {
		bad("metrics.solidFactor must be in (0,1), got %v", m.SolidFactor)
	}
	if m.WaterFactor <= 0 || m.WaterFactor >= 1 {
		bad("metrics.waterFactor must be in (0,1), got %v", m.WaterFactor)
	}
	if m.ElevationStep <= 0 {
		bad("metrics.elevationStep must be positive")
	}
	if m.TerracesPerSlope < 1 {
		bad("metrics.terracesPerSlope must be at least 1")
	}
	if m.CellPerturbStrength < 0 || m.ElevationPerturbStrength < 0 {
		bad("metrics perturb strengths cannot be negative")
	}
	if m.NoiseScale <= 0 {
		bad("metrics.noiseScale must be positive")
	}
	if m.WallHeight <= 0 || m.WallThickness <= 0 {
		bad("metrics wall height and thickness must be positive")
	}
	if m.BridgeDesignLength <= 0 {
		bad("metrics.bridgeDesignLength must be positive")
	}
	if m.HashGridSize <= 0 || m.HashGridScale <= 0 {
		bad("metrics hash grid size and scale must be positive")
	}

	if len(c.Palette) == 0 {
		bad("palette must list at least one color")
	}
	for i, s := range c.Palette {
		if _, err := ParseColor(s); err != nil {
			bad("palette[%d]: %v", i, err)
		}
	}

	if c.Noise.Size <= 0 {
		bad("noise.size must be positive")
	}
	if c.Workers < 1 {
		bad("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		bad("log.level: %v", err)
	}
	return errors.Join(errs...)
}

// MetricsParams returns the metrics parameters with the parsed palette.
// It assumes c is valid.
func (c *Config) MetricsParams() metrics.Params {
	p := c.Metrics
	p.Palette = make([]mgl32.Vec4, 0, len(c.Palette))
	for _, s := range c.Palette {
		col, _ := ParseColor(s)
		p.Palette = append(p.Palette, col)
	}
	return p
}

// LogLevel returns the configured slog level, info when unset.
func (c *Config) LogLevel() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

// ParseColor decodes "#rrggbb" or "#rrggbbaa" into a linear 0..1 color.
func ParseColor(s string) (mgl32.Vec4, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return mgl32.Vec4{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return mgl32.Vec4{}, fmt.Errorf("color %q: %w", s, err)
	}
	return mgl32.Vec4{
		float32(v>>24&0xff) / 255,
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}
