package main

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hexmesh/internal/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testScene = `
edits:
  - op: elevation
    cells: [[2, 2]]
    value: 2
    radius: 1
  - op: river
    cells: [[2, 2]]
    direction: E
  - op: walled
    cells: [[6, 6]]
    value: 1
  - op: water
    cells: [[8, 8]]
    value: 1
`

func TestRunWritesLayers(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(scenePath, []byte(testScene), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	cfg := config.Default()
	cfg.Noise.Size = 32
	cfg.Workers = 2
	out := filepath.Join(dir, "out")

	opts := options{scenePath: scenePath, outDir: out}
	if err := run(context.Background(), cfg, opts, quietLogger()); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, name := range []string{"terrain.obj", "rivers.obj", "walls.obj", "water.obj", "placements.yaml"} {
		info, err := os.Stat(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("output %s is empty", name)
		}
	}
	data, err := os.ReadFile(filepath.Join(out, "terrain.obj"))
	if err != nil {
		t.Fatalf("read terrain.obj: %v", err)
	}
	if !strings.HasPrefix(string(data), "o terrain\n") {
		t.Fatalf("terrain.obj does not start with its object name")
	}
}

func TestRunRejectsBadScene(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	bad := "edits:\n  - op: flood\n    cells: [[0, 0]]\n"
	if err := os.WriteFile(scenePath, []byte(bad), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	cfg := config.Default()
	cfg.Noise.Size = 16
	if err := run(context.Background(), cfg, options{scenePath: scenePath}, quietLogger()); err == nil {
		t.Fatalf("run accepted an unknown scene op")
	}
}

func TestLoadNoiseFromLocalFile(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "noise.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	s, err := loadNoise(context.Background(), config.NoiseConfig{Source: path, Size: 16}, quietLogger())
	if err != nil {
		t.Fatalf("loadNoise: %v", err)
	}
	if v := s.SampleBilinear(0.5, 0.5); v.W() != 1 {
		t.Fatalf("sample alpha = %v, want 1", v.W())
	}

	if _, err := loadNoise(context.Background(), config.NoiseConfig{Source: path + ".missing", Size: 16}, quietLogger()); err == nil {
		t.Fatalf("missing noise file accepted")
	}
}
