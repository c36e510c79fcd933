package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"hexmesh/internal/config"
	"hexmesh/internal/noise"

	getter "github.com/hashicorp/go-getter"
)

// loadNoise fetches the configured noise image, which may be a local path or
// any go-getter source (http, s3, git...). Without a source a tileable
// texture is generated from the seed.
func loadNoise(ctx context.Context, nc config.NoiseConfig, log *slog.Logger) (noise.Sampler, error) {
	if nc.Source == "" {
		log.Debug("generating noise texture", "seed", nc.Seed, "size", nc.Size)
		return noise.Generate(nc.Seed, nc.Size), nil
	}

	tmp, err := os.MkdirTemp("", "hexmesh-noise-")
	if err != nil {
		return nil, fmt.Errorf("noise temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("noise source: %w", err)
	}
	dst := filepath.Join(tmp, "noise")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  nc.Source,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	log.Info("fetching noise texture", "source", nc.Source)
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("fetch noise %s: %w", nc.Source, err)
	}

	f, err := os.Open(dst)
	if err != nil {
		return nil, fmt.Errorf("open noise: %w", err)
	}
	defer f.Close()
	tex, err := noise.Decode(f, nc.Size)
	if err != nil {
		return nil, fmt.Errorf("noise %s: %w", nc.Source, err)
	}
	return tex, nil
}
