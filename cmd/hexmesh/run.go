package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"hexmesh/internal/config"
	"hexmesh/internal/export"
	"hexmesh/internal/grid"
	"hexmesh/internal/meshing"
	"hexmesh/internal/metrics"
	"hexmesh/internal/noise"
	"hexmesh/internal/scene"

	"golang.org/x/sync/errgroup"
)

func run(ctx context.Context, cfg *config.Config, opts options, log *slog.Logger) error {
	sampler, err := loadNoise(ctx, cfg.Noise, log)
	if err != nil {
		return err
	}
	hash := noise.NewHashGrid(cfg.Hash.Seed, cfg.Metrics.HashGridSize, cfg.Metrics.HashGridScale)
	m := metrics.New(cfg.MetricsParams(), sampler, hash)

	gc := cfg.Grid
	g, err := grid.New(gc.ChunkCountX, gc.ChunkCountZ, gc.ChunkSizeX, gc.ChunkSizeZ)
	if err != nil {
		return err
	}
	cx, cz := g.Size()
	log.Info("grid ready", "cells", g.CellCount(), "size", fmt.Sprintf("%dx%d", cx, cz), "chunks", g.ChunkCount())

	if opts.scenePath != "" {
		s, err := scene.Load(opts.scenePath)
		if err != nil {
			return err
		}
		if err := scene.Apply(g, m, s); err != nil {
			return fmt.Errorf("apply scene %s: %w", opts.scenePath, err)
		}
		log.Info("scene applied", "path", opts.scenePath, "edits", len(s.Edits))
	}
	if err := g.ValidateWater(); err != nil {
		log.Warn("adjacent water levels disagree", "error", err)
	}

	sched := meshing.NewScheduler(g, m, cfg.Features, cfg.Workers, log)
	defer sched.Close()

	n, err := sched.Flush(ctx)
	if err != nil {
		return fmt.Errorf("triangulate: %w", err)
	}
	log.Info("triangulated", "chunks", n, "workers", sched.Workers(), "top", sched.Profile().TopN(2))
	report(log, sched.Meshes())

	if opts.outDir == "" {
		return nil
	}
	return writeOutputs(opts.outDir, sched.Meshes(), log)
}

func report(log *slog.Logger, chunks []*meshing.ChunkMesh) {
	for l := meshing.Layer(0); l < meshing.LayerCount; l++ {
		var verts, tris int
		for _, cm := range chunks {
			verts += cm.Layer(l).VertexCount()
			tris += cm.Layer(l).TriangleCount()
		}
		log.Info("layer", "name", l.String(), "vertices", verts, "triangles", tris)
	}
	p := export.CollectPlacements(chunks)
	log.Info("placements", "bridges", len(p.Bridges), "towers", len(p.Towers))
}

func writeOutputs(dir string, chunks []*meshing.ChunkMesh, log *slog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var eg errgroup.Group
	for l := meshing.Layer(0); l < meshing.LayerCount; l++ {
		l := l
		meshes := make([]*meshing.Mesh, 0, len(chunks))
		for _, cm := range chunks {
			meshes = append(meshes, cm.Layer(l))
		}
		path := filepath.Join(dir, l.String()+".obj")
		eg.Go(func() error {
			if err := writeFile(path, func(f *os.File) error {
				return export.WriteOBJ(f, l.String(), meshes...)
			}); err != nil {
				return err
			}
			log.Debug("wrote layer", "path", path)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	path := filepath.Join(dir, "placements.yaml")
	if err := writeFile(path, func(f *os.File) error {
		return export.WritePlacements(f, export.CollectPlacements(chunks))
	}); err != nil {
		return err
	}
	log.Info("outputs written", "dir", dir)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
