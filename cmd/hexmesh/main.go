package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"hexmesh/internal/config"
)

type options struct {
	configPath string
	scenePath  string
	noiseSrc   string
	outDir     string
	logLevel   string
	dumpConfig bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML config file (defaults when empty)")
	flag.StringVar(&opts.scenePath, "scene", "", "YAML scene edits to apply before meshing")
	flag.StringVar(&opts.noiseSrc, "noise", "", "noise image path or go-getter URL (overrides noise.source)")
	flag.StringVar(&opts.outDir, "out", "", "directory for OBJ layers and placements")
	flag.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
	flag.BoolVar(&opts.dumpConfig, "dump-config", false, "print the effective config and exit")
	flag.Parse()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hexmesh:", err)
		os.Exit(2)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "hexmesh:", err)
			os.Exit(2)
		}
	}
	if opts.noiseSrc != "" {
		cfg.Noise.Source = opts.noiseSrc
	}

	if opts.dumpConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "hexmesh:", err)
			os.Exit(1)
		}
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, opts, log); err != nil {
		log.Error("hexmesh failed", "error", err)
		os.Exit(1)
	}
}
