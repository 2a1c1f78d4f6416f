package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	balls "github.com/zegevlier/bevy-balls"
	"github.com/zegevlier/bevy-balls/internal/app"
	"github.com/zegevlier/bevy-balls/internal/logging"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "listen address")
		configPath = flag.String("config", "", "path to a YAML config file")
		clientDir  = flag.String("client-dir", "", "directory of static client files to serve at /")
		seed       = flag.String("seed", "", "deterministic RNG seed; empty picks a random one")
		logLevel   = flag.String("log-level", "info", "log level: debug, info, warn, error")
		logFormat  = flag.String("log-format", "json", "log encoding: json or console")
	)
	flag.Parse()

	logger, err := logging.New(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := balls.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *seed != "" {
		cfg.Seed = *seed
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, app.Config{
		Addr:      *addr,
		ClientDir: *clientDir,
		Sim:       cfg,
		Logger:    logger,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
