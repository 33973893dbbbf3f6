package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids-flock/internal/gui"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/logging"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
)

func main() {
	configFile := flag.String("config", "", "flock config file (.json, .yaml or .yml)")
	schemaFile := flag.String("schema", "", "JSON schema used instead of the embedded one")
	flag.Parse()

	if err := run(*configFile, *schemaFile); err != nil {
		fmt.Fprintf(os.Stderr, "boids: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, schemaFile string) error {
	cfg := simulation.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(configFile, schemaFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	engine, err := simulation.NewEngine(ctx, cfg.NewFlock(), logger)
	if err != nil {
		return err
	}
	defer engine.Stop(ctx)

	game := gui.NewGame(ctx, engine, cfg.FlockConfig(), logger)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Boids")
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("game stopped: %w", err)
	}
	logger.Info("window closed")
	return nil
}
