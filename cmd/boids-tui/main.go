package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids-flock/internal/terminal"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/logging"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
)

func main() {
	configFile := flag.String("config", "", "flock config file (.json, .yaml or .yml)")
	schemaFile := flag.String("schema", "", "JSON schema used instead of the embedded one")
	logFile := flag.String("log", "", "write logs to this file, discarded when empty")
	flag.Parse()

	if err := run(*configFile, *schemaFile, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "boids-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, schemaFile, logFile string) error {
	cfg := simulation.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(configFile, schemaFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	logger, err := logging.ToFile(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := simulation.NewEngine(ctx, cfg.NewFlock(), logger)
	if err != nil {
		return err
	}
	defer engine.Stop(context.Background())

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	app := &terminal.App{
		Screen:   screen,
		Engine:   engine,
		Renderer: terminal.NewRenderer(screen, float64(cfg.WorldWidth), float64(cfg.WorldHeight)),
		Logger:   logger,
		Rate:     cfg.TickRate,
	}
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("terminal renderer closed")
	return nil
}
