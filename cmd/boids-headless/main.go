package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/logging"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
	"google.golang.org/protobuf/encoding/protojson"
)

type options struct {
	configFile string
	schemaFile string
	ticks      uint64
	rate       int
	seed       uint64
	dump       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "", "flock config file (.json, .yaml or .yml)")
	flag.StringVar(&opts.schemaFile, "schema", "", "JSON schema used instead of the embedded one")
	flag.Uint64Var(&opts.ticks, "ticks", 1000, "number of steps to run")
	flag.IntVar(&opts.rate, "rate", 0, "ticks per second, 0 runs as fast as possible")
	flag.Uint64Var(&opts.seed, "seed", 0, "overrides the config seed when not zero")
	flag.BoolVar(&opts.dump, "dump", false, "print the final snapshot as JSON on stdout")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "boids-headless: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg := simulation.DefaultConfig()
	if opts.configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(opts.configFile, opts.schemaFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}

	logger, err := logging.New(cfg.LogLevel)
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

	runner := &simulation.Runner{
		Engine: engine,
		Logger: logger,
		Ticks:  opts.ticks,
		Rate:   opts.rate,
	}
	final, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}

	if opts.dump {
		out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(final.ToProto())
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		fmt.Println(string(out))
	}
	return nil
}
