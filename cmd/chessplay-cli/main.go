package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"

	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/cli"
	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/obslog"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	logLevel   = flag.String("log-level", "", "override the configured log level")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	noStats    = flag.Bool("no-stats", false, "do not record finished games")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chessplay-cli:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		if !obslog.ValidLevel(*logLevel) {
			return fmt.Errorf("unknown log level %q", *logLevel)
		}
		cfg.Log.Level = *logLevel
	}
	if err := obslog.Init(cfg.Log.Options()); err != nil {
		return err
	}
	defer obslog.Sync()
	log := obslog.L()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		log.Info("CPU profiling enabled", zap.String("path", profilePath))
	}

	var opts []cli.Option
	if !*noStats {
		store, err := openStorage(cfg.Storage)
		if err != nil {
			log.Warn("statistics disabled", zap.Error(err))
		} else {
			defer store.Close()
			opts = append(opts, cli.WithStorage(store))
		}
	}

	c := cli.New(game.New(), os.Stdout, opts...)
	return c.Run(os.Stdin)
}

func openStorage(cfg config.StorageConfig) (*storage.Storage, error) {
	if cfg.InMemory {
		return storage.OpenInMemory()
	}
	return storage.Open(cfg.Dir)
}
