// ChessPlay - A two-player chess game built with Ebitengine
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/obslog"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/ui"
)

var configPath = flag.String("config", "", "path to a YAML config file")

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chessplay:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := obslog.Init(cfg.Log.Options()); err != nil {
		return err
	}
	defer obslog.Sync()
	log := obslog.L()

	var store *storage.Storage
	if cfg.Storage.InMemory {
		store, err = storage.OpenInMemory()
	} else {
		store, err = storage.Open(cfg.Storage.Dir)
	}
	if err != nil {
		// Preferences and statistics are optional; play on without them.
		log.Warn("storage unavailable", zap.Error(err))
		store = nil
	}

	game := ui.NewGame(cfg, store)
	defer game.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	log.Info("starting", zap.Int("width", cfg.Window.Width), zap.Int("height", cfg.Window.Height))
	return ebiten.RunGame(game)
}
