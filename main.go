package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/freelook/config"
	"github.com/milk9111/freelook/logger"
)

func main() {
	configPath := flag.String("config", "freelook.yaml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
	}
	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)

	game, err := NewGame(cfg)
	if err != nil {
		slog.Error("create game", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	// Capture the cursor so mouse deltas keep flowing at the window edge.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		slog.Error("run game", "err", err)
		os.Exit(1)
	}
}
