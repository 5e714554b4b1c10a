package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/CoolKrit/Ronin/config"
	"github.com/CoolKrit/Ronin/observability"
	"github.com/CoolKrit/Ronin/prefabs"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	levelName := flag.String("level", "", "level name in prefabs/levels (overrides config)")
	autoplay := flag.Bool("auto", false, "drive the player with the configured tengo script")
	debug := flag.Bool("debug", false, "draw hit boxes and ledge probes")
	watch := flag.Bool("watch", false, "reload the arena when prefabs change on disk")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Simulation.Level = *levelName
	}
	if *watch {
		cfg.Simulation.Watch = true
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	prefabs.SetDir(cfg.Simulation.PrefabDir)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Display.Width, cfg.Display.Height)
	ebiten.SetWindowTitle("ronin")
	ebiten.SetTPS(cfg.Simulation.TickRate)

	game, err := NewGame(cfg, logger, GameOptions{Debug: *debug, Autoplay: *autoplay})
	if err != nil {
		logger.Fatal("starting game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}
