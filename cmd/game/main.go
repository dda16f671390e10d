package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Turret-Defense/internal/audio"
	"github.com/Garsondee/Turret-Defense/internal/config"
	"github.com/Garsondee/Turret-Defense/internal/game"
	"github.com/Garsondee/Turret-Defense/internal/highscore"
	"github.com/Garsondee/Turret-Defense/internal/view"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		log.Fatal(err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := log.New(os.Stderr, "turret: ", log.LstdFlags)
	store := highscore.NewFileStore(cfg.HighScorePath)
	if _, err := store.Read(); err != nil {
		logger.Printf("high score unreadable, starting from 0: %v", err)
	}

	engine := game.New(
		game.WithSeed(cfg.Seed),
		game.WithStore(store),
		game.WithLogger(logger),
	)

	opts := []view.Option{view.WithLogger(logger)}
	if cfg.Audio {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Printf("audio disabled: %v", err)
		} else {
			defer sm.Cleanup()
		}
		opts = append(opts, view.WithSink(sm))
	}
	win := view.New(engine, opts...)

	w, h := win.Size()
	ebiten.SetWindowTitle("Turret Defense")
	ebiten.SetWindowSize(int(float64(w)*cfg.WindowScale), int(float64(h)*cfg.WindowScale))
	if err := ebiten.RunGame(win); err != nil {
		log.Fatal(err)
	}
}
