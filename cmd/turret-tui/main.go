package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Turret-Defense/internal/audio"
	"github.com/Garsondee/Turret-Defense/internal/config"
	"github.com/Garsondee/Turret-Defense/internal/game"
	"github.com/Garsondee/Turret-Defense/internal/highscore"
	"github.com/Garsondee/Turret-Defense/internal/term"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		log.Fatal(err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	logPath := flag.String("log", "", "write diagnostics to this file (the terminal is in use)")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logOut := io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.New(logOut, "turret-tui: ", log.LstdFlags)

	store := highscore.NewFileStore(cfg.HighScorePath)
	if _, err := store.Read(); err != nil {
		logger.Printf("high score unreadable, starting from 0: %v", err)
	}
	engine := game.New(
		game.WithSeed(cfg.Seed),
		game.WithStore(store),
		game.WithLogger(logger),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	opts := []term.Option{term.WithLogger(logger)}
	if cfg.Audio {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Printf("audio disabled: %v", err)
		} else {
			defer sm.Cleanup()
		}
		opts = append(opts, term.WithSink(sm))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := term.New(screen, engine, opts...).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		screen.Fini()
		log.Fatal(err)
	}
}
