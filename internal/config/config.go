// Package config resolves runtime settings from defaults, an optional
// dotenv file, environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvHighScoreFile = "TURRET_HIGHSCORE_FILE"
	EnvSeed          = "TURRET_SEED"
	EnvAudio         = "TURRET_AUDIO"
	EnvWindowScale   = "TURRET_WINDOW_SCALE"
)

// DefaultEnvFile is the dotenv file the binaries look for in the working directory.
const DefaultEnvFile = ".env"

// Config holds every setting a front end needs to build and drive an engine.
type Config struct {
	HighScorePath string
	Seed          int64 // 0 seeds from the wall clock
	Audio         bool
	WindowScale   float64
	EnvFile       string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		HighScorePath: "highscore.txt",
		Seed:          0,
		Audio:         true,
		WindowScale:   1,
		EnvFile:       DefaultEnvFile,
	}
}

// Load starts from Default, applies envFile if it exists (already-set
// variables win over the file) and then the TURRET_* variables. An empty
// envFile skips the dotenv step. A missing file is not an error.
func Load(envFile string) (Config, error) {
	cfg := Default()
	cfg.EnvFile = envFile
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if v := os.Getenv(EnvHighScoreFile); v != "" {
		cfg.HighScorePath = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = n
	}
	if v := os.Getenv(EnvAudio); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvAudio, err)
		}
		cfg.Audio = b
	}
	if v := os.Getenv(EnvWindowScale); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvWindowScale, err)
		}
		cfg.WindowScale = f
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings no front end can honour.
func (c Config) Validate() error {
	if c.HighScorePath == "" {
		return errors.New("high score path is empty")
	}
	if c.WindowScale <= 0 || c.WindowScale > 4 {
		return fmt.Errorf("window scale %.2f out of range (0,4]", c.WindowScale)
	}
	return nil
}

// RegisterFlags binds the settings to flags so flags override env values.
// The current field values become the flag defaults.
func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.HighScorePath, "highscore", c.HighScorePath, "high score file path")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "spawn RNG seed (0 = time-seeded)")
	flags.BoolVar(&c.Audio, "audio", c.Audio, "enable sound effects")
	flags.Float64Var(&c.WindowScale, "scale", c.WindowScale, "window scale factor")
}
