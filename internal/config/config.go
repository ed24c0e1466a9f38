// Package config loads the engine's startup configuration from a TOML
// file, falling back to sane defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the engine's tunable startup parameters.
type Config struct {
	Engine EngineSection `toml:"engine"`
	Log    LogSection    `toml:"log"`
}

// EngineSection holds search parallelism and a default search depth.
// Only Workers is read outside this package; DefaultDepth is loaded and
// validated but does not affect any search.
type EngineSection struct {
	Workers      int `toml:"workers"`
	DefaultDepth int `toml:"default_depth"`
}

// LogSection controls the shared logger's verbosity.
type LogSection struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is loaded: one
// worker per CPU and a conservative default search depth.
func Default() Config {
	return Config{
		Engine: EngineSection{
			Workers:      runtime.GOMAXPROCS(0),
			DefaultDepth: 6,
		},
		Log: LogSection{
			Level: "info",
		},
	}
}

// Load reads path as TOML, starting from Default() so that a partial
// file only overrides the fields it sets. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Engine.Workers <= 0 {
		cfg.Engine.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Engine.DefaultDepth <= 0 {
		cfg.Engine.DefaultDepth = 6
	}

	return cfg, nil
}
