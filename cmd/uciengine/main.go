// Command uciengine runs the search behind a UCI text session on
// stdin/stdout, or performs a one-shot perft/verify run when given the
// matching flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kestrelchess/uciengine/internal/applog"
	"github.com/kestrelchess/uciengine/internal/board"
	"github.com/kestrelchess/uciengine/internal/config"
	"github.com/kestrelchess/uciengine/internal/engine"
	"github.com/kestrelchess/uciengine/internal/uci"
)

func main() {
	var (
		configPath   = pflag.String("config", "engine.toml", "path to the engine's TOML configuration file")
		perftDepth   = pflag.Int("perft-depth", 0, "run a one-shot perft to this depth and exit (0 disables)")
		fen          = pflag.String("fen", "", "starting position for --perft-depth (startpos if empty)")
		workers      = pflag.Int("workers", 0, "override the configured worker-pool size (0 keeps the config value)")
		verifyMagics = pflag.Bool("verify-magics", false, "rerun the magic-multiplier search for every square and piece kind, report any that fail, then exit")
	)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		applog.Fatal("main", "loading configuration: %v", err)
	}
	applog.SetLevel(cfg.Log.Level)

	if *workers > 0 {
		cfg.Engine.Workers = *workers
	}

	if *verifyMagics {
		runVerifyMagics()
		return
	}

	if *perftDepth > 0 {
		runPerft(*perftDepth, *fen, cfg.Engine.Workers)
		return
	}

	eng := engine.New(cfg.Engine.Workers)
	uci.New(eng).Run()
}

func runPerft(depth int, fen string, workers int) {
	b := board.NewBoard()
	if fen != "" {
		loaded, err := board.LoadFEN(fen)
		if err != nil {
			applog.Fatal("main", "malformed --fen: %v", err)
		}
		b = loaded
	}

	info, err := board.PerftThreaded(b, depth, workers)
	if err != nil {
		applog.Fatal("main", "threaded perft failed: %v", err)
	}
	fmt.Printf("Nodes: %d\n", info.Nodes)
	fmt.Printf("Captures: %d\n", info.Captures)
	fmt.Printf("En Passants: %d\n", info.EnPassants)
	fmt.Printf("Castles: %d\n", info.Castles)
	fmt.Printf("Promotions: %d\n", info.Promotions)
	fmt.Printf("Checks: %d\n", info.Checks)
	fmt.Printf("Checkmates: %d\n", info.Checkmates)
}

// runVerifyMagics re-derives a magic multiplier for every square and
// piece kind from scratch and reports every square where FindMagic fails
// to find a collision-free multiplier. It does not compare the result with
// the tables magic.go built at startup.
func runVerifyMagics() {
	log := applog.Get("main")
	failed := false

	for sq := board.A1; sq <= board.H8; sq++ {
		for _, bishop := range []bool{true, false} {
			if _, _, err := board.FindMagic(sq, bishop, int64(sq)+1); err != nil {
				log.Errorf("square %s (bishop=%v): %v", sq, bishop, err)
				failed = true
			}
		}
	}

	if failed {
		applog.Fatal("main", "magic verification failed for one or more squares")
	}

	log.Info("all square magic multipliers verified")
	os.Exit(0)
}
