package main

import (
	"flag"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/netesanovic/hnefatafl-arena/pkg/engine"
	"github.com/netesanovic/hnefatafl-arena/pkg/tafl"
)

type Config struct {
	Moves      int
	Iterations int
	Playout    string
	BatchSize  int
	Seed       int64
	Profile    string
}

var config Config

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger()

func main() {
	flag.IntVar(&config.Moves, "moves", 20, "Move decisions to benchmark")
	flag.IntVar(&config.Iterations, "iter", 200000, "Iterations per move decision")
	flag.StringVar(&config.Playout, "playout", "heavy", "Playout policy (light|heavy)")
	flag.IntVar(&config.BatchSize, "batch", 8, "Simulations per expanded leaf")
	flag.Int64Var(&config.Seed, "seed", 0xCAFEBABE, "Engine seed")
	flag.StringVar(&config.Profile, "profile", "", "Write a profile (cpu|mem)")
	flag.Parse()

	switch config.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(); err != nil {
		logger.Fatal().Err(err).Msg("bench failed")
	}
}

func run() error {
	var opts = engine.NewOptions()
	opts.Iterations = config.Iterations
	opts.BatchSize = config.BatchSize
	opts.Seed = config.Seed
	var err error
	if opts.Playout, err = engine.ParsePlayout(config.Playout); err != nil {
		return err
	}
	eng, err := engine.NewEngine(opts)
	if err != nil {
		return err
	}

	var p = tafl.NewPosition(eng.Zobrist())
	var started = time.Now()
	var decisions = 0
	for i := 0; i < config.Moves && p.Result() == tafl.GameNotOver; i++ {
		var moveStart = time.Now()
		var mv, ok = eng.BestMove(p)
		if !ok {
			break
		}
		decisions++
		var stats = eng.TableStats()
		logger.Info().
			Int("decision", decisions).
			Stringer("move", mv).
			Dur("elapsed", time.Since(moveStart)).
			Int("written", stats.Written).
			Int("staleEvictions", stats.StaleEvictions).
			Int("capacityCollisions", stats.CapacityCollisions).
			Msg("decision complete")
		p.MakeMove(mv, eng.Zobrist())
	}

	var elapsed = time.Since(started)
	logger.Info().
		Int("decisions", decisions).
		Dur("elapsed", elapsed).
		Dur("perDecision", elapsed/time.Duration(max(decisions, 1))).
		Msg("bench complete")
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
