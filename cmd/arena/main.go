package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/netesanovic/hnefatafl-arena/pkg/engine"
)

type Config struct {
	Games       int
	Concurrency int
	MaxPlies    int

	IterationsA int
	IterationsB int
	PlayoutA    string
	PlayoutB    string
	BatchSize   int
	Seed        int64
}

var config Config

var playoutA, playoutB int

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger()

func main() {
	flag.IntVar(&config.Games, "games", 100, "Number of games to play")
	flag.IntVar(&config.Concurrency, "concurrency", 4, "Number of concurrent games")
	flag.IntVar(&config.MaxPlies, "maxplies", 300, "Adjudicate a draw past this many plies")
	flag.IntVar(&config.IterationsA, "itera", 50000, "Engine A iterations per move")
	flag.IntVar(&config.IterationsB, "iterb", 50000, "Engine B iterations per move")
	flag.StringVar(&config.PlayoutA, "playouta", "heavy", "Engine A playout policy (light|heavy)")
	flag.StringVar(&config.PlayoutB, "playoutb", "light", "Engine B playout policy (light|heavy)")
	flag.IntVar(&config.BatchSize, "batch", 8, "Simulations per expanded leaf")
	flag.Int64Var(&config.Seed, "seed", 0xCAFEBABE, "Base seed; each game perturbs it")
	flag.Parse()

	var err error
	if playoutA, err = engine.ParsePlayout(config.PlayoutA); err != nil {
		logger.Fatal().Err(err).Msg("bad -playouta")
	}
	if playoutB, err = engine.ParsePlayout(config.PlayoutB); err != nil {
		logger.Fatal().Err(err).Msg("bad -playoutb")
	}

	logger.Info().Interface("config", config).Msg("arena started")
	if err := run(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("arena failed")
	}
	logger.Info().Msg("arena finished")
}
