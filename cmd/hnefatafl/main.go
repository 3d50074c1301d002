package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/netesanovic/hnefatafl-arena/pkg/engine"
	"github.com/netesanovic/hnefatafl-arena/pkg/tafl"
)

type Config struct {
	Side       string
	Iterations int
	Playout    string
	BatchSize  int
	Seed       int64
}

var config Config

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger()

func main() {
	flag.StringVar(&config.Side, "side", "defenders", "Human side (attackers|defenders)")
	flag.IntVar(&config.Iterations, "iter", 200000, "Engine iterations per move")
	flag.StringVar(&config.Playout, "playout", "heavy", "Playout policy (light|heavy)")
	flag.IntVar(&config.BatchSize, "batch", 8, "Simulations per expanded leaf")
	flag.Int64Var(&config.Seed, "seed", 0xCAFEBABE, "Engine seed")
	flag.Parse()

	if err := run(); err != nil {
		logger.Fatal().Err(err).Msg("game aborted")
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

	var humanIsAttacker = strings.HasPrefix(strings.ToLower(config.Side), "a")
	var p = tafl.NewPosition(eng.Zobrist())
	var scanner = bufio.NewScanner(os.Stdin)

	fmt.Println("Moves are entered as from-square and to-square, e.g. d2d4.")
	for p.Result() == tafl.GameNotOver {
		fmt.Println()
		fmt.Print(p.String())

		var mv tafl.Move
		if p.AttackerMove == humanIsAttacker {
			var ok bool
			mv, ok = readMove(scanner, p)
			if !ok {
				return nil
			}
		} else {
			var started = time.Now()
			var ok bool
			mv, ok = eng.BestMove(p)
			if !ok {
				break
			}
			var stats = eng.TableStats()
			logger.Info().
				Stringer("move", mv).
				Dur("elapsed", time.Since(started)).
				Int("written", stats.Written).
				Int("staleEvictions", stats.StaleEvictions).
				Int("capacityCollisions", stats.CapacityCollisions).
				Msg("engine moved")
			fmt.Printf("Engine plays %v.\n", mv)
		}
		p.MakeMove(mv, eng.Zobrist())
	}

	fmt.Println()
	fmt.Print(p.String())
	switch p.Result() {
	case tafl.GameAttackersWon:
		fmt.Println("Attackers win.")
	case tafl.GameDefendersWon:
		fmt.Println("Defenders win.")
	default:
		fmt.Println("Draw.")
	}
	return nil
}

// readMove prompts until the human enters a legal move; "quit" gives up.
func readMove(scanner *bufio.Scanner, p *tafl.Position) (tafl.Move, bool) {
	for {
		fmt.Print("Your move: ")
		if !scanner.Scan() {
			return tafl.MoveEmpty, false
		}
		var line = strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return tafl.MoveEmpty, false
		}
		if mv, ok := p.ParseMove(line); ok {
			return mv, true
		}
		fmt.Printf("%q is not a legal move.\n", line)
	}
}
