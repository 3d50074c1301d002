package main

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/netesanovic/hnefatafl-arena/pkg/tafl"
)

func run(ctx context.Context) error {
	logger.Info().
		Int("numCPU", runtime.NumCPU()).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Msg("scheduling games")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)

	g.Go(func() error {
		defer close(gameInfos)
		for i := 0; i < config.Games; i++ {
			var info = gameInfo{
				id:                uuid.New(),
				gameNumber:        i + 1,
				engineAIsAttacker: i%2 == 0,
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- info:
			}
		}
		return nil
	})

	g.Go(func() error {
		return showResults(ctx, gameResults)
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < config.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, gameInfos, gameResults)
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	return g.Wait()
}

func playGames(
	ctx context.Context,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	for info := range gameInfos {
		var res, err = playGame(info)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}

// playGame plays one game to the end. Each engine fingerprints
// positions with its own key set, so each side tracks its own copy of
// the game; the move list is shared.
func playGame(info gameInfo) (gameResult, error) {
	var seed = config.Seed + int64(info.gameNumber)
	var engineA, err = engineConfig{
		iterations: config.IterationsA,
		playout:    playoutA,
		batchSize:  config.BatchSize,
		seed:       seed,
	}.build()
	if err != nil {
		return gameResult{}, err
	}
	engineB, err := engineConfig{
		iterations: config.IterationsB,
		playout:    playoutB,
		batchSize:  config.BatchSize,
		seed:       seed,
	}.build()
	if err != nil {
		return gameResult{}, err
	}

	var positionA = tafl.NewPosition(engineA.Zobrist())
	var positionB = tafl.NewPosition(engineB.Zobrist())

	for positionA.Result() == tafl.GameNotOver {
		if positionA.Ply >= config.MaxPlies {
			return gameResult{
				gameInfo: info,
				result:   gameResultDraw,
				plies:    positionA.Ply,
				comment:  "ply limit",
			}, nil
		}

		var mover = engineB
		if positionA.AttackerMove == info.engineAIsAttacker {
			mover = engineA
		}
		var moverPosition = positionB
		if mover == engineA {
			moverPosition = positionA
		}

		var mv, ok = mover.BestMove(moverPosition)
		if !ok {
			break
		}
		positionA.MakeMove(mv, engineA.Zobrist())
		positionB.MakeMove(mv, engineB.Zobrist())
	}

	var result int
	switch positionA.Result() {
	case tafl.GameAttackersWon:
		result = gameResultAttackersWin
	case tafl.GameDefendersWon:
		result = gameResultDefendersWin
	default:
		result = gameResultDraw
	}
	return gameResult{
		gameInfo: info,
		result:   result,
		plies:    positionA.Ply,
		comment:  resultComment(positionA),
	}, nil
}

func resultComment(p *tafl.Position) string {
	switch {
	case p.King&tafl.CornersMask != 0:
		return "king escaped"
	case p.King == 0:
		return "king captured"
	case p.Repetition:
		return "repetition"
	case p.Result() == tafl.GameDraw:
		return "material exhausted"
	}
	return "no legal moves"
}
