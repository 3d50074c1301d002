package main

import (
	"github.com/google/uuid"

	"github.com/netesanovic/hnefatafl-arena/pkg/engine"
)

const (
	gameResultDraw = iota
	gameResultAttackersWin
	gameResultDefendersWin
)

type engineConfig struct {
	iterations int
	playout    int
	batchSize  int
	seed       int64
}

func (c engineConfig) build() (*engine.Engine, error) {
	var opts = engine.NewOptions()
	opts.Iterations = c.iterations
	opts.Playout = c.playout
	opts.BatchSize = c.batchSize
	opts.Seed = c.seed
	return engine.NewEngine(opts)
}

type gameInfo struct {
	id                uuid.UUID
	gameNumber        int
	engineAIsAttacker bool
}

type gameResult struct {
	gameInfo gameInfo
	result   int
	plies    int
	comment  string
}
