package engine

import (
	"math"
	"math/rand"

	. "github.com/netesanovic/hnefatafl-arena/pkg/tafl"
)

// Playout scores from the mover's point of view.
const (
	scoreWin  = 1
	scoreDraw = 0
	scoreLoss = -1
)

const captureBias = 0.8

// startSearch runs the iteration budget from the root and writes the
// accumulated root statistics back to the table.
func (e *Engine) startSearch(root *Position) {
	e.advanceGeneration()

	var rootVisits = uint64(1)
	var rootWins = int64(0)
	if entry := e.tt.probe(root.Key); entry != nil {
		rootVisits = entry.Visits()
		rootWins = entry.Wins()
		if rootVisits < 1 {
			rootVisits = 1
		}
	}

	for i := 1; i < e.opts.Iterations; i++ {
		rootWins += e.selection(root, rootVisits)
		rootVisits += uint64(e.opts.BatchSize)
	}

	e.noteUpsert(e.tt.upsert(root.Key, e.generation, e.generationBound))
	if entry := e.tt.probe(root.Key); entry != nil {
		entry.setVisits(rootVisits)
		entry.setWins(rootWins)
	}
}

func (e *Engine) advanceGeneration() {
	e.generation++
	if e.generation >= maxGeneration {
		panic("engine: generation counter exhausted")
	}
	if e.generation > e.opts.GenerationWindow {
		e.generationBound = e.generation - e.opts.GenerationWindow
	}
	e.stats = TableStats{}
}

func (e *Engine) noteUpsert(kind int) {
	switch kind {
	case upsertNewWrite:
		e.stats.Written++
	case upsertStaleEvict:
		e.stats.Written++
		e.stats.StaleEvictions++
	case upsertCapacityEvict:
		e.stats.Written++
		e.stats.CapacityCollisions++
	}
}

// markSolved pins the entry at the solved sentinel with the score's
// sign. Solved entries dominate every visit comparison, so they are
// final for the rest of the game.
func (e *Engine) markSolved(hash uint64, score int64) {
	e.noteUpsert(e.tt.upsert(hash, e.generation, e.generationBound))
	if entry := e.tt.probe(hash); entry != nil {
		entry.setGeneration(e.generation)
		entry.setVisits(solvedThreshold)
		entry.setWins(score * solvedThreshold)
	}
}

// selection is one search pass: descend through visited children by
// UCB, expand one unvisited child with a simulation batch, back up the
// result with alternating signs. The return value is the batch score
// from the mover's point of view at p.
func (e *Engine) selection(p *Position, nodeVisits uint64) int64 {
	var batch = int64(e.opts.BatchSize)
	var scaledWin, scaledLoss = scoreWin * batch, scoreLoss * batch

	if entry := e.tt.probe(p.Key); entry != nil && entry.solved() {
		switch {
		case entry.Wins() > 0:
			return scaledWin
		case entry.Wins() < 0:
			return scaledLoss
		}
		return scoreDraw
	}

	var terminalScore int64
	var isTerminal = true
	switch p.Result() {
	case GameDraw:
		terminalScore = scoreDraw
	case GameAttackersWon:
		if p.AttackerMove {
			terminalScore = scaledWin
		} else {
			terminalScore = scaledLoss
		}
	case GameDefendersWon:
		if p.AttackerMove {
			terminalScore = scaledLoss
		} else {
			terminalScore = scaledWin
		}
	default:
		isTerminal = false
	}
	if isTerminal && p.Repetition {
		// A repetition verdict depends on the path, not the
		// configuration, so it must never be cached as solved.
		return terminalScore
	}
	if !isTerminal {
		if p.AttackerMove {
			if _, ok := p.KingCaptureMove(); ok {
				terminalScore = scaledWin
				isTerminal = true
			}
		} else if p.DefenderInstantWin() {
			terminalScore = scaledWin
			isTerminal = true
		}
	}
	if isTerminal {
		e.markSolved(p.Key, terminalScore/batch)
		return terminalScore
	}

	var buffer [MaxMoves]Move
	var moves = p.GenerateMoves(buffer[:0], true)
	if len(moves) == 0 {
		e.markSolved(p.Key, scoreLoss)
		return scaledLoss
	}

	var unvisitedMoves [MaxMoves]Move
	var unvisitedKeys [MaxMoves]uint64
	var unvisitedCount int

	var bestMove Move
	var bestKey uint64
	var bestVisits uint64
	var maxUCB = math.Inf(-1)
	var logVisits = math.Log(float64(nodeVisits))

	for _, mv := range moves {
		var childKey = p.NextKey(mv, e.zobrist)
		var entry = e.tt.probe(childKey)
		if entry == nil || entry.Visits() == 0 {
			unvisitedMoves[unvisitedCount] = mv
			unvisitedKeys[unvisitedCount] = childKey
			unvisitedCount++
			continue
		}
		var childVisits = float64(entry.Visits())
		// The child's accumulator counts wins for the opponent.
		var q = (1 - float64(entry.Wins())/childVisits) / 2
		var ucb = q + e.opts.Exploration*math.Sqrt(logVisits/childVisits)
		if ucb > maxUCB {
			maxUCB = ucb
			bestMove = mv
			bestKey = childKey
			bestVisits = entry.Visits()
		}
	}

	var selectedMove Move
	var selectedKey uint64
	var expanding = unvisitedCount > 0
	if expanding {
		var i = e.rng.Intn(unvisitedCount)
		selectedMove, selectedKey = unvisitedMoves[i], unvisitedKeys[i]
	} else {
		// Every move was visited, so a UCB winner exists.
		selectedMove, selectedKey = bestMove, bestKey
	}

	var child = *p
	child.MakeMove(selectedMove, e.zobrist)

	var result int64
	if expanding {
		e.noteUpsert(e.tt.upsert(selectedKey, e.generation, e.generationBound))
		result = e.simulateBatch(&child)
	} else {
		result = e.selection(&child, bestVisits)
	}

	if entry := e.tt.probe(selectedKey); entry != nil {
		entry.setGeneration(e.generation)
		entry.addVisits(uint64(batch))
		entry.addWins(result)

		// A child proven lost for its mover is a proven win here.
		if entry.solved() && entry.Wins() < 0 {
			e.markSolved(p.Key, scoreWin)
			return scaledWin
		}
	}
	return -result
}

// simulateBatch plays BatchSize random games from the leaf and sums
// their scores. Above one, playouts run on goroutines over clones of
// the leaf, each with its own generator.
func (e *Engine) simulateBatch(p *Position) int64 {
	if e.opts.BatchSize == 1 {
		return int64(e.playout(p, e.rng))
	}

	var results = make([]int64, e.opts.BatchSize)
	var seeds = make([]int64, e.opts.BatchSize)
	for i := range seeds {
		seeds[i] = e.rng.Int63()
	}
	parallelDo(e.opts.BatchSize, func(i int) {
		var clone = *p
		results[i] = int64(e.playout(&clone, rand.New(rand.NewSource(seeds[i]))))
	})

	var total = int64(0)
	for _, r := range results {
		total += r
	}
	return total
}

// playout plays the position out with the configured policy and scores
// the outcome for the side that was to move at the leaf. Instant-win
// detection is re-applied to the evolving position every ply.
func (e *Engine) playout(p *Position, rng *rand.Rand) int {
	var leafIsAttacker = p.AttackerMove
	var buffer [MaxMoves]Move
	var captures [MaxMoves]Move

	for {
		switch p.Result() {
		case GameDraw:
			return scoreDraw
		case GameAttackersWon:
			if leafIsAttacker {
				return scoreWin
			}
			return scoreLoss
		case GameDefendersWon:
			if leafIsAttacker {
				return scoreLoss
			}
			return scoreWin
		}

		if p.AttackerMove {
			if _, ok := p.KingCaptureMove(); ok {
				if leafIsAttacker {
					return scoreWin
				}
				return scoreLoss
			}
		} else if p.DefenderInstantWin() {
			if leafIsAttacker {
				return scoreLoss
			}
			return scoreWin
		}

		var moves = p.GenerateMoves(buffer[:0], true)
		if len(moves) == 0 {
			if p.AttackerMove == leafIsAttacker {
				return scoreLoss
			}
			return scoreWin
		}

		var mv = moves[rng.Intn(len(moves))]
		if e.opts.Playout == PlayoutHeavy {
			var cl = captures[:0]
			for _, candidate := range moves {
				if p.IsCaptureMove(candidate) {
					cl = append(cl, candidate)
				}
			}
			if len(cl) > 0 && rng.Float64() < captureBias {
				mv = cl[rng.Intn(len(cl))]
			}
		}
		p.MakeMove(mv, e.zobrist)
	}
}
