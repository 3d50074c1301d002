package engine

import (
	"math/rand"

	"github.com/pkg/errors"

	. "github.com/netesanovic/hnefatafl-arena/pkg/tafl"
)

// Playout policies.
const (
	PlayoutLight = iota
	PlayoutHeavy
)

// ParsePlayout maps a policy name from configuration to its constant.
func ParsePlayout(name string) (int, error) {
	switch name {
	case "light":
		return PlayoutLight, nil
	case "heavy":
		return PlayoutHeavy, nil
	}
	return 0, errors.Errorf("engine: unknown playout policy %q", name)
}

type Options struct {
	// Search effort per move decision.
	Iterations int

	// UCB exploration constant.
	Exploration float64

	// PlayoutLight picks uniformly random moves, PlayoutHeavy prefers
	// captures.
	Playout int

	// Simulations run per expanded leaf; above 1 they run on parallel
	// goroutines over clones of the leaf.
	BatchSize int

	// log2 of the bucket count.
	TableIndexBits int

	// Entries whose generation lags the current one by more than this
	// are eviction candidates.
	GenerationWindow uint32

	Seed int64
}

// Sized so a batch of playout results always fits the win accumulator.
const maxBatchSize = 1 << 10

const defaultExploration = 1.414

func NewOptions() Options {
	return Options{
		Iterations:       200000,
		Exploration:      defaultExploration,
		Playout:          PlayoutHeavy,
		BatchSize:        8,
		TableIndexBits:   defaultTableIndexBits,
		GenerationWindow: 1,
		Seed:             0xCAFEBABE,
	}
}

// Engine is a Monte Carlo tree searcher whose tree lives entirely in
// the transposition table, keyed by position fingerprints. One Engine
// serves one game; it is not safe for concurrent BestMove calls.
type Engine struct {
	opts    Options
	tt      *transTable
	zobrist *Zobrist
	rng     *rand.Rand

	// generation advances once per move decision; entries older than
	// generationBound are fair game for eviction.
	generation      uint32
	generationBound uint32

	stats TableStats
}

// TableStats counts table traffic during the latest move decision.
type TableStats struct {
	Written            int
	StaleEvictions     int
	CapacityCollisions int
}

func NewEngine(opts Options) (*Engine, error) {
	if opts.Iterations < 1 || opts.Iterations >= MaxIterations {
		return nil, errors.Errorf("engine: iterations must be in [1, %v), got %v",
			MaxIterations, opts.Iterations)
	}
	if opts.BatchSize < 1 || opts.BatchSize > maxBatchSize {
		return nil, errors.Errorf("engine: batch size must be in [1, %v], got %v",
			maxBatchSize, opts.BatchSize)
	}
	if opts.TableIndexBits < minTableIndexBits || opts.TableIndexBits > maxTableIndexBits {
		return nil, errors.Errorf("engine: table index bits must be in [%v, %v], got %v",
			minTableIndexBits, maxTableIndexBits, opts.TableIndexBits)
	}
	if opts.Exploration <= 0 {
		return nil, errors.Errorf("engine: exploration must be positive, got %v",
			opts.Exploration)
	}
	if opts.Playout != PlayoutLight && opts.Playout != PlayoutHeavy {
		return nil, errors.Errorf("engine: unknown playout policy %v", opts.Playout)
	}
	return &Engine{
		opts:    opts,
		tt:      newTransTable(opts.TableIndexBits),
		zobrist: NewZobrist(opts.Seed),
		rng:     rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

// Zobrist returns the key set positions searched by this engine must be
// fingerprinted with.
func (e *Engine) Zobrist() *Zobrist {
	return e.zobrist
}

func (e *Engine) TableStats() TableStats {
	return e.stats
}

// BestMove picks a move for the side to move, or reports false when no
// legal move exists. A detected instant win is played without
// searching. Otherwise the candidate with the highest visit count wins;
// a child proven lost for the opponent is played on sight, children
// proven won for the opponent are avoided unless nothing else remains.
func (e *Engine) BestMove(p *Position) (Move, bool) {
	if !p.AttackerMove {
		if mv, ok := p.KingToCorner(); ok {
			return mv, true
		}
		if mv, ok := p.KingToEmptyEdge(); ok {
			return mv, true
		}
	} else if mv, ok := p.KingCaptureMove(); ok {
		return mv, true
	}

	var buffer [MaxMoves]Move
	var moves = p.GenerateMoves(buffer[:0], true)
	if len(moves) == 0 {
		return MoveEmpty, false
	}

	e.startSearch(p)

	var bestMove = MoveEmpty
	var bestVisits = int64(-1)
	var fallback = MoveEmpty
	for _, mv := range moves {
		var visits uint64
		if entry := e.tt.probe(p.NextKey(mv, e.zobrist)); entry != nil {
			if entry.solved() {
				if entry.Wins() < 0 {
					// Proven loss for the opponent.
					return mv, true
				}
				if entry.Wins() > 0 {
					fallback = mv
					continue
				}
			}
			visits = entry.Visits()
		}
		if int64(visits) > bestVisits {
			bestVisits = int64(visits)
			bestMove = mv
		}
	}
	if bestVisits >= 0 {
		return bestMove, true
	}
	if fallback != MoveEmpty {
		return fallback, true
	}
	return moves[e.rng.Intn(len(moves))], true
}
