package engine

import (
	"testing"

	"github.com/matryer/is"

	. "github.com/netesanovic/hnefatafl-arena/pkg/tafl"
)

func testOptions() Options {
	var opts = NewOptions()
	opts.Iterations = 2000
	opts.Playout = PlayoutLight
	opts.BatchSize = 1
	opts.TableIndexBits = minTableIndexBits
	return opts
}

func testEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	var e, err = NewEngine(opts)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func testPosition(t *testing.T, e *Engine, board string, attackerMove bool) *Position {
	t.Helper()
	var p, err = NewPositionFromBoard(e.Zobrist(), board, attackerMove)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewEngineValidation(t *testing.T) {
	var is = is.New(t)

	var tests = []func(*Options){
		func(o *Options) { o.Iterations = 0 },
		func(o *Options) { o.Iterations = MaxIterations },
		func(o *Options) { o.BatchSize = 0 },
		func(o *Options) { o.BatchSize = maxBatchSize + 1 },
		func(o *Options) { o.TableIndexBits = minTableIndexBits - 1 },
		func(o *Options) { o.TableIndexBits = maxTableIndexBits + 1 },
		func(o *Options) { o.Exploration = 0 },
		func(o *Options) { o.Playout = 42 },
	}
	for _, mutate := range tests {
		var opts = NewOptions()
		mutate(&opts)
		var _, err = NewEngine(opts)
		is.True(err != nil)
	}

	var _, err = NewEngine(NewOptions())
	is.NoErr(err)
}

func TestParsePlayout(t *testing.T) {
	var is = is.New(t)

	var light, err = ParsePlayout("light")
	is.NoErr(err)
	is.Equal(light, PlayoutLight)

	heavy, err := ParsePlayout("heavy")
	is.NoErr(err)
	is.Equal(heavy, PlayoutHeavy)

	_, err = ParsePlayout("ligth")
	is.True(err != nil) // misspellings must not pick a policy silently
}

func TestBestMoveIsLegal(t *testing.T) {
	var is = is.New(t)
	var e = testEngine(t, testOptions())
	var p = NewPosition(e.Zobrist())

	var mv, ok = e.BestMove(p)
	is.True(ok)

	var buffer [MaxMoves]Move
	var legal = false
	for _, m := range p.GenerateMoves(buffer[:0], true) {
		if m == mv {
			legal = true
		}
	}
	is.True(legal)
}

func TestBestMovePlaysInstantWins(t *testing.T) {
	var is = is.New(t)

	// A corner run for the defenders, found without any search.
	var opts = testOptions()
	opts.Iterations = 1
	var e = testEngine(t, opts)
	var p = testPosition(t, e, `
. . . . . . .
A . . . . . .
. . . . . . .
K . . . . . .
. . . . . . .
. . . . . . .
. . . A . . .
`, false)
	var mv, ok = e.BestMove(p)
	is.True(ok)
	is.Equal(mv.String(), "a4a1")

	// A king capture for the attackers.
	p = testPosition(t, e, `
. . . . . . .
. . . . . . .
. . . A . . .
. . A K A . .
. . . . . . .
. . . . . . .
. . . A . . .
`, true)
	mv, ok = e.BestMove(p)
	is.True(ok)
	is.Equal(mv.String(), "d1d3")
}

func TestBestMoveWithSingleLegalMove(t *testing.T) {
	var is = is.New(t)
	var e = testEngine(t, testOptions())

	// The boxed-in attacker's only move is a2a3.
	var p = testPosition(t, e, `
. . . . . . .
. . . . . K .
. . . . . . .
D . . . . . .
. . . . . . .
A D . . . . .
. . . . . . .
`, true)
	var buffer [MaxMoves]Move
	is.Equal(len(p.GenerateMoves(buffer[:0], true)), 1)

	var mv, ok = e.BestMove(p)
	is.True(ok)
	is.Equal(mv.String(), "a2a3")
}

func TestBestMoveReportsNoMoves(t *testing.T) {
	var is = is.New(t)
	var e = testEngine(t, testOptions())
	var p = testPosition(t, e, `
. . . . . . .
. . . . . K .
. . . . . . .
. . . . . . .
D . . . . . .
A D . . . . .
. . . . . . .
`, true)
	var _, ok = e.BestMove(p)
	is.True(!ok)
}

func TestBestMovePrefersProvenWins(t *testing.T) {
	var is = is.New(t)
	var opts = testOptions()
	opts.Iterations = 1
	var e = testEngine(t, opts)
	var p = testPosition(t, e, `
. . . . . . .
. . . . . . .
. . . . . . .
A . . . K . .
. . . . . . .
. . D . . . .
. . . . . . .
`, true)
	e.advanceGeneration()

	var buffer [MaxMoves]Move
	var moves = p.GenerateMoves(buffer[:0], true)
	is.True(len(moves) > 2)

	// A child whose mover is proven to lose is a win from here.
	var winning = moves[len(moves)/2]
	e.markSolved(p.NextKey(winning, e.Zobrist()), scoreLoss)
	var mv, ok = e.BestMove(p)
	is.True(ok)
	is.Equal(mv, winning)
}

func TestBestMoveAvoidsProvenLosses(t *testing.T) {
	var is = is.New(t)
	var opts = testOptions()
	opts.Iterations = 1
	var e = testEngine(t, opts)
	var p = testPosition(t, e, `
. . . . . . .
. . . . . . .
. . . . . . .
A . . . K . .
. . . . . . .
. . D . . . .
. . . . . . .
`, true)
	e.advanceGeneration()

	// Every child is a proven win for the opponent; the engine still has
	// to move.
	var buffer [MaxMoves]Move
	var moves = p.GenerateMoves(buffer[:0], true)
	for _, mv := range moves {
		e.markSolved(p.NextKey(mv, e.Zobrist()), scoreWin)
	}
	var mv, ok = e.BestMove(p)
	is.True(ok)
	var legal = false
	for _, m := range moves {
		if m == mv {
			legal = true
		}
	}
	is.True(legal)
}

func TestSelectionReturnsSolvedScore(t *testing.T) {
	var is = is.New(t)
	var e = testEngine(t, testOptions())
	var p = NewPosition(e.Zobrist())
	e.advanceGeneration()

	e.markSolved(p.Key, scoreWin)
	is.Equal(e.selection(p, 1), int64(e.opts.BatchSize)*scoreWin)

	e.markSolved(p.Key, scoreLoss)
	is.Equal(e.selection(p, 1), int64(e.opts.BatchSize)*scoreLoss)
}

func TestRepetitionResultIsNeverCached(t *testing.T) {
	var is = is.New(t)
	var e = testEngine(t, testOptions())
	var p = testPosition(t, e, `
. . . . . . .
. . . . . . .
. . . . . . .
A . . . K . .
. . . . . . .
. . D . . . .
. . . . . . .
`, true)
	e.advanceGeneration()

	for _, s := range []string{"a4a5", "c2c3", "a5a4", "c3c2"} {
		var mv, ok = p.ParseMove(s)
		if !ok {
			mv = MakeMove(ParseSquare(s[0:2]), ParseSquare(s[2:4]))
		}
		p.MakeMove(mv, e.Zobrist())
	}
	is.True(p.Repetition)

	// The verdict is returned to the search but must not be pinned in
	// the table.
	var score = e.selection(p, 1)
	is.Equal(score, int64(e.opts.BatchSize)*scoreWin)
	var entry = e.tt.probe(p.Key)
	is.True(entry == nil || !entry.solved())
}

func TestSolverPropagation(t *testing.T) {
	var is = is.New(t)
	var opts = testOptions()
	var e = testEngine(t, opts)
	var p = testPosition(t, e, `
. . . . . . .
. . . . . . .
. . . . . . .
A . . . K . .
. . . . . . .
. . D . . . .
. . . . . . .
`, true)
	e.advanceGeneration()

	// Every child visited once, one of them a proven loss for its
	// mover. Selection must descend into it and promote the proof.
	var buffer [MaxMoves]Move
	var moves = p.GenerateMoves(buffer[:0], true)
	for _, mv := range moves {
		var key = p.NextKey(mv, e.Zobrist())
		e.tt.upsert(key, e.generation, e.generationBound)
		e.tt.probe(key).setVisits(1)
	}
	e.markSolved(p.NextKey(moves[0], e.Zobrist()), scoreLoss)

	var score = e.selection(p, 1)
	is.Equal(score, int64(e.opts.BatchSize)*scoreWin)

	var entry = e.tt.probe(p.Key)
	is.True(entry != nil)
	is.True(entry.solved())
	is.True(entry.Wins() > 0) // the win is pinned at the parent
}
