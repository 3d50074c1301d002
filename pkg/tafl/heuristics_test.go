package tafl

import "testing"

func TestKingToCorner(t *testing.T) {
	var board = `
. . . . . . .
A . . . . . .
. . . . . . .
K . . . . . .
. . . . . . .
. . . . . . .
. . . . . . .
`
	var p = mustPosition(t, board, false)
	var mv, ok = p.KingToCorner()
	if !ok {
		t.Fatal("corner run not found")
	}
	if mv != MakeMove(ParseSquare("a4"), ParseSquare("a1")) {
		t.Errorf("got %v, want a4a1", mv)
	}
	if !p.DefenderInstantWin() {
		t.Error("corner run is an instant win")
	}
}

func TestKingToCornerBlocked(t *testing.T) {
	var board = `
. . . . . . .
A . . . . . .
. . . . . . .
K . . . . . .
. . . . . . .
A . . . . . .
. . . . . . .
`
	var p = mustPosition(t, board, false)
	if _, ok := p.KingToCorner(); ok {
		t.Error("blocked king must not find a corner")
	}
}

func TestKingToEmptyEdge(t *testing.T) {
	var board = `
. . . . . A .
. . . . . . .
. . . K . . .
. . . . . . .
. . . . . . .
. . . A . . .
. . . . . . .
`
	var p = mustPosition(t, board, false)
	var mv, ok = p.KingToEmptyEdge()
	if !ok {
		t.Fatal("empty-edge run not found")
	}
	// Rank 1 is cut off, rank 7 is guarded, the a-file is open.
	if mv != MakeMove(ParseSquare("d5"), ParseSquare("a5")) {
		t.Errorf("got %v, want d5a5", mv)
	}
}

func TestKingToEmptyEdgeNeedsWholeEdge(t *testing.T) {
	var board = `
. . . . . A .
. . . . . . .
. . . K . . .
. . . . . . .
A . . . . . A
. . . . . . .
. A . . . . .
`
	var p = mustPosition(t, board, false)
	if _, ok := p.KingToEmptyEdge(); ok {
		t.Error("guarded edges must not count")
	}
}

func TestKingCaptureMove(t *testing.T) {
	var tests = []struct {
		name  string
		board string
		move  string
	}{
		{
			name: "close the throne surround",
			board: `
. . . . . . .
. . . . . . .
. . . A . . .
. . A K A . .
. . . . . . .
. . . . . . .
. . . A . . .
`,
			move: "d1d3",
		},
		{
			name: "finish a plain sandwich",
			board: `
A . . . . . .
. . . . . . .
. . . . . . .
. . . . . . .
. K A . . . .
. . . . . . .
. . . . . . .
`,
			move: "a7a3",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var p = mustPosition(t, test.board, true)
			var mv, ok = p.KingCaptureMove()
			if !ok {
				t.Fatal("capture not found")
			}
			if mv.String() != test.move {
				t.Errorf("got %v, want %v", mv, test.move)
			}
			p.MakeMove(mv, NewZobrist(1))
			if p.King != 0 {
				t.Error("the found move must actually capture")
			}
		})
	}
}

func TestKingCaptureMoveAbsent(t *testing.T) {
	var p = NewPosition(NewZobrist(1))
	if _, ok := p.KingCaptureMove(); ok {
		t.Error("no capture exists in the starting position")
	}
}

func TestIsCaptureMove(t *testing.T) {
	var board = `
. . A . . . .
. . . . . K .
. . . . . . .
. . . . . . .
A D . D A . .
. . . . . . .
. . . . . . .
`
	var p = mustPosition(t, board, true)
	if !p.IsCaptureMove(MakeMove(ParseSquare("c7"), ParseSquare("c3"))) {
		t.Error("c7c3 captures both defenders")
	}
	if p.IsCaptureMove(MakeMove(ParseSquare("c7"), ParseSquare("c5"))) {
		t.Error("c7c5 captures nothing")
	}
}
