package tafl

import (
	"math/rand"
	"testing"
)

// Plays random games and checks that the incrementally maintained key
// never drifts from a from-scratch rebuild, and that the preview key
// always matches the key the move then produces.
func TestIncrementalKey(t *testing.T) {
	var z = NewZobrist(0xCAFEBABE)
	var rng = rand.New(rand.NewSource(42))
	for game := 0; game < 20; game++ {
		var p = NewPosition(z)
		var buffer [MaxMoves]Move
		for ply := 0; ply < 80 && p.Result() == GameNotOver; ply++ {
			var moves = p.GenerateMoves(buffer[:0], true)
			if len(moves) == 0 {
				break
			}
			var mv = moves[rng.Intn(len(moves))]
			var predicted = p.NextKey(mv, z)
			p.MakeMove(mv, z)
			if p.Key != predicted {
				t.Fatalf("game %v ply %v: NextKey predicted %x, MakeMove produced %x",
					game, ply, predicted, p.Key)
			}
			if want := p.ComputeKey(z); p.Key != want {
				t.Fatalf("game %v ply %v: incremental key %x, rebuilt %x",
					game, ply, p.Key, want)
			}
		}
	}
}

func TestKeyDependsOnSideToMove(t *testing.T) {
	var z = NewZobrist(1)
	var a, err = NewPositionFromBoard(z, InitialPosition, true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewPositionFromBoard(z, InitialPosition, false)
	if err != nil {
		t.Fatal(err)
	}
	if a.Key == b.Key {
		t.Error("same boards with different movers must not collide")
	}
	if a.Key != b.Key^z.SideKey() {
		t.Error("mover difference must be exactly the side key")
	}
}

func TestBoardsStayDisjoint(t *testing.T) {
	var z = NewZobrist(7)
	var rng = rand.New(rand.NewSource(7))
	var p = NewPosition(z)
	var buffer [MaxMoves]Move
	for ply := 0; ply < 120 && p.Result() == GameNotOver; ply++ {
		if p.Attackers&p.Defenders != 0 ||
			p.Attackers&p.King != 0 ||
			p.Defenders&p.King != 0 {
			t.Fatalf("ply %v: overlapping bitboards", ply)
		}
		if p.Occupied()&^BoardMask != 0 {
			t.Fatalf("ply %v: piece off the board", ply)
		}
		if MoreThanOne(p.King) {
			t.Fatalf("ply %v: more than one king", ply)
		}
		var moves = p.GenerateMoves(buffer[:0], true)
		if len(moves) == 0 {
			break
		}
		p.MakeMove(moves[rng.Intn(len(moves))], z)
	}
}
