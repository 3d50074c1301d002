package tafl

import "math/rand"

// Zobrist holds one random key per (square, piece kind) pair plus a side
// key mixed in while the attackers are to move. Immutable after
// construction; safe for concurrent readers.
type Zobrist struct {
	pieceSquareKeys [PieceKinds * TotalSquares]uint64
	sideKey         uint64
}

func NewZobrist(seed int64) *Zobrist {
	var z = &Zobrist{}
	var r = rand.New(rand.NewSource(seed))
	for i := range z.pieceSquareKeys {
		z.pieceSquareKeys[i] = r.Uint64()
	}
	z.sideKey = r.Uint64()
	return z
}

func (z *Zobrist) PieceSquareKey(piece, sq int) uint64 {
	return z.pieceSquareKeys[(piece-Attacker)*TotalSquares+sq]
}

func (z *Zobrist) SideKey() uint64 {
	return z.sideKey
}

// ComputeKey rebuilds the position fingerprint from scratch. The
// incrementally maintained Position.Key must always equal this value.
func (p *Position) ComputeKey(z *Zobrist) uint64 {
	var result = uint64(0)
	if p.AttackerMove {
		result ^= z.sideKey
	}
	for x := p.Attackers; x != 0; x &= x - 1 {
		result ^= z.PieceSquareKey(Attacker, FirstOne(x))
	}
	for x := p.Defenders; x != 0; x &= x - 1 {
		result ^= z.PieceSquareKey(Defender, FirstOne(x))
	}
	for x := p.King; x != 0; x &= x - 1 {
		result ^= z.PieceSquareKey(King, FirstOne(x))
	}
	return result
}
