package tafl

// Position is the full game state: piece bitboards, side to move, the
// incrementally maintained fingerprint, and the repetition history.
// Cloning is a plain value copy.
type Position struct {
	Attackers uint64
	Defenders uint64
	King      uint64

	AttackerMove bool
	Key          uint64
	Ply          int

	// Raised when the defender's last move reproduced a stored
	// configuration. An attacker move reaching a stored configuration
	// dedups silently.
	Repetition         bool
	RepetitionDistance int

	history    [MaxGameLength]snapshot
	historyLen int
}

// A configuration snapshot kept for repetition detection. The history is
// ordered by (attackers, defenders, king) so lookups can binary search.
type snapshot struct {
	attackers uint64
	defenders uint64
	king      uint64
	ply       int
}

const InitialPosition = `
. . . A . . .
. . . A . . .
. . . D . . .
A A D K D A A
. . . D . . .
. . . A . . .
. . . A . . .
`

// NewPosition returns the fixed starting layout with the attackers to
// move.
func NewPosition(z *Zobrist) *Position {
	var p, err = NewPositionFromBoard(z, InitialPosition, true)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Position) WhatPiece(sq int) int {
	var mask = SquareMask[sq]
	if (p.Attackers & mask) != 0 {
		return Attacker
	}
	if (p.Defenders & mask) != 0 {
		return Defender
	}
	if (p.King & mask) != 0 {
		return King
	}
	return Empty
}

func (p *Position) Occupied() uint64 {
	return p.Attackers | p.Defenders | p.King
}

// MakeMove relocates the piece, resolves captures, updates the
// fingerprint and history, and flips the side to move. The move must
// come from this position's own legal move list; legality is not
// re-checked here.
func (p *Position) MakeMove(m Move, z *Zobrist) {
	var moverIsAttacker = p.Attackers&SquareMask[m.From()] != 0
	var attackers, defenders, king = p.nextBoards(m)

	p.Key ^= z.sideKey
	for x := p.Attackers ^ attackers; x != 0; x &= x - 1 {
		p.Key ^= z.PieceSquareKey(Attacker, FirstOne(x))
	}
	for x := p.Defenders ^ defenders; x != 0; x &= x - 1 {
		p.Key ^= z.PieceSquareKey(Defender, FirstOne(x))
	}
	for x := p.King ^ king; x != 0; x &= x - 1 {
		p.Key ^= z.PieceSquareKey(King, FirstOne(x))
	}

	p.Attackers = attackers
	p.Defenders = defenders
	p.King = king
	p.Ply++
	p.recordHistory(moverIsAttacker)
	p.AttackerMove = !p.AttackerMove
}

// NextKey computes the fingerprint the position would have after m,
// capture effects included, without mutating the position.
func (p *Position) NextKey(m Move, z *Zobrist) uint64 {
	var attackers, defenders, king = p.nextBoards(m)
	var result = p.Key ^ z.sideKey
	for x := p.Attackers ^ attackers; x != 0; x &= x - 1 {
		result ^= z.PieceSquareKey(Attacker, FirstOne(x))
	}
	for x := p.Defenders ^ defenders; x != 0; x &= x - 1 {
		result ^= z.PieceSquareKey(Defender, FirstOne(x))
	}
	for x := p.King ^ king; x != 0; x &= x - 1 {
		result ^= z.PieceSquareKey(King, FirstOne(x))
	}
	return result
}

// nextBoards applies the move and resolves captures on copies of the
// bitboards.
func (p *Position) nextBoards(m Move) (attackers, defenders, king uint64) {
	var fromMask = SquareMask[m.From()]
	var toMask = SquareMask[m.To()]
	var moveMask = fromMask | toMask

	attackers, defenders, king = p.Attackers, p.Defenders, p.King
	var moverIsAttacker = false
	switch {
	case attackers&fromMask != 0:
		attackers ^= moveMask
		moverIsAttacker = true
	case defenders&fromMask != 0:
		defenders ^= moveMask
	default:
		king ^= moveMask
	}

	var to = m.To()
	for x := Neighbors(toMask); x != 0; x &= x - 1 {
		var victim = FirstOne(x)
		var victimMask = SquareMask[victim]

		var victimIsAttacker = attackers&victimMask != 0
		var victimIsDefender = defenders&victimMask != 0
		var victimIsKing = king&victimMask != 0
		if !victimIsAttacker && !victimIsDefender && !victimIsKing {
			continue
		}
		var isEnemy bool
		if moverIsAttacker {
			isEnemy = victimIsDefender || victimIsKing
		} else {
			isEnemy = victimIsAttacker
		}
		if !isEnemy {
			continue
		}

		if victimIsKing {
			if kingCaptured(attackers, king) {
				king &^= victimMask
			}
			continue
		}

		var anvil = anvilSquare(to, victim)
		if anvil == SquareNone {
			continue
		}
		if hostileTo(victimIsAttacker, anvil, attackers, defenders, king) {
			if victimIsAttacker {
				attackers &^= victimMask
			} else {
				defenders &^= victimMask
			}
		}
	}
	return
}

// anvilSquare is the square on the far side of victim as seen from
// from; SquareNone when it falls off the board.
func anvilSquare(from, victim int) int {
	var delta = victim - from
	var anvil = victim + delta
	if anvil < 0 || anvil >= TotalSquares {
		return SquareNone
	}
	if (delta == 1 || delta == -1) && Rank(anvil) != Rank(victim) {
		return SquareNone
	}
	return anvil
}

// hostileTo reports whether sq flanks a piece of the victim's side. The
// throne is hostile to attackers always and to defenders only while the
// king is away.
func hostileTo(victimIsAttacker bool, sq int, attackers, defenders, king uint64) bool {
	var mask = SquareMask[sq]
	if victimIsAttacker {
		return (defenders|king)&mask != 0 || RestrictedMask&mask != 0
	}
	if attackers&mask != 0 || CornersMask&mask != 0 {
		return true
	}
	return ThroneMask&mask != 0 && king&mask == 0
}

// kingCaptured checks the king against the given attacker set: four
// attackers on the throne, three next to it (the throne itself is the
// fourth), the plain two-sided sandwich elsewhere, with corners hostile.
func kingCaptured(attackers, king uint64) bool {
	if king == 0 {
		return false
	}
	if king == ThroneMask {
		var n = Neighbors(king)
		return n&attackers == n
	}
	if Neighbors(ThroneMask)&king != 0 {
		var n = Neighbors(king) &^ ThroneMask
		return n&attackers == n
	}
	var sq = FirstOne(king)
	var hostile = attackers | CornersMask
	if File(sq) > FileA && File(sq) < FileG {
		if Left(king)&hostile != 0 && Right(king)&hostile != 0 {
			return true
		}
	}
	if Rank(sq) > Rank1 && Rank(sq) < Rank7 {
		if Down(king)&hostile != 0 && Up(king)&hostile != 0 {
			return true
		}
	}
	return false
}

// recordHistory inserts the current configuration into the sorted
// history, or detects a repeat. Only a defender move raises the
// repetition flag; history stops growing once full.
func (p *Position) recordHistory(moverIsAttacker bool) {
	p.Repetition = false
	p.RepetitionDistance = 0
	var idx, found = p.findSnapshot(p.Attackers, p.Defenders, p.King)
	if found {
		if !moverIsAttacker {
			p.Repetition = true
			p.RepetitionDistance = p.Ply - p.history[idx].ply
		}
		return
	}
	if p.historyLen == MaxGameLength {
		return
	}
	copy(p.history[idx+1:p.historyLen+1], p.history[idx:p.historyLen])
	p.history[idx] = snapshot{p.Attackers, p.Defenders, p.King, p.Ply}
	p.historyLen++
}

func (p *Position) findSnapshot(attackers, defenders, king uint64) (idx int, found bool) {
	var lo, hi = 0, p.historyLen
	for lo < hi {
		var mid = int(uint(lo+hi) >> 1)
		var s = &p.history[mid]
		if s.attackers < attackers ||
			s.attackers == attackers && (s.defenders < defenders ||
				s.defenders == defenders && s.king < king) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < p.historyLen {
		var s = &p.history[lo]
		found = s.attackers == attackers && s.defenders == defenders && s.king == king
	}
	return lo, found
}

// Result decides the game in priority order: king escaped, king
// captured, repetition, stalemate, material-exhaustion draw.
func (p *Position) Result() int {
	if p.King&CornersMask != 0 {
		return GameDefendersWon
	}
	if p.King == 0 {
		return GameAttackersWon
	}
	if p.Repetition {
		return GameAttackersWon
	}
	if !p.HasLegalMove(p.AttackerMove) {
		if p.AttackerMove {
			return GameDefendersWon
		}
		return GameAttackersWon
	}
	if PopCount(p.Attackers) <= 2 && PopCount(p.Defenders) <= 1 {
		return GameDraw
	}
	return GameNotOver
}
