package tafl

// Instant-win detection. These are exact one-move (or unavoidable)
// wins checked before and during search so that proven positions never
// need playouts.

var edgeShifts = [4]struct {
	edge  uint64
	shift func(uint64) uint64
}{
	{Rank1Mask, Down},
	{Rank7Mask, Up},
	{FileAMask, Left},
	{FileGMask, Right},
}

// KingToCorner reports an unobstructed king slide onto a corner.
func (p *Position) KingToCorner() (Move, bool) {
	if p.King == 0 {
		return MoveEmpty, false
	}
	var occupied = p.Occupied()
	var from = FirstOne(p.King)
	for _, shift := range slideShifts {
		for dst := shift(p.King); dst != 0 && dst&occupied == 0; dst = shift(dst) {
			if dst&CornersMask != 0 {
				return MakeMove(from, FirstOne(dst)), true
			}
		}
	}
	return MoveEmpty, false
}

// KingToEmptyEdge reports a king slide onto a fully empty board edge. No
// defender is needed there; from an empty edge the king reaches one of
// its two corners next move and the attackers cannot guard both.
func (p *Position) KingToEmptyEdge() (Move, bool) {
	if p.King == 0 {
		return MoveEmpty, false
	}
	var occupied = p.Occupied()
	var from = FirstOne(p.King)
	for _, dir := range edgeShifts {
		if occupied&dir.edge != 0 {
			continue
		}
		for dst := dir.shift(p.King); dst != 0 && dst&occupied == 0; dst = dir.shift(dst) {
			if dst&dir.edge != 0 {
				return MakeMove(from, FirstOne(dst)), true
			}
		}
	}
	return MoveEmpty, false
}

// DefenderInstantWin reports whether the defenders, being to move, have
// a proven win at hand.
func (p *Position) DefenderInstantWin() bool {
	if p.AttackerMove {
		return false
	}
	if _, ok := p.KingToCorner(); ok {
		return true
	}
	_, ok := p.KingToEmptyEdge()
	return ok
}

// KingCaptureMove reports an attacker move that captures the king right
// away.
func (p *Position) KingCaptureMove() (Move, bool) {
	if !p.AttackerMove || p.King == 0 {
		return MoveEmpty, false
	}
	var occupied = p.Occupied()

	// On the throne: three attackers present, the fourth flank empty
	// and reachable.
	if p.King == ThroneMask {
		return p.finishKingSurround(Neighbors(p.King), occupied)
	}
	// Next to the throne: the throne is one flank, two attackers
	// present, the last flank empty and reachable.
	if Neighbors(ThroneMask)&p.King != 0 {
		return p.finishKingSurround(Neighbors(p.King)&^ThroneMask, occupied)
	}

	// Plain sandwich: one flank already hostile, an attacker can reach
	// the opposite one.
	var sq = FirstOne(p.King)
	var anvils = p.Attackers | CornersMask | ThroneMask
	if File(sq) > FileA && File(sq) < FileG {
		if Right(p.King)&anvils != 0 && Left(p.King)&occupied == 0 {
			if mv, ok := p.attackerMoveTo(sq - 1); ok {
				return mv, true
			}
		}
		if Left(p.King)&anvils != 0 && Right(p.King)&occupied == 0 {
			if mv, ok := p.attackerMoveTo(sq + 1); ok {
				return mv, true
			}
		}
	}
	if Rank(sq) > Rank1 && Rank(sq) < Rank7 {
		if Up(p.King)&anvils != 0 && Down(p.King)&occupied == 0 {
			if mv, ok := p.attackerMoveTo(sq - BoardSize); ok {
				return mv, true
			}
		}
		if Down(p.King)&anvils != 0 && Up(p.King)&occupied == 0 {
			if mv, ok := p.attackerMoveTo(sq + BoardSize); ok {
				return mv, true
			}
		}
	}
	return MoveEmpty, false
}

// finishKingSurround checks that all flanks but one are attackers and
// the last is empty and reachable by an attacker.
func (p *Position) finishKingSurround(flanks, occupied uint64) (Move, bool) {
	var empty = flanks &^ occupied
	if MoreThanOne(empty) || flanks&^empty != flanks&p.Attackers {
		return MoveEmpty, false
	}
	if empty == 0 {
		return MoveEmpty, false
	}
	return p.attackerMoveTo(FirstOne(empty))
}

// attackerMoveTo finds an attacker that can slide onto the empty target
// square, scanning outward along the four rays.
func (p *Position) attackerMoveTo(target int) (Move, bool) {
	if RestrictedMask&SquareMask[target] != 0 {
		return MoveEmpty, false
	}
	var occupied = p.Occupied()
	for _, shift := range slideShifts {
		for x := shift(SquareMask[target]); x != 0; x = shift(x) {
			if x&occupied == 0 {
				continue
			}
			if x&p.Attackers != 0 {
				return MakeMove(FirstOne(x), target), true
			}
			break
		}
	}
	return MoveEmpty, false
}

// IsCaptureMove is a cheap pre-move test used to bias heavy playouts.
// It approximates the anvil check with the current boards.
func (p *Position) IsCaptureMove(m Move) bool {
	var fromMask = SquareMask[m.From()]
	var toMask = SquareMask[m.To()]
	var moverIsAttacker = p.Attackers&fromMask != 0

	for x := Neighbors(toMask); x != 0; x &= x - 1 {
		var victim = FirstOne(x)
		var victimMask = SquareMask[victim]
		var victimIsAttacker = p.Attackers&victimMask != 0
		var victimIsDefender = p.Defenders&victimMask != 0
		var victimIsKing = p.King&victimMask != 0
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
			if kingCaptured(p.Attackers|toMask, p.King) {
				return true
			}
			continue
		}
		var anvil = anvilSquare(m.To(), victim)
		if anvil == SquareNone {
			continue
		}
		if hostileTo(victimIsAttacker, anvil, p.Attackers, p.Defenders, p.King) {
			return true
		}
	}
	return false
}
