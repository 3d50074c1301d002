package tafl

// GenerateMoves appends every orthogonal slide for the side to move.
// Pieces stop before occupied squares; only the king may land on the
// throne or a corner, though anyone may slide across the empty throne.
// With suppressRepetition set, defender moves that would reproduce a
// stored configuration are filtered out.
func (p *Position) GenerateMoves(ml []Move, suppressRepetition bool) []Move {
	var occupied = p.Occupied()
	var mine uint64
	if p.AttackerMove {
		mine = p.Attackers
	} else {
		mine = p.Defenders | p.King
	}
	var filterRepeats = suppressRepetition && !p.AttackerMove

	for x := mine; x != 0; x &= x - 1 {
		var from = FirstOne(x)
		var fromMask = SquareMask[from]
		var isKing = p.King&fromMask != 0
		for _, shift := range slideShifts {
			for dst := shift(fromMask); dst != 0 && dst&occupied == 0; dst = shift(dst) {
				if dst&RestrictedMask != 0 && !isKing {
					continue
				}
				var mv = MakeMove(from, FirstOne(dst))
				if filterRepeats && p.repeats(mv) {
					continue
				}
				ml = append(ml, mv)
			}
		}
	}
	return ml
}

// HasLegalMove is a short-circuiting existence check for the given side,
// honoring the defender's repetition filter.
func (p *Position) HasLegalMove(attacker bool) bool {
	var occupied = p.Occupied()
	var mine uint64
	if attacker {
		mine = p.Attackers
	} else {
		mine = p.Defenders | p.King
	}

	for x := mine; x != 0; x &= x - 1 {
		var from = FirstOne(x)
		var fromMask = SquareMask[from]
		var isKing = p.King&fromMask != 0
		for _, shift := range slideShifts {
			for dst := shift(fromMask); dst != 0 && dst&occupied == 0; dst = shift(dst) {
				if dst&RestrictedMask != 0 && !isKing {
					continue
				}
				if attacker || !p.repeats(MakeMove(from, FirstOne(dst))) {
					return true
				}
			}
		}
	}
	return false
}

func (p *Position) repeats(m Move) bool {
	var attackers, defenders, king = p.nextBoards(m)
	var _, found = p.findSnapshot(attackers, defenders, king)
	return found
}
