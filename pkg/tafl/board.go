package tafl

import (
	"strings"

	"github.com/pkg/errors"
)

// NewPositionFromBoard builds a position from a 7-line board diagram,
// highest rank first, squares separated by spaces: A attacker, D
// defender, K king, . empty. The history starts fresh with only the
// given configuration.
func NewPositionFromBoard(z *Zobrist, board string, attackerMove bool) (*Position, error) {
	var lines []string
	for _, line := range strings.Split(board, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) != BoardSize {
		return nil, errors.Errorf("tafl: board needs %v lines, got %v", BoardSize, len(lines))
	}

	var p = &Position{AttackerMove: attackerMove}
	for i, line := range lines {
		var fields = strings.Fields(line)
		if len(fields) != BoardSize {
			return nil, errors.Errorf("tafl: board line %q needs %v squares", line, BoardSize)
		}
		var rank = BoardSize - 1 - i
		for file, s := range fields {
			var mask = SquareMask[MakeSquare(file, rank)]
			switch s {
			case "A":
				p.Attackers |= mask
			case "D":
				p.Defenders |= mask
			case "K":
				p.King |= mask
			case ".":
			default:
				return nil, errors.Errorf("tafl: bad square %q", s)
			}
		}
	}
	if MoreThanOne(p.King) {
		return nil, errors.New("tafl: more than one king")
	}
	p.Key = p.ComputeKey(z)
	p.history[0] = snapshot{p.Attackers, p.Defenders, p.King, 0}
	p.historyLen = 1
	return p, nil
}

func (p *Position) String() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		sb.WriteString(rankNames[rank : rank+1])
		for file := 0; file < BoardSize; file++ {
			sb.WriteString(" ")
			switch p.WhatPiece(MakeSquare(file, rank)) {
			case Attacker:
				sb.WriteString("A")
			case Defender:
				sb.WriteString("D")
			case King:
				sb.WriteString("K")
			default:
				sb.WriteString(".")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  a b c d e f g\n")
	return sb.String()
}
