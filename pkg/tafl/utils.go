package tafl

import "strings"

func File(sq int) int {
	return sq % BoardSize
}

func Rank(sq int) int {
	return sq / BoardSize
}

func MakeSquare(file, rank int) int {
	return rank*BoardSize + file
}

const (
	fileNames = "abcdefg"
	rankNames = "1234567"
)

func SquareName(sq int) string {
	var file = fileNames[File(sq)]
	var rank = rankNames[Rank(sq)]
	return string(file) + string(rank)
}

func ParseSquare(s string) int {
	if len(s) != 2 {
		return SquareNone
	}
	var file = strings.Index(fileNames, s[0:1])
	var rank = strings.Index(rankNames, s[1:2])
	if file < 0 || rank < 0 {
		return SquareNone
	}
	return MakeSquare(file, rank)
}

// ParseMove accepts moves in long algebraic form ("d2d4") and returns the
// matching entry from the position's legal move list.
func (p *Position) ParseMove(s string) (Move, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 {
		return MoveEmpty, false
	}
	var from = ParseSquare(s[0:2])
	var to = ParseSquare(s[2:4])
	if from == SquareNone || to == SquareNone {
		return MoveEmpty, false
	}
	var buffer [MaxMoves]Move
	for _, mv := range p.GenerateMoves(buffer[:0], true) {
		if mv.From() == from && mv.To() == to {
			return mv, true
		}
	}
	return MoveEmpty, false
}
