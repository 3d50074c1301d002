package tafl

const (
	Empty int = iota
	Attacker
	Defender
	King
)

// Piece kinds carried by the fingerprint table. Empty is not hashed.
const PieceKinds = 3

const (
	BoardSize    = 7
	TotalSquares = BoardSize * BoardSize
)

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
)

const SquareNone = -1

const (
	SquareA1 = 0
	SquareG1 = 6
	SquareD4 = 24
	SquareA7 = 42
	SquareG7 = 48
)

const (
	GameNotOver int = iota
	GameDraw
	GameAttackersWon
	GameDefendersWon
)

// Longest game supported by the repetition history.
const MaxGameLength = 512

const MaxMoves = 256

type Move int32

const MoveEmpty = Move(0)

func MakeMove(from, to int) Move {
	return Move(from ^ (to << 6))
}

func (m Move) From() int {
	return int(m & 63)
}

func (m Move) To() int {
	return int((m >> 6) & 63)
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	return SquareName(m.From()) + SquareName(m.To())
}
