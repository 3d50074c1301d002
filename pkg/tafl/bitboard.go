package tafl

import "math/bits"

const (
	FileAMask uint64 = 0x0000040810204081 << iota
	FileBMask
	FileCMask
	FileDMask
	FileEMask
	FileFMask
	FileGMask
)

const (
	Rank1Mask uint64 = 0x7F << (BoardSize * iota)
	Rank2Mask
	Rank3Mask
	Rank4Mask
	Rank5Mask
	Rank6Mask
	Rank7Mask
)

const BoardMask uint64 = (1 << TotalSquares) - 1

const (
	CornersMask uint64 = 1<<SquareA1 | 1<<SquareG1 | 1<<SquareA7 | 1<<SquareG7
	ThroneMask  uint64 = 1 << SquareD4
	// Squares only the king may land on.
	RestrictedMask uint64 = CornersMask | ThroneMask
	EdgesMask      uint64 = Rank1Mask | Rank7Mask | FileAMask | FileGMask
)

var SquareMask [TotalSquares]uint64

var EdgeMask = [4]uint64{Rank1Mask, Rank7Mask, FileAMask, FileGMask}

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

func FirstOne(b uint64) int {
	return bits.TrailingZeros64(b)
}

func MoreThanOne(b uint64) bool {
	return b != 0 && ((b-1)&b) != 0
}

func Up(b uint64) uint64 {
	return (b << BoardSize) & BoardMask
}

func Down(b uint64) uint64 {
	return b >> BoardSize
}

func Right(b uint64) uint64 {
	return (b & ^FileGMask) << 1
}

func Left(b uint64) uint64 {
	return (b & ^FileAMask) >> 1
}

// Orthogonal neighbors of a single-square mask.
func Neighbors(b uint64) uint64 {
	return Up(b) | Down(b) | Left(b) | Right(b)
}

var slideShifts = [4]func(uint64) uint64{Up, Down, Left, Right}

func BitboardString(b uint64) string {
	var s = ""
	for x := b; x != 0; x &= x - 1 {
		sq := FirstOne(x)
		if s != "" {
			s += ","
		}
		s += SquareName(sq)
	}
	return "(" + s + ")"
}

func init() {
	for sq := 0; sq < TotalSquares; sq++ {
		SquareMask[sq] = uint64(1) << uint(sq)
	}
}
