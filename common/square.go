package common

import "strings"

// The board is a 10x12 mailbox: 64 playable squares surrounded by a
// sentinel ring so that every knight offset from a playable square
// lands either on another playable square or on a sentinel.
const (
	SquareNone = -1

	boardSize = 120
)

const (
	SquareA8 = 21 + iota
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8
)

const (
	SquareA7 = 31 + iota
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
)

const (
	SquareA6 = 41 + iota
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
)

const (
	SquareA5 = 51 + iota
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
)

const (
	SquareA4 = 61 + iota
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
)

const (
	SquareA3 = 71 + iota
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
)

const (
	SquareA2 = 81 + iota
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
)

const (
	SquareA1 = 91 + iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
)

func File(sq int) int {
	return sq%10 - 1
}

func Rank(sq int) int {
	return 9 - sq/10
}

func MakeSquare(file, rank int) int {
	return 21 + (7-rank)*10 + file
}

// FlipSquare mirrors a square across the horizontal axis (a1<->a8).
func FlipSquare(sq int) int {
	return (11-sq/10)*10 + sq%10
}

// To64 maps a mailbox square to a dense 0..63 index with a8=0, h1=63,
// the layout piece-square tables are written in.
func To64(sq int) int {
	return File(sq) + 8*(7-Rank(sq))
}

func IsDarkSquare(sq int) bool {
	return (File(sq)+Rank(sq))%2 == 0
}

func IsValidSquare(sq int) bool {
	return sq >= SquareA8 && sq <= SquareH1 && sq%10 >= 1 && sq%10 <= 8
}

func Min(l, r int) int {
	if l < r {
		return l
	}
	return r
}

func Max(l, r int) int {
	if l > r {
		return l
	}
	return r
}

func let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}

const (
	fileNames = "abcdefgh"
	rankNames = "12345678"
)

func SquareName(sq int) string {
	var file = fileNames[File(sq)]
	var rank = rankNames[Rank(sq)]
	return string(file) + string(rank)
}

func ParseSquare(s string) int {
	if s == "-" {
		return SquareNone
	}
	var file = strings.Index(fileNames, s[0:1])
	var rank = strings.Index(rankNames, s[1:2])
	if file < 0 || rank < 0 {
		return SquareNone
	}
	return MakeSquare(file, rank)
}
