package common

import (
	"strings"
	"unicode"
)

// A move packs both endpoints, the moving and captured piece types and
// the promotion type into one int32, with flag bits for the three move
// kinds that need special apply/revert handling. Mailbox squares need
// 7 bits each.
const (
	moveFlagEnPassant  Move = 1 << 23
	moveFlagCastle     Move = 1 << 24
	moveFlagDoublePush Move = 1 << 25
)

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from ^ (to << 7) ^ (movingPiece << 14) ^ (capturedPiece << 17))
}

func makePawnMove(from, to, capturedPiece, promotion int) Move {
	return Move(from ^ (to << 7) ^ (Pawn << 14) ^ (capturedPiece << 17) ^ (promotion << 20))
}

var (
	whiteKingSideCastle  = makeMove(SquareE1, SquareG1, King, Empty) ^ moveFlagCastle
	whiteQueenSideCastle = makeMove(SquareE1, SquareC1, King, Empty) ^ moveFlagCastle
	blackKingSideCastle  = makeMove(SquareE8, SquareG8, King, Empty) ^ moveFlagCastle
	blackQueenSideCastle = makeMove(SquareE8, SquareC8, King, Empty) ^ moveFlagCastle
)

func (m Move) From() int {
	return int(m & 127)
}

func (m Move) To() int {
	return int((m >> 7) & 127)
}

func (m Move) MovingPiece() int {
	return int((m >> 14) & 7)
}

func (m Move) CapturedPiece() int {
	return int((m >> 17) & 7)
}

func (m Move) Promotion() int {
	return int((m >> 20) & 7)
}

func (m Move) IsEnPassant() bool {
	return m&moveFlagEnPassant != 0
}

func (m Move) IsCastle() bool {
	return m&moveFlagCastle != 0
}

func (m Move) IsDoublePush() bool {
	return m&moveFlagDoublePush != 0
}

func (m Move) IsCaptureOrPromotion() bool {
	return m.CapturedPiece() != Empty || m.Promotion() != Empty
}

func MakePiece(pieceType int, side bool) int {
	if side {
		return pieceType
	}
	return pieceType + 7
}

func GetPieceTypeAndSide(piece int) (pieceType int, side bool) {
	if piece < 7 {
		return piece, true
	} else {
		return piece - 7, false
	}
}

type coloredPiece struct {
	Type int
	Side bool
}

func parsePiece(ch rune) coloredPiece {
	var side = unicode.IsUpper(ch)
	var spiece = string(unicode.ToLower(ch))
	var i = strings.Index("pnbrqk", spiece)
	if i < 0 {
		return coloredPiece{Empty, false}
	}
	return coloredPiece{i + Pawn, side}
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}

// MakeMoveLAN applies a long-algebraic move ("e2e4", "e7e8q") if it is
// legal in the current position. On failure the position is unchanged.
func (p *Position) MakeMoveLAN(lan string) bool {
	var buffer [MaxMoves]OrderedMove
	var ml = p.GenerateMoves(buffer[:])
	for i := range ml {
		var mv = ml[i].Move
		if strings.EqualFold(mv.String(), lan) {
			p.MakeMove(mv)
			return true
		}
	}
	return false
}

func moveToSAN(pos *Position, ml []Move, mv Move) string {
	const PieceNames = "NBRQK"
	if mv == whiteKingSideCastle || mv == blackKingSideCastle {
		return "O-O"
	}
	if mv == whiteQueenSideCastle || mv == blackQueenSideCastle {
		return "O-O-O"
	}
	var strPiece, strCapture, strFrom, strTo, strPromotion string
	if mv.MovingPiece() != Pawn {
		strPiece = string(PieceNames[mv.MovingPiece()-Knight])
	}
	strTo = SquareName(mv.To())
	if mv.CapturedPiece() != Empty {
		strCapture = "x"
		if mv.MovingPiece() == Pawn {
			strFrom = SquareName(mv.From())[:1]
		}
	}
	if mv.Promotion() != Empty {
		strPromotion = "=" + string(PieceNames[mv.Promotion()-Knight])
	}
	var ambiguity = false
	var uniqCol = true
	var uniqRow = true
	for _, mv1 := range ml {
		if mv1.From() == mv.From() {
			continue
		}
		if mv1.To() != mv.To() {
			continue
		}
		if mv1.MovingPiece() != mv.MovingPiece() {
			continue
		}
		ambiguity = true
		if File(mv1.From()) == File(mv.From()) {
			uniqCol = false
		}
		if Rank(mv1.From()) == Rank(mv.From()) {
			uniqRow = false
		}
	}
	if ambiguity {
		if uniqCol {
			strFrom = SquareName(mv.From())[:1]
		} else if uniqRow {
			strFrom = SquareName(mv.From())[1:2]
		} else {
			strFrom = SquareName(mv.From())
		}
	}
	return strPiece + strFrom + strCapture + strTo + strPromotion
}

func ParseMoveSAN(pos *Position, san string) Move {
	var index = strings.IndexAny(san, "+#?!")
	if index >= 0 {
		san = san[:index]
	}
	var ml = pos.GenerateLegalMoves()
	for _, mv := range ml {
		if san == moveToSAN(pos, ml, mv) {
			return mv
		}
	}
	return MoveEmpty
}
