package engine

import (
	. "github.com/sentinelchess/sentinel/common"
)

var materialValues = [7]int{0, 100, 320, 330, 500, 900, 20000}

// Piece-square tables from white's perspective, midgame and endgame,
// indexed a8=0..h1=63 (PeSTO values).
var mgPawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	98, 134, 61, 95, 68, 126, 34, -11,
	-6, 7, 26, 31, 65, 56, 25, -20,
	-14, 13, 6, 21, 23, 12, 17, -23,
	-27, -2, -5, 12, 17, 6, 10, -25,
	-26, -4, -4, -10, 3, 3, 33, -12,
	-35, -1, -20, -23, -15, 24, 38, -22,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var egPawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	178, 173, 158, 134, 147, 132, 165, 187,
	94, 100, 85, 67, 56, 53, 82, 84,
	32, 24, 13, 5, -2, 4, 17, 17,
	13, 9, -3, -7, -7, -8, 3, -1,
	4, 7, -6, 1, 0, -5, -1, -8,
	13, 8, 8, 10, 13, 0, 2, -7,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var mgKnightPST = [64]int{
	-167, -89, -34, -49, 61, -97, -15, -107,
	-73, -41, 72, 36, 23, 62, 7, -17,
	-47, 60, 37, 65, 84, 129, 73, 44,
	-9, 17, 19, 53, 37, 69, 18, 22,
	-13, 4, 16, 13, 28, 19, 21, -8,
	-23, -9, 12, 10, 19, 17, 25, -16,
	-29, -53, -12, -3, -1, 18, -14, -19,
	-105, -21, -58, -33, -17, -28, -19, -23,
}

var egKnightPST = [64]int{
	-58, -38, -13, -28, -31, -27, -63, -99,
	-25, -8, -25, -2, -9, -25, -24, -52,
	-24, -20, 10, 9, -1, -9, -19, -41,
	-17, 3, 22, 22, 22, 11, 8, -18,
	-18, -6, 16, 25, 16, 17, 4, -18,
	-23, -3, -1, 15, 10, -3, -20, -22,
	-42, -20, -10, -5, -2, -20, -23, -44,
	-29, -51, -23, -15, -22, -18, -50, -64,
}

var mgBishopPST = [64]int{
	-29, 4, -82, -37, -25, -42, 7, -8,
	-26, 16, -18, -13, 30, 59, 18, -47,
	-16, 37, 43, 40, 35, 50, 37, -2,
	-4, 5, 19, 50, 37, 37, 7, -2,
	-6, 13, 13, 26, 34, 12, 10, 4,
	0, 15, 15, 15, 14, 27, 18, 10,
	4, 15, 16, 0, 7, 21, 33, 1,
	-33, -3, -14, -21, -13, -12, -39, -21,
}

var egBishopPST = [64]int{
	-14, -21, -11, -8, -7, -9, -17, -24,
	-8, -4, 7, -12, -3, -13, -4, -14,
	2, -8, 0, -1, -2, 6, 0, 4,
	-3, 9, 12, 9, 14, 10, 3, 2,
	-6, 3, 13, 19, 7, 10, -3, -9,
	-12, -3, 8, 10, 13, 3, -7, -15,
	-14, -18, -7, -1, 4, -9, -15, -27,
	-23, -9, -23, -5, -9, -16, -5, -17,
}

var mgRookPST = [64]int{
	32, 42, 32, 51, 63, 9, 31, 43,
	27, 32, 58, 62, 80, 67, 26, 44,
	-5, 19, 26, 36, 17, 45, 61, 16,
	-24, -11, 7, 26, 24, 35, -8, -20,
	-36, -26, -12, -1, 9, -7, 6, -23,
	-45, -25, -16, -17, 3, 0, -5, -33,
	-44, -16, -20, -9, -1, 11, -6, -71,
	-19, -13, 1, 17, 16, 7, -37, -26,
}

var egRookPST = [64]int{
	13, 10, 18, 15, 12, 12, 8, 5,
	11, 13, 13, 11, -3, 3, 8, 3,
	7, 7, 7, 5, 4, -3, -5, -3,
	4, 3, 13, 1, 2, 1, -1, 2,
	3, 5, 8, 4, -5, -6, -8, -11,
	-4, 0, -5, -1, -7, -12, -8, -16,
	-6, -6, 0, 2, -9, -9, -11, -3,
	-9, 2, 3, -1, -5, -13, 4, -20,
}

var mgQueenPST = [64]int{
	-28, 0, 29, 12, 59, 44, 43, 45,
	-24, -39, -5, 1, -16, 57, 28, 54,
	-13, -17, 7, 8, 29, 56, 47, 57,
	-27, -27, -16, -16, -1, 17, -2, 1,
	-9, -26, -9, -10, -2, -4, 3, -3,
	-14, 2, -11, -2, -5, 2, 14, 5,
	-35, -8, 11, 2, 8, 15, -3, 1,
	-1, -18, -9, 10, -15, -25, -31, -50,
}

var egQueenPST = [64]int{
	-9, 22, 22, 27, 27, 19, 10, 20,
	-17, 20, 32, 41, 58, 25, 30, 0,
	-20, 6, 9, 49, 47, 35, 19, 9,
	3, 22, 24, 45, 57, 40, 57, 36,
	-18, 28, 19, 47, 31, 34, 39, 23,
	-16, -27, 15, 6, 9, 17, 10, 5,
	-22, -23, -30, -16, -16, -23, -36, -32,
	-33, -28, -22, -43, -5, -32, -20, -41,
}

var mgKingPST = [64]int{
	-65, 23, 16, -15, -56, -34, 2, 13,
	29, -1, -20, -7, -8, -4, -38, -29,
	-9, 24, 2, -16, -20, 6, 22, -22,
	-17, -20, -12, -27, -30, -25, -14, -36,
	-49, -1, -27, -39, -46, -44, -33, -51,
	-14, -14, -22, -46, -44, -30, -15, -27,
	1, 7, -8, -64, -43, -16, 9, 8,
	-15, 36, 12, -54, 8, -28, 24, 14,
}

var egKingPST = [64]int{
	-74, -35, -18, -18, -11, 15, 4, -17,
	-12, 17, 14, 17, 17, 38, 23, 11,
	10, 17, 23, 15, 20, 45, 44, 13,
	-8, 22, 24, 27, 26, 33, 26, 3,
	-18, -4, 21, 24, 27, 23, 9, -11,
	-19, -3, 11, 21, 23, 16, 7, -9,
	-27, -11, 4, 13, 14, 4, -5, -17,
	-53, -34, -21, -11, -28, -14, -24, -43,
}

var mgPST = [7]*[64]int{Pawn: &mgPawnPST, Knight: &mgKnightPST, Bishop: &mgBishopPST,
	Rook: &mgRookPST, Queen: &mgQueenPST, King: &mgKingPST}
var egPST = [7]*[64]int{Pawn: &egPawnPST, Knight: &egKnightPST, Bishop: &egBishopPST,
	Rook: &egRookPST, Queen: &egQueenPST, King: &egKingPST}

// penalty ladder indexed by the attack score on the surrounding ring
var kingAttackPenalties = [10]int{0, 5, 15, 40, 70, 100, 150, 200, 250, 300}

var kingRingAttackWeights = [7]int{Knight: 2, Bishop: 2, Rook: 4, Queen: 5}

const (
	innerCenterBonusPawn   = 25
	outerCenterBonusPawn   = 15
	innerCenterBonusKnight = 20
	outerCenterBonusKnight = 10
	innerCenterBonusBishop = 10
	outerCenterBonusBishop = 5
	undevelopedPenalty     = 10
	castleRightBonus       = 15
	castledKingBonus       = 40
	mobilityWeight         = 2
	maxPhase               = 24
)

// centerZone: 2 for the four inner squares, 1 for the twelve-square
// outer ring around them.
var centerZone [120]int8

// undeveloped marks the starting squares of knights and bishops.
var undeveloped [120]bool

var piecePhase = [7]int{Knight: 1, Bishop: 1, Rook: 2, Queen: 4}

var evalKingDeltas = [8]int{1, -1, 10, -10, 9, -9, 11, -11}
var evalKnightDeltas = [8]int{8, 12, 19, 21, -8, -12, -19, -21}
var evalRookDeltas = [4]int{1, -1, 10, -10}
var evalBishopDeltas = [4]int{9, -9, 11, -11}

func init() {
	for _, sq := range [4]int{SquareD5, SquareE5, SquareD4, SquareE4} {
		centerZone[sq] = 2
	}
	for _, sq := range [12]int{
		SquareC6, SquareD6, SquareE6, SquareF6,
		SquareC5, SquareF5, SquareC4, SquareF4,
		SquareC3, SquareD3, SquareE3, SquareF3,
	} {
		centerZone[sq] = 1
	}
	for _, sq := range [8]int{
		SquareB1, SquareG1, SquareB8, SquareG8,
		SquareC1, SquareF1, SquareC8, SquareF8,
	} {
		undeveloped[sq] = true
	}
}

// EvaluationService scores a position in centipawns from the side to
// move: material plus phase-tapered piece-square tables, mobility,
// central occupation, development and king safety. Deterministic and
// symmetric under mirroring.
type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

type sideScore struct {
	mg          int
	eg          int
	mobility    int
	ringAttacks int
	shield      int
	phase       int
}

func (es *EvaluationService) Evaluate(p *Position) int {
	var whiteRing, blackRing [120]bool
	for _, d := range evalKingDeltas {
		whiteRing[p.KingSquare(true)+d] = true
		blackRing[p.KingSquare(false)+d] = true
	}

	var white = evaluateSide(p, true, &blackRing)
	var black = evaluateSide(p, false, &whiteRing)

	var phase = white.phase + black.phase
	if phase > maxPhase {
		phase = maxPhase
	}

	var whiteInterp = (white.mg*phase + white.eg*(maxPhase-phase)) / maxPhase
	var blackInterp = (black.mg*phase + black.eg*(maxPhase-phase)) / maxPhase

	var mobility = mobilityWeight * (white.mobility - black.mobility)

	var whitePenalty = white.shield + kingAttackPenalties[Min(black.ringAttacks, 9)]
	var blackPenalty = black.shield + kingAttackPenalties[Min(white.ringAttacks, 9)]
	// king safety matters less as material leaves the board
	var kingSafety = (blackPenalty*phase)/maxPhase - (whitePenalty*phase)/maxPhase

	var result = whiteInterp - blackInterp + mobility + kingSafety
	if !p.WhiteMove {
		result = -result
	}
	return result
}

func evaluateSide(p *Position, side bool, enemyRing *[120]bool) sideScore {
	var s sideScore

	if side {
		if p.CastleRights&WhiteKingSide != 0 {
			s.mg += castleRightBonus
		}
		if p.CastleRights&WhiteQueenSide != 0 {
			s.mg += castleRightBonus
		}
	} else {
		if p.CastleRights&BlackKingSide != 0 {
			s.mg += castleRightBonus
		}
		if p.CastleRights&BlackQueenSide != 0 {
			s.mg += castleRightBonus
		}
	}

	for pieceType := Pawn; pieceType <= King; pieceType++ {
		var piece = MakePiece(pieceType, side)
		for i := 0; i < p.PieceCount(piece); i++ {
			var sq = p.PieceSquare(piece, i)
			var index64 int
			if side {
				index64 = To64(sq)
			} else {
				index64 = To64(FlipSquare(sq))
			}
			s.mg += materialValues[pieceType] + mgPST[pieceType][index64]
			s.eg += materialValues[pieceType] + egPST[pieceType][index64]
			s.phase += piecePhase[pieceType]

			switch pieceType {
			case Pawn:
				switch centerZone[sq] {
				case 2:
					s.mg += innerCenterBonusPawn
				case 1:
					s.mg += outerCenterBonusPawn
				}
			case Knight:
				switch centerZone[sq] {
				case 2:
					s.mg += innerCenterBonusKnight
				case 1:
					s.mg += outerCenterBonusKnight
				}
				if undeveloped[sq] {
					s.mg -= undevelopedPenalty
				}
				knightActivity(p, sq, enemyRing, &s)
			case Bishop:
				switch centerZone[sq] {
				case 2:
					s.mg += innerCenterBonusBishop
				case 1:
					s.mg += outerCenterBonusBishop
				}
				if undeveloped[sq] {
					s.mg -= undevelopedPenalty
				}
				sliderActivity(p, sq, evalBishopDeltas[:], enemyRing, pieceType, &s)
			case Rook:
				sliderActivity(p, sq, evalRookDeltas[:], enemyRing, pieceType, &s)
			case Queen:
				sliderActivity(p, sq, evalKingDeltas[:], enemyRing, pieceType, &s)
			case King:
				if side && (sq == SquareG1 || sq == SquareC1) {
					s.mg += castledKingBonus
				}
				if !side && (sq == SquareG8 || sq == SquareC8) {
					s.mg += castledKingBonus
				}
				s.shield = pawnShieldPenalty(p, sq, side)
			}
		}
	}
	return s
}

func sliderActivity(p *Position, from int, deltas []int, enemyRing *[120]bool, pieceType int, s *sideScore) {
	for _, d := range deltas {
		for to := from + d; ; to += d {
			var target = p.WhatPiece(to)
			if target < Empty {
				break
			}
			if enemyRing[to] {
				s.ringAttacks += kingRingAttackWeights[pieceType]
			}
			if target != Empty {
				break
			}
			s.mobility++
		}
	}
}

func knightActivity(p *Position, from int, enemyRing *[120]bool, s *sideScore) {
	for _, d := range evalKnightDeltas {
		var to = from + d
		var target = p.WhatPiece(to)
		if target < Empty {
			continue
		}
		if enemyRing[to] {
			s.ringAttacks += kingRingAttackWeights[Knight]
		}
		if target == Empty {
			s.mobility++
		}
	}
}

// pawnShieldPenalty charges a castled king for missing pawns on the
// three files in front of it: 25 per open file, 15 if the pawn has
// only pushed one square.
func pawnShieldPenalty(p *Position, kingSq int, side bool) int {
	var penalty = 0
	if side {
		if Rank(kingSq) != Rank1 {
			return 0
		}
		var pawn = MakePiece(Pawn, true)
		for file := File(kingSq) - 1; file <= File(kingSq)+1; file++ {
			if file < FileA || file > FileH {
				penalty += 25
				continue
			}
			if p.WhatPiece(MakeSquare(file, Rank2)) != pawn {
				if p.WhatPiece(MakeSquare(file, Rank3)) != pawn {
					penalty += 25
				} else {
					penalty += 15
				}
			}
		}
	} else {
		if Rank(kingSq) != Rank8 {
			return 0
		}
		var pawn = MakePiece(Pawn, false)
		for file := File(kingSq) - 1; file <= File(kingSq)+1; file++ {
			if file < FileA || file > FileH {
				penalty += 25
				continue
			}
			if p.WhatPiece(MakeSquare(file, Rank7)) != pawn {
				if p.WhatPiece(MakeSquare(file, Rank6)) != pawn {
					penalty += 25
				} else {
					penalty += 15
				}
			}
		}
	}
	return penalty
}
