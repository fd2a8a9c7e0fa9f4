package common

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// offBoard marks the sentinel ring cells.
const offBoard = -1

// Position is a 10x12 mailbox board plus a piece-location index kept in
// sync with it on every mutation. MakeMove mutates in place and pushes
// the irreversible state on an internal stack; UnmakeMove pops it and
// restores the position exactly.
type Position struct {
	board        [boardSize]int8
	pieceList    [14][10]int8
	pieceCount   [14]int8
	listIndex    [boardSize]int8
	WhiteMove    bool
	CastleRights int
	EpSquare     int
	Rule50       int
	Ply          int
	Key          uint64
	LastMove     Move
	undo         []undoInfo
}

type undoInfo struct {
	castleRights int
	epSquare     int
	rule50       int
	key          uint64
	lastMove     Move
}

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [14][boardSize]uint64
	castleMask     [boardSize]int
)

func init() {
	var r = rand.New(rand.NewSource(0))
	sideKey = r.Uint64()
	for i := range enpassantKey {
		enpassantKey[i] = r.Uint64()
	}
	var rights [4]uint64
	for i := range rights {
		rights[i] = r.Uint64()
	}
	for i := range castlingKey {
		for j := 0; j < 4; j++ {
			if i&(1<<uint(j)) != 0 {
				castlingKey[i] ^= rights[j]
			}
		}
	}
	for piece := Pawn; piece <= King; piece++ {
		for sq := 0; sq < boardSize; sq++ {
			if !IsValidSquare(sq) {
				continue
			}
			pieceSquareKey[MakePiece(piece, true)][sq] = r.Uint64()
			pieceSquareKey[MakePiece(piece, false)][sq] = r.Uint64()
		}
	}
	for sq := range castleMask {
		castleMask[sq] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteKingSide | WhiteQueenSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackKingSide | BlackQueenSide
	castleMask[SquareH8] &^= BlackKingSide
}

func (p *Position) addPiece(piece, sq int) {
	p.board[sq] = int8(piece)
	p.listIndex[sq] = p.pieceCount[piece]
	p.pieceList[piece][p.pieceCount[piece]] = int8(sq)
	p.pieceCount[piece]++
	p.Key ^= pieceSquareKey[piece][sq]
}

func (p *Position) removePiece(sq int) {
	var piece = int(p.board[sq])
	p.Key ^= pieceSquareKey[piece][sq]
	p.board[sq] = int8(Empty)
	var last = p.pieceCount[piece] - 1
	var index = p.listIndex[sq]
	var moved = p.pieceList[piece][last]
	p.pieceList[piece][index] = moved
	p.listIndex[moved] = index
	p.pieceCount[piece] = last
}

func (p *Position) movePiece(from, to int) {
	var piece = int(p.board[from])
	p.board[from] = int8(Empty)
	p.board[to] = int8(piece)
	var index = p.listIndex[from]
	p.pieceList[piece][index] = int8(to)
	p.listIndex[to] = index
	p.Key ^= pieceSquareKey[piece][from] ^ pieceSquareKey[piece][to]
}

func (p *Position) WhatPiece(sq int) int {
	return int(p.board[sq])
}

func (p *Position) PieceCount(piece int) int {
	return int(p.pieceCount[piece])
}

func (p *Position) PieceSquare(piece, i int) int {
	return int(p.pieceList[piece][i])
}

func (p *Position) KingSquare(white bool) int {
	return int(p.pieceList[MakePiece(King, white)][0])
}

func epCaptureSquare(to int, whiteMove bool) int {
	if whiteMove {
		return to + 10
	}
	return to - 10
}

func (p *Position) MakeMove(mv Move) {
	p.undo = append(p.undo, undoInfo{p.CastleRights, p.EpSquare, p.Rule50, p.Key, p.LastMove})
	var from = mv.From()
	var to = mv.To()
	var movingSide = p.WhiteMove

	if p.EpSquare != SquareNone {
		p.Key ^= enpassantKey[File(p.EpSquare)]
	}
	var newRights = p.CastleRights & castleMask[from] & castleMask[to]
	p.Key ^= castlingKey[p.CastleRights^newRights]
	p.CastleRights = newRights
	p.EpSquare = SquareNone

	if mv.CapturedPiece() != Empty {
		if mv.IsEnPassant() {
			p.removePiece(epCaptureSquare(to, movingSide))
		} else {
			p.removePiece(to)
		}
		p.Rule50 = 0
	} else if mv.MovingPiece() == Pawn {
		p.Rule50 = 0
	} else {
		p.Rule50++
	}

	p.movePiece(from, to)

	if mv.MovingPiece() == Pawn {
		if mv.IsDoublePush() {
			p.EpSquare = (from + to) / 2
			p.Key ^= enpassantKey[File(p.EpSquare)]
		} else if mv.Promotion() != Empty {
			p.removePiece(to)
			p.addPiece(MakePiece(mv.Promotion(), movingSide), to)
		}
	} else if mv.IsCastle() {
		switch to {
		case SquareG1:
			p.movePiece(SquareH1, SquareF1)
		case SquareC1:
			p.movePiece(SquareA1, SquareD1)
		case SquareG8:
			p.movePiece(SquareH8, SquareF8)
		case SquareC8:
			p.movePiece(SquareA8, SquareD8)
		}
	}

	p.Ply++
	p.WhiteMove = !p.WhiteMove
	p.Key ^= sideKey
	p.LastMove = mv
}

func (p *Position) UnmakeMove() {
	if len(p.undo) == 0 {
		return
	}
	var mv = p.LastMove
	var u = p.undo[len(p.undo)-1]
	p.undo = p.undo[:len(p.undo)-1]

	p.WhiteMove = !p.WhiteMove
	var movingSide = p.WhiteMove
	var from = mv.From()
	var to = mv.To()

	if mv.Promotion() != Empty {
		p.removePiece(to)
		p.addPiece(MakePiece(Pawn, movingSide), to)
	}
	p.movePiece(to, from)
	if mv.IsCastle() {
		switch to {
		case SquareG1:
			p.movePiece(SquareF1, SquareH1)
		case SquareC1:
			p.movePiece(SquareD1, SquareA1)
		case SquareG8:
			p.movePiece(SquareF8, SquareH8)
		case SquareC8:
			p.movePiece(SquareD8, SquareA8)
		}
	}
	if mv.CapturedPiece() != Empty {
		if mv.IsEnPassant() {
			p.addPiece(MakePiece(Pawn, !movingSide), epCaptureSquare(to, movingSide))
		} else {
			p.addPiece(MakePiece(mv.CapturedPiece(), !movingSide), to)
		}
	}

	p.Ply--
	p.CastleRights = u.castleRights
	p.EpSquare = u.epSquare
	p.Rule50 = u.rule50
	p.Key = u.key
	p.LastMove = u.lastMove
}

// Clone returns an independent copy with an empty undo stack.
func (p *Position) Clone() Position {
	var result = *p
	result.undo = nil
	return result
}

func (p *Position) isAttacked(sq int, byWhite bool) bool {
	if byWhite {
		var wp = int8(MakePiece(Pawn, true))
		if p.board[sq+9] == wp || p.board[sq+11] == wp {
			return true
		}
	} else {
		var bp = int8(MakePiece(Pawn, false))
		if p.board[sq-9] == bp || p.board[sq-11] == bp {
			return true
		}
	}
	var knight = int8(MakePiece(Knight, byWhite))
	for _, d := range knightDeltas {
		if p.board[sq+d] == knight {
			return true
		}
	}
	var king = int8(MakePiece(King, byWhite))
	for _, d := range kingDeltas {
		if p.board[sq+d] == king {
			return true
		}
	}
	var rook = int8(MakePiece(Rook, byWhite))
	var bishop = int8(MakePiece(Bishop, byWhite))
	var queen = int8(MakePiece(Queen, byWhite))
	for _, d := range rookDeltas {
		for t := sq + d; p.board[t] != offBoard; t += d {
			if p.board[t] != int8(Empty) {
				if p.board[t] == rook || p.board[t] == queen {
					return true
				}
				break
			}
		}
	}
	for _, d := range bishopDeltas {
		for t := sq + d; p.board[t] != offBoard; t += d {
			if p.board[t] != int8(Empty) {
				if p.board[t] == bishop || p.board[t] == queen {
					return true
				}
				break
			}
		}
	}
	return false
}

func (p *Position) IsCheck() bool {
	return p.isAttacked(p.KingSquare(p.WhiteMove), !p.WhiteMove)
}

func (p *Position) computeKey() uint64 {
	var result = uint64(0)
	if p.WhiteMove {
		result ^= sideKey
	}
	result ^= castlingKey[p.CastleRights]
	if p.EpSquare != SquareNone {
		result ^= enpassantKey[File(p.EpSquare)]
	}
	for sq := 0; sq < boardSize; sq++ {
		if p.board[sq] > 0 {
			result ^= pieceSquareKey[p.board[sq]][sq]
		}
	}
	return result
}

// ComputeKey recomputes the zobrist key from scratch. The incremental
// key maintained by MakeMove must always match it.
func (p *Position) ComputeKey() uint64 {
	return p.computeKey()
}

func emptyBoard() Position {
	var p = Position{}
	for sq := range p.board {
		if IsValidSquare(sq) {
			p.board[sq] = int8(Empty)
		} else {
			p.board[sq] = offBoard
		}
	}
	p.EpSquare = SquareNone
	return p
}

func NewPositionFromFEN(fen string) (Position, error) {
	var p = emptyBoard()
	var tokens = strings.Fields(fen)
	if len(tokens) < 4 {
		return Position{}, fmt.Errorf("parse fen failed: %v", fen)
	}

	var rows = strings.Split(tokens[0], "/")
	if len(rows) != 8 {
		return Position{}, fmt.Errorf("parse fen failed: %v", fen)
	}
	for rowIndex, row := range rows {
		var sq = 21 + 10*rowIndex
		for _, ch := range row {
			if ch >= '1' && ch <= '8' {
				sq += int(ch - '0')
				continue
			}
			var cp = parsePiece(ch)
			if cp.Type == Empty || !IsValidSquare(sq) {
				return Position{}, fmt.Errorf("parse fen failed: %v", fen)
			}
			p.addPiece(MakePiece(cp.Type, cp.Side), sq)
			sq++
		}
		if sq != 21+10*rowIndex+8 {
			return Position{}, fmt.Errorf("parse fen failed: %v", fen)
		}
	}

	p.WhiteMove = tokens[1] == "w"

	for _, ch := range tokens[2] {
		switch ch {
		case 'K':
			p.CastleRights |= WhiteKingSide
		case 'Q':
			p.CastleRights |= WhiteQueenSide
		case 'k':
			p.CastleRights |= BlackKingSide
		case 'q':
			p.CastleRights |= BlackQueenSide
		}
	}

	p.EpSquare = ParseSquare(tokens[3])

	if len(tokens) > 4 {
		p.Rule50, _ = strconv.Atoi(tokens[4])
	}
	if len(tokens) > 5 {
		var moveNumber, _ = strconv.Atoi(tokens[5])
		if moveNumber > 0 {
			p.Ply = (moveNumber - 1) * 2
			if !p.WhiteMove {
				p.Ply++
			}
		}
	}

	if p.PieceCount(MakePiece(King, true)) != 1 || p.PieceCount(MakePiece(King, false)) != 1 {
		return Position{}, fmt.Errorf("parse fen failed: %v", fen)
	}
	if p.isAttacked(p.KingSquare(!p.WhiteMove), p.WhiteMove) {
		return Position{}, fmt.Errorf("parse fen failed: %v", fen)
	}

	p.Key = p.computeKey()
	return p, nil
}

func (p *Position) String() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		var emptyCount = 0
		for file := FileA; file <= FileH; file++ {
			var piece = p.WhatPiece(MakeSquare(file, rank))
			if piece == Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			var pieceType, side = GetPieceTypeAndSide(piece)
			var ch = "pnbrqk"[pieceType-Pawn]
			if side {
				sb.WriteString(strings.ToUpper(string(ch)))
			} else {
				sb.WriteString(string(ch))
			}
		}
		if emptyCount > 0 {
			sb.WriteString(strconv.Itoa(emptyCount))
		}
		if rank != Rank1 {
			sb.WriteString("/")
		}
	}

	if p.WhiteMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastleRights == 0 {
		sb.WriteString("-")
	} else {
		if p.CastleRights&WhiteKingSide != 0 {
			sb.WriteString("K")
		}
		if p.CastleRights&WhiteQueenSide != 0 {
			sb.WriteString("Q")
		}
		if p.CastleRights&BlackKingSide != 0 {
			sb.WriteString("k")
		}
		if p.CastleRights&BlackQueenSide != 0 {
			sb.WriteString("q")
		}
	}

	sb.WriteString(" ")
	if p.EpSquare == SquareNone {
		sb.WriteString("-")
	} else {
		sb.WriteString(SquareName(p.EpSquare))
	}

	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.Ply/2 + 1))

	return sb.String()
}

// MirrorPosition swaps the sides: every piece changes color and moves
// to the vertically mirrored square. A symmetric evaluation must score
// the mirrored position identically from the side to move.
func MirrorPosition(p *Position) Position {
	var result = emptyBoard()
	for piece := Pawn; piece <= King; piece++ {
		for _, side := range [2]bool{true, false} {
			var pc = MakePiece(piece, side)
			for i := 0; i < p.PieceCount(pc); i++ {
				var sq = p.PieceSquare(pc, i)
				result.addPiece(MakePiece(piece, !side), FlipSquare(sq))
			}
		}
	}
	result.WhiteMove = !p.WhiteMove
	if p.CastleRights&WhiteKingSide != 0 {
		result.CastleRights |= BlackKingSide
	}
	if p.CastleRights&WhiteQueenSide != 0 {
		result.CastleRights |= BlackQueenSide
	}
	if p.CastleRights&BlackKingSide != 0 {
		result.CastleRights |= WhiteKingSide
	}
	if p.CastleRights&BlackQueenSide != 0 {
		result.CastleRights |= WhiteQueenSide
	}
	if p.EpSquare != SquareNone {
		result.EpSquare = FlipSquare(p.EpSquare)
	}
	result.Rule50 = p.Rule50
	result.Ply = p.Ply
	result.Key = result.computeKey()
	return result
}
