package common

// Piece movement offsets in mailbox coordinates. White moves toward
// lower indices.
var (
	kingDeltas   = [8]int{1, -1, 10, -10, 9, -9, 11, -11}
	knightDeltas = [8]int{8, 12, 19, 21, -8, -12, -19, -21}
	rookDeltas   = [4]int{1, -1, 10, -10}
	bishopDeltas = [4]int{9, -9, 11, -11}
)

// rayDirection[from][to] is the king-step delta leading from `from`
// toward `to` when both lie on a common rank, file or diagonal, else 0.
var rayDirection [boardSize][boardSize]int8

func init() {
	for from := 0; from < boardSize; from++ {
		if !IsValidSquare(from) {
			continue
		}
		for _, d := range kingDeltas {
			for to := from + d; IsValidSquare(to); to += d {
				rayDirection[from][to] = int8(d)
			}
		}
	}
}

// moveGenerator produces strictly legal moves in three stages:
// pseudo-legal expansion over the piece lists, an enemy attack map
// plus pin/check detection by ray walks from the king, and per-move
// set filtering. En passant is the one case validated by apply/revert.
type moveGenerator struct {
	p            *Position
	kingSq       int
	attacked     [boardSize]int8
	checkers     int
	checkPath    [boardSize]bool
	pinDir       [boardSize]int8
	capturesOnly bool
	ml           []OrderedMove
}

// GenerateMoves fills buffer with all legal moves. An empty result is a
// valid outcome and, combined with IsCheck, distinguishes checkmate
// from stalemate.
func (p *Position) GenerateMoves(buffer []OrderedMove) []OrderedMove {
	return p.generateMoves(buffer, false)
}

// GenerateCaptures fills buffer with legal captures and promotions.
func (p *Position) GenerateCaptures(buffer []OrderedMove) []OrderedMove {
	return p.generateMoves(buffer, true)
}

func (p *Position) GenerateLegalMoves() []Move {
	var buffer [MaxMoves]OrderedMove
	var ml = p.GenerateMoves(buffer[:])
	var result = make([]Move, len(ml))
	for i := range ml {
		result[i] = ml[i].Move
	}
	return result
}

func (p *Position) generateMoves(buffer []OrderedMove, capturesOnly bool) []OrderedMove {
	var g = moveGenerator{
		p:            p,
		kingSq:       p.KingSquare(p.WhiteMove),
		capturesOnly: capturesOnly,
		ml:           buffer[:0],
	}
	g.buildAttackMap()
	g.checkers = int(g.attacked[g.kingSq])
	if g.checkers == 1 {
		g.findCheckPath()
	}
	g.findPins()
	g.genKingMoves()
	if g.checkers < 2 {
		g.genPawnMoves()
		g.genKnightMoves()
		g.genSliderMoves(Bishop, bishopDeltas[:])
		g.genSliderMoves(Rook, rookDeltas[:])
		g.genSliderMoves(Queen, kingDeltas[:])
		if !capturesOnly && g.checkers == 0 {
			g.genCastling()
		}
	}
	return g.ml
}

// buildAttackMap counts enemy attacks per square. The friendly king is
// transparent to enemy sliders so that the square behind a checked king
// is still marked attacked.
func (g *moveGenerator) buildAttackMap() {
	var p = g.p
	var us = p.WhiteMove
	var ourKing = int8(MakePiece(King, us))

	var pawn = MakePiece(Pawn, !us)
	var pawnStep = -10
	if us {
		pawnStep = 10
	}
	for i := 0; i < p.PieceCount(pawn); i++ {
		var from = p.PieceSquare(pawn, i)
		for _, d := range [2]int{pawnStep - 1, pawnStep + 1} {
			if p.board[from+d] != offBoard {
				g.attacked[from+d]++
			}
		}
	}

	var knight = MakePiece(Knight, !us)
	for i := 0; i < p.PieceCount(knight); i++ {
		var from = p.PieceSquare(knight, i)
		for _, d := range knightDeltas {
			if p.board[from+d] != offBoard {
				g.attacked[from+d]++
			}
		}
	}

	var enemyKing = p.KingSquare(!us)
	for _, d := range kingDeltas {
		if p.board[enemyKing+d] != offBoard {
			g.attacked[enemyKing+d]++
		}
	}

	g.markSliderAttacks(MakePiece(Bishop, !us), bishopDeltas[:], ourKing)
	g.markSliderAttacks(MakePiece(Rook, !us), rookDeltas[:], ourKing)
	g.markSliderAttacks(MakePiece(Queen, !us), kingDeltas[:], ourKing)
}

func (g *moveGenerator) markSliderAttacks(piece int, deltas []int, ourKing int8) {
	var p = g.p
	for i := 0; i < p.PieceCount(piece); i++ {
		var from = p.PieceSquare(piece, i)
		for _, d := range deltas {
			for to := from + d; p.board[to] != offBoard; to += d {
				g.attacked[to]++
				if p.board[to] != int8(Empty) && p.board[to] != ourKing {
					break
				}
			}
		}
	}
}

// findCheckPath marks the squares that resolve a single check: the
// checker itself plus, for a slider, the squares between it and the
// king.
func (g *moveGenerator) findCheckPath() {
	var p = g.p
	var us = p.WhiteMove

	var knight = int8(MakePiece(Knight, !us))
	for _, d := range knightDeltas {
		if p.board[g.kingSq+d] == knight {
			g.checkPath[g.kingSq+d] = true
			return
		}
	}

	var pawn = int8(MakePiece(Pawn, !us))
	var attackFrom = [2]int{-9, -11}
	if !us {
		attackFrom = [2]int{9, 11}
	}
	for _, d := range attackFrom {
		if p.board[g.kingSq+d] == pawn {
			g.checkPath[g.kingSq+d] = true
			return
		}
	}

	var bishop = int8(MakePiece(Bishop, !us))
	var rook = int8(MakePiece(Rook, !us))
	var queen = int8(MakePiece(Queen, !us))
	for _, d := range kingDeltas {
		var diagonal = d == 9 || d == -9 || d == 11 || d == -11
		for to := g.kingSq + d; p.board[to] != offBoard; to += d {
			if p.board[to] == int8(Empty) {
				continue
			}
			var slider = p.board[to] == queen ||
				(diagonal && p.board[to] == bishop) ||
				(!diagonal && p.board[to] == rook)
			if slider {
				for sq := g.kingSq + d; sq != to; sq += d {
					g.checkPath[sq] = true
				}
				g.checkPath[to] = true
				return
			}
			break
		}
	}
}

// findPins walks the eight rays from the king: exactly one friendly
// piece followed by a matching enemy slider pins that piece to the ray.
func (g *moveGenerator) findPins() {
	var p = g.p
	var us = p.WhiteMove
	var bishop = int8(MakePiece(Bishop, !us))
	var rook = int8(MakePiece(Rook, !us))
	var queen = int8(MakePiece(Queen, !us))

	for _, d := range kingDeltas {
		var diagonal = d == 9 || d == -9 || d == 11 || d == -11
		var blocker = SquareNone
		for to := g.kingSq + d; p.board[to] != offBoard; to += d {
			if p.board[to] == int8(Empty) {
				continue
			}
			var _, side = GetPieceTypeAndSide(int(p.board[to]))
			if side == us {
				if blocker != SquareNone {
					break
				}
				blocker = to
				continue
			}
			if blocker != SquareNone {
				var slider = p.board[to] == queen ||
					(diagonal && p.board[to] == bishop) ||
					(!diagonal && p.board[to] == rook)
				if slider {
					g.pinDir[blocker] = int8(d)
				}
			}
			break
		}
	}
}

// add applies the pin and check-evasion filters to a non-king move.
func (g *moveGenerator) add(mv Move) {
	if d := g.pinDir[mv.From()]; d != 0 && rayDirection[g.kingSq][mv.To()] != d {
		return
	}
	if g.checkers == 1 && !g.checkPath[mv.To()] {
		return
	}
	g.ml = append(g.ml, OrderedMove{Move: mv})
}

func (g *moveGenerator) genKingMoves() {
	var p = g.p
	var us = p.WhiteMove
	for _, d := range kingDeltas {
		var to = g.kingSq + d
		var target = int(p.board[to])
		if target == offBoard || g.attacked[to] != 0 {
			continue
		}
		if target == Empty {
			if !g.capturesOnly {
				g.ml = append(g.ml, OrderedMove{Move: makeMove(g.kingSq, to, King, Empty)})
			}
			continue
		}
		if _, side := GetPieceTypeAndSide(target); side != us {
			var pieceType, _ = GetPieceTypeAndSide(target)
			g.ml = append(g.ml, OrderedMove{Move: makeMove(g.kingSq, to, King, pieceType)})
		}
	}
}

func (g *moveGenerator) genCastling() {
	var p = g.p
	if p.WhiteMove {
		if p.CastleRights&WhiteKingSide != 0 &&
			p.board[SquareF1] == int8(Empty) && p.board[SquareG1] == int8(Empty) &&
			g.attacked[SquareF1] == 0 && g.attacked[SquareG1] == 0 {
			g.ml = append(g.ml, OrderedMove{Move: whiteKingSideCastle})
		}
		if p.CastleRights&WhiteQueenSide != 0 &&
			p.board[SquareD1] == int8(Empty) && p.board[SquareC1] == int8(Empty) &&
			p.board[SquareB1] == int8(Empty) &&
			g.attacked[SquareD1] == 0 && g.attacked[SquareC1] == 0 {
			g.ml = append(g.ml, OrderedMove{Move: whiteQueenSideCastle})
		}
	} else {
		if p.CastleRights&BlackKingSide != 0 &&
			p.board[SquareF8] == int8(Empty) && p.board[SquareG8] == int8(Empty) &&
			g.attacked[SquareF8] == 0 && g.attacked[SquareG8] == 0 {
			g.ml = append(g.ml, OrderedMove{Move: blackKingSideCastle})
		}
		if p.CastleRights&BlackQueenSide != 0 &&
			p.board[SquareD8] == int8(Empty) && p.board[SquareC8] == int8(Empty) &&
			p.board[SquareB8] == int8(Empty) &&
			g.attacked[SquareD8] == 0 && g.attacked[SquareC8] == 0 {
			g.ml = append(g.ml, OrderedMove{Move: blackQueenSideCastle})
		}
	}
}

func (g *moveGenerator) genKnightMoves() {
	var p = g.p
	var us = p.WhiteMove
	var knight = MakePiece(Knight, us)
	for i := 0; i < p.PieceCount(knight); i++ {
		var from = p.PieceSquare(knight, i)
		// a pinned knight has no legal moves
		if g.pinDir[from] != 0 {
			continue
		}
		for _, d := range knightDeltas {
			var to = from + d
			var target = int(p.board[to])
			if target == offBoard {
				continue
			}
			if target == Empty {
				if !g.capturesOnly {
					g.add(makeMove(from, to, Knight, Empty))
				}
				continue
			}
			if pieceType, side := GetPieceTypeAndSide(target); side != us {
				g.add(makeMove(from, to, Knight, pieceType))
			}
		}
	}
}

func (g *moveGenerator) genSliderMoves(piece int, deltas []int) {
	var p = g.p
	var us = p.WhiteMove
	var pc = MakePiece(piece, us)
	for i := 0; i < p.PieceCount(pc); i++ {
		var from = p.PieceSquare(pc, i)
		for _, d := range deltas {
			for to := from + d; ; to += d {
				var target = int(p.board[to])
				if target == offBoard {
					break
				}
				if target == Empty {
					if !g.capturesOnly {
						g.add(makeMove(from, to, piece, Empty))
					}
					continue
				}
				if pieceType, side := GetPieceTypeAndSide(target); side != us {
					g.add(makeMove(from, to, piece, pieceType))
				}
				break
			}
		}
	}
}

func (g *moveGenerator) addPromotions(from, to, captured int) {
	for _, promotion := range [4]int{Queen, Rook, Bishop, Knight} {
		g.add(makePawnMove(from, to, captured, promotion))
	}
}

// addEnPassant validates the capture by applying it and testing the
// king, the one case the pin filter cannot express because two pawns
// leave the rank at once.
func (g *moveGenerator) addEnPassant(mv Move) {
	var p = g.p
	var us = p.WhiteMove
	p.MakeMove(mv)
	var legal = !p.isAttacked(p.KingSquare(us), !us)
	p.UnmakeMove()
	if legal {
		g.ml = append(g.ml, OrderedMove{Move: mv})
	}
}

func (g *moveGenerator) genPawnMoves() {
	var p = g.p
	var us = p.WhiteMove
	var pawn = MakePiece(Pawn, us)
	var step = -10
	var homeRank = Rank2
	var promotionRank = Rank8
	if !us {
		step = 10
		homeRank = Rank7
		promotionRank = Rank1
	}
	for i := 0; i < p.PieceCount(pawn); i++ {
		var from = p.PieceSquare(pawn, i)

		for _, d := range [2]int{step - 1, step + 1} {
			var to = from + d
			var target = int(p.board[to])
			if target == offBoard {
				continue
			}
			if to == p.EpSquare {
				g.addEnPassant(makePawnMove(from, to, Pawn, Empty) ^ moveFlagEnPassant)
				continue
			}
			if target == Empty {
				continue
			}
			if pieceType, side := GetPieceTypeAndSide(target); side != us {
				if Rank(to) == promotionRank {
					g.addPromotions(from, to, pieceType)
				} else {
					g.add(makePawnMove(from, to, pieceType, Empty))
				}
			}
		}

		var to = from + step
		if p.board[to] == int8(Empty) {
			if Rank(to) == promotionRank {
				g.addPromotions(from, to, Empty)
			} else if !g.capturesOnly {
				g.add(makePawnMove(from, to, Empty, Empty))
				if Rank(from) == homeRank && p.board[from+2*step] == int8(Empty) {
					g.add(makePawnMove(from, from+2*step, Empty, Empty) ^ moveFlagDoublePush)
				}
			}
		}
	}
}
