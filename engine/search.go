package engine

import (
	. "github.com/sentinelchess/sentinel/common"
)

func (e *Engine) searchRoot(ml []Move, depth int) int {
	const height = 0
	e.clearPV(height)
	var alpha = -valueInfinity
	const beta = valueInfinity
	var best = -valueInfinity
	var bestMove Move
	for i, move := range ml {
		e.makeMove(move, height)
		var score int
		if i == 0 {
			score = -e.alphaBeta(-beta, -alpha, depth-1, height+1)
		} else {
			score = -e.alphaBeta(-(alpha + 1), -alpha, depth-1, height+1)
			if score > alpha {
				score = -e.alphaBeta(-beta, -alpha, depth-1, height+1)
			}
		}
		e.unmakeMove()
		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			e.assignPV(height, move)
		}
	}
	e.transTable.Update(e.position.Key, depth, valueToTT(best, height), boundExact, bestMove)
	return best
}

func (e *Engine) alphaBeta(alpha, beta, depth, height int) int {
	if depth <= 0 {
		return e.quiescence(alpha, beta, height, 0)
	}
	e.clearPV(height)

	var pvNode = beta != alpha+1
	var position = &e.position

	if height >= maxHeight {
		return e.evaluator.Evaluate(position)
	}
	if position.Rule50 >= 100 || e.isRepeat(height) {
		return valueDraw
	}
	// mate distance pruning
	if winIn(height+1) <= alpha {
		return alpha
	}
	var isCheck = position.IsCheck()
	if lossIn(height+2) >= beta && !isCheck {
		return beta
	}

	var ttDepth, ttValue, ttBound, ttMove, ttHit = e.transTable.Read(position.Key)
	if ttHit {
		ttValue = valueFromTT(ttValue, height)
		if ttDepth >= depth && !pvNode {
			if ttBound == boundExact ||
				ttBound&boundLower != 0 && ttValue >= beta ||
				ttBound&boundUpper != 0 && ttValue <= alpha {
				if ttValue >= beta && ttMove != MoveEmpty && !ttMove.IsCaptureOrPromotion() {
					e.updateKiller(ttMove, height)
				}
				return ttValue
			}
		}
	}

	var mi = e.initMoveIterator(height, ttMove)
	if mi.count == 0 {
		if isCheck {
			return lossIn(height)
		}
		return valueDraw
	}

	var futility = depth <= 2 && !isCheck && !pvNode
	var staticEval = 0
	if futility {
		staticEval = e.evaluator.Evaluate(position)
	}

	if height+2 <= maxHeight {
		e.stack[height+2].killer1 = MoveEmpty
		e.stack[height+2].killer2 = MoveEmpty
	}

	var best = -valueInfinity
	var bestMove Move
	var oldAlpha = alpha
	var movesSearched = 0

	for mi.Reset(); ; {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		var quiet = !move.IsCaptureOrPromotion()

		// futility pruning at frontier depths, never on the first move
		// so a real score always reaches the table
		if futility && quiet && movesSearched > 0 &&
			staticEval+futilityMargins[depth] <= alpha {
			continue
		}

		e.makeMove(move, height)
		movesSearched++
		var givesCheck = position.IsCheck()

		var reduction = 0
		if depth >= 3 && movesSearched > 3 && quiet && !isCheck && !givesCheck {
			reduction = 1
			if depth >= 6 && movesSearched > 12 {
				reduction = 2
			}
		}

		var score int
		if movesSearched == 1 {
			score = -e.alphaBeta(-beta, -alpha, depth-1, height+1)
		} else {
			score = -e.alphaBeta(-(alpha + 1), -alpha, depth-1-reduction, height+1)
			if score > alpha && reduction > 0 {
				score = -e.alphaBeta(-(alpha + 1), -alpha, depth-1, height+1)
			}
			if score > alpha && pvNode {
				score = -e.alphaBeta(-beta, -alpha, depth-1, height+1)
			}
		}
		e.unmakeMove()

		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			e.assignPV(height, move)
			if alpha >= beta {
				if quiet {
					e.updateKiller(move, height)
					e.history.Update(move, position.WhiteMove, depth)
				}
				break
			}
		}
	}

	var bound = 0
	if best > oldAlpha {
		bound |= boundLower
	}
	if best < beta {
		bound |= boundUpper
	}
	e.transTable.Update(position.Key, depth, valueToTT(best, height), bound, bestMove)

	return best
}

func (e *Engine) quiescence(alpha, beta, height, qdepth int) int {
	e.clearPV(height)
	var position = &e.position

	if height >= maxHeight {
		return e.evaluator.Evaluate(position)
	}
	if position.Rule50 >= 100 || e.isRepeat(height) {
		return valueDraw
	}

	var isCheck = position.IsCheck()
	var ml = position.GenerateMoves(e.stack[height].moveList[:])
	if len(ml) == 0 {
		if isCheck {
			return lossIn(height)
		}
		return valueDraw
	}

	var best = -valueInfinity
	var staticEval = 0
	if !isCheck {
		staticEval = e.evaluator.Evaluate(position)
		best = staticEval
		if staticEval > alpha {
			alpha = staticEval
			if alpha >= beta {
				return staticEval
			}
		}
	}
	if qdepth >= maxQDepth {
		if isCheck {
			return e.evaluator.Evaluate(position)
		}
		return best
	}

	if !isCheck {
		// keep captures and promotions only; in check every evasion is
		// searched
		var count = 0
		for i := range ml {
			if ml[i].Move.IsCaptureOrPromotion() {
				ml[count] = ml[i]
				count++
			}
		}
		ml = ml[:count]
	}
	for i := range ml {
		ml[i].Key = mvvlva(ml[i].Move)
	}
	sortMoves(ml)

	for i := range ml {
		var move = ml[i].Move

		// delta pruning: even winning the captured piece plus a margin
		// cannot lift the stand-pat score to alpha
		if !isCheck && move.CapturedPiece() != Empty && move.Promotion() == Empty &&
			staticEval+materialValues[move.CapturedPiece()]+deltaMargin <= alpha {
			continue
		}

		e.makeMove(move, height)
		var score = -e.quiescence(-beta, -alpha, height+1, qdepth+1)
		e.unmakeMove()

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			e.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}
	return best
}

func (e *Engine) isRepeat(height int) bool {
	var p = &e.position
	if p.Rule50 == 0 {
		return false
	}
	for i := height - 1; i >= 0 && i >= height-p.Rule50; i-- {
		if e.stack[i].key == p.Key {
			return true
		}
	}
	return e.historyKeys[p.Key] >= 2
}
