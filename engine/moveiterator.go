package engine

import . "github.com/sentinelchess/sentinel/common"

const sortTableKeyImportant = 100000

// moveIterator yields legal moves best-first: hash move, then winning
// captures by MVV-LVA, killers, and finally quiets by history score.
// Only the first couple of picks matter at most nodes, so the tail is
// sorted lazily.
type moveIterator struct {
	buffer []OrderedMove
	count  int
	index  int
}

func (e *Engine) initMoveIterator(height int, ttMove Move) moveIterator {
	var position = &e.position
	var buffer = e.stack[height].moveList[:]
	var count = len(position.GenerateMoves(buffer))
	var killer1 = e.stack[height].killer1
	var killer2 = e.stack[height].killer2
	var side = position.WhiteMove

	for i := 0; i < count; i++ {
		var m = buffer[i].Move
		var score int
		if m == ttMove {
			score = sortTableKeyImportant + 2000
		} else if m.IsCaptureOrPromotion() {
			score = sortTableKeyImportant + 1000 + mvvlva(m)
		} else if m == killer1 {
			score = sortTableKeyImportant + 1
		} else if m == killer2 {
			score = sortTableKeyImportant
		} else {
			score = e.history.Score(m, side)
		}
		buffer[i].Key = score
	}

	return moveIterator{buffer: buffer, count: count}
}

func (mi *moveIterator) Reset() {
	mi.index = 0
}

func (mi *moveIterator) Next() Move {
	if mi.index >= mi.count {
		return MoveEmpty
	}
	const sortMovesIndex = 1
	if mi.index <= sortMovesIndex {
		if mi.index == sortMovesIndex {
			sortMoves(mi.buffer[mi.index:mi.count])
		} else {
			moveToTop(mi.buffer[mi.index:mi.count])
		}
	}
	var m = mi.buffer[mi.index].Move
	mi.index++
	return m
}

var sortPieceValues = [...]int{Empty: 0, Pawn: 1, Knight: 2, Bishop: 3, Rook: 4, Queen: 5, King: 6}

func mvvlva(move Move) int {
	return 8*(sortPieceValues[move.CapturedPiece()]+
		sortPieceValues[move.Promotion()]) -
		sortPieceValues[move.MovingPiece()]
}

func sortMoves(moves []OrderedMove) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}

func moveToTop(ml []OrderedMove) {
	var bestIndex = 0
	for i := 1; i < len(ml); i++ {
		if ml[i].Key > ml[bestIndex].Key {
			bestIndex = i
		}
	}
	if bestIndex != 0 {
		ml[0], ml[bestIndex] = ml[bestIndex], ml[0]
	}
}
