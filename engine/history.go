package engine

import . "github.com/sentinelchess/sentinel/common"

const historyMax = 1 << 14

// historyTable scores quiet moves by [piece][destination]. Cutoff moves
// earn a depth-squared bonus; the table lives for one search call.
type historyTable struct {
	scores [14][120]int
}

func (h *historyTable) index(move Move, side bool) (int, int) {
	return MakePiece(move.MovingPiece(), side), move.To()
}

func (h *historyTable) Score(move Move, side bool) int {
	var piece, to = h.index(move, side)
	return h.scores[piece][to]
}

func (h *historyTable) Update(move Move, side bool, depth int) {
	var piece, to = h.index(move, side)
	h.scores[piece][to] += depth * depth
	if h.scores[piece][to] > historyMax {
		h.scores[piece][to] = historyMax
	}
}

func (h *historyTable) Clear() {
	for piece := range h.scores {
		for to := range h.scores[piece] {
			h.scores[piece][to] = 0
		}
	}
}
