package engine

import (
	"context"
	"errors"
	"runtime"
	"time"

	. "github.com/sentinelchess/sentinel/common"
)

var errSearchTimeout = errors.New("search timeout")

// bookPlyLimit keeps the engine out of the book once the game has left
// known opening theory.
const bookPlyLimit = 20

type Engine struct {
	Hash             int
	OwnBook          bool
	MaxDepth         int
	ProgressMinNodes int
	evaluator        Evaluator
	book             OpeningBook
	timeManager      *timeManager
	transTable       *transTable
	historyKeys      map[uint64]int
	history          historyTable
	progress         func(SearchInfo)
	mainLine         mainLine
	start            time.Time
	nodes            int64
	position         Position
	stack            [stackSize]struct {
		moveList [MaxMoves]OrderedMove
		pv       pv
		killer1  Move
		killer2  Move
		key      uint64
	}
}

type pv struct {
	items [stackSize]Move
	size  int
}

type mainLine struct {
	moves []Move
	score int
	depth int
}

type Evaluator interface {
	Evaluate(p *Position) int
}

// OpeningBook resolves a position to a known-good move, or reports a
// miss. A nil book always misses.
type OpeningBook interface {
	Find(p *Position) (Move, bool)
}

func NewEngine(evaluator Evaluator) *Engine {
	return &Engine{
		Hash:             16,
		OwnBook:          true,
		MaxDepth:         maxHeight,
		ProgressMinNodes: 200000,
		evaluator:        evaluator,
	}
}

func (e *Engine) SetBook(book OpeningBook) {
	e.book = book
}

func (e *Engine) Prepare() {
	if e.transTable == nil || e.transTable.Size() != e.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(e.Hash)
	}
}

func (e *Engine) Search(ctx context.Context, searchParams SearchParams) SearchInfo {
	e.start = time.Now()
	e.Prepare()
	var p = &searchParams.Positions[len(searchParams.Positions)-1]

	if e.OwnBook && e.book != nil && p.Ply < bookPlyLimit {
		if move, found := e.book.Find(p); found {
			return SearchInfo{
				MainLine: []Move{move},
				BookMove: true,
				Time:     time.Since(e.start).Milliseconds(),
			}
		}
	}

	e.timeManager = newTimeManager(ctx, e.start, searchParams.Limits, p)
	defer e.timeManager.Close()
	e.transTable.IncDate()
	e.historyKeys = getHistoryKeys(searchParams.Positions)
	e.history.Clear()
	e.nodes = 0
	e.progress = searchParams.Progress
	e.position = p.Clone()
	e.mainLine = mainLine{}
	for h := range e.stack {
		e.stack[h].killer1 = MoveEmpty
		e.stack[h].killer2 = MoveEmpty
		e.stack[h].pv.clear()
	}
	e.stack[0].key = e.position.Key
	e.iterateDeepening()
	return e.currentSearchResult()
}

func getHistoryKeys(positions []Position) map[uint64]int {
	var result = make(map[uint64]int)
	for i := len(positions) - 1; i >= 0; i-- {
		var p = &positions[i]
		result[p.Key]++
		if p.Rule50 == 0 {
			break
		}
	}
	return result
}

func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
	e.history.Clear()
}

func (e *Engine) currentSearchResult() SearchInfo {
	return SearchInfo{
		Depth:    e.mainLine.depth,
		MainLine: e.mainLine.moves,
		Score:    newUciScore(e.mainLine.score),
		Nodes:    e.nodes,
		Time:     time.Since(e.start).Milliseconds(),
	}
}

// iterateDeepening runs depth 1, 2, ... under the time manager. The
// answer always comes from the last fully completed iteration; a
// timeout unwinds the partial search through errSearchTimeout.
func (e *Engine) iterateDeepening() {
	var ml = e.genRootMoves()
	if len(ml) != 0 {
		e.mainLine = mainLine{
			depth: 0,
			score: 0,
			moves: []Move{ml[0]},
		}
	}
	if len(ml) <= 1 {
		return
	}

	defer func() {
		if r := recover(); r != nil && r != errSearchTimeout {
			panic(r)
		}
	}()

	for depth := 1; depth <= Min(e.MaxDepth, maxHeight); depth++ {
		if index := findMoveIndex(ml, e.mainLine.moves[0]); index > 0 {
			moveToBegin(ml, index)
		}
		var score = e.searchRoot(ml, depth)
		e.mainLine = mainLine{
			depth: depth,
			score: score,
			moves: e.stack[0].pv.toSlice(),
		}
		e.timeManager.OnIterationComplete(e.mainLine)
		if e.timeManager.IsDone() {
			break
		}
		if e.progress != nil && e.nodes >= int64(e.ProgressMinNodes) {
			e.progress(e.currentSearchResult())
		}
	}
}

func (e *Engine) genRootMoves() []Move {
	const height = 0
	var _, _, _, ttMove, _ = e.transTable.Read(e.position.Key)
	var mi = e.initMoveIterator(height, ttMove)
	var result []Move
	for mi.Reset(); ; {
		var move = mi.Next()
		if move == MoveEmpty {
			break
		}
		result = append(result, move)
	}
	return result
}

func (e *Engine) updateKiller(move Move, height int) {
	if e.stack[height].killer1 != move {
		e.stack[height].killer2 = e.stack[height].killer1
		e.stack[height].killer1 = move
	}
}

func (e *Engine) makeMove(move Move, height int) {
	e.position.MakeMove(move)
	e.stack[height+1].key = e.position.Key
	e.incNodes()
}

func (e *Engine) unmakeMove() {
	e.position.UnmakeMove()
}

func (e *Engine) incNodes() {
	e.nodes++
	if e.nodes&255 == 0 {
		e.timeManager.OnNodesChanged(int(e.nodes))
		if e.timeManager.IsDone() {
			panic(errSearchTimeout)
		}
	}
}

func (e *Engine) clearPV(height int) {
	e.stack[height].pv.clear()
}

func (e *Engine) assignPV(height int, move Move) {
	e.stack[height].pv.assign(move, &e.stack[height+1].pv)
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}
