package engine

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/sentinelchess/sentinel/common"
)

func searchPosition(t *testing.T, fen string, limits LimitsType) SearchInfo {
	t.Helper()
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(fen, err)
	}
	var e = NewEngine(NewEvaluationService())
	return e.Search(context.Background(), SearchParams{
		Positions: []Position{p},
		Limits:    limits,
	})
}

func TestSearchDeterministic(t *testing.T) {
	var fens = []string{
		InitialPositionFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		for _, limits := range []LimitsType{{Depth: 6}, {Nodes: 20000}} {
			var first = searchPosition(t, fen, limits)
			var second = searchPosition(t, fen, limits)
			if diff := cmp.Diff(first.MainLine, second.MainLine); diff != "" {
				t.Errorf("%v main line mismatch (-first +second):\n%v", fen, diff)
			}
			if first.Score != second.Score {
				t.Errorf("%v score mismatch: %v %v", fen, first.Score, second.Score)
			}
			if first.Nodes != second.Nodes {
				t.Errorf("%v node count mismatch: %v %v", fen, first.Nodes, second.Nodes)
			}
		}
	}
}

func TestSearchMateInOne(t *testing.T) {
	var si = searchPosition(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		LimitsType{Depth: 4})
	if si.Score.Mate != 1 {
		t.Errorf("expected mate in 1, got %+v", si.Score)
	}
	if len(si.MainLine) == 0 || si.MainLine[0].String() != "a1a8" {
		t.Errorf("expected a1a8, got %v", si.MainLine)
	}
}

func TestSearchMateInTwo(t *testing.T) {
	// Qg8+ Rxg8 Nf7#
	var si = searchPosition(t, "3qr2k/pbpp2pp/1p5N/3Q2b1/2P1P3/P7/1PP2PPP/R4RK1 w - - 0 1",
		LimitsType{Depth: 6})
	if si.Score.Mate != 2 {
		t.Errorf("expected mate in 2, got %+v", si.Score)
	}
	if len(si.MainLine) == 0 || si.MainLine[0].String() != "d5g8" {
		t.Errorf("expected d5g8, got %v", si.MainLine)
	}
}

func TestSearchTerminalPositions(t *testing.T) {
	for _, test := range []string{
		// checkmated
		"R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1",
		// stalemated
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
	} {
		var si = searchPosition(t, test, LimitsType{Depth: 3})
		if len(si.MainLine) != 0 {
			t.Errorf("%v: expected empty main line, got %v", test, si.MainLine)
		}
	}
}

func TestSearchSingleReply(t *testing.T) {
	// the checked king has exactly one evasion, no search needed
	var si = searchPosition(t, "7k/R7/8/8/8/8/8/6KR b - - 0 1",
		LimitsType{Depth: 10})
	if si.Nodes != 0 {
		t.Errorf("expected no nodes searched, got %v", si.Nodes)
	}
	if len(si.MainLine) != 1 || si.MainLine[0].String() != "h8g8" {
		t.Errorf("expected h8g8, got %v", si.MainLine)
	}
}

func TestSearchWinningScore(t *testing.T) {
	var si = searchPosition(t, "6k1/8/8/8/8/8/8/QK6 w - - 0 1",
		LimitsType{Depth: 8})
	if si.Score.Centipawns <= 0 && si.Score.Mate <= 0 {
		t.Errorf("winning side settled for %+v", si.Score)
	}
}

type fixedBook struct {
	move Move
}

func (b *fixedBook) Find(p *Position) (Move, bool) {
	return b.move, b.move != MoveEmpty
}

func TestBookShortCircuit(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var legal = p.GenerateLegalMoves()
	if len(legal) == 0 {
		t.Fatal("no legal moves in the initial position")
	}

	var e = NewEngine(NewEvaluationService())
	e.SetBook(&fixedBook{move: legal[0]})
	var si = e.Search(context.Background(), SearchParams{
		Positions: []Position{p},
		Limits:    LimitsType{Depth: 5},
	})
	if !si.BookMove {
		t.Error("expected a book move")
	}
	if si.Nodes != 0 || si.Depth != 0 {
		t.Errorf("book hit should not search: nodes=%v depth=%v", si.Nodes, si.Depth)
	}
	if len(si.MainLine) != 1 || si.MainLine[0] != legal[0] {
		t.Errorf("expected %v, got %v", legal[0], si.MainLine)
	}

	// a missing book entry must fall through to the search
	e.SetBook(&fixedBook{})
	si = e.Search(context.Background(), SearchParams{
		Positions: []Position{p},
		Limits:    LimitsType{Depth: 3},
	})
	if si.BookMove {
		t.Error("book miss reported as a hit")
	}
	if si.Nodes == 0 {
		t.Error("book miss should search")
	}
}

func TestBookDisabled(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var e = NewEngine(NewEvaluationService())
	e.SetBook(&fixedBook{move: p.GenerateLegalMoves()[0]})
	e.OwnBook = false
	var si = e.Search(context.Background(), SearchParams{
		Positions: []Position{p},
		Limits:    LimitsType{Depth: 3},
	})
	if si.BookMove {
		t.Error("book consulted while disabled")
	}
	if si.Nodes == 0 {
		t.Error("disabled book should still search")
	}
}

func TestSearchNodeLimit(t *testing.T) {
	var si = searchPosition(t, InitialPositionFen, LimitsType{Nodes: 5000})
	if si.Nodes > 10000 {
		t.Errorf("node limit ignored: %v", si.Nodes)
	}
	if len(si.MainLine) == 0 {
		t.Error("expected a best move")
	}
}
