package common

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testFENs = []string{
	InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
	"8/8/8/8/8/5k2/7p/7K w - - 0 1",
}

// positionState is everything make/unmake must restore. Piece lists are
// compared as sets: a capture and its revert may reorder the entries.
type positionState struct {
	Board        [boardSize]int8
	Pieces       map[int][]int
	WhiteMove    bool
	CastleRights int
	EpSquare     int
	Rule50       int
	Ply          int
	Key          uint64
	LastMove     Move
}

func captureState(p *Position) positionState {
	var pieces = make(map[int][]int)
	for piece := Pawn; piece <= King; piece++ {
		for _, side := range [2]bool{true, false} {
			var pc = MakePiece(piece, side)
			var squares []int
			for i := 0; i < p.PieceCount(pc); i++ {
				squares = append(squares, p.PieceSquare(pc, i))
			}
			sort.Ints(squares)
			pieces[pc] = squares
		}
	}
	return positionState{
		Board:        p.board,
		Pieces:       pieces,
		WhiteMove:    p.WhiteMove,
		CastleRights: p.CastleRights,
		EpSquare:     p.EpSquare,
		Rule50:       p.Rule50,
		Ply:          p.Ply,
		Key:          p.Key,
		LastMove:     p.LastMove,
	}
}

func TestMakeUnmakeMove(t *testing.T) {
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		var before = captureState(&p)
		var buffer [MaxMoves]OrderedMove
		for _, om := range p.GenerateMoves(buffer[:]) {
			p.MakeMove(om.Move)
			p.UnmakeMove()
			if diff := cmp.Diff(before, captureState(&p)); diff != "" {
				t.Fatalf("%v %v: state not restored:\n%v", fen, om.Move, diff)
			}
		}
	}
}

func TestRandomWalkReversibility(t *testing.T) {
	var rnd = rand.New(rand.NewSource(42))
	for _, fen := range testFENs {
		var root, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		for iteration := 0; iteration < 20; iteration++ {
			var p = root.Clone()
			var states = []positionState{captureState(&p)}
			var length = 1 + rnd.Intn(50)
			var made = 0
			for i := 0; i < length; i++ {
				var ml = p.GenerateLegalMoves()
				if len(ml) == 0 {
					break
				}
				p.MakeMove(ml[rnd.Intn(len(ml))])
				states = append(states, captureState(&p))
				made++
			}
			for ; made > 0; made-- {
				p.UnmakeMove()
				if diff := cmp.Diff(states[made-1], captureState(&p)); diff != "" {
					t.Fatalf("%v: unwind mismatch at ply %v:\n%v", fen, made-1, diff)
				}
			}
		}
	}
}

func TestIncrementalKey(t *testing.T) {
	var rnd = rand.New(rand.NewSource(7))
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		for i := 0; i < 100; i++ {
			if p.Key != p.ComputeKey() {
				t.Fatalf("%v: incremental key diverged after %v plies", fen, i)
			}
			var ml = p.GenerateLegalMoves()
			if len(ml) == 0 {
				break
			}
			p.MakeMove(ml[rnd.Intn(len(ml))])
		}
	}
}

func TestFenRoundTrip(t *testing.T) {
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		if got := p.String(); got != fen {
			t.Errorf("fen round trip: got %v, want %v", got, fen)
		}
	}
}

func TestFenErrors(t *testing.T) {
	var bad = []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNZ w KQkq - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2K w - - 0 1",
	}
	for _, fen := range bad {
		if _, err := NewPositionFromFEN(fen); err == nil {
			t.Errorf("expected error for %q", fen)
		}
	}
}

func TestMakeMoveLAN(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var before = captureState(&p)
	if p.MakeMoveLAN("e2e5") {
		t.Error("illegal move accepted")
	}
	if p.MakeMoveLAN("e1e2") {
		t.Error("illegal move accepted")
	}
	if diff := cmp.Diff(before, captureState(&p)); diff != "" {
		t.Errorf("position changed by rejected move:\n%v", diff)
	}
	if !p.MakeMoveLAN("e2e4") {
		t.Fatal("legal move rejected")
	}
	if !p.MakeMoveLAN("e7e5") {
		t.Fatal("legal move rejected")
	}
	if p.EpSquare != SquareE6 {
		t.Errorf("ep square: got %v", p.EpSquare)
	}
}

func TestMirrorPosition(t *testing.T) {
	for _, fen := range testFENs {
		var p, err = NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(fen, err)
		}
		var mirrored = MirrorPosition(&p)
		var back = MirrorPosition(&mirrored)
		if diff := cmp.Diff(captureState(&p), captureState(&back)); diff != "" {
			t.Errorf("%v: double mirror is not identity:\n%v", fen, diff)
		}
		if got, want := len(mirrored.GenerateLegalMoves()), len(p.GenerateLegalMoves()); got != want {
			t.Errorf("%v: mirrored move count %v, want %v", fen, got, want)
		}
	}
}

func TestPolyglotKeyEnPassant(t *testing.T) {
	// the ep component only counts when a capture is possible, so these
	// two differ only in whether a black pawn sits next to the pushed pawn
	var p1, err1 = NewPositionFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	var p2, err2 = NewPositionFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if err1 != nil || err2 != nil {
		t.Fatal(err1, err2)
	}
	if p1.PolyglotKey() != p2.PolyglotKey() {
		t.Error("ep square without capturing pawn changed the book key")
	}
	var p3, err3 = NewPositionFromFEN("rnbqkbnr/ppppp1pp/8/8/4Pp2/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	var p4, err4 = NewPositionFromFEN("rnbqkbnr/ppppp1pp/8/8/4Pp2/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if err3 != nil || err4 != nil {
		t.Fatal(err3, err4)
	}
	if p3.PolyglotKey() == p4.PolyglotKey() {
		t.Error("capturable ep square did not change the book key")
	}
}
