package common

import (
	"testing"
)

func containsMove(ml []Move, lan string) bool {
	for _, mv := range ml {
		if mv.String() == lan {
			return true
		}
	}
	return false
}

func TestOpeningScenario(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	for _, lan := range []string{"e2e4", "e7e5"} {
		if !p.MakeMoveLAN(lan) {
			t.Fatal("legal move rejected:", lan)
		}
	}
	var ml = p.GenerateLegalMoves()
	if !containsMove(ml, "g1f3") {
		t.Error("g1f3 missing after 1.e4 e5")
	}
	if containsMove(ml, "e1e2") {
		t.Error("e1e2 generated after 1.e4 e5")
	}
}

func TestCheckmateStalemate(t *testing.T) {
	var tests = []struct {
		fen   string
		check bool
	}{
		// back rank mate
		{"R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", true},
		// fool's mate
		{"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true},
		// classic stalemates
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false},
		{"k7/P7/K7/8/8/8/8/8 b - - 0 1", false},
	}
	for _, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(test.fen, err)
		}
		if ml := p.GenerateLegalMoves(); len(ml) != 0 {
			t.Errorf("%v: expected no legal moves, got %v", test.fen, ml)
		}
		if got := p.IsCheck(); got != test.check {
			t.Errorf("%v: IsCheck() = %v", test.fen, got)
		}
	}
}

func TestCheckEvasions(t *testing.T) {
	// rook check on the e-file: block or step aside
	var p, err = NewPositionFromFEN("4r2k/8/8/8/8/8/3P1P2/2Q1K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ml = p.GenerateLegalMoves()
	for _, want := range []string{"e1d1", "e1f1"} {
		if !containsMove(ml, want) {
			t.Errorf("evasion %v missing from %v", want, ml)
		}
	}
	for _, bad := range []string{"d2d4", "f2f4", "c1b2", "e1e2"} {
		if containsMove(ml, bad) {
			t.Errorf("%v does not address the check", bad)
		}
	}
}

func TestKingCannotRetreatAlongCheckRay(t *testing.T) {
	var p, err = NewPositionFromFEN("4k3/8/8/8/8/8/8/r3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ml = p.GenerateLegalMoves()
	if containsMove(ml, "e1f1") {
		t.Error("king retreat along the checking ray generated")
	}
	for _, want := range []string{"e1e2", "e1d2", "e1f2"} {
		if !containsMove(ml, want) {
			t.Errorf("evasion %v missing", want)
		}
	}
}

func TestPinnedPieces(t *testing.T) {
	// the d-pawn is pinned diagonally, the knight on the file
	var p, err = NewPositionFromFEN("7k/4q3/8/8/1b6/4N3/3P4/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ml = p.GenerateLegalMoves()
	for _, mv := range ml {
		if mv.From() == SquareD2 {
			t.Errorf("pinned pawn moved: %v", mv)
		}
		if mv.MovingPiece() == Knight {
			t.Errorf("pinned knight moved: %v", mv)
		}
	}
}

func TestPinnedSliderMovesAlongRay(t *testing.T) {
	var p, err = NewPositionFromFEN("4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ml = p.GenerateLegalMoves()
	for _, want := range []string{"e2e3", "e2e7"} {
		if !containsMove(ml, want) {
			t.Errorf("pinned rook move along the ray missing: %v", want)
		}
	}
	if containsMove(ml, "e2d2") || containsMove(ml, "e2a2") {
		t.Error("pinned rook left its ray")
	}
}

func TestEnPassantPin(t *testing.T) {
	// capturing en passant would remove both pawns from the fifth rank
	// and expose the king to the rook
	var p, err = NewPositionFromFEN("8/8/8/KPp4r/8/8/8/4k3 w - c6 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if containsMove(p.GenerateLegalMoves(), "b5c6") {
		t.Error("en passant capture exposing the king generated")
	}

	// same shape without the rook: the capture is legal
	var p2, err2 = NewPositionFromFEN("8/8/8/KPp5/8/8/8/4k3 w - c6 0 1")
	if err2 != nil {
		t.Fatal(err2)
	}
	if !containsMove(p2.GenerateLegalMoves(), "b5c6") {
		t.Error("legal en passant capture missing")
	}
}

func TestCastlingLegality(t *testing.T) {
	var tests = []struct {
		fen      string
		lan      string
		expected bool
	}{
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", true},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", true},
		{"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8g8", true},
		{"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", true},
		// no rights
		{"r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1", "e1g1", false},
		// f1 attacked
		{"r3k2r/8/5r2/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", false},
		// in check
		{"r3k2r/8/4r3/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", false},
		// path occupied
		{"r3k2r/8/8/8/8/8/8/R2QK2R w KQkq - 0 1", "e1c1", false},
		// b1 only blocks queenside when occupied, never kingside
		{"r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", "e1c1", false},
	}
	for _, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(test.fen, err)
		}
		if got := containsMove(p.GenerateLegalMoves(), test.lan); got != test.expected {
			t.Errorf("%v: %v generated=%v, want %v", test.fen, test.lan, got, test.expected)
		}
	}
}

func TestGenerateCaptures(t *testing.T) {
	var p, err = NewPositionFromFEN("r3k3/6P1/8/3p4/4B3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var buffer [MaxMoves]OrderedMove
	var ml = p.GenerateCaptures(buffer[:])
	for _, om := range ml {
		if !om.Move.IsCaptureOrPromotion() {
			t.Errorf("quiet move in capture list: %v", om.Move)
		}
	}
	var lans = make([]string, 0, len(ml))
	for _, om := range ml {
		lans = append(lans, om.Move.String())
	}
	for _, want := range []string{"e4d5", "g7g8q", "g7g8n"} {
		var found = false
		for _, lan := range lans {
			if lan == want {
				found = true
			}
		}
		if !found {
			t.Errorf("capture/promotion %v missing from %v", want, lans)
		}
	}
}
