package engine

import (
	"testing"

	. "github.com/sentinelchess/sentinel/common"
)

func TestEvalSymmetry(t *testing.T) {
	var e = NewEvaluationService()
	for _, test := range testFENs {
		var p1, err = NewPositionFromFEN(test)
		if err != nil {
			t.Fatal(test, err)
		}
		var score1 = e.Evaluate(&p1)
		var p2 = MirrorPosition(&p1)
		var score2 = e.Evaluate(&p2)
		if score1 != score2 {
			t.Error(test, p2.String(), score1, score2)
		}
	}
}

func TestEvalDeterministic(t *testing.T) {
	var e = NewEvaluationService()
	for _, test := range testFENs {
		var p, err = NewPositionFromFEN(test)
		if err != nil {
			t.Fatal(test, err)
		}
		if e.Evaluate(&p) != e.Evaluate(&p) {
			t.Error(test)
		}
	}
}

func TestEvalMaterial(t *testing.T) {
	var e = NewEvaluationService()

	// an extra queen should dominate every positional term
	var up, err = NewPositionFromFEN("4k3/8/8/8/8/8/3Q4/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if score := e.Evaluate(&up); score < 500 {
		t.Errorf("queen up scored %v", score)
	}
	// and count against the side to move when it belongs to the opponent
	up.WhiteMove = false
	if score := e.Evaluate(&up); score > -500 {
		t.Errorf("queen down scored %v", score)
	}
}

var testFENs = []string{
	// initial position
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	// kiwipete
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	// enpassant
	"8/7p/p5pb/4k3/P1pPn3/8/P5PP/1rB2RK1 b - d3 0 28",
	// endgames
	"8/K5p1/1P1k1p1p/5P1P/2R3P1/8/8/8 b - - 0 78",
	"8/1P6/5ppp/3k1P1P/6P1/8/1K6/8 w - - 0 78",
	"8/8/8/3k4/8/4P3/2P5/4K3 w - - 0 1",
	"4k3/2p5/4p3/8/3K4/8/8/8 b - - 0 1",
	// middlegames
	"2rqkb1r/p1pnpppp/3p3n/3B4/2BPP3/1QP5/PP3PPP/RN2K1NR w KQk - 0 1",
	"1rr3k1/4ppb1/2q1bnp1/1p2B1Q1/6P1/2p2P2/2P1B2R/2K4R w - - 0 1",
	"r2qk2r/pppb1ppp/2np4/1Bb5/4n3/5N2/PPP2PPP/RNBQR1K1 b kq - 1 1",
	"1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1",
	"r3kb2/ppp2pp1/6n1/7Q/8/2P1BN1b/1q2PPB1/3R1K1R b q - 0 1",
	"4k3/p1P3p1/2q1np1p/3N4/8/1Q3PP1/6KP/8 w - - 0 1",
	"3q4/pp3pkp/5npN/2bpr1B1/4r3/2P2Q2/PP3PPP/R4RK1 w - - 0 1",
}
