// Benchmark tool: searches a fixed suite of positions to a fixed depth
// and reports node counts and speed. Positions run in parallel, each
// worker with its own engine.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sentinelchess/sentinel/common"
	"github.com/sentinelchess/sentinel/engine"
)

var benchFENs = []string{
	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"2rqkb1r/p1pnpppp/3p3n/3B4/2BPP3/1QP5/PP3PPP/RN2K1NR w KQk - 0 1",
	"1rr3k1/4ppb1/2q1bnp1/1p2B1Q1/6P1/2p2P2/2P1B2R/2K4R w - - 0 1",
	"8/K5p1/1P1k1p1p/5P1P/2R3P1/8/8/8 b - - 0 78",
	"8/1P6/5ppp/3k1P1P/6P1/8/1K6/8 w - - 0 78",
}

var (
	flgDepth       int
	flgHash        int
	flgConcurrency int
)

func main() {
	flag.IntVar(&flgDepth, "depth", 10, "search depth per position")
	flag.IntVar(&flgHash, "hash", 16, "transposition table size in MB")
	flag.IntVar(&flgConcurrency, "concurrency", runtime.NumCPU(), "parallel searches")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	var err = run(context.Background(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("bench failed")
	}
}

func run(ctx context.Context, logger zerolog.Logger) error {
	logger.Info().
		Int("positions", len(benchFENs)).
		Int("depth", flgDepth).
		Int("concurrency", flgConcurrency).
		Msg("bench started")

	var start = time.Now()
	var totalNodes int64

	var g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(flgConcurrency)
	for _, fen := range benchFENs {
		var fen = fen
		g.Go(func() error {
			var p, err = common.NewPositionFromFEN(fen)
			if err != nil {
				return err
			}
			var eng = engine.NewEngine(engine.NewEvaluationService())
			eng.Hash = flgHash
			var si = eng.Search(gctx, common.SearchParams{
				Positions: []common.Position{p},
				Limits:    common.LimitsType{Depth: flgDepth},
			})
			atomic.AddInt64(&totalNodes, si.Nodes)
			logger.Info().
				Str("fen", fen).
				Int("depth", si.Depth).
				Int64("nodes", si.Nodes).
				Int64("time", si.Time).
				Msg("position done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var elapsed = time.Since(start)
	logger.Info().
		Int64("nodes", totalNodes).
		Dur("elapsed", elapsed).
		Int64("nps", totalNodes*1000/(elapsed.Milliseconds()+1)).
		Msg("bench finished")
	return nil
}
