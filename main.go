package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/sentinelchess/sentinel/book"
	"github.com/sentinelchess/sentinel/engine"
	"github.com/sentinelchess/sentinel/shell"
)

const (
	name   = "Sentinel"
	author = "Sentinel authors"
)

var (
	versionName = "dev"
	flgBook     string
	flgNoBook   bool
)

func main() {
	flag.StringVar(&flgBook, "book", "book.bin", "path to a polyglot opening book")
	flag.BoolVar(&flgNoBook, "nobook", false, "disable the opening book")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	logger.Info().
		Str("version", versionName).
		Str("runtime", runtime.Version()).
		Str("goos", runtime.GOOS).
		Str("goarch", runtime.GOARCH).
		Msg(name)

	var eng = engine.NewEngine(engine.NewEvaluationService())
	if !flgNoBook {
		if b, err := book.Open(flgBook); err != nil {
			logger.Warn().Err(err).Str("path", flgBook).
				Msg("opening book not loaded")
		} else {
			logger.Info().Str("path", flgBook).Msg("opening book loaded")
			eng.SetBook(b)
		}
	}

	var protocol = shell.New(name, author, versionName, logger, eng,
		[]shell.Option{
			&shell.IntOption{Name: "Hash", Min: 4, Max: 1 << 16, Value: &eng.Hash},
			&shell.BoolOption{Name: "OwnBook", Value: &eng.OwnBook},
		},
	)
	protocol.Run()
}
