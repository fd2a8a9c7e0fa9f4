// Package shell implements the UCI text protocol on top of the search
// engine, plus a small interactive console for playing against it.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/sentinelchess/sentinel/common"
)

type Engine interface {
	Prepare()
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

type Protocol struct {
	name      string
	author    string
	version   string
	options   []Option
	engine    Engine
	logger    zerolog.Logger
	positions []common.Position
	thinking  int32
	cancel    context.CancelFunc
}

func New(name, author, version string, logger zerolog.Logger,
	engine Engine, options []Option) *Protocol {

	var initPosition, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	return &Protocol{
		name:      name,
		author:    author,
		version:   version,
		engine:    engine,
		logger:    logger,
		options:   options,
		positions: []common.Position{initPosition},
	}
}

// Run reads commands from stdin until quit or EOF. Command errors are
// logged and never terminate the loop.
func (uci *Protocol) Run() {
	var ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	var scanner = bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var commandLine = scanner.Text()
		if commandLine == "quit" {
			return
		}
		if err := uci.Handle(ctx, commandLine); err != nil {
			uci.logger.Error().
				Err(err).
				Str("command", commandLine).
				Msg("command failed")
		}
	}
}

func (uci *Protocol) Handle(ctx context.Context, commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if atomic.LoadInt32(&uci.thinking) == 1 {
		if commandName == "stop" {
			uci.cancel()
			return nil
		}
		return errors.New("search still run")
	}

	var h func(fields []string) error

	switch commandName {
	case "uci":
		h = uci.uciCommand
	case "setoption":
		h = uci.setOptionCommand
	case "isready":
		h = uci.isReadyCommand
	case "position":
		h = uci.positionCommand
	case "go":
		h = uci.goCommand
	case "ucinewgame":
		h = uci.uciNewGameCommand
	case "ponderhit":
		h = uci.ponderhitCommand

	// console extras
	case "move":
		h = uci.moveCommand
	case "print":
		h = uci.printCommand
	}

	if h == nil {
		return errors.New("command not found")
	}

	return h(fields)
}

func (uci *Protocol) uciCommand(fields []string) error {
	fmt.Printf("id name %s %s\n", uci.name, uci.version)
	fmt.Printf("id author %s\n", uci.author)
	for _, option := range uci.options {
		fmt.Println(option.UciString())
	}
	fmt.Println("uciok")
	return nil
}

func (uci *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], fields[3]
	for _, option := range uci.options {
		if strings.EqualFold(option.UciName(), name) {
			return option.Set(value)
		}
	}
	return errors.New("unhandled option")
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	uci.engine.Prepare()
	fmt.Println("readyok")
	return nil
}

func (uci *Protocol) positionCommand(fields []string) error {
	var args = fields
	if len(args) == 0 {
		return errors.New("invalid position arguments")
	}
	var token = args[0]
	var fen string
	var movesIndex = findIndexString(args, "moves")
	if token == "startpos" {
		fen = common.InitialPositionFen
	} else if token == "fen" {
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	} else {
		return errors.New("unknown position command")
	}
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	var positions = []common.Position{p}
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		for _, smove := range args[movesIndex+1:] {
			var newPos = positions[len(positions)-1].Clone()
			if !newPos.MakeMoveLAN(smove) {
				return fmt.Errorf("parse move failed %v", smove)
			}
			positions = append(positions, newPos)
		}
	}
	uci.positions = positions
	return nil
}

func (uci *Protocol) goCommand(fields []string) error {
	var limits = parseLimits(fields)
	var ctx, cancel = context.WithCancel(context.Background())
	uci.cancel = cancel
	atomic.StoreInt32(&uci.thinking, 1)
	go func() {
		var searchResult = uci.engine.Search(ctx, common.SearchParams{
			Positions: uci.positions,
			Limits:    limits,
			Progress: func(si common.SearchInfo) {
				if si.Time >= 500 || si.Depth >= 5 {
					fmt.Println(searchInfoToUci(si))
				}
			},
		})
		fmt.Println(searchInfoToUci(searchResult))
		atomic.StoreInt32(&uci.thinking, 0)
		if len(searchResult.MainLine) != 0 {
			fmt.Printf("bestmove %v\n", searchResult.MainLine[0])
		}
	}()
	return nil
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.engine.Clear()
	return nil
}

func (uci *Protocol) ponderhitCommand(fields []string) error {
	return errors.New("not implemented")
}

// moveCommand plays the user's move, answers with a three second
// search and prints the board.
func (uci *Protocol) moveCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("invalid move arguments")
	}
	var newPos = uci.positions[len(uci.positions)-1].Clone()
	if !newPos.MakeMoveLAN(fields[0]) {
		return fmt.Errorf("parse move failed %v", fields[0])
	}
	uci.positions = append(uci.positions, newPos)

	var searchResult = uci.engine.Search(context.Background(), common.SearchParams{
		Positions: uci.positions,
		Limits:    common.LimitsType{MoveTime: 3000},
	})
	fmt.Println(searchInfoToUci(searchResult))
	if len(searchResult.MainLine) == 0 {
		fmt.Println("game over")
		return nil
	}
	var reply = newPos.Clone()
	reply.MakeMove(searchResult.MainLine[0])
	uci.positions = append(uci.positions, reply)
	PrintPosition(&reply)
	fmt.Println(reply.String())
	return nil
}

func (uci *Protocol) printCommand(fields []string) error {
	var p = &uci.positions[len(uci.positions)-1]
	PrintPosition(p)
	fmt.Println(p.String())
	return nil
}

func searchInfoToUci(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.BookMove {
		fmt.Fprintf(sb, " string book move")
	} else if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var nps = si.Nodes * 1000 / (si.Time + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, si.Time, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func parseLimits(args []string) (result common.LimitsType) {
	// a trailing keyword without a value parses as zero
	var intValue = func(i int) int {
		if i >= len(args) {
			return 0
		}
		var v, _ = strconv.Atoi(args[i])
		return v
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "ponder":
			result.Ponder = true
		case "wtime":
			result.WhiteTime = intValue(i + 1)
			i++
		case "btime":
			result.BlackTime = intValue(i + 1)
			i++
		case "winc":
			result.WhiteIncrement = intValue(i + 1)
			i++
		case "binc":
			result.BlackIncrement = intValue(i + 1)
			i++
		case "movestogo":
			result.MovesToGo = intValue(i + 1)
			i++
		case "depth":
			result.Depth = intValue(i + 1)
			i++
		case "nodes":
			result.Nodes = intValue(i + 1)
			i++
		case "mate":
			result.Mate = intValue(i + 1)
			i++
		case "movetime":
			result.MoveTime = intValue(i + 1)
			i++
		case "infinite":
			result.Infinite = true
		}
	}
	return
}

func findIndexString(slice []string, value string) int {
	for p, v := range slice {
		if v == value {
			return p
		}
	}
	return -1
}
