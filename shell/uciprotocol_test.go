package shell

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sentinelchess/sentinel/common"
)

type nopEngine struct{}

func (nopEngine) Prepare() {}
func (nopEngine) Clear()   {}
func (nopEngine) Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo {
	return common.SearchInfo{}
}

func TestParseLimits(t *testing.T) {
	var limits = parseLimits(strings.Fields(
		"wtime 300000 btime 299000 winc 2000 binc 1000 movestogo 40 depth 8 nodes 100000 mate 3 movetime 500 ponder infinite"))
	if limits.WhiteTime != 300000 || limits.BlackTime != 299000 ||
		limits.WhiteIncrement != 2000 || limits.BlackIncrement != 1000 ||
		limits.MovesToGo != 40 || limits.Depth != 8 || limits.Nodes != 100000 ||
		limits.Mate != 3 || limits.MoveTime != 500 ||
		!limits.Ponder || !limits.Infinite {
		t.Errorf("parsed %+v", limits)
	}
}

func TestParseLimitsTruncated(t *testing.T) {
	// a keyword with no value must not panic the command loop
	for _, line := range []string{"wtime", "depth", "movetime 500 nodes"} {
		var limits = parseLimits(strings.Fields(line))
		if limits.WhiteTime != 0 || limits.Depth != 0 || limits.Nodes != 0 {
			t.Errorf("%q parsed as %+v", line, limits)
		}
	}
}

func TestBoolOption(t *testing.T) {
	var v = true
	var opt = &BoolOption{Name: "OwnBook", Value: &v}
	if got := opt.UciString(); got != "option name OwnBook type check default true" {
		t.Errorf("got %q", got)
	}
	if err := opt.Set("false"); err != nil {
		t.Fatal(err)
	}
	if v {
		t.Error("set false not applied")
	}
	if err := opt.Set("yes"); err == nil {
		t.Error("loose boolean accepted")
	}
	if err := opt.Set("true"); err != nil {
		t.Fatal(err)
	}
	if !v {
		t.Error("set true not applied")
	}
}

func TestIntOption(t *testing.T) {
	var v = 16
	var opt = &IntOption{Name: "Hash", Min: 4, Max: 1024, Value: &v}
	if got := opt.UciString(); got != "option name Hash type spin default 16 min 4 max 1024" {
		t.Errorf("got %q", got)
	}
	if err := opt.Set("64"); err != nil {
		t.Fatal(err)
	}
	if v != 64 {
		t.Errorf("set 64 not applied, value %v", v)
	}
	for _, bad := range []string{"2", "4096", "huge"} {
		if err := opt.Set(bad); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
	if v != 64 {
		t.Errorf("rejected input changed the value to %v", v)
	}
}

func TestSetOptionCommand(t *testing.T) {
	var ownBook = true
	var uci = New("test", "test", "dev", zerolog.Nop(), nopEngine{},
		[]Option{&BoolOption{Name: "OwnBook", Value: &ownBook}})
	if err := uci.Handle(context.Background(), "setoption name OwnBook value false"); err != nil {
		t.Fatal(err)
	}
	if ownBook {
		t.Error("option not applied")
	}
	if err := uci.Handle(context.Background(), "setoption name Missing value 1"); err == nil {
		t.Error("unknown option accepted")
	}
}
