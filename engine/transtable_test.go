package engine

import (
	"testing"

	. "github.com/sentinelchess/sentinel/common"
)

func TestTransTableRoundTrip(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var move = p.GenerateLegalMoves()[0]
	var tt = newTransTable(1)
	var key = uint64(0x1234567887654321)
	tt.Update(key, 5, 33, boundExact, move)

	var depth, score, bound, ttMove, ok = tt.Read(key)
	if !ok {
		t.Fatal("stored entry not found")
	}
	if depth != 5 || score != 33 || bound != boundExact || ttMove != move {
		t.Errorf("read back depth=%v score=%v bound=%v move=%v",
			depth, score, bound, ttMove)
	}
	if _, _, _, _, ok := tt.Read(key ^ (1 << 40)); ok {
		t.Error("hit on a foreign key")
	}
}

func TestTransTableReadDoesNotMutate(t *testing.T) {
	var p, err = NewPositionFromFEN(InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var move = p.GenerateLegalMoves()[0]
	var tt = newTransTable(1)
	var key = uint64(0x1234567887654321)
	tt.Update(key, 5, 33, boundExact, move)
	tt.IncDate()

	var before = tt.entries[uint32(key)&tt.mask]
	if _, _, _, _, ok := tt.Read(key); !ok {
		t.Fatal("stored entry not found")
	}
	if got := tt.entries[uint32(key)&tt.mask]; got != before {
		t.Errorf("lookup mutated the entry: %+v -> %+v", before, got)
	}
}
