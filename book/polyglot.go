// Package book reads polyglot opening books and resolves positions to
// book moves.
package book

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/sentinelchess/sentinel/common"
)

const entrySize = 16

// bookEntry mirrors one 16-byte record of the polyglot format: a
// position key, a packed move, a weight and a learn field, all
// big-endian.
type bookEntry struct {
	key    uint64
	move   uint16
	weight uint16
	learn  uint32
}

type Book struct {
	entries []bookEntry
}

func Open(path string) (*Book, error) {
	var data, err = os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data)%entrySize != 0 {
		return nil, fmt.Errorf("book %v: size %v is not a multiple of %v",
			path, len(data), entrySize)
	}
	var entries = make([]bookEntry, len(data)/entrySize)
	for i := range entries {
		var record = data[i*entrySize:]
		entries[i] = bookEntry{
			key:    binary.BigEndian.Uint64(record),
			move:   binary.BigEndian.Uint16(record[8:]),
			weight: binary.BigEndian.Uint16(record[10:]),
			learn:  binary.BigEndian.Uint32(record[12:]),
		}
	}
	// books are sorted by key by convention, but do not rely on it
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})
	return &Book{entries: entries}, nil
}

// Find returns the heaviest legal book move for the position, or false
// when the position is out of book.
func (b *Book) Find(p *common.Position) (common.Move, bool) {
	if b == nil || len(b.entries) == 0 {
		return common.MoveEmpty, false
	}
	var key = p.PolyglotKey()
	var first = sort.Search(len(b.entries), func(i int) bool {
		return b.entries[i].key >= key
	})

	var legal = p.GenerateLegalMoves()
	var best = common.MoveEmpty
	var bestWeight = -1
	for i := first; i < len(b.entries) && b.entries[i].key == key; i++ {
		var entry = &b.entries[i]
		var move = decodeMove(p, entry.move, legal)
		if move == common.MoveEmpty {
			continue
		}
		if int(entry.weight) > bestWeight {
			best = move
			bestWeight = int(entry.weight)
		}
	}
	return best, best != common.MoveEmpty
}

// decodeMove unpacks a polyglot move and resolves it against the legal
// moves of the position. Polyglot writes castling as king-takes-rook
// (e1h1, e1a1), which is translated to the king destination first.
func decodeMove(p *common.Position, raw uint16, legal []common.Move) common.Move {
	var (
		toFile   = int(raw) & 7
		toRank   = int(raw>>3) & 7
		fromFile = int(raw>>6) & 7
		fromRank = int(raw>>9) & 7
		promo    = int(raw>>12) & 7
	)
	var from = common.MakeSquare(fromFile, fromRank)
	var to = common.MakeSquare(toFile, toRank)

	var promotion = common.Empty
	switch promo {
	case 1:
		promotion = common.Knight
	case 2:
		promotion = common.Bishop
	case 3:
		promotion = common.Rook
	case 4:
		promotion = common.Queen
	}

	if pieceType, _ := common.GetPieceTypeAndSide(p.WhatPiece(from)); pieceType == common.King {
		switch {
		case from == common.SquareE1 && to == common.SquareH1:
			to = common.SquareG1
		case from == common.SquareE1 && to == common.SquareA1:
			to = common.SquareC1
		case from == common.SquareE8 && to == common.SquareH8:
			to = common.SquareG8
		case from == common.SquareE8 && to == common.SquareA8:
			to = common.SquareC8
		}
	}

	for _, move := range legal {
		if move.From() == from && move.To() == to &&
			move.Promotion() == promotion {
			return move
		}
	}
	return common.MoveEmpty
}
