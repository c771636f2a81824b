package main

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/maplefeline/vchess/board"
)

var errLayout = errors.New("invalid layout")

// layout is a placement written as rows of piece glyphs, row 0 first.
type layout []string

func (l layout) tilesPerRow() int {
	if len(l) == 0 {
		return 0
	}
	return utf8.RuneCountInString(l[0])
}

// config builds fresh pieces for the layout.
func (l layout) config() (board.Config, error) {
	if len(l) == 0 {
		return board.Config{}, fmt.Errorf("%w: no rows", errLayout)
	}
	tilesPerRow := l.tilesPerRow()
	pieceMap := make([]board.Piece, 0, tilesPerRow*len(l))
	for row, line := range l {
		if n := utf8.RuneCountInString(line); n != tilesPerRow {
			return board.Config{}, fmt.Errorf("%w: row %d has %d tiles, expected %d", errLayout, row, n, tilesPerRow)
		}
		for col, glyph := range []rune(line) {
			if glyph == emptyTile {
				pieceMap = append(pieceMap, nil)
				continue
			}
			piece, err := glyphPiece(glyph)
			if err != nil {
				return board.Config{}, fmt.Errorf("%w at [%d,%d]", err, col, row)
			}
			pieceMap = append(pieceMap, piece)
		}
	}
	return board.Config{PieceMap: pieceMap, TilesPerRow: tilesPerRow}, nil
}

func glyphPiece(glyph rune) (board.Piece, error) {
	if species, ok := glyphToSpeciesWhite[glyph]; ok {
		return pieceConstructors[species](board.White), nil
	}
	if species, ok := glyphToSpeciesBlack[glyph]; ok {
		return pieceConstructors[species](board.Black), nil
	}
	return nil, fmt.Errorf("%w: unknown glyph %q", errLayout, glyph)
}

func glyph(st *board.PieceState) rune {
	if st.Perspective == board.White {
		return speciesToGlyphWhite[st.Species]
	}
	return speciesToGlyphBlack[st.Species]
}

// formatLayout writes the current placement of b.
func formatLayout(b *board.Board) layout {
	g := b.Grid()
	rows := make(layout, 0, g.Rows)
	for row := 0; row < g.Rows; row++ {
		var line strings.Builder
		for col := 0; col < g.RowLength; col++ {
			id := b.OccupantAt(board.Coordinate{Col: col, Row: row})
			if id == board.NoPiece {
				line.WriteRune(emptyTile)
				continue
			}
			line.WriteRune(glyph(b.Piece(id).State()))
		}
		rows = append(rows, line.String())
	}
	return rows
}

func (l layout) Value() (driver.Value, error) {
	return strings.Join(l, "/"), nil
}

func (l *layout) Scan(cell interface{}) error {
	switch cell := cell.(type) {
	case string:
		*l = strings.Split(cell, "/")
	case []byte:
		*l = strings.Split(string(cell), "/")
	default:
		return fmt.Errorf("invalid format scaning %#v", cell)
	}
	return nil
}
