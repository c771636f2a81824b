package main

import (
	"io"

	svg "github.com/ajstarks/svgo"
	"golang.org/x/exp/maps"

	"github.com/maplefeline/vchess/board"
)

const tileSize = 48

type tileMark int

const (
	markLight tileMark = iota
	markDark
	markPath
	markThreat
	markKing
)

var defaultTileStyles = map[tileMark]string{
	markLight:  "fill:#f0d9b5",
	markDark:   "fill:#b58863",
	markPath:   "fill:#e8c27a",
	markThreat: "fill:#d9774b",
	markKing:   "fill:#c0392b",
}

const glyphStyle = "text-anchor:middle;font-size:36px;font-family:serif"

// renderBoard draws b as SVG. Kings in check and the squares their threats travel
// along are highlighted.
func renderBoard(w io.Writer, b *board.Board, overrides map[tileMark]string) {
	styles := maps.Clone(defaultTileStyles)
	maps.Copy(styles, overrides)

	marks := map[board.Coordinate]tileMark{}
	for _, p := range []board.Perspective{board.White, board.Black} {
		info := b.CheckInfo(p)
		if info.Status == board.StatusNone {
			continue
		}
		for _, threat := range info.Threats {
			for _, c := range threat.AlongPath {
				marks[c] = markPath
			}
			marks[b.Piece(threat.Piece).State().Location] = markThreat
		}
		marks[b.Piece(b.King(p)).State().Location] = markKing
	}

	g := b.Grid()
	canvas := svg.New(w)
	canvas.Start(g.RowLength*tileSize, g.Rows*tileSize)
	for index := 0; index < g.Size(); index++ {
		c := g.ToCoordinate(index)
		x, y := c.Col*tileSize, c.Row*tileSize
		mark, ok := marks[c]
		if !ok {
			mark = markLight
			if (c.Col+c.Row)%2 == 1 {
				mark = markDark
			}
		}
		canvas.Rect(x, y, tileSize, tileSize, styles[mark])
		if id := b.OccupantAt(c); id != board.NoPiece {
			canvas.Text(x+tileSize/2, y+tileSize*3/4, string(glyph(b.Piece(id).State())), glyphStyle)
		}
	}
	canvas.End()
}
