package main

import "github.com/maplefeline/vchess/board"

const emptyTile = '.'

var standardLayout = layout{
	"♜♞♝♛♚♝♞♜",
	"♟♟♟♟♟♟♟♟",
	"........",
	"........",
	"........",
	"........",
	"♙♙♙♙♙♙♙♙",
	"♖♘♗♕♔♗♘♖",
}

var speciesToGlyphBlack = map[board.Species]rune{
	board.Bishop: '♝',
	board.King:   '♚',
	board.Knight: '♞',
	board.Pawn:   '♟',
	board.Queen:  '♛',
	board.Rook:   '♜',
}
var speciesToGlyphWhite = map[board.Species]rune{
	board.Bishop: '♗',
	board.King:   '♔',
	board.Knight: '♘',
	board.Pawn:   '♙',
	board.Queen:  '♕',
	board.Rook:   '♖',
}
var glyphToSpeciesBlack = map[rune]board.Species{
	'♝': board.Bishop,
	'♚': board.King,
	'♞': board.Knight,
	'♟': board.Pawn,
	'♛': board.Queen,
	'♜': board.Rook,
}
var glyphToSpeciesWhite = map[rune]board.Species{
	'♗': board.Bishop,
	'♔': board.King,
	'♘': board.Knight,
	'♙': board.Pawn,
	'♕': board.Queen,
	'♖': board.Rook,
}

var pieceConstructors = map[board.Species]func(board.Perspective) board.Piece{
	board.Bishop: board.NewBishop,
	board.King:   board.NewKing,
	board.Knight: board.NewKnight,
	board.Pawn:   board.NewPawn,
	board.Queen:  board.NewQueen,
	board.Rook:   board.NewRook,
}
