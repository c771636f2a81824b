package board

import "slices"

// PieceID indexes a piece in the board arena.
type PieceID int

// NoPiece marks an empty tile.
const NoPiece PieceID = -1

type pieceSet []PieceID

func (s pieceSet) has(id PieceID) bool {
	return slices.Contains(s, id)
}

func (s *pieceSet) add(id PieceID) {
	if !s.has(id) {
		*s = append(*s, id)
	}
}

func (s *pieceSet) remove(id PieceID) {
	if i := slices.Index(*s, id); i >= 0 {
		*s = slices.Delete(*s, i, i+1)
	}
}

// Tile is one square of the board.
type Tile struct {
	Occupant     PieceID
	PromotionFor Perspective

	inVisionOf pieceSet
	watchedBy  pieceSet
}

// InVisionOf lists the pieces that currently see this tile.
func (t Tile) InVisionOf() []PieceID {
	return slices.Clone(t.inVisionOf)
}

// Occupied reports whether a piece stands on the tile.
func (t Tile) Occupied() bool {
	return t.Occupant != NoPiece
}

func newTile(occupant PieceID, promotionFor Perspective) Tile {
	return Tile{Occupant: occupant, PromotionFor: promotionFor}
}
