package board

import "slices"

// Perspective is one side of the game.
type Perspective uint8

const (
	NoPerspective Perspective = iota
	White
	Black
)

// Opponent returns the other side.
func (p Perspective) Opponent() Perspective {
	switch p {
	case White:
		return Black
	case Black:
		return White
	}
	return NoPerspective
}

func (p Perspective) String() string {
	switch p {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// MarshalText encodes the perspective name.
func (p Perspective) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Species tags the kind of a piece.
type Species uint8

const (
	Bishop Species = iota + 1
	King
	Knight
	Pawn
	Queen
	Rook
)

var speciesNames = map[Species]string{
	Bishop: "bishop",
	King:   "king",
	Knight: "knight",
	Pawn:   "pawn",
	Queen:  "queen",
	Rook:   "rook",
}

func (s Species) String() string {
	if name, ok := speciesNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the species name.
func (s Species) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Unbounded lets a piece walk until the board edge or an occupied tile.
const Unbounded = -1

// Pathing describes how a piece travels.
type Pathing struct {
	OnlyMovableToSafeTiles bool
	Steps                  int
}

// PieceState holds the fields of a piece the board reads and mutates.
type PieceState struct {
	ID          PieceID
	Perspective Perspective
	Species     Species
	Location    Coordinate
	MovableTo   []Coordinate
	InVision    []Coordinate
	Watching    []Coordinate
	PinnedBy    []PieceID
	IsPinned    bool
	Captured    bool
	Initialised bool
	Retired     bool
	Moves       int
	Pathing     Pathing

	owned bool
}

// CanMoveTo reports whether c is one of the piece's current destinations.
func (s *PieceState) CanMoveTo(c Coordinate) bool {
	return slices.Contains(s.MovableTo, c)
}

// Sight is the result of a piece recomputing itself against the board.
type Sight struct {
	Vision  []Coordinate
	Movable []Coordinate
	Watch   []Coordinate
}

// Piece is the capability set the board drives. Movement rules live behind it.
type Piece interface {
	State() *PieceState
	Sight(b *Board) Sight
	PinnedBy(b *Board) []PieceID
	RelatingVector(b *Board, target Coordinate) (Vector, bool)
	Walk(b *Board, v Vector, steps int) []Coordinate
	OnCaptured()
}
