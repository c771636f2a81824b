package board

import "fmt"

// Coordinate is a (column, row) pair on the board.
type Coordinate struct {
	Col int
	Row int
}

// Vector is a directional step between two coordinates.
type Vector struct {
	DCol int
	DRow int
}

// Add returns c moved by v.
func (c Coordinate) Add(v Vector) Coordinate {
	return Coordinate{Col: c.Col + v.DCol, Row: c.Row + v.DRow}
}

// Sub returns the vector that takes o to c.
func (c Coordinate) Sub(o Coordinate) Vector {
	return Vector{DCol: c.Col - o.Col, DRow: c.Row - o.Row}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("[%d,%d]", c.Col, c.Row)
}

// Neg reverses v.
func (v Vector) Neg() Vector {
	return Vector{DCol: -v.DCol, DRow: -v.DRow}
}

// Scale multiplies v by n.
func (v Vector) Scale(n int) Vector {
	return Vector{DCol: v.DCol * n, DRow: v.DRow * n}
}

// unit reduces v to a queen-line step, ok is false when v is not along a rank, file or
// diagonal.
func (v Vector) unit() (Vector, int, bool) {
	dc, dr := abs(v.DCol), abs(v.DRow)
	if dc == 0 && dr == 0 {
		return Vector{}, 0, false
	}
	if dc != 0 && dr != 0 && dc != dr {
		return Vector{}, 0, false
	}
	n := dc
	if dr > n {
		n = dr
	}
	return Vector{DCol: sign(v.DCol), DRow: sign(v.DRow)}, n, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Grid maps coordinates to linear tile indexes for a fixed row length.
type Grid struct {
	RowLength int
	Rows      int
}

// ToIndex converts c to its tile index.
func (g Grid) ToIndex(c Coordinate) (int, error) {
	if c.Col < 0 || c.Row < 0 {
		return -1, fmt.Errorf("cannot convert coordinate %s of negative indexes to a valid index: %w", c, ErrOutOfRange)
	}
	return c.Row*g.RowLength + c.Col, nil
}

// ToCoordinate converts a tile index back into a coordinate.
func (g Grid) ToCoordinate(index int) Coordinate {
	return Coordinate{Col: index % g.RowLength, Row: index / g.RowLength}
}

// Exists reports whether c lies on the board.
func (g Grid) Exists(c Coordinate) bool {
	if c.Col < 0 || c.Row < 0 {
		return false
	}
	return c.Col < g.RowLength && c.Row < g.Rows
}

// Size is the number of tiles on the grid.
func (g Grid) Size() int {
	return g.RowLength * g.Rows
}

func (g Grid) mustIndex(c Coordinate) int {
	index, err := g.ToIndex(c)
	if err != nil {
		panic(err)
	}
	return index
}
