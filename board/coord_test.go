package board

import (
	"errors"

	. "gopkg.in/check.v1"
)

type GridSuite struct{}

var _ = Suite(&GridSuite{})

func (s *GridSuite) TestRoundTrip(c *C) {
	for _, g := range []Grid{{RowLength: 3, Rows: 3}, {RowLength: 8, Rows: 8}, {RowLength: 5, Rows: 2}, {RowLength: 1, Rows: 7}} {
		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.RowLength; col++ {
				coordinate := Coordinate{Col: col, Row: row}
				index, err := g.ToIndex(coordinate)
				c.Assert(err, IsNil)
				c.Assert(index >= 0 && index < g.Size(), Equals, true)
				c.Assert(g.ToCoordinate(index), Equals, coordinate)
			}
		}
	}
}

func (s *GridSuite) TestToIndex(c *C) {
	g := Grid{RowLength: 8, Rows: 8}
	index, err := g.ToIndex(Coordinate{Col: 3, Row: 2})
	c.Assert(err, IsNil)
	c.Assert(index, Equals, 19)
	c.Assert(g.ToCoordinate(63), Equals, Coordinate{Col: 7, Row: 7})
}

func (s *GridSuite) TestToIndexNegative(c *C) {
	g := Grid{RowLength: 3, Rows: 3}
	for _, coordinate := range []Coordinate{{Col: -1, Row: 0}, {Col: 0, Row: -1}, {Col: -2, Row: -2}} {
		_, err := g.ToIndex(coordinate)
		c.Assert(errors.Is(err, ErrOutOfRange), Equals, true)
	}
}

func (s *GridSuite) TestExists(c *C) {
	g := Grid{RowLength: 4, Rows: 2}
	c.Assert(g.Exists(Coordinate{Col: 0, Row: 0}), Equals, true)
	c.Assert(g.Exists(Coordinate{Col: 3, Row: 1}), Equals, true)
	c.Assert(g.Exists(Coordinate{Col: 4, Row: 1}), Equals, false)
	c.Assert(g.Exists(Coordinate{Col: 3, Row: 2}), Equals, false)
	c.Assert(g.Exists(Coordinate{Col: -1, Row: 0}), Equals, false)
}

func (s *GridSuite) TestUnit(c *C) {
	u, n, ok := Vector{DCol: -3, DRow: 3}.unit()
	c.Assert(ok, Equals, true)
	c.Assert(u, Equals, Vector{DCol: -1, DRow: 1})
	c.Assert(n, Equals, 3)
	_, _, ok = Vector{DCol: 1, DRow: 2}.unit()
	c.Assert(ok, Equals, false)
	_, _, ok = Vector{}.unit()
	c.Assert(ok, Equals, false)
}
