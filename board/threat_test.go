package board

import (
	"errors"
	"slices"

	. "gopkg.in/check.v1"
)

// blockable: the white rook checks along row 0 and the black knight can interpose.
func (s *BoardSuite) blockable(c *C, knightAt int) *Board {
	pieceMap := []Piece{
		NewKing(Black), nil, nil, nil,
		NewPawn(Black), NewPawn(Black), nil, nil,
		nil, nil, nil, nil,
		nil, nil, NewRook(White), NewKing(White),
	}
	if knightAt >= 0 {
		pieceMap[knightAt] = NewKnight(Black)
	}
	return s.newBoard(c, 4, pieceMap...)
}

func (s *BoardSuite) TestCheckWithBlocker(c *C) {
	b := s.blockable(c, 7)
	rook := b.OccupantAt(at(2, 3))
	c.Assert(state(b, at(0, 0)).MovableTo, sameCoordinates, []Coordinate{at(1, 0)})

	move(c, b, at(2, 3), at(2, 0))

	c.Assert(b.Turn(), Equals, Black)
	c.Assert(b.IsCheck(Black), Equals, true)
	c.Assert(b.IsCheckMateOnCheck(Black), Equals, false)
	info := b.CheckInfo(Black)
	c.Assert(info.Status, Equals, StatusCheck)
	c.Assert(info.Threats, DeepEquals, []Threat{{Piece: rook, AlongPath: []Coordinate{at(1, 0), at(0, 0)}}})
	c.Assert(state(b, at(0, 0)).MovableTo, HasLen, 0)
	c.Assert(state(b, at(3, 1)).MovableTo, sameCoordinates, []Coordinate{at(1, 0)})
	c.Assert(state(b, at(0, 1)).MovableTo, HasLen, 0)
	c.Assert(s.eventKinds(), DeepEquals, []EventKind{EventTurnChanged, EventCheck})
	assertVisionSymmetry(c, b)
}

func (s *BoardSuite) TestBlockingClearsCheckAndPins(c *C) {
	b := s.blockable(c, 7)
	rook := b.OccupantAt(at(2, 3))
	move(c, b, at(2, 3), at(2, 0))
	s.events = nil

	move(c, b, at(3, 1), at(1, 0))

	c.Assert(b.Turn(), Equals, White)
	c.Assert(b.CheckInfo(Black).Status, Equals, StatusNone)
	c.Assert(b.CheckInfo(Black).Threats, HasLen, 0)
	c.Assert(b.IsCheck(Black), Equals, false)
	knight := state(b, at(1, 0))
	c.Assert(knight.IsPinned, Equals, true)
	c.Assert(knight.PinnedBy, DeepEquals, []PieceID{rook})
	c.Assert(knight.MovableTo, HasLen, 0)
	c.Assert(state(b, at(0, 1)).MovableTo, sameCoordinates, []Coordinate{at(0, 2), at(0, 3)})
	c.Assert(s.eventKinds(), DeepEquals, []EventKind{EventCheckCleared, EventTurnChanged})
	assertVisionSymmetry(c, b)
}

func (s *BoardSuite) TestCheckmateWithoutBlocker(c *C) {
	b := s.blockable(c, 12)
	c.Assert(state(b, at(0, 3)).MovableTo, sameCoordinates, []Coordinate{at(2, 2)})

	move(c, b, at(2, 3), at(2, 0))

	c.Assert(b.IsCheck(Black), Equals, true)
	c.Assert(b.IsCheckMateOnCheck(Black), Equals, true)
	c.Assert(b.CheckInfo(Black).Status, Equals, StatusCheckmate)
	c.Assert(b.Over(), Equals, true)
	c.Assert(s.eventKinds(), DeepEquals, []EventKind{EventTurnChanged, EventCheckmate})

	pawn := b.OccupantAt(at(0, 1))
	c.Assert(errors.Is(b.OnPieceMove(pawn, at(0, 2)), ErrGameOver), Equals, true)
}

func (s *BoardSuite) TestDoubleThreatCheckmate(c *C) {
	b := s.newBoard(c, 4,
		NewKing(Black), NewBishop(Black), nil, nil,
		nil, NewPawn(Black), nil, nil,
		NewKnight(White), nil, nil, nil,
		NewRook(White), nil, nil, NewKing(White),
	)
	knight := b.OccupantAt(at(0, 2))
	c.Assert(state(b, at(1, 0)).MovableTo, sameCoordinates, []Coordinate{at(0, 1), at(2, 1), at(3, 2)})

	move(c, b, at(0, 2), at(2, 1))

	info := b.CheckInfo(Black)
	c.Assert(info.Status, Equals, StatusCheckmate)
	c.Assert(info.Threats, HasLen, 2)
	c.Assert(b.IsCheckMateOnCheck(Black), Equals, true)
	c.Assert(b.Piece(knight).State().Location, Equals, at(2, 1))
	c.Assert(state(b, at(1, 0)).CanMoveTo(at(2, 1)), Equals, true)
}

func (s *BoardSuite) TestPinRestrictsToLine(c *C) {
	b := s.newBoard(c, 4,
		NewKing(Black), nil, nil, nil,
		NewRook(Black), nil, nil, nil,
		nil, nil, nil, nil,
		NewRook(White), nil, nil, NewKing(White),
	)
	pinner := b.OccupantAt(at(0, 3))
	pinned := state(b, at(0, 1))
	c.Assert(pinned.IsPinned, Equals, true)
	c.Assert(pinned.PinnedBy, DeepEquals, []PieceID{pinner})
	c.Assert(pinned.MovableTo, sameCoordinates, []Coordinate{at(0, 2), at(0, 3)})
	c.Assert(pinned.InVision, sameCoordinates, []Coordinate{at(0, 0), at(1, 1), at(2, 1), at(3, 1), at(0, 2), at(0, 3)})

	move(c, b, at(0, 3), at(1, 3))

	c.Assert(pinned.IsPinned, Equals, false)
	c.Assert(pinned.PinnedBy, HasLen, 0)
	c.Assert(pinned.MovableTo, sameCoordinates, []Coordinate{at(1, 1), at(2, 1), at(3, 1), at(0, 2), at(0, 3)})
	assertVisionSymmetry(c, b)
}

func (s *BoardSuite) TestKingCannotRetreatAlongCheckLine(c *C) {
	b := s.newBoard(c, 5,
		nil, nil, NewKing(Black), nil, nil,
		nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil,
		NewRook(White), nil, nil, nil, NewKing(White),
	)
	move(c, b, at(0, 4), at(0, 0))

	c.Assert(b.CheckInfo(Black).Status, Equals, StatusCheck)
	rook := state(b, at(0, 0))
	c.Assert(slices.Contains(rook.InVision, at(3, 0)), Equals, true)
	c.Assert(rook.CanMoveTo(at(2, 0)), Equals, false)
	c.Assert(rook.CanMoveTo(at(3, 0)), Equals, false)
	c.Assert(state(b, at(2, 0)).MovableTo, sameCoordinates, []Coordinate{at(1, 1), at(2, 1), at(3, 1)})
}
