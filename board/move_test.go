package board

import (
	"errors"
	"slices"

	. "gopkg.in/check.v1"
)

func (s *BoardSuite) TestPromotion(c *C) {
	b := s.newBoard(c, 4,
		nil, nil, nil, nil,
		nil, NewPawn(White), nil, nil,
		nil, nil, nil, nil,
		NewKing(White), nil, nil, NewKing(Black),
	)
	pawn := b.OccupantAt(at(1, 1))
	c.Assert(state(b, at(1, 1)).MovableTo, sameCoordinates, []Coordinate{at(1, 0)})

	move(c, b, at(1, 1), at(1, 0))

	c.Assert(b.IsActive(pawn), Equals, false)
	c.Assert(b.Piece(pawn).State().Retired, Equals, true)
	c.Assert(b.Piece(pawn).State().Captured, Equals, false)
	queen := b.OccupantAt(at(1, 0))
	c.Assert(queen, Not(Equals), pawn)
	c.Assert(b.IsActive(queen), Equals, true)
	st := b.Piece(queen).State()
	c.Assert(st.Species, Equals, Queen)
	c.Assert(st.Perspective, Equals, White)
	c.Assert(st.Location, Equals, at(1, 0))
	c.Assert(st.Initialised, Equals, true)
	c.Assert(st.InVision, sameCoordinates, []Coordinate{
		at(0, 0), at(2, 0), at(3, 0),
		at(1, 1), at(1, 2), at(1, 3),
		at(0, 1), at(2, 1), at(3, 2),
	})
	c.Assert(b.Active(), HasLen, 3)
	c.Assert(b.Turn(), Equals, Black)
	c.Assert(s.eventKinds(), DeepEquals, []EventKind{EventPromotion, EventTurnChanged})
	assertVisionSymmetry(c, b)
}

func (s *BoardSuite) TestBlackPawnPromotesOnLastRow(c *C) {
	b := s.newBoard(c, 3,
		NewKing(Black), nil, nil,
		nil, nil, nil,
		nil, nil, NewPawn(Black),
		nil, nil, nil,
		NewKing(White), nil, nil,
	)
	// white passes by stepping the king.
	move(c, b, at(0, 4), at(1, 4))
	move(c, b, at(2, 2), at(2, 3))
	c.Assert(state(b, at(2, 3)).Species, Equals, Pawn)
	c.Assert(b.CheckInfo(White).Status, Equals, StatusCheck)
	move(c, b, at(1, 4), at(0, 4))
	move(c, b, at(2, 3), at(2, 4))
	c.Assert(state(b, at(2, 4)).Species, Equals, Queen)
	c.Assert(state(b, at(2, 4)).Perspective, Equals, Black)
}

func (s *BoardSuite) TestUpgradePawnDirect(c *C) {
	b := New()
	b.Subscribe(func(e Event) { s.events = append(s.events, e) })
	c.Assert(b.Init(Config{
		PieceMap: []Piece{
			NewKing(Black), nil, nil,
			nil, nil, NewPawn(White),
			nil, nil, NewKing(White),
		},
		TilesPerRow: 3,
		Promote:     func(p Perspective) Piece { return NewRook(p) },
	}), IsNil)
	pawn := b.OccupantAt(at(2, 1))
	rook, err := b.UpgradePawn(pawn)
	c.Assert(err, IsNil)
	c.Assert(b.OccupantAt(at(2, 1)), Equals, rook)
	c.Assert(b.Piece(rook).State().Species, Equals, Rook)
	c.Assert(b.Piece(rook).State().InVision, sameCoordinates, []Coordinate{at(2, 0), at(1, 1), at(0, 1), at(2, 2)})
	c.Assert(b.Turn(), Equals, White)
	c.Assert(s.eventKinds(), DeepEquals, []EventKind{EventPromotion})
	assertVisionSymmetry(c, b)

	_, err = b.UpgradePawn(pawn)
	c.Assert(err, NotNil)
}

func (s *BoardSuite) TestUpgradePawnRejectsOtherSpecies(c *C) {
	b := New()
	c.Assert(b.Init(DemoConfig()), IsNil)
	for _, sq := range []Coordinate{at(1, 0), at(0, 2), at(2, 2)} {
		id := b.OccupantAt(sq)
		_, err := b.UpgradePawn(id)
		c.Assert(errors.Is(err, ErrInvalidMove), Equals, true)
		c.Assert(b.IsActive(id), Equals, true)
		c.Assert(b.Piece(id).State().Retired, Equals, false)
	}
	c.Assert(b.King(White), Equals, b.OccupantAt(at(2, 2)))
	c.Assert(b.Active(), HasLen, 3)
	assertVisionSymmetry(c, b)
}

func (s *BoardSuite) TestScholarsMate(c *C) {
	b := New()
	b.Subscribe(func(e Event) { s.events = append(s.events, e) })
	c.Assert(b.Init(StandardConfig()), IsNil)

	move(c, b, at(4, 6), at(4, 4))
	move(c, b, at(4, 1), at(4, 3))
	move(c, b, at(5, 7), at(2, 4))
	move(c, b, at(1, 0), at(2, 2))
	move(c, b, at(3, 7), at(7, 3))

	fPawn := state(b, at(5, 1))
	c.Assert(fPawn.IsPinned, Equals, true)
	c.Assert(fPawn.PinnedBy, DeepEquals, []PieceID{b.OccupantAt(at(7, 3))})
	c.Assert(fPawn.MovableTo, HasLen, 0)

	move(c, b, at(6, 0), at(5, 2))
	assertVisionSymmetry(c, b)
	c.Assert(b.CheckInfo(Black).Status, Equals, StatusNone)

	s.events = nil
	captured := b.OccupantAt(at(5, 1))
	move(c, b, at(7, 3), at(5, 1))

	c.Assert(b.CheckInfo(Black).Status, Equals, StatusCheckmate)
	c.Assert(b.CheckInfo(White).Status, Equals, StatusNone)
	c.Assert(b.Over(), Equals, true)
	c.Assert(b.Captured(White), DeepEquals, []PieceID{captured})
	c.Assert(b.IsActive(captured), Equals, false)
	c.Assert(b.Active(), HasLen, 31)
	c.Assert(s.eventKinds(), DeepEquals, []EventKind{EventCapture, EventTurnChanged, EventCheckmate})
	assertVisionSymmetry(c, b)
}

func (s *BoardSuite) TestCheckRestrictsDefenders(c *C) {
	b := New()
	c.Assert(b.Init(StandardConfig()), IsNil)
	plays := [][2]Coordinate{
		{at(3, 6), at(3, 4)},
		{at(4, 1), at(4, 3)},
		{at(3, 4), at(4, 3)},
		{at(5, 0), at(1, 4)},
	}
	for _, play := range plays {
		move(c, b, play[0], play[1])
		assertVisionSymmetry(c, b)
	}
	c.Assert(b.Captured(White), HasLen, 1)
	c.Assert(b.Captured(Black), HasLen, 0)

	info := b.CheckInfo(White)
	c.Assert(info.Status, Equals, StatusCheck)
	c.Assert(info.Threats, HasLen, 1)
	c.Assert(info.Threats[0].AlongPath, DeepEquals, []Coordinate{at(2, 5), at(3, 6), at(4, 7)})
	c.Assert(state(b, at(4, 7)).MovableTo, HasLen, 0)

	blocks := []Coordinate{at(2, 5), at(3, 6)}
	for _, id := range b.Active() {
		st := b.Piece(id).State()
		if st.Perspective != White || st.Species == King {
			continue
		}
		for _, to := range st.MovableTo {
			c.Assert(slices.Contains(blocks, to), Equals, true, Commentf("%s on %s may move to %s while in check", st.Species, st.Location, to))
		}
	}
	c.Assert(state(b, at(2, 6)).MovableTo, DeepEquals, []Coordinate{at(2, 5)})
	c.Assert(state(b, at(3, 7)).CanMoveTo(at(3, 6)), Equals, true)
	c.Assert(state(b, at(4, 3)).MovableTo, HasLen, 0)

	move(c, b, at(2, 6), at(2, 5))
	c.Assert(b.CheckInfo(White).Status, Equals, StatusNone)
	c.Assert(state(b, at(4, 3)).MovableTo, DeepEquals, []Coordinate{at(4, 2)})
	assertVisionSymmetry(c, b)
}

func (s *BoardSuite) TestMoveByCoordinate(c *C) {
	b := New()
	c.Assert(b.Init(StandardConfig()), IsNil)
	knight := b.OccupantAt(at(1, 7))
	c.Assert(b.Move(at(1, 7), at(2, 5)), IsNil)
	c.Assert(b.OccupantAt(at(2, 5)), Equals, knight)
	c.Assert(b.OccupantAt(at(1, 7)), Equals, NoPiece)
	c.Assert(b.Piece(knight).State().Moves, Equals, 1)
	c.Assert(slices.Contains(state(b, at(0, 7)).MovableTo, at(1, 7)), Equals, true)
}
