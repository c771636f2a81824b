package board

var (
	straightLines = []Vector{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	diagonalLines = []Vector{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
	allLines      = append(append([]Vector{}, straightLines...), diagonalLines...)
	knightJumps   = []Vector{{1, -2}, {2, -1}, {2, 1}, {1, 2}, {-1, 2}, {-2, 1}, {-2, -1}, {-1, -2}}
)

type base struct {
	PieceState
}

func newBase(p Perspective, s Species, pathing Pathing) base {
	return base{PieceState: PieceState{ID: NoPiece, Perspective: p, Species: s, Pathing: pathing}}
}

func (p *base) State() *PieceState {
	return &p.PieceState
}

func (p *base) OnCaptured() {
	p.Captured = true
	p.InVision, p.MovableTo, p.Watching = nil, nil, nil
	p.PieceState.PinnedBy, p.IsPinned = nil, false
}

func (p *base) Walk(b *Board, v Vector, steps int) []Coordinate {
	return b.Ray(p.Location, v, steps, NoPerspective)
}

// PinnedBy finds an opposing piece that would see the king of p if p left its line.
func (p *base) PinnedBy(b *Board) []PieceID {
	if p.Species == King {
		return nil
	}
	kid := b.King(p.Perspective)
	if kid == NoPiece {
		return nil
	}
	king := b.pieces[kid].State().Location
	dir, _, ok := p.Location.Sub(king).unit()
	if !ok {
		return nil
	}
	for c := king.Add(dir); c != p.Location; c = c.Add(dir) {
		if b.OccupantAt(c) != NoPiece {
			return nil
		}
	}
	for c := p.Location.Add(dir); b.grid.Exists(c); c = c.Add(dir) {
		id := b.OccupantAt(c)
		if id == NoPiece {
			continue
		}
		pinner := b.pieces[id]
		pst := pinner.State()
		if pst.Perspective == p.Perspective {
			return nil
		}
		v, ok := pinner.RelatingVector(b, king)
		if !ok || v != dir.Neg() {
			return nil
		}
		if _, n, _ := king.Sub(pst.Location).unit(); pst.Pathing.Steps != Unbounded && n > pst.Pathing.Steps {
			return nil
		}
		return []PieceID{id}
	}
	return nil
}

// capturableAt reports whether an opposing piece other than the king stands on c.
func (p *base) capturableAt(b *Board, c Coordinate) bool {
	id := b.OccupantAt(c)
	if id == NoPiece {
		return false
	}
	st := b.pieces[id].State()
	return st.Perspective != p.Perspective && st.Species != King
}

func (p *base) enterable(b *Board, c Coordinate) bool {
	return b.OccupantAt(c) == NoPiece || p.capturableAt(b, c)
}

// jumps builds the sight of a piece with fixed single-step offsets.
func (p *base) jumps(b *Board, offsets []Vector) Sight {
	var sight Sight
	for _, v := range offsets {
		c := p.Location.Add(v)
		if !b.grid.Exists(c) {
			continue
		}
		sight.Vision = append(sight.Vision, c)
		if p.enterable(b, c) {
			sight.Movable = append(sight.Movable, c)
		}
	}
	return sight
}

func (p *base) relatingJump(target Coordinate, offsets []Vector) (Vector, bool) {
	v := target.Sub(p.Location)
	for _, o := range offsets {
		if o == v {
			return o, true
		}
	}
	return Vector{}, false
}

type slider struct {
	base
	lines []Vector
}

func (p *slider) Sight(b *Board) Sight {
	var sight Sight
	for _, d := range p.lines {
		sight.Vision = append(sight.Vision, b.Ray(p.Location, d, p.Pathing.Steps, p.Perspective.Opponent())...)
		for _, c := range b.Ray(p.Location, d, p.Pathing.Steps, NoPerspective) {
			if p.enterable(b, c) {
				sight.Movable = append(sight.Movable, c)
			}
		}
	}
	sight.Movable = b.Constrain(&p.PieceState, sight.Movable)
	return sight
}

func (p *slider) RelatingVector(b *Board, target Coordinate) (Vector, bool) {
	u, n, ok := target.Sub(p.Location).unit()
	if !ok || (p.Pathing.Steps != Unbounded && n > p.Pathing.Steps) {
		return Vector{}, false
	}
	for _, d := range p.lines {
		if d == u {
			return d, true
		}
	}
	return Vector{}, false
}

type rook struct{ slider }

// NewRook returns an unplaced rook.
func NewRook(p Perspective) Piece {
	return &rook{slider{base: newBase(p, Rook, Pathing{Steps: Unbounded}), lines: straightLines}}
}

type bishop struct{ slider }

// NewBishop returns an unplaced bishop.
func NewBishop(p Perspective) Piece {
	return &bishop{slider{base: newBase(p, Bishop, Pathing{Steps: Unbounded}), lines: diagonalLines}}
}

type queen struct{ slider }

// NewQueen returns an unplaced queen.
func NewQueen(p Perspective) Piece {
	return &queen{slider{base: newBase(p, Queen, Pathing{Steps: Unbounded}), lines: allLines}}
}

type knight struct{ base }

// NewKnight returns an unplaced knight.
func NewKnight(p Perspective) Piece {
	return &knight{newBase(p, Knight, Pathing{Steps: 1})}
}

func (p *knight) Sight(b *Board) Sight {
	sight := p.jumps(b, knightJumps)
	sight.Movable = b.Constrain(&p.PieceState, sight.Movable)
	return sight
}

func (p *knight) RelatingVector(b *Board, target Coordinate) (Vector, bool) {
	return p.relatingJump(target, knightJumps)
}

type king struct{ base }

// NewKing returns an unplaced king. A king never moves onto a tile the opponent sees.
func NewKing(p Perspective) Piece {
	return &king{newBase(p, King, Pathing{OnlyMovableToSafeTiles: true, Steps: 1})}
}

func (p *king) Sight(b *Board) Sight {
	sight := p.jumps(b, allLines)
	safe := sight.Movable[:0]
	for _, c := range sight.Movable {
		if !b.SeenBy(c, p.Perspective.Opponent()) {
			safe = append(safe, c)
		}
	}
	sight.Movable = safe
	return sight
}

func (p *king) RelatingVector(b *Board, target Coordinate) (Vector, bool) {
	return p.relatingJump(target, allLines)
}

type pawn struct{ base }

// NewPawn returns an unplaced pawn. White pawns advance toward row 0, black pawns
// toward the last row.
func NewPawn(p Perspective) Piece {
	return &pawn{newBase(p, Pawn, Pathing{Steps: 1})}
}

func (p *pawn) forward() Vector {
	if p.Perspective == White {
		return Vector{DCol: 0, DRow: -1}
	}
	return Vector{DCol: 0, DRow: 1}
}

func (p *pawn) attacks() []Vector {
	f := p.forward()
	return []Vector{{DCol: -1, DRow: f.DRow}, {DCol: 1, DRow: f.DRow}}
}

func (p *pawn) Sight(b *Board) Sight {
	var sight Sight
	for _, v := range p.attacks() {
		c := p.Location.Add(v)
		if !b.grid.Exists(c) {
			continue
		}
		sight.Vision = append(sight.Vision, c)
		if p.capturableAt(b, c) {
			sight.Movable = append(sight.Movable, c)
		}
	}
	one := p.Location.Add(p.forward())
	if b.grid.Exists(one) {
		sight.Watch = append(sight.Watch, one)
		if b.OccupantAt(one) == NoPiece {
			sight.Movable = append(sight.Movable, one)
		}
		two := one.Add(p.forward())
		if p.Moves == 0 && b.grid.Exists(two) {
			sight.Watch = append(sight.Watch, two)
			if b.OccupantAt(one) == NoPiece && b.OccupantAt(two) == NoPiece {
				sight.Movable = append(sight.Movable, two)
			}
		}
	}
	sight.Movable = b.Constrain(&p.PieceState, sight.Movable)
	return sight
}

func (p *pawn) RelatingVector(b *Board, target Coordinate) (Vector, bool) {
	return p.relatingJump(target, p.attacks())
}
