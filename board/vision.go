package board

import (
	"slices"

	"github.com/apex/log"
)

// update asks a piece to recompute itself and records the result in the tile index.
func (b *Board) update(id PieceID) {
	p := b.pieces[id]
	st := p.State()
	sight := p.Sight(b)
	b.forget(id)
	st.InVision = sight.Vision
	st.MovableTo = sight.Movable
	st.Watching = sight.Watch
	for _, c := range sight.Vision {
		b.tileAt(c).inVisionOf.add(id)
	}
	for _, c := range sight.Watch {
		b.tileAt(c).watchedBy.add(id)
	}
}

// forget removes a piece from every tile it currently sees or watches.
func (b *Board) forget(id PieceID) {
	st := b.pieces[id].State()
	for _, c := range st.InVision {
		b.tileAt(c).inVisionOf.remove(id)
	}
	for _, c := range st.Watching {
		b.tileAt(c).watchedBy.remove(id)
	}
}

func (b *Board) updateAll(ids []PieceID) {
	for _, id := range ids {
		b.update(id)
	}
}

// affectedBy is the union of pieces seeing or watching any of the tiles, minus exclude.
func (b *Board) affectedBy(exclude pieceSet, tiles ...*Tile) []PieceID {
	var ids pieceSet
	for _, tile := range tiles {
		for _, set := range []pieceSet{tile.inVisionOf, tile.watchedBy} {
			for _, id := range set {
				if !exclude.has(id) {
					ids.add(id)
				}
			}
		}
	}
	return ids
}

func clearVision(tiles ...*Tile) {
	for _, tile := range tiles {
		tile.inVisionOf = nil
		tile.watchedBy = nil
	}
}

// updateSafeTileOnly settles pieces whose destinations depend on opposing vision. Two
// passes resolve a dependency through one other safe-tile-only piece; deeper chains are
// not guaranteed to converge.
func (b *Board) updateSafeTileOnly() {
	for _, id := range b.safeTileOnly {
		if !b.pieces[id].State().Captured {
			b.update(id)
		}
	}
	for _, id := range b.safeTileOnly {
		st := b.pieces[id].State()
		if st.Captured {
			continue
		}
		before := slices.Clone(st.MovableTo)
		b.update(id)
		if !slices.Equal(before, st.MovableTo) {
			b.log.WithFields(log.Fields{"piece": id, "species": st.Species}).Debug("safe tile pass did not settle")
		}
	}
}

// SeenBy reports whether any piece of p sees c.
func (b *Board) SeenBy(c Coordinate, p Perspective) bool {
	if !b.grid.Exists(c) {
		return false
	}
	for _, id := range b.tileAt(c).inVisionOf {
		if b.pieces[id].State().Perspective == p {
			return true
		}
	}
	return false
}

// Ray walks from c along v for at most steps tiles, stopping on the first occupied tile
// (included). The king of xray, when set, does not stop the walk.
func (b *Board) Ray(from Coordinate, v Vector, steps int, xray Perspective) []Coordinate {
	if v == (Vector{}) {
		return nil
	}
	var out []Coordinate
	c := from
	for n := 0; steps == Unbounded || n < steps; n++ {
		c = c.Add(v)
		if !b.grid.Exists(c) {
			break
		}
		out = append(out, c)
		occupant := b.tileAt(c).Occupant
		if occupant == NoPiece {
			continue
		}
		if xray != NoPerspective && occupant == b.King(xray) {
			continue
		}
		break
	}
	return out
}

// Constrain filters a piece's candidate destinations by its pins and by the check
// state of its side.
func (b *Board) Constrain(st *PieceState, moves []Coordinate) []Coordinate {
	if st.IsPinned {
		king := b.pieces[b.King(st.Perspective)].State().Location
		for _, pinner := range st.PinnedBy {
			line := b.line(king, b.pieces[pinner].State().Location)
			moves = slices.DeleteFunc(moves, func(c Coordinate) bool {
				return !slices.Contains(line, c)
			})
		}
	}
	info := b.checkInfo[st.Perspective]
	if info.Status != StatusCheck || st.Pathing.OnlyMovableToSafeTiles {
		return moves
	}
	if len(info.Threats) != 1 {
		return nil
	}
	threat := info.Threats[0]
	allowed := append(slices.Clone(threat.AlongPath), b.pieces[threat.Piece].State().Location)
	return slices.DeleteFunc(moves, func(c Coordinate) bool {
		return !slices.Contains(allowed, c)
	})
}

// line lists the tiles from just past from up to and including to.
func (b *Board) line(from, to Coordinate) []Coordinate {
	dir, n, ok := to.Sub(from).unit()
	if !ok {
		return nil
	}
	out := make([]Coordinate, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, from.Add(dir.Scale(i)))
	}
	return out
}
