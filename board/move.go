package board

import (
	"fmt"
	"slices"

	"github.com/apex/log"
)

// Move moves the occupant of from to to.
func (b *Board) Move(from, to Coordinate) error {
	id := b.OccupantAt(from)
	if id == NoPiece {
		return fmt.Errorf("no piece on %s: %w", from, ErrInvalidMove)
	}
	return b.OnPieceMove(id, to)
}

// OnPieceMove applies a move the caller has already checked against MovableTo, then
// settles vision, pins and the turn.
func (b *Board) OnPieceMove(id PieceID, to Coordinate) error {
	if err := b.ready(id); err != nil {
		return err
	}
	if !b.grid.Exists(to) {
		return fmt.Errorf("destination %s: %w", to, ErrOutOfRange)
	}
	piece := b.pieces[id]
	st := piece.State()
	origin := b.tileAt(st.Location)
	if origin.Occupant != id {
		return fmt.Errorf("piece %d at %s: %w", id, st.Location, ErrPieceNotOnBoard)
	}
	if to == st.Location {
		return fmt.Errorf("piece %d already on %s: %w", id, to, ErrInvalidMove)
	}
	target := b.tileAt(to)
	if target.Occupied() && b.pieces[target.Occupant].State().Species == King {
		return fmt.Errorf("kings cannot be captured: %w", ErrInvalidMove)
	}

	from := st.Location
	exclude := pieceSet{id}
	origin.Occupant = NoPiece
	if target.Occupied() {
		exclude.add(target.Occupant)
		b.capture(target.Occupant)
	}
	target.Occupant = id
	st.Location = to
	st.Moves++

	if b.checkInfo[b.turn].Status == StatusCheck {
		b.onNoLongerCheck(b.turn)
	}

	affected := b.affectedBy(exclude, origin, target)
	clearVision(origin, target)

	b.update(id)
	b.updateAll(affected)

	if st.Species == Pawn && target.PromotionFor == st.Perspective {
		b.upgrade(id)
	}

	b.updateSafeTileOnly()
	b.checkForPins()
	b.log.WithFields(log.Fields{"piece": id, "species": st.Species, "from": from, "to": to, "affected": len(affected)}).Debug("piece moved")
	b.changeTurn()
	return nil
}

func (b *Board) ready(id PieceID) error {
	if !b.initialised {
		return ErrNotInitialised
	}
	if b.Over() {
		return ErrGameOver
	}
	if !b.IsActive(id) {
		return fmt.Errorf("piece %d: %w", id, ErrInactivePiece)
	}
	return nil
}

// CapturePiece removes an active piece from play outside of a move and refreshes the
// pieces that could see its tile.
func (b *Board) CapturePiece(id PieceID) error {
	if err := b.ready(id); err != nil {
		return err
	}
	st := b.pieces[id].State()
	if st.Species == King {
		return fmt.Errorf("kings cannot be captured: %w", ErrInvalidMove)
	}
	tile := b.tileAt(st.Location)
	b.capture(id)
	if tile.Occupant == id {
		tile.Occupant = NoPiece
	}
	affected := b.affectedBy(nil, tile)
	clearVision(tile)
	b.updateAll(affected)
	b.updateSafeTileOnly()
	b.checkForPins()
	return nil
}

// capture does the registry bookkeeping; the captor is the opponent of the piece.
func (b *Board) capture(id PieceID) {
	piece := b.pieces[id]
	st := piece.State()
	b.forget(id)
	b.removeActive(id)
	captor := st.Perspective.Opponent()
	b.captured[captor] = append(b.captured[captor], id)
	piece.OnCaptured()
	b.log.WithFields(log.Fields{"piece": id, "species": st.Species, "captor": captor}).Debug("piece captured")
	b.emit(Event{Kind: EventCapture, Perspective: captor, Piece: id, At: st.Location})
}

func (b *Board) removeActive(id PieceID) {
	if i := slices.Index(b.active, id); i >= 0 {
		b.active = slices.Delete(b.active, i, i+1)
	}
}

// UpgradePawn replaces an active pawn with the promotion piece of its perspective and
// returns the id of the replacement.
func (b *Board) UpgradePawn(id PieceID) (PieceID, error) {
	if err := b.ready(id); err != nil {
		return NoPiece, err
	}
	if species := b.pieces[id].State().Species; species != Pawn {
		return NoPiece, fmt.Errorf("piece %d is a %s: %w", id, species, ErrInvalidMove)
	}
	replacement := b.upgrade(id)
	b.updateSafeTileOnly()
	b.checkForPins()
	return replacement, nil
}

func (b *Board) upgrade(id PieceID) PieceID {
	pawn := b.pieces[id].State()
	b.forget(id)
	b.removeActive(id)
	pawn.Retired = true
	pawn.InVision, pawn.MovableTo, pawn.Watching = nil, nil, nil

	replacement := b.promote(pawn.Perspective)
	rid := b.register(replacement)
	st := replacement.State()
	st.Location = pawn.Location
	st.Initialised = true
	st.owned = true
	b.tileAt(pawn.Location).Occupant = rid
	b.update(rid)

	b.log.WithFields(log.Fields{"pawn": id, "piece": rid, "species": st.Species}).Debug("pawn promoted")
	b.emit(Event{Kind: EventPromotion, Perspective: st.Perspective, Piece: rid, At: st.Location})
	return rid
}
