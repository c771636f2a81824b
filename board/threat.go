package board

import "github.com/apex/log"

// threatsTo lists the opposing pieces that see the king of p.
func (b *Board) threatsTo(p Perspective) []PieceID {
	king := b.King(p)
	if king == NoPiece {
		return nil
	}
	var threats []PieceID
	for _, id := range b.tileAt(b.pieces[king].State().Location).inVisionOf {
		if b.pieces[id].State().Perspective != p {
			threats = append(threats, id)
		}
	}
	return threats
}

// IsCheck reports whether the king of p is seen by an opposing piece.
func (b *Board) IsCheck(p Perspective) bool {
	return len(b.threatsTo(p)) != 0
}

// threatPath is the walk of threat toward the king of p.
func (b *Board) threatPath(threat PieceID, p Perspective) []Coordinate {
	piece := b.pieces[threat]
	king := b.pieces[b.King(p)].State().Location
	v, ok := piece.RelatingVector(b, king)
	if !ok {
		return nil
	}
	return piece.Walk(b, v, piece.State().Pathing.Steps)
}

// IsCheckMateOnCheck decides whether a king already under threat can escape. Only a
// single threat can be answered by capturing or interposing.
func (b *Board) IsCheckMateOnCheck(p Perspective) bool {
	king := b.pieces[b.King(p)].State()
	if len(king.MovableTo) != 0 {
		return false
	}
	threats := b.threatsTo(p)
	if len(threats) != 1 {
		return true
	}
	threat := threats[0]
	squares := append(b.threatPath(threat, p), b.pieces[threat].State().Location)
	for _, c := range squares {
		tile := b.tileAt(c)
		for _, set := range []pieceSet{tile.inVisionOf, tile.watchedBy} {
			for _, id := range set {
				friendly := b.pieces[id].State()
				if friendly.Perspective == p && friendly.CanMoveTo(c) {
					return false
				}
			}
		}
	}
	return true
}

func (b *Board) threatInfo(status CheckStatus, p Perspective) CheckInfo {
	info := CheckInfo{Status: status}
	for _, threat := range b.threatsTo(p) {
		info.Threats = append(info.Threats, Threat{Piece: threat, AlongPath: b.threatPath(threat, p)})
	}
	return info
}

func (b *Board) onCheck(p Perspective) {
	if b.IsCheckMateOnCheck(p) {
		b.onCheckMate(p)
		return
	}
	b.checkInfo[p] = b.threatInfo(StatusCheck, p)
	b.log.WithFields(log.Fields{"perspective": p, "threats": len(b.checkInfo[p].Threats)}).Debug("in check")
	b.emit(Event{Kind: EventCheck, Perspective: p, Piece: b.King(p), At: b.pieces[b.King(p)].State().Location})
	b.updateAll(b.piecesOf(p))
}

func (b *Board) onCheckMate(p Perspective) {
	b.checkInfo[p] = b.threatInfo(StatusCheckmate, p)
	b.log.WithField("perspective", p).Debug("checkmated")
	b.emit(Event{Kind: EventCheckmate, Perspective: p, Piece: b.King(p), At: b.pieces[b.King(p)].State().Location})
}

func (b *Board) onNoLongerCheck(p Perspective) {
	b.checkInfo[p] = CheckInfo{Status: StatusNone}
	b.log.WithField("perspective", p).Debug("no longer in check")
	b.emit(Event{Kind: EventCheckCleared, Perspective: p, Piece: b.King(p)})
	b.updateAll(b.piecesOf(p))
}

// checkForPins refreshes the pin state of every active piece. Pieces that become or
// stay pinned, or lose a pin, recompute their destinations.
func (b *Board) checkForPins() {
	for _, id := range b.active {
		st := b.pieces[id].State()
		st.PinnedBy = b.pieces[id].PinnedBy(b)
		if len(st.PinnedBy) != 0 {
			st.IsPinned = true
			b.update(id)
		} else if st.IsPinned {
			st.IsPinned = false
			b.update(id)
		}
	}
}
