package board

func (b *Board) changeTurn() {
	b.turn = b.turn.Opponent()
	b.onTurnChange()
}

func (b *Board) onTurnChange() {
	b.log.WithField("turn", b.turn).Debug("turn changed")
	b.emit(Event{Kind: EventTurnChanged, Perspective: b.turn, Piece: NoPiece})
	if b.IsCheck(b.turn) {
		b.onCheck(b.turn)
	}
}
