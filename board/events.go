package board

// EventKind names a change of game state.
type EventKind uint8

const (
	EventTurnChanged EventKind = iota + 1
	EventCheck
	EventCheckCleared
	EventCheckmate
	EventCapture
	EventPromotion
)

var eventNames = map[EventKind]string{
	EventTurnChanged:  "turn changed",
	EventCheck:        "check",
	EventCheckCleared: "check cleared",
	EventCheckmate:    "checkmate",
	EventCapture:      "capture",
	EventPromotion:    "promotion",
}

func (k EventKind) String() string {
	return eventNames[k]
}

// Event is emitted by the board after a change of state so a front end can render it.
type Event struct {
	Kind        EventKind
	Perspective Perspective
	Piece       PieceID
	At          Coordinate
}

// Subscribe registers fn to receive every event of the board.
func (b *Board) Subscribe(fn func(Event)) {
	b.listeners = append(b.listeners, fn)
}

func (b *Board) emit(e Event) {
	for _, fn := range b.listeners {
		fn(e)
	}
}
