// Package board implements the rules engine for chess-like games on rectangular boards
// of any size: tile vision bookkeeping, check and checkmate detection, pins, captures,
// pawn promotion and the turn cycle.
package board

import (
	"fmt"
	"slices"

	"github.com/apex/log"
)

// CheckStatus is the check state of one perspective.
type CheckStatus uint8

const (
	StatusNone CheckStatus = iota
	StatusCheck
	StatusCheckmate
)

func (s CheckStatus) String() string {
	switch s {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	}
	return "none"
}

// MarshalText encodes the status name.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Threat is a piece attacking a king and the squares it travels along to get there.
type Threat struct {
	Piece     PieceID
	AlongPath []Coordinate
}

// CheckInfo records the check state of one perspective.
type CheckInfo struct {
	Status  CheckStatus
	Threats []Threat
}

// Config is the initial placement handed to Init.
type Config struct {
	// PieceMap has one entry per tile, nil for an empty tile.
	PieceMap    []Piece
	TilesPerRow int
	// Promote builds the replacement for a promoted pawn, queen when nil.
	Promote func(Perspective) Piece
}

// DemoConfig is a three by three board with both kings and a white rook.
func DemoConfig() Config {
	return Config{
		PieceMap: []Piece{
			nil, NewKing(Black), nil,
			nil, nil, nil,
			NewRook(White), nil, NewKing(White),
		},
		TilesPerRow: 3,
	}
}

// StandardConfig is the eight by eight starting position, black on row 0.
func StandardConfig() Config {
	back := func(p Perspective) []Piece {
		return []Piece{
			NewRook(p), NewKnight(p), NewBishop(p), NewQueen(p),
			NewKing(p), NewBishop(p), NewKnight(p), NewRook(p),
		}
	}
	pawns := func(p Perspective) []Piece {
		row := make([]Piece, 8)
		for i := range row {
			row[i] = NewPawn(p)
		}
		return row
	}
	pieceMap := make([]Piece, 0, 64)
	pieceMap = append(pieceMap, back(Black)...)
	pieceMap = append(pieceMap, pawns(Black)...)
	pieceMap = append(pieceMap, make([]Piece, 32)...)
	pieceMap = append(pieceMap, pawns(White)...)
	pieceMap = append(pieceMap, back(White)...)
	return Config{PieceMap: pieceMap, TilesPerRow: 8}
}

func (cfg Config) withDefaults() Config {
	if cfg.PieceMap == nil && cfg.TilesPerRow == 0 {
		cfg = DemoConfig()
	}
	if cfg.TilesPerRow == 0 {
		cfg.TilesPerRow = 3
	}
	if cfg.Promote == nil {
		cfg.Promote = func(p Perspective) Piece { return NewQueen(p) }
	}
	return cfg
}

// Board is the aggregate root of one game.
type Board struct {
	grid         Grid
	tiles        []Tile
	pieces       []Piece
	active       []PieceID
	king         map[Perspective]PieceID
	captured     map[Perspective][]PieceID
	checkInfo    map[Perspective]CheckInfo
	turn         Perspective
	safeTileOnly []PieceID
	promote      func(Perspective) Piece
	initialised  bool

	log       log.Interface
	listeners []func(Event)
}

// New returns an empty board awaiting Init.
func New() *Board {
	return &Board{
		king:      map[Perspective]PieceID{},
		captured:  map[Perspective][]PieceID{},
		checkInfo: map[Perspective]CheckInfo{},
		turn:      White,
		log:       log.Log,
	}
}

// SetLogger replaces the logger used for debug narration.
func (b *Board) SetLogger(l log.Interface) {
	b.log = l
}

// Init places the configured pieces and settles their vision. The board is left
// untouched when the configuration is rejected.
func (b *Board) Init(cfg Config) error {
	if b.initialised {
		return ErrAlreadyInitialised
	}
	scratch := New()
	scratch.log = b.log
	if err := scratch.setup(cfg.withDefaults()); err != nil {
		return err
	}
	for _, p := range scratch.pieces {
		p.State().owned = true
	}
	scratch.listeners = b.listeners
	scratch.initialised = true
	*b = *scratch
	b.log.WithFields(log.Fields{"tiles": len(b.tiles), "row_length": b.grid.RowLength, "pieces": len(b.active)}).Debug("board initialised")
	return nil
}

func (b *Board) setup(cfg Config) error {
	if cfg.TilesPerRow <= 0 || len(cfg.PieceMap)%cfg.TilesPerRow != 0 {
		return fmt.Errorf("invalid piece map of length %d for row length %d: %w", len(cfg.PieceMap), cfg.TilesPerRow, ErrRowLength)
	}
	b.grid = Grid{RowLength: cfg.TilesPerRow, Rows: len(cfg.PieceMap) / cfg.TilesPerRow}
	b.promote = cfg.Promote
	b.tiles = make([]Tile, 0, len(cfg.PieceMap))

	seen := map[*PieceState]bool{}
	for index, piece := range cfg.PieceMap {
		occupant := NoPiece
		if piece != nil {
			st := piece.State()
			if st.owned || seen[st] {
				return fmt.Errorf("tile %d: %w", index, ErrPieceReused)
			}
			seen[st] = true
			occupant = b.register(piece)
			if st.Species == King {
				if _, ok := b.king[st.Perspective]; ok {
					return fmt.Errorf("%s perspective has more than one: %w", st.Perspective, ErrDuplicateKing)
				}
				b.king[st.Perspective] = occupant
			}
		}
		promotionFor := NoPerspective
		if index < b.grid.RowLength {
			promotionFor = White
		} else if index >= len(cfg.PieceMap)-b.grid.RowLength {
			promotionFor = Black
		}
		b.tiles = append(b.tiles, newTile(occupant, promotionFor))
	}
	for _, p := range []Perspective{White, Black} {
		if _, ok := b.king[p]; !ok {
			return fmt.Errorf("%s has no king: %w", p, ErrMissingKing)
		}
	}

	for _, id := range b.active {
		if err := b.initialisePiece(id, false); err != nil {
			return err
		}
	}
	for _, id := range b.safeTileOnly {
		if err := b.initialisePiece(id, true); err != nil {
			return err
		}
	}
	b.checkForPins()

	if b.IsCheck(White) || b.IsCheck(Black) {
		return ErrStartsInCheck
	}
	return nil
}

func (b *Board) register(piece Piece) PieceID {
	st := piece.State()
	id := PieceID(len(b.pieces))
	st.ID = id
	b.pieces = append(b.pieces, piece)
	b.active = append(b.active, id)
	if st.Pathing.OnlyMovableToSafeTiles {
		b.safeTileOnly = append(b.safeTileOnly, id)
	}
	return id
}

// initialisePiece leaves safe-tile-only pieces uninitialised on the first pass since
// their destinations depend on the vision of every other piece.
func (b *Board) initialisePiece(id PieceID, second bool) error {
	st := b.pieces[id].State()
	location, err := b.locate(id)
	if err != nil {
		return err
	}
	st.Location = location
	b.update(id)
	if !st.Pathing.OnlyMovableToSafeTiles || second {
		st.Initialised = true
	}
	return nil
}

func (b *Board) locate(id PieceID) (Coordinate, error) {
	for index, tile := range b.tiles {
		if tile.Occupant == id {
			return b.grid.ToCoordinate(index), nil
		}
	}
	return Coordinate{}, fmt.Errorf("piece %d: %w", id, ErrPieceNotOnBoard)
}

func (b *Board) tileAt(c Coordinate) *Tile {
	return &b.tiles[b.grid.mustIndex(c)]
}

// Grid returns the coordinate mapping of the board.
func (b *Board) Grid() Grid {
	return b.grid
}

// Initialised reports whether Init completed.
func (b *Board) Initialised() bool {
	return b.initialised
}

// Tile returns a copy of the tile at c.
func (b *Board) Tile(c Coordinate) (Tile, error) {
	if !b.grid.Exists(c) {
		return Tile{}, fmt.Errorf("tile %s: %w", c, ErrOutOfRange)
	}
	return *b.tileAt(c), nil
}

// Piece returns the piece registered under id, nil when unknown.
func (b *Board) Piece(id PieceID) Piece {
	if id < 0 || int(id) >= len(b.pieces) {
		return nil
	}
	return b.pieces[id]
}

// OccupantAt returns the piece standing on c, NoPiece when empty or off the board.
func (b *Board) OccupantAt(c Coordinate) PieceID {
	if !b.grid.Exists(c) {
		return NoPiece
	}
	return b.tileAt(c).Occupant
}

// Active lists the pieces still in play.
func (b *Board) Active() []PieceID {
	return slices.Clone(b.active)
}

// IsActive reports whether id is still in play.
func (b *Board) IsActive(id PieceID) bool {
	return slices.Contains(b.active, id)
}

// Captured lists the pieces captured by perspective p.
func (b *Board) Captured(p Perspective) []PieceID {
	return slices.Clone(b.captured[p])
}

// King returns the king of p.
func (b *Board) King(p Perspective) PieceID {
	if id, ok := b.king[p]; ok {
		return id
	}
	return NoPiece
}

// CheckInfo returns the check state of p.
func (b *Board) CheckInfo(p Perspective) CheckInfo {
	info := b.checkInfo[p]
	info.Threats = slices.Clone(info.Threats)
	return info
}

// Turn returns the perspective to move.
func (b *Board) Turn() Perspective {
	return b.turn
}

// Over reports whether either perspective has been checkmated.
func (b *Board) Over() bool {
	return b.checkInfo[White].Status == StatusCheckmate || b.checkInfo[Black].Status == StatusCheckmate
}

func (b *Board) piecesOf(p Perspective) []PieceID {
	var ids []PieceID
	for _, id := range b.active {
		if b.pieces[id].State().Perspective == p {
			ids = append(ids, id)
		}
	}
	return ids
}
