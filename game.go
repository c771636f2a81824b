package main

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"github.com/maplefeline/vchess/board"
)

// Game game.
type Game struct {
	gorm.Model

	GameID      uuid.UUID `gorm:"<-:create;type:varchar;size:36;uniqueIndex"`
	Layout      layout    `gorm:"<-:create;type:text;not null"`
	TilesPerRow int
	Turn        string
	WhiteStatus string
	BlackStatus string
	End         bool
	MoveCount   int
}

// Play play.
type Play struct {
	gorm.Model

	GameID  uuid.UUID `gorm:"type:varchar;size:36;uniqueIndex:idx_game_ply"`
	Ply     int       `gorm:"uniqueIndex:idx_game_ply"`
	FromCol int
	FromRow int
	ToCol   int
	ToRow   int
}

func (play Play) from() board.Coordinate {
	return board.Coordinate{Col: play.FromCol, Row: play.FromRow}
}

func (play Play) to() board.Coordinate {
	return board.Coordinate{Col: play.ToCol, Row: play.ToRow}
}

type session struct {
	mu    sync.Mutex
	game  *Game
	board *board.Board
	// stale is set when the board moved past what the store recorded.
	stale bool
}

type server struct {
	store gameStore

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

var errSessionStale = errors.New("game changed, reload and retry")

func newServer(store gameStore) *server {
	return &server{store: store, sessions: map[uuid.UUID]*session{}}
}

func newBoard(l layout) (*board.Board, error) {
	cfg, err := l.config()
	if err != nil {
		return nil, err
	}
	b := board.New()
	if err := b.Init(cfg); err != nil {
		return nil, err
	}
	return b, nil
}

func narrate(id uuid.UUID, b *board.Board) {
	b.Subscribe(func(e board.Event) {
		entry := log.WithFields(log.Fields{"game": id, "perspective": e.Perspective, "piece": e.Piece})
		if e.Kind == board.EventCheckmate {
			entry.Info(e.Kind.String())
			return
		}
		entry.Debug(e.Kind.String())
	})
}

func (s *server) makeGame(l layout) (*Game, error) {
	if len(l) == 0 {
		l = standardLayout
	}
	b, err := newBoard(l)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	game := &Game{GameID: uuid.NewV4(), Layout: l, TilesPerRow: l.tilesPerRow()}
	game.record(b)
	if err := s.store.createGame(game); err != nil {
		return nil, err
	}
	narrate(game.GameID, b)
	s.mu.Lock()
	s.sessions[game.GameID] = &session{game: game, board: b}
	s.mu.Unlock()
	return game, nil
}

// session returns the live board of a game, replaying its plays on a cache miss.
// The server lock is only held around the cache lookup and insert.
func (s *server) session(id uuid.UUID) (*session, error) {
	s.mu.Lock()
	ss, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		return ss, nil
	}
	loaded, err := s.load(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ss, ok := s.sessions[id]; ok {
		return ss, nil
	}
	narrate(id, loaded.board)
	s.sessions[id] = loaded
	return loaded, nil
}

func (s *server) load(id uuid.UUID) (*session, error) {
	game, err := s.store.getGame(id)
	if err != nil {
		return nil, err
	}
	b, err := newBoard(game.Layout)
	if err != nil {
		return nil, fmt.Errorf("rebuild game %s: %w", id, err)
	}
	plays, err := s.store.getPlays(id)
	if err != nil {
		return nil, err
	}
	for _, play := range plays {
		if err := b.Move(play.from(), play.to()); err != nil {
			return nil, fmt.Errorf("replay game %s ply %d: %w", id, play.Ply, err)
		}
	}
	return &session{game: game, board: b}, nil
}

func (s *server) evict(ids []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		delete(s.sessions, id)
	}
}

func (s *server) gameIdle() error {
	ids, err := s.store.pruneEnded(time.Now().Add(-time.Hour))
	if err != nil {
		return err
	}
	if len(ids) != 0 {
		log.WithField("games", len(ids)).Info("pruned ended games")
	}
	s.evict(ids)
	return nil
}

func (game *Game) record(b *board.Board) {
	game.Turn = b.Turn().String()
	game.WhiteStatus = b.CheckInfo(board.White).Status.String()
	game.BlackStatus = b.CheckInfo(board.Black).Status.String()
	game.End = b.Over()
}

func (s *server) play(ss *session, from, to board.Coordinate) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.stale {
		return errSessionStale
	}
	if ss.game.End {
		return echo.NewHTTPError(http.StatusBadRequest, "game is over")
	}
	b := ss.board
	id := b.OccupantAt(from)
	if id == board.NoPiece {
		return echo.NewHTTPError(http.StatusBadRequest, "no piece on tile")
	}
	st := b.Piece(id).State()
	if st.Perspective != b.Turn() {
		return echo.NewHTTPError(http.StatusNotAcceptable, "not your turn")
	}
	if !st.CanMoveTo(to) {
		return echo.NewHTTPError(http.StatusNotAcceptable, "invalid move")
	}
	if err := b.OnPieceMove(id, to); err != nil {
		return err
	}
	game := *ss.game
	game.MoveCount = game.MoveCount + 1
	game.record(b)
	play := &Play{GameID: game.GameID, Ply: game.MoveCount, FromCol: from.Col, FromRow: from.Row, ToCol: to.Col, ToRow: to.Row}
	if err := s.store.savePlay(&game, play); err != nil {
		ss.stale = true
		s.evict([]uuid.UUID{game.GameID})
		return err
	}
	*ss.game = game
	return nil
}

func errToHTTP(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.ErrNotFound
	}
	if errors.Is(err, errPlayRecorded) || errors.Is(err, errSessionStale) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if errors.Is(err, errLayout) || errors.Is(err, board.ErrInvalidConfig) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}
