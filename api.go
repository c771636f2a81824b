package main

import (
	"bytes"
	"net/http"
	"path"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	uuid "github.com/satori/go.uuid"

	"github.com/maplefeline/vchess/board"
)

type gameRequest struct {
	Layout layout
}

type playRequest struct {
	From board.Coordinate
	To   board.Coordinate
}

type gameView struct {
	GameID    uuid.UUID
	Layout    layout
	Turn      string
	White     string
	Black     string
	End       bool
	MoveCount int

	Pieces   []pieceView                `json:",omitempty"`
	Threats  map[string][]board.Threat  `json:",omitempty"`
	Captured map[string][]board.PieceID `json:",omitempty"`
}

type gameResponse struct {
	Href string
	Game gameView
}

type gamesResponse struct {
	Href  string
	Games []gameView
}

type pieceView struct {
	ID          board.PieceID
	Perspective string
	Species     string
	Location    board.Coordinate
	MovableTo   []board.Coordinate
	InVision    []board.Coordinate
	PinnedBy    []board.PieceID
	Captured    bool
	Retired     bool
	Moves       int
}

type pieceResponse struct {
	Href  string
	Piece pieceView
}

type playsResponse struct {
	Href  string
	Plays []playRequest
}

type statsResponse struct {
	Href  string
	White mobility
	Black mobility
}

func requestID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

func (s *server) requestSession(c echo.Context) (*session, error) {
	id, err := requestID(c)
	if err != nil {
		return nil, err
	}
	return s.session(id)
}

func gameHref(id uuid.UUID, elem ...string) string {
	return path.Join(append([]string{"/games", id.String()}, elem...)...)
}

func viewGame(game *Game, b *board.Board) gameView {
	view := gameView{
		GameID:    game.GameID,
		Layout:    game.Layout,
		Turn:      game.Turn,
		White:     game.WhiteStatus,
		Black:     game.BlackStatus,
		End:       game.End,
		MoveCount: game.MoveCount,
	}
	if b == nil {
		return view
	}
	view.Layout = formatLayout(b)
	view.Threats = map[string][]board.Threat{}
	view.Captured = map[string][]board.PieceID{}
	for _, p := range []board.Perspective{board.White, board.Black} {
		view.Threats[p.String()] = b.CheckInfo(p).Threats
		view.Captured[p.String()] = b.Captured(p)
	}
	for _, id := range b.Active() {
		view.Pieces = append(view.Pieces, viewPiece(b.Piece(id).State()))
	}
	return view
}

func viewPiece(st *board.PieceState) pieceView {
	return pieceView{
		ID:          st.ID,
		Perspective: st.Perspective.String(),
		Species:     st.Species.String(),
		Location:    st.Location,
		MovableTo:   st.MovableTo,
		InVision:    st.InVision,
		PinnedBy:    st.PinnedBy,
		Captured:    st.Captured,
		Retired:     st.Retired,
		Moves:       st.Moves,
	}
}

func responseGame(ss *session) gameResponse {
	return gameResponse{Game: viewGame(ss.game, ss.board), Href: gameHref(ss.game.GameID)}
}

func apiHandler(s *server) *echo.Echo {
	e := echo.New()

	e.GET("/games", func(c echo.Context) error {
		games, err := s.store.getGames()
		if err != nil {
			return errToHTTP(err)
		}
		views := make([]gameView, 0, len(games))
		for i := range games {
			views = append(views, viewGame(&games[i], nil))
		}
		return c.JSON(http.StatusOK, gamesResponse{Games: views, Href: "/games"})
	})
	e.POST("/games", func(c echo.Context) error {
		var request gameRequest
		if err := c.Bind(&request); err != nil {
			return err
		}
		game, err := s.makeGame(request.Layout)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusCreated, gameResponse{Game: viewGame(game, nil), Href: gameHref(game.GameID)})
	})
	e.GET("/games/:id", func(c echo.Context) error {
		ss, err := s.requestSession(c)
		if err != nil {
			return errToHTTP(err)
		}
		ss.mu.Lock()
		defer ss.mu.Unlock()
		return c.JSON(http.StatusOK, responseGame(ss))
	})
	e.GET("/games/:id/pieces/:piece", func(c echo.Context) error {
		ss, err := s.requestSession(c)
		if err != nil {
			return errToHTTP(err)
		}
		n, err := strconv.Atoi(c.Param("piece"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		ss.mu.Lock()
		defer ss.mu.Unlock()
		piece := ss.board.Piece(board.PieceID(n))
		if piece == nil {
			return echo.ErrNotFound
		}
		return c.JSON(http.StatusOK, pieceResponse{Piece: viewPiece(piece.State()), Href: gameHref(ss.game.GameID, "pieces", c.Param("piece"))})
	})
	e.PUT("/games/:id/plays", func(c echo.Context) error {
		ss, err := s.requestSession(c)
		if err != nil {
			return errToHTTP(err)
		}
		var request playRequest
		if err := c.Bind(&request); err != nil {
			return err
		}
		if err := s.play(ss, request.From, request.To); err != nil {
			return errToHTTP(err)
		}
		ss.mu.Lock()
		defer ss.mu.Unlock()
		return c.JSON(http.StatusOK, responseGame(ss))
	})
	e.GET("/games/:id/plays", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		if _, err := s.store.getGame(id); err != nil {
			return errToHTTP(err)
		}
		plays, err := s.store.getPlays(id)
		if err != nil {
			return errToHTTP(err)
		}
		response := playsResponse{Plays: make([]playRequest, 0, len(plays)), Href: gameHref(id, "plays")}
		for _, play := range plays {
			response.Plays = append(response.Plays, playRequest{From: play.from(), To: play.to()})
		}
		return c.JSON(http.StatusOK, response)
	})
	e.GET("/games/:id/board.svg", func(c echo.Context) error {
		ss, err := s.requestSession(c)
		if err != nil {
			return errToHTTP(err)
		}
		var buffer bytes.Buffer
		ss.mu.Lock()
		renderBoard(&buffer, ss.board, nil)
		ss.mu.Unlock()
		return c.Blob(http.StatusOK, "image/svg+xml", buffer.Bytes())
	})
	e.GET("/games/:id/stats", func(c echo.Context) error {
		ss, err := s.requestSession(c)
		if err != nil {
			return errToHTTP(err)
		}
		ss.mu.Lock()
		defer ss.mu.Unlock()
		response := statsResponse{Href: gameHref(ss.game.GameID, "stats")}
		if response.White, err = mobilityOf(ss.board, board.White); err != nil {
			return err
		}
		if response.Black, err = mobilityOf(ss.board, board.Black); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, response)
	})

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Gzip())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	return e
}
