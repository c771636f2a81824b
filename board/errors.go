package board

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrRowLength          = fmt.Errorf("%w: piece map length must be an exact multiple of tiles per row", ErrInvalidConfig)
	ErrDuplicateKing      = fmt.Errorf("%w: only one king per perspective is allowed", ErrInvalidConfig)
	ErrMissingKing        = fmt.Errorf("%w: both perspectives must have a king", ErrInvalidConfig)
	ErrStartsInCheck      = fmt.Errorf("%w: either side cannot begin in check", ErrInvalidConfig)
	ErrPieceReused        = fmt.Errorf("%w: piece placed more than once", ErrInvalidConfig)
	ErrOutOfRange         = errors.New("coordinate out of range")
	ErrPieceNotOnBoard    = errors.New("piece not located within tile map")
	ErrNotInitialised     = errors.New("board not initialised")
	ErrAlreadyInitialised = errors.New("board already initialised")
	ErrGameOver           = errors.New("game is over")
	ErrInactivePiece      = errors.New("piece is not active")
	ErrInvalidMove        = errors.New("invalid move")
)
