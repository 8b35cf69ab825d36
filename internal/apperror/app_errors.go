package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidPosition = errors.New("position must be between 1 and 9")
	ErrUnknownMode     = errors.New("unknown game mode")
	ErrSessionNotFound = errors.New("session not found")
)
