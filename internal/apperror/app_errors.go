package apperror

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room is full")
	ErrDuplicateIdentity = errors.New("identity is already taken")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrIllegalMove       = errors.New("move is not legal")
	ErrUnauthorized      = errors.New("operation not permitted for this seat")
	ErrGameNotStarted    = errors.New("game is not started")
	ErrNothingToUndo     = errors.New("no moves to undo")
	ErrNotSeated         = errors.New("connection is not seated in this room")
)
