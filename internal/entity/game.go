package entity

import "github.com/rocketscienceinc/xiangqi-backend/internal/apperror"

// Move - a played transition. It carries the resulting board and the side to
// move afterwards, not a delta; history entries are full snapshots.
type Move struct {
	Board Board     `json:"pieces"`
	Turn  Side      `json:"turn"`
	From  *Position `json:"from,omitempty"`
	To    *Position `json:"to,omitempty"`
}

// GameState - the mutable per-room record. It performs no legality checks of
// its own; callers validate through the rules package first.
type GameState struct {
	Board   Board  `json:"pieces"`
	Turn    Side   `json:"turn"`
	History []Move `json:"history"`
	AIMode  bool   `json:"aiMode"`
}

// NewGameState - a fresh game: canonical layout, red to move, empty history.
func NewGameState() *GameState {
	return &GameState{
		Board:   NewBoard(),
		Turn:    SideRed,
		History: make([]Move, 0),
	}
}

// Apply - replaces the board and turn with the move's result and appends it
// to the history.
func (that *GameState) Apply(move Move) {
	that.Board = move.Board
	that.Turn = move.Turn
	that.History = append(that.History, move)
}

// Undo - pops the last played move. The resulting position is the one before
// the popped move: recovered from the entry beneath it, or the canonical
// initial position when the popped entry was the only one.
func (that *GameState) Undo() error {
	if len(that.History) == 0 {
		return apperror.ErrNothingToUndo
	}

	that.History = that.History[:len(that.History)-1]

	if len(that.History) == 0 {
		that.Board = NewBoard()
		that.Turn = SideRed
		return nil
	}

	last := that.History[len(that.History)-1]
	that.Board = last.Board.Clone()
	that.Turn = last.Turn

	return nil
}

// Snapshot - a copy safe for concurrent reads after the caller's lock is
// released: the current board is cloned and the history slice is copied.
// Boards inside history entries are shared, they are never mutated once
// applied.
func (that *GameState) Snapshot() *GameState {
	history := make([]Move, len(that.History))
	copy(history, that.History)

	return &GameState{
		Board:   that.Board.Clone(),
		Turn:    that.Turn,
		History: history,
		AIMode:  that.AIMode,
	}
}

// Restart - resets the game to its initial position. AI mode survives a
// restart so a solo player keeps their computer opponent.
func (that *GameState) Restart() {
	that.Board = NewBoard()
	that.Turn = SideRed
	that.History = make([]Move, 0)
}

// ToggleAIMode - flips the computer-opponent flag and returns the new value.
func (that *GameState) ToggleAIMode() bool {
	that.AIMode = !that.AIMode
	return that.AIMode
}
