package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/xiangqi-backend/internal/apperror"
)

func soldierPush(board Board, fromKey, toKey string, turn Side) Move {
	after := board.Clone()
	piece := after[fromKey]
	delete(after, fromKey)
	after[toKey] = piece

	return Move{Board: after, Turn: turn}
}

func TestNewGameState(t *testing.T) {
	// Given: a fresh game
	state := NewGameState()

	// Then: red moves first on the canonical 32-piece layout
	assert.Equal(t, SideRed, state.Turn)
	assert.Empty(t, state.History)
	assert.False(t, state.AIMode)
	assert.Len(t, state.Board, 32)
	assert.Equal(t, RedKing, state.Board["0-4"])
	assert.Equal(t, BlackKing, state.Board["9-4"])
}

func TestGameState_Apply(t *testing.T) {
	t.Run("Replaces board and turn and appends history", func(t *testing.T) {
		// Given: a fresh game and a red soldier push
		state := NewGameState()
		move := soldierPush(state.Board, "3-0", "4-0", SideBlack)

		// When: applying the move
		state.Apply(move)

		// Then: the state reflects the move's result
		assert.Equal(t, SideBlack, state.Turn)
		require.Len(t, state.History, 1)
		assert.Equal(t, RedSoldier, state.Board["4-0"])
		assert.NotContains(t, state.Board, "3-0")
	})

	t.Run("Keeps board and turn equal to the last history entry", func(t *testing.T) {
		state := NewGameState()

		first := soldierPush(state.Board, "3-0", "4-0", SideBlack)
		state.Apply(first)
		second := soldierPush(state.Board, "6-0", "5-0", SideRed)
		state.Apply(second)

		last := state.History[len(state.History)-1]
		assert.Equal(t, last.Turn, state.Turn)
		assert.Equal(t, last.Board, state.Board)
	})
}

func TestGameState_Undo(t *testing.T) {
	t.Run("Reverts to the position before the popped move", func(t *testing.T) {
		// Given: two played moves
		state := NewGameState()
		first := soldierPush(state.Board, "3-0", "4-0", SideBlack)
		state.Apply(first)
		second := soldierPush(state.Board, "6-0", "5-0", SideRed)
		state.Apply(second)

		// When: undoing the last move
		err := state.Undo()

		// Then: the state matches the first move's result, which remains in
		// the history
		require.NoError(t, err)
		require.Len(t, state.History, 1)
		assert.Equal(t, first.Board, state.Board)
		assert.Equal(t, SideBlack, state.Turn)
	})

	t.Run("Resets to the initial position when the only move is undone", func(t *testing.T) {
		// Given: exactly one played move
		state := NewGameState()
		state.Apply(soldierPush(state.Board, "3-0", "4-0", SideBlack))

		// When: undoing it
		err := state.Undo()

		// Then: the state is the canonical starting position
		require.NoError(t, err)
		assert.Empty(t, state.History)
		assert.Equal(t, SideRed, state.Turn)
		assert.Equal(t, NewBoard(), state.Board)
	})

	t.Run("Reports nothing to undo on an empty history", func(t *testing.T) {
		state := NewGameState()

		err := state.Undo()

		assert.ErrorIs(t, err, apperror.ErrNothingToUndo)
	})
}

func TestGameState_Snapshot(t *testing.T) {
	t.Run("Freezes the position at the time of the call", func(t *testing.T) {
		// Given: a snapshot taken after one move
		state := NewGameState()
		state.Apply(soldierPush(state.Board, "3-0", "4-0", SideBlack))
		snap := state.Snapshot()

		// When: the game moves on
		state.Apply(soldierPush(state.Board, "6-0", "5-0", SideRed))

		// Then: the snapshot still shows the earlier position
		assert.Equal(t, SideBlack, snap.Turn)
		assert.Len(t, snap.History, 1)
		assert.Equal(t, BlackSoldier, snap.Board["6-0"])
	})

	t.Run("Mutating the snapshot leaves the state alone", func(t *testing.T) {
		state := NewGameState()
		snap := state.Snapshot()

		delete(snap.Board, "0-4")

		assert.Contains(t, state.Board, "0-4")
	})
}

func TestGameState_Restart(t *testing.T) {
	t.Run("Returns to the initial position", func(t *testing.T) {
		// Given: a game with played moves
		state := NewGameState()
		state.Apply(soldierPush(state.Board, "3-0", "4-0", SideBlack))

		// When: restarting
		state.Restart()

		// Then: board, turn and history are fresh
		assert.Equal(t, NewBoard(), state.Board)
		assert.Equal(t, SideRed, state.Turn)
		assert.Empty(t, state.History)
	})

	t.Run("Keeps AI mode enabled across a restart", func(t *testing.T) {
		state := NewGameState()
		state.ToggleAIMode()

		state.Restart()

		assert.True(t, state.AIMode)
	})
}

func TestGameState_ToggleAIMode(t *testing.T) {
	state := NewGameState()

	assert.True(t, state.ToggleAIMode())
	assert.False(t, state.ToggleAIMode())
}

func TestBoard_Clone(t *testing.T) {
	// Given: a cloned board
	board := NewBoard()
	clone := board.Clone()

	// When: mutating the clone
	delete(clone, "0-4")

	// Then: the original is unaffected
	assert.Contains(t, board, "0-4")
	assert.NotContains(t, clone, "0-4")
}

func TestBoard_HasKing(t *testing.T) {
	t.Run("Both kings present on a fresh board", func(t *testing.T) {
		board := NewBoard()

		assert.True(t, board.HasKing(SideRed))
		assert.True(t, board.HasKing(SideBlack))
	})

	t.Run("Reports a captured king as absent", func(t *testing.T) {
		board := NewBoard()
		delete(board, "9-4")

		assert.False(t, board.HasKing(SideBlack))
		assert.True(t, board.HasKing(SideRed))
	})
}

func TestParsePosition(t *testing.T) {
	t.Run("Round-trips a key", func(t *testing.T) {
		pos, err := ParsePosition("7-3")

		require.NoError(t, err)
		assert.Equal(t, Position{Row: 7, Col: 3}, pos)
		assert.Equal(t, "7-3", pos.Key())
	})

	t.Run("Rejects malformed keys", func(t *testing.T) {
		for _, key := range []string{"", "7", "a-3", "7-b", "10-0", "0-9"} {
			_, err := ParsePosition(key)
			assert.Error(t, err, "key %q", key)
		}
	})
}

func TestPiece(t *testing.T) {
	t.Run("Derives side from the symbol", func(t *testing.T) {
		assert.Equal(t, SideRed, RedCannon.Side())
		assert.Equal(t, SideBlack, BlackCannon.Side())
		assert.True(t, RedRook.SameSide(RedSoldier))
		assert.False(t, RedRook.SameSide(BlackRook))
	})

	t.Run("Pairs red and black variants on role and value", func(t *testing.T) {
		pairs := [][2]Piece{
			{RedKing, BlackKing},
			{RedAdvisor, BlackAdvisor},
			{RedElephant, BlackElephant},
			{RedRook, BlackRook},
			{RedHorse, BlackHorse},
			{RedCannon, BlackCannon},
			{RedSoldier, BlackSoldier},
		}

		for _, pair := range pairs {
			assert.Equal(t, pair[0].Role(), pair[1].Role())
			assert.Equal(t, pair[0].Value(), pair[1].Value())
		}
	})

	t.Run("Rejects unknown symbols", func(t *testing.T) {
		assert.False(t, Piece("X").IsValid())
		assert.True(t, RedKing.IsValid())
	})
}
