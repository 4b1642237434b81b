package usecase

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/xiangqi-backend/internal/apperror"
	"github.com/rocketscienceinc/xiangqi-backend/internal/entity"
	"github.com/rocketscienceinc/xiangqi-backend/internal/rules"
)

// moveChooser - the computer opponent consulted when a room plays with AI.
type moveChooser interface {
	ChooseMove(state *entity.GameState, side entity.Side) *entity.Move
}

// LeaveResult - what happened when a seat was removed from a room. Room is
// nil when the departure destroyed it.
type LeaveResult struct {
	RoomID    string
	Room      *RoomView
	Removed   SeatView
	Destroyed bool
}

// RoomManager - owns the room directory and orchestrates every state
// transition. One mutex serializes all operations, so a handler never
// observes a half-updated room. Results are snapshots taken under the lock.
type RoomManager struct {
	logger *slog.Logger

	mu     sync.Mutex
	store  roomStore
	engine moveChooser
}

func NewRoomManager(logger *slog.Logger, store roomStore, engine moveChooser) *RoomManager {
	return &RoomManager{
		logger: logger.With("component", "rooms"),
		store:  store,
		engine: engine,
	}
}

// CreateRoom - allocates a fresh room with the requester seated red. The
// identity must be unused across every existing room.
func (that *RoomManager) CreateRoom(conn entity.Sender, identity string) (*RoomView, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.identityTaken(identity) {
		return nil, fmt.Errorf("create room: %w", apperror.ErrDuplicateIdentity)
	}

	room := &entity.Room{
		ID:    uuid.NewString(),
		State: entity.NewGameState(),
		Seats: []*entity.Seat{{
			Conn:     conn,
			Side:     entity.SideRed,
			Identity: identity,
		}},
	}
	that.store.Put(room)

	that.logger.Info("room created", "roomID", room.ID, "identity", identity)

	return snapshotRoom(room), nil
}

// JoinRoom - seats the requester on the free side. The returned bool reports
// whether this join filled the room and started the game.
func (that *RoomManager) JoinRoom(roomID string, conn entity.Sender, identity string) (*RoomView, SeatView, bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.store.Get(roomID)
	if !ok {
		return nil, SeatView{}, false, fmt.Errorf("join room %s: %w", roomID, apperror.ErrRoomNotFound)
	}

	if room.IsFull() {
		return nil, SeatView{}, false, fmt.Errorf("join room %s: %w", roomID, apperror.ErrRoomFull)
	}

	if room.HasIdentity(identity) {
		return nil, SeatView{}, false, fmt.Errorf("join room %s: %w", roomID, apperror.ErrDuplicateIdentity)
	}

	seat := &entity.Seat{
		Conn:     conn,
		Side:     room.FreeSide(),
		Identity: identity,
	}
	room.Seats = append(room.Seats, seat)

	that.logger.Info("player joined", "roomID", room.ID, "identity", identity, "side", seat.Side)

	view := snapshotRoom(room)

	return view, SeatView{Conn: conn, Side: seat.Side, Identity: identity}, room.IsFull(), nil
}

// LeaveRoom - removes the seat bound to the connection. Idempotent: leaving
// a room the connection is not seated in does nothing.
func (that *RoomManager) LeaveRoom(roomID string, conn entity.Sender) *LeaveResult {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.store.Get(roomID)
	if !ok {
		return nil
	}

	return that.removeSeat(room, conn)
}

// Disconnect - the transport-closed cleanup path: removes the connection's
// seat from every room it occupies, destroying emptied rooms. Safe to call
// for connections that were never seated.
func (that *RoomManager) Disconnect(conn entity.Sender) []*LeaveResult {
	that.mu.Lock()
	defer that.mu.Unlock()

	var results []*LeaveResult
	for _, room := range that.store.List() {
		if result := that.removeSeat(room, conn); result != nil {
			results = append(results, result)
		}
	}

	return results
}

func (that *RoomManager) removeSeat(room *entity.Room, conn entity.Sender) *LeaveResult {
	seat := room.SeatByConn(conn)
	if seat == nil {
		return nil
	}

	seats := make([]*entity.Seat, 0, len(room.Seats)-1)
	for _, s := range room.Seats {
		if s != seat {
			seats = append(seats, s)
		}
	}
	room.Seats = seats

	result := &LeaveResult{
		RoomID:  room.ID,
		Removed: SeatView{Conn: seat.Conn, Side: seat.Side, Identity: seat.Identity},
	}

	if room.IsEmpty() {
		that.store.Delete(room.ID)
		result.Destroyed = true

		that.logger.Info("room destroyed", "roomID", room.ID)

		return result
	}

	result.Room = snapshotRoom(room)

	that.logger.Info("player left", "roomID", room.ID, "identity", seat.Identity)

	return result
}

// MakeMove - validates and plays the seated player's move. The client sends
// only the origin and destination; the resulting board is derived here after
// the move passes the rules engine, so a tampered board can never enter the
// history.
func (that *RoomManager) MakeMove(roomID string, conn entity.Sender, from, to entity.Position) (*RoomView, *entity.Move, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.store.Get(roomID)
	if !ok {
		return nil, nil, fmt.Errorf("move in room %s: %w", roomID, apperror.ErrRoomNotFound)
	}

	seat := room.SeatByConn(conn)
	if seat == nil {
		return nil, nil, fmt.Errorf("move in room %s: %w", roomID, apperror.ErrNotSeated)
	}

	state := room.State
	if !room.IsFull() && !state.AIMode {
		return nil, nil, fmt.Errorf("move in room %s: %w", roomID, apperror.ErrGameNotStarted)
	}

	if seat.Side != state.Turn {
		return nil, nil, fmt.Errorf("move in room %s: %w", roomID, apperror.ErrNotYourTurn)
	}

	if !from.OnBoard() || !to.OnBoard() {
		return nil, nil, fmt.Errorf("move in room %s: %w", roomID, apperror.ErrIllegalMove)
	}

	piece, ok := state.Board.At(from)
	if !ok || piece.Side() != seat.Side {
		return nil, nil, fmt.Errorf("move in room %s: %w", roomID, apperror.ErrIllegalMove)
	}

	if !rules.IsLegal(from, to, piece, state.Board) {
		return nil, nil, fmt.Errorf("move in room %s: %w", roomID, apperror.ErrIllegalMove)
	}

	board := state.Board.Clone()
	delete(board, from.Key())
	board[to.Key()] = piece

	move := entity.Move{
		Board: board,
		Turn:  seat.Side.Opponent(),
		From:  &from,
		To:    &to,
	}
	state.Apply(move)

	that.logger.Info("move played", "roomID", room.ID, "side", seat.Side, "from", from.Key(), "to", to.Key())

	view := snapshotRoom(room)
	played := move
	played.Board = view.State.Board

	return view, &played, nil
}

// AIMove - plays the computer's reply when the room is in AI mode and it is
// the unseated side's turn. Returns a nil move when there is nothing to do.
func (that *RoomManager) AIMove(roomID string) (*RoomView, *entity.Move, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.store.Get(roomID)
	if !ok {
		return nil, nil, fmt.Errorf("ai move in room %s: %w", roomID, apperror.ErrRoomNotFound)
	}

	state := room.State
	if !state.AIMode || room.IsFull() {
		return snapshotRoom(room), nil, nil
	}

	aiSide := room.FreeSide()
	if state.Turn != aiSide {
		return snapshotRoom(room), nil, nil
	}

	move := that.engine.ChooseMove(state, aiSide)
	if move == nil {
		return snapshotRoom(room), nil, nil
	}

	state.Apply(*move)

	that.logger.Info("ai move played", "roomID", room.ID, "side", aiSide)

	view := snapshotRoom(room)
	played := *move
	played.Board = view.State.Board

	return view, &played, nil
}

// Undo - takes back the last played move.
func (that *RoomManager) Undo(roomID string) (*RoomView, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.store.Get(roomID)
	if !ok {
		return nil, fmt.Errorf("undo in room %s: %w", roomID, apperror.ErrRoomNotFound)
	}

	if err := room.State.Undo(); err != nil {
		return nil, fmt.Errorf("undo in room %s: %w", roomID, err)
	}

	that.logger.Info("move undone", "roomID", room.ID)

	return snapshotRoom(room), nil
}

// Restart - resets the room's game to the initial position.
func (that *RoomManager) Restart(roomID string) (*RoomView, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.store.Get(roomID)
	if !ok {
		return nil, fmt.Errorf("restart room %s: %w", roomID, apperror.ErrRoomNotFound)
	}

	room.State.Restart()

	that.logger.Info("game restarted", "roomID", room.ID)

	return snapshotRoom(room), nil
}

// ToggleAIMode - flips the computer opponent. Only the founding red seat may
// do this.
func (that *RoomManager) ToggleAIMode(roomID string, conn entity.Sender) (*RoomView, bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.store.Get(roomID)
	if !ok {
		return nil, false, fmt.Errorf("toggle ai in room %s: %w", roomID, apperror.ErrRoomNotFound)
	}

	seat := room.SeatByConn(conn)
	if seat == nil || seat.Side != entity.SideRed {
		return nil, false, fmt.Errorf("toggle ai in room %s: %w", roomID, apperror.ErrUnauthorized)
	}

	enabled := room.State.ToggleAIMode()

	that.logger.Info("ai mode toggled", "roomID", room.ID, "enabled", enabled)

	return snapshotRoom(room), enabled, nil
}

// RoomIDs - the current room directory, sorted for stable listings.
func (that *RoomManager) RoomIDs() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	rooms := that.store.List()
	ids := make([]string, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}
	sort.Strings(ids)

	return ids
}

func (that *RoomManager) identityTaken(identity string) bool {
	for _, room := range that.store.List() {
		if room.HasIdentity(identity) {
			return true
		}
	}

	return false
}
