package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/xiangqi-backend/internal/apperror"
	"github.com/rocketscienceinc/xiangqi-backend/internal/entity"
	"github.com/rocketscienceinc/xiangqi-backend/internal/usecase"
)

// roomManager - the operations the dispatcher routes inbound envelopes to.
// Every result is a snapshot taken under the manager's lock, safe to marshal
// while other connections keep playing.
type roomManager interface {
	CreateRoom(conn entity.Sender, identity string) (*usecase.RoomView, error)
	JoinRoom(roomID string, conn entity.Sender, identity string) (*usecase.RoomView, usecase.SeatView, bool, error)
	LeaveRoom(roomID string, conn entity.Sender) *usecase.LeaveResult
	Disconnect(conn entity.Sender) []*usecase.LeaveResult

	MakeMove(roomID string, conn entity.Sender, from, to entity.Position) (*usecase.RoomView, *entity.Move, error)
	AIMove(roomID string) (*usecase.RoomView, *entity.Move, error)

	Undo(roomID string) (*usecase.RoomView, error)
	Restart(roomID string) (*usecase.RoomView, error)
	ToggleAIMode(roomID string, conn entity.Sender) (*usecase.RoomView, bool, error)

	RoomIDs() []string
}

func (that *Server) handleGetRoomList(_ context.Context, client *Client, _ *Envelope) error {
	msg := Outbound{
		Type:  typeRoomList,
		Rooms: that.rooms.RoomIDs(),
	}

	if err := client.Send(msg); err != nil {
		return fmt.Errorf("failed to send room list: %w", err)
	}

	return nil
}

func (that *Server) handleCreateRoom(ctx context.Context, client *Client, msg *Envelope) error {
	log := that.logger.With("method", "handleCreateRoom")

	var payload IdentityPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Identity == "" {
		return that.sendError(client, "identity is required")
	}

	room, err := that.rooms.CreateRoom(client, payload.Identity)
	if err != nil {
		return that.sendAppError(client, err)
	}

	if err = client.Send(Outbound{
		Type:        typeRoomJoined,
		RoomID:      room.ID,
		PlayerColor: entity.SideRed,
		State:       room.State,
	}); err != nil {
		return fmt.Errorf("failed to send roomJoined: %w", err)
	}

	that.broadcastRoomList()
	that.rememberSeat(ctx, client, payload.Identity, room.ID)

	log.Info("room created", "roomID", room.ID)

	return nil
}

func (that *Server) handleJoinRoom(ctx context.Context, client *Client, msg *Envelope) error {
	log := that.logger.With("method", "handleJoinRoom", "roomID", msg.RoomID)

	var payload IdentityPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Identity == "" {
		return that.sendError(client, "identity is required")
	}

	room, seat, started, err := that.rooms.JoinRoom(msg.RoomID, client, payload.Identity)
	if err != nil {
		return that.sendAppError(client, err)
	}

	if err = client.Send(Outbound{
		Type:        typeRoomJoined,
		RoomID:      room.ID,
		PlayerColor: seat.Side,
		State:       room.State,
	}); err != nil {
		return fmt.Errorf("failed to send roomJoined: %w", err)
	}

	if started {
		that.broadcastToRoom(room, Outbound{
			Type:        typePlayerJoined,
			RoomID:      room.ID,
			PlayerColor: seat.Side,
			Identity:    seat.Identity,
			State:       room.State,
		})
	}

	that.rememberSeat(ctx, client, payload.Identity, room.ID)

	log.Info("player joined room", "identity", seat.Identity, "side", seat.Side)

	return nil
}

func (that *Server) handleLeaveRoom(ctx context.Context, client *Client, msg *Envelope) error {
	result := that.rooms.LeaveRoom(msg.RoomID, client)
	if result == nil {
		return nil
	}

	if result.Destroyed {
		that.broadcastRoomList()
	} else {
		that.broadcastToRoom(result.Room, Outbound{
			Type:     typePlayerLeft,
			RoomID:   result.RoomID,
			Identity: result.Removed.Identity,
		})
	}

	that.rememberSeat(ctx, client, "", "")

	return nil
}

func (that *Server) handleMove(_ context.Context, client *Client, msg *Envelope) error {
	var payload MovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	room, move, err := that.rooms.MakeMove(msg.RoomID, client, payload.From, payload.To)
	if err != nil {
		return that.sendAppError(client, err)
	}

	that.broadcastToRoom(room, Outbound{
		Type:   typeMove,
		RoomID: room.ID,
		State:  room.State,
		Move:   move,
	})

	return that.playAIReply(msg.RoomID)
}

// playAIReply - lets the computer answer when the room plays against it.
// Runs inline: one reply per player move keeps the loop bounded.
func (that *Server) playAIReply(roomID string) error {
	room, aiMove, err := that.rooms.AIMove(roomID)
	if err != nil {
		return fmt.Errorf("failed to play ai move: %w", err)
	}

	if aiMove == nil {
		return nil
	}

	that.broadcastToRoom(room, Outbound{
		Type:   typeMove,
		RoomID: room.ID,
		State:  room.State,
		Move:   aiMove,
	})

	return nil
}

func (that *Server) handleUndo(_ context.Context, client *Client, msg *Envelope) error {
	room, err := that.rooms.Undo(msg.RoomID)
	if errors.Is(err, apperror.ErrNothingToUndo) {
		// nothing played yet; silent no-op, no broadcast
		return nil
	}

	if err != nil {
		return that.sendAppError(client, err)
	}

	that.broadcastToRoom(room, Outbound{
		Type:   typeUndo,
		RoomID: room.ID,
		State:  room.State,
	})

	return nil
}

func (that *Server) handleRestart(_ context.Context, client *Client, msg *Envelope) error {
	room, err := that.rooms.Restart(msg.RoomID)
	if err != nil {
		return that.sendAppError(client, err)
	}

	that.broadcastToRoom(room, Outbound{
		Type:   typeRestart,
		RoomID: room.ID,
		State:  room.State,
	})

	return nil
}

func (that *Server) handleToggleAI(_ context.Context, client *Client, msg *Envelope) error {
	room, enabled, err := that.rooms.ToggleAIMode(msg.RoomID, client)
	if err != nil {
		return that.sendAppError(client, err)
	}

	that.broadcastToRoom(room, Outbound{
		Type:   typeAIModeChanged,
		RoomID: room.ID,
		AIMode: &enabled,
		State:  room.State,
	})

	// the computer may already be on turn, e.g. after an opponent left
	return that.playAIReply(msg.RoomID)
}

// rememberSeat - keeps the stored player record in sync with where the
// session is seated. Best-effort bookkeeping, never fails the operation.
func (that *Server) rememberSeat(ctx context.Context, client *Client, identity, roomID string) {
	player := &entity.Player{
		ID:       client.sessionID,
		Identity: identity,
		RoomID:   roomID,
	}

	if err := that.players.CreateOrUpdate(ctx, player); err != nil {
		that.logger.Error("failed to update player record", "sessionID", client.sessionID, "error", err)
	}
}

// sendAppError - maps domain errors onto error envelopes; anything outside
// the taxonomy is propagated to the read loop for logging only.
func (that *Server) sendAppError(client *Client, err error) error {
	for _, appErr := range []error{
		apperror.ErrRoomNotFound,
		apperror.ErrRoomFull,
		apperror.ErrDuplicateIdentity,
		apperror.ErrNotYourTurn,
		apperror.ErrIllegalMove,
		apperror.ErrUnauthorized,
		apperror.ErrGameNotStarted,
		apperror.ErrNotSeated,
	} {
		if errors.Is(err, appErr) {
			return that.sendError(client, appErr.Error())
		}
	}

	return fmt.Errorf("unexpected handler error: %w", err)
}

func (that *Server) sendError(client *Client, message string) error {
	if err := client.Send(Outbound{Type: typeError, Message: message}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
