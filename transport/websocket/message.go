package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/xiangqi-backend/internal/entity"
)

// Envelope - the inbound message frame: a kind tag, an optional room id and
// a kind-specific payload.
type Envelope struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"roomId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// IdentityPayload - carried by createRoom and joinRoom.
type IdentityPayload struct {
	Identity string `json:"identity"`
}

// MovePayload - carried by move. Clients send only the displacement; the
// server derives the resulting board itself.
type MovePayload struct {
	From entity.Position `json:"from"`
	To   entity.Position `json:"to"`
}

// Outbound message kinds.
const (
	typeRoomList           = "roomList"
	typeRoomJoined         = "roomJoined"
	typePlayerJoined       = "playerJoined"
	typePlayerLeft         = "playerLeft"
	typePlayerDisconnected = "playerDisconnected"
	typeMove               = "move"
	typeUndo               = "undo"
	typeRestart            = "restart"
	typeAIModeChanged      = "aiModeChanged"
	typeError              = "error"
)

// Outbound - every server-to-client message shares this frame; unused fields
// stay off the wire.
type Outbound struct {
	Type        string            `json:"type"`
	RoomID      string            `json:"roomId,omitempty"`
	Rooms       []string          `json:"rooms,omitempty"`
	PlayerColor entity.Side       `json:"playerColor,omitempty"`
	Identity    string            `json:"identity,omitempty"`
	State       *entity.GameState `json:"state,omitempty"`
	Move        *entity.Move      `json:"move,omitempty"`
	AIMode      *bool             `json:"aiMode,omitempty"`
	Message     string            `json:"message,omitempty"`
}
