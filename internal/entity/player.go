package entity

// Player - the session record kept in storage for a connected client. The
// identity is the display name the player last seated under.
type Player struct {
	ID       string `json:"id"`
	Identity string `json:"identity,omitempty"`
	RoomID   string `json:"room_id,omitempty"`
}
