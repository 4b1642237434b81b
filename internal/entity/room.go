package entity

// Sender - the send-only capability a seat holds for its connection. The game
// core never manages the transport lifecycle, it only pushes messages.
type Sender interface {
	Send(v any) error
}

// Seat - one of the at most two player slots in a room.
type Seat struct {
	Conn     Sender `json:"-"`
	Side     Side   `json:"side"`
	Identity string `json:"identity"`
}

// Room - a game room: an id, up to two seats and the game state. A room is
// never kept alive with zero seats.
type Room struct {
	ID    string     `json:"id"`
	Seats []*Seat    `json:"seats"`
	State *GameState `json:"state"`
}

func (that *Room) IsFull() bool {
	return len(that.Seats) >= 2
}

func (that *Room) IsEmpty() bool {
	return len(that.Seats) == 0
}

// SeatByConn - finds the seat bound to the given connection, if any.
func (that *Room) SeatByConn(conn Sender) *Seat {
	for _, seat := range that.Seats {
		if seat.Conn == conn {
			return seat
		}
	}

	return nil
}

// SeatBySide - finds the seat holding the given side, if any.
func (that *Room) SeatBySide(side Side) *Seat {
	for _, seat := range that.Seats {
		if seat.Side == side {
			return seat
		}
	}

	return nil
}

// HasIdentity - reports whether a seat in this room already uses the name.
func (that *Room) HasIdentity(identity string) bool {
	for _, seat := range that.Seats {
		if seat.Identity == identity {
			return true
		}
	}

	return false
}

// FreeSide - the side not yet taken. The creator always seats red, so a room
// with one seat leaves the opposite side open.
func (that *Room) FreeSide() Side {
	if that.SeatBySide(SideRed) == nil {
		return SideRed
	}

	return SideBlack
}
