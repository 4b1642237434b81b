package usecase

import "github.com/rocketscienceinc/xiangqi-backend/internal/entity"

// RoomView - an immutable snapshot of a room taken while the manager's mutex
// is held. Everything handed out of the manager is a view; the live room and
// its state never leave the lock, so a broadcast can be marshaled while the
// next operation already mutates the room.
type RoomView struct {
	ID    string
	Seats []SeatView
	State *entity.GameState
}

// SeatView - a seat frozen into a view. The sender is shared with the live
// seat, it is the one piece of a view that stays connected to the outside.
type SeatView struct {
	Conn     entity.Sender
	Side     entity.Side
	Identity string
}

func (that *RoomView) IsFull() bool {
	return len(that.Seats) >= 2
}

func snapshotRoom(room *entity.Room) *RoomView {
	seats := make([]SeatView, 0, len(room.Seats))
	for _, seat := range room.Seats {
		seats = append(seats, SeatView{
			Conn:     seat.Conn,
			Side:     seat.Side,
			Identity: seat.Identity,
		})
	}

	return &RoomView{
		ID:    room.ID,
		Seats: seats,
		State: room.State.Snapshot(),
	}
}
