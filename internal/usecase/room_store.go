package usecase

import "github.com/rocketscienceinc/xiangqi-backend/internal/entity"

// roomStore - the room directory. Injectable so tests can run isolated
// managers; the manager is the only writer.
type roomStore interface {
	Get(id string) (*entity.Room, bool)
	Put(room *entity.Room)
	Delete(id string)
	List() []*entity.Room
}

type memoryRoomStore struct {
	rooms map[string]*entity.Room
}

// NewMemoryRoomStore - the default in-process room directory.
func NewMemoryRoomStore() *memoryRoomStore { //nolint:revive // constructor for the package-default store
	return &memoryRoomStore{
		rooms: make(map[string]*entity.Room),
	}
}

func (that *memoryRoomStore) Get(id string) (*entity.Room, bool) {
	room, ok := that.rooms[id]
	return room, ok
}

func (that *memoryRoomStore) Put(room *entity.Room) {
	that.rooms[room.ID] = room
}

func (that *memoryRoomStore) Delete(id string) {
	delete(that.rooms, id)
}

func (that *memoryRoomStore) List() []*entity.Room {
	rooms := make([]*entity.Room, 0, len(that.rooms))
	for _, room := range that.rooms {
		rooms = append(rooms, room)
	}

	return rooms
}
