package websocket

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/xiangqi-backend/internal/entity"
)

// jsonWriter - the one conn capability the client needs for sending.
// *websocket.Conn satisfies it.
type jsonWriter interface {
	WriteJSON(v any) error
}

// Client - one websocket connection. It is the entity.Sender handed to the
// room manager, so seats hold a send-only capability instead of the raw
// connection. Writes are serialized because broadcasts arrive from other
// connections' read loops.
type Client struct {
	sessionID string

	writeMu sync.Mutex
	conn    jsonWriter
}

func newClient(conn jsonWriter, sessionID string) *Client {
	return &Client{
		sessionID: sessionID,
		conn:      conn,
	}
}

// Send - pushes one JSON message to the peer. Fire-and-forget from the game
// core's point of view: delivery is never awaited.
func (that *Client) Send(v any) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.conn.WriteJSON(v); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

var _ entity.Sender = (*Client)(nil)
