package websocket

import "sync"

// clientRegistry - every live connection, used for directory-wide
// broadcasts.
type clientRegistry struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func newClientRegistry() *clientRegistry {
	return &clientRegistry{
		clients: make(map[*Client]struct{}),
	}
}

func (that *clientRegistry) add(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.clients[client] = struct{}{}
}

func (that *clientRegistry) remove(client *Client) {
	that.mu.Lock()
	defer that.mu.Unlock()
	delete(that.clients, client)
}

func (that *clientRegistry) all() []*Client {
	that.mu.RLock()
	defer that.mu.RUnlock()

	clients := make([]*Client, 0, len(that.clients))
	for client := range that.clients {
		clients = append(clients, client)
	}

	return clients
}
