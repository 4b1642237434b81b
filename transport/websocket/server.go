package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/xiangqi-backend/internal/entity"
	"github.com/rocketscienceinc/xiangqi-backend/internal/repository"
	"github.com/rocketscienceinc/xiangqi-backend/internal/usecase"
)

type handlerFunc func(ctx context.Context, client *Client, msg *Envelope) error

// Server - accepts websocket connections, reads inbound envelopes and routes
// them to the room manager. Each connection gets its own read loop; every
// room mutation is serialized inside the manager and comes back as a
// snapshot, so broadcasts never touch live rooms.
type Server struct {
	logger  *slog.Logger
	rooms   roomManager
	players repository.PlayerRepository

	handlers map[string]handlerFunc
	registry *clientRegistry
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

func New(logger *slog.Logger, rooms roomManager, players repository.PlayerRepository) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		rooms:    rooms,
		players:  players,
		handlers: make(map[string]handlerFunc),
		registry: newClientRegistry(),
	}

	server.handlers["getRoomList"] = server.handleGetRoomList
	server.handlers["createRoom"] = server.handleCreateRoom
	server.handlers["joinRoom"] = server.handleJoinRoom
	server.handlers["leaveRoom"] = server.handleLeaveRoom
	server.handlers["move"] = server.handleMove
	server.handlers["undo"] = server.handleUndo
	server.handlers["restart"] = server.handleRestart
	server.handlers["toggleAI"] = server.handleToggleAI

	return server
}

// Start - starts the websocket server on the given port.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 0, // connections stay open for the whole session
		IdleTimeout: 0,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the request and runs the read loop until the
// peer goes away.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(conn, that.resolveSession(ctx, r))
	that.registry.add(client)

	log.Info("connection established", "sessionID", client.sessionID)

	defer func() {
		conn.Close()
		that.registry.remove(client)
		that.cleanupConnection(ctx, client)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Info("connection closed", "sessionID", client.sessionID, "error", err)
			return
		}

		that.dispatch(ctx, client, raw)
	}
}

// dispatch - decodes one inbound frame and routes it to its handler.
// Malformed JSON and unknown kinds are logged and dropped, the connection
// stays open.
func (that *Server) dispatch(ctx context.Context, client *Client, raw []byte) {
	log := that.logger.With("method", "dispatch")

	var msg Envelope
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Error("failed to unmarshal message", "error", err)
		return
	}

	handler, ok := that.handlers[msg.Type]
	if !ok {
		log.Error("unknown message type", "type", msg.Type)
		return
	}

	if err := handler(ctx, client, &msg); err != nil {
		log.Error("failed to process message", "type", msg.Type, "error", err)
	}
}

// resolveSession - binds the connection to a stored player record, creating
// one for first-time sessions.
func (that *Server) resolveSession(ctx context.Context, r *http.Request) string {
	log := that.logger.With("method", "resolveSession")

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	_, err := that.players.GetByID(ctx, sessionID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		if err = that.players.CreateOrUpdate(ctx, &entity.Player{ID: sessionID}); err != nil {
			log.Error("failed to create player record", "error", err)
		}

		return sessionID
	}

	if err != nil {
		log.Error("failed to load player record", "error", err)
	}

	return sessionID
}

// cleanupConnection - the unconditional disconnect path: drop the session
// record, vacate every seat the connection held and tell the survivors.
func (that *Server) cleanupConnection(ctx context.Context, client *Client) {
	log := that.logger.With("method", "cleanupConnection")

	if err := that.players.DeleteByID(ctx, client.sessionID); err != nil {
		log.Error("failed to delete player record", "sessionID", client.sessionID, "error", err)
	}

	results := that.rooms.Disconnect(client)
	if len(results) == 0 {
		return
	}

	directoryChanged := false
	for _, result := range results {
		if result.Destroyed {
			directoryChanged = true
			continue
		}

		that.broadcastToRoom(result.Room, Outbound{
			Type:     typePlayerDisconnected,
			RoomID:   result.RoomID,
			Identity: result.Removed.Identity,
		})
	}

	if directoryChanged {
		that.broadcastRoomList()
	}

	log.Info("cleaned up disconnected client", "sessionID", client.sessionID)
}

// broadcastToRoom - pushes a message to every seat of the room snapshot.
func (that *Server) broadcastToRoom(room *usecase.RoomView, msg Outbound) {
	log := that.logger.With("method", "broadcastToRoom", "roomID", room.ID)

	for _, seat := range room.Seats {
		if err := seat.Conn.Send(msg); err != nil {
			log.Error("failed to send room update", "identity", seat.Identity, "error", err)
		}
	}
}

// broadcastRoomList - pushes the current directory to every connection.
func (that *Server) broadcastRoomList() {
	log := that.logger.With("method", "broadcastRoomList")

	msg := Outbound{
		Type:  typeRoomList,
		Rooms: that.rooms.RoomIDs(),
	}

	for _, client := range that.registry.all() {
		if err := client.Send(msg); err != nil {
			log.Error("failed to send room list", "error", err)
		}
	}
}
