package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/standings"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the deployed frontend origin before exposing
		// the service publicly.
		return true
	},
}

type WebSocketHandler struct {
	hub    *standings.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *standings.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// validRoom accepts the rooms services broadcast to: "teams",
// "sport:<sport>", and "session:<id>".
func validRoom(room string) bool {
	if room == "teams" {
		return true
	}
	if sport, ok := strings.CutPrefix(room, "sport:"); ok {
		return models.Sport(sport).Valid()
	}
	_, ok := strings.CutPrefix(room, "session:")
	return ok
}

// ServeWs subscribes the connection to one room's change notifications.
// Unsubscribe is implicit: closing the connection stops delivery.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")
	if !validRoom(room) {
		http.Error(w, "unknown room", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("room", room), slog.Any("error", err))
		return
	}

	client := &standings.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: room,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
