package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hopon-app/hopon/models"
	"github.com/hopon-app/hopon/realtime"
)

type WebSocketHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler создаёт обработчик; checkOrigin == nil разрешает любой Origin.
func NewWebSocketHandler(hub *realtime.Hub, checkOrigin func(r *http.Request) bool) *WebSocketHandler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// ServeWs подписывает клиента на обновления дроп-инов вида спорта.
// Клиент должен подключаться к /ws/sports/{sportId}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	sportID := getPathParam(r, "sportId")
	if _, ok := models.FindSport(sportID); !ok {
		notFoundResponse(w, r, "sport not found")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP ошибку клиенту, так что здесь просто логируем.
		slog.Warn("failed to upgrade websocket connection", slog.String("sport", sportID), slog.Any("error", err))
		return
	}

	client := &realtime.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: realtime.SportRoom(sportID),
	}
	if !h.hub.Join(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
