package handlers

import (
	"net/http"

	"hangouts-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades connections and ties them to the notification hub
type WebSocketHandler struct {
	wsHub       *services.WSHub
	userService *services.UserService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(wsHub *services.WSHub, userService *services.UserService) *WebSocketHandler {
	return &WebSocketHandler{
		wsHub:       wsHub,
		userService: userService,
	}
}

// HandleWebSocket handles GET /ws?token=
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	identity, err := h.userService.ValidateToken(token)
	if err != nil {
		respondError(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.Me(r.Context(), identity)
	if err != nil {
		respondError(w, "User not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to upgrade connection")
		return
	}

	h.wsHub.Register(user.ID, conn)
	defer h.wsHub.Unregister(user.ID)

	// The hub only pushes; drain the connection until the client goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("user_id", user.ID).Msg("WebSocket read error")
			}
			return
		}
	}
}
