package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket notification pushed to a connected user
type WSMessage struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WSHub manages one WebSocket connection per user and pushes contact
// lifecycle events to the counterpart. Delivery is best-effort: failures are
// logged and never surfaced to HTTP callers.
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register registers a new WebSocket connection for a user
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Close existing connection if any
	if existing, exists := h.connections[userID]; exists {
		existing.Close()
	}
	h.connections[userID] = conn

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a WebSocket connection for a user
func (h *WSHub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[userID]; exists {
		conn.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// IsOnline checks if a user has a live connection
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[userID]
	return exists
}

// SendToUser sends a message to a specific user
func (h *WSHub) SendToUser(userID string, message WSMessage) error {
	h.mu.RLock()
	conn, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(userID)
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// NotifyContactRequested tells the target about an incoming contact request
func (h *WSHub) NotifyContactRequested(targetID, requesterID string) {
	h.notify(targetID, WSMessage{
		Type: "contact_request",
		Data: map[string]interface{}{"userId": requesterID},
	})
}

// NotifyContactAccepted tells the requester that the request was accepted
func (h *WSHub) NotifyContactAccepted(requesterID, accepterID string) {
	h.notify(requesterID, WSMessage{
		Type: "contact_accepted",
		Data: map[string]interface{}{"userId": accepterID},
	})
}

// NotifyContactRemoved tells the counterpart the relationship was removed
func (h *WSHub) NotifyContactRemoved(otherID, userID string) {
	h.notify(otherID, WSMessage{
		Type: "contact_removed",
		Data: map[string]interface{}{"userId": userID},
	})
}

func (h *WSHub) notify(userID string, message WSMessage) {
	if !h.IsOnline(userID) {
		return
	}
	if err := h.SendToUser(userID, message); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("type", message.Type).
			Msg("Failed to push notification")
	}
}
