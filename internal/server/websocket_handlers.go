package server

import (
	"encoding/json"
	"log"

	"pickaside/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles WebSocket connections for realtime notifications
// and chat events. Clients authenticate with a single-use ticket issued by
// IssueWSTicket.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		// Get userID from context locals (set by AuthRequired middleware)
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"realtime unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: Failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		// Clients only send pings and lightweight acks; events flow outward.
		client.IncomingHandler = func(c *notifications.Client, message []byte) {
			var incoming map[string]interface{}
			if err := json.Unmarshal(message, &incoming); err != nil {
				log.Printf("WebSocket: Invalid message format from user %d", userID)
				return
			}
			if msgType, ok := incoming["type"].(string); ok && msgType == "ping" {
				c.TrySend([]byte(`{"type":"pong"}`))
			}
		}

		go client.WritePump()
		client.ReadPump()
	})
}
