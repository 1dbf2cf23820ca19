package server

import (
	"context"
	"encoding/json"
	"log"

	"helios/internal/middleware"
	"helios/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// PortfolioWebSocketHandler handles GET /api/ws/portfolio?user_id=N. The
// stream is one-directional: the server pushes portfolioUpdate events for
// the subscribed user and catalogUpdate broadcasts; client frames are
// drained only to keep the connection alive.
func (s *Server) PortfolioWebSocketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		userID := c.QueryInt("user_id")
		if userID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Valid user_id is required")
		}
		c.Locals("userID", uint(userID))

		return websocket.New(func(conn *websocket.Conn) {
			middleware.ActiveWebSockets.Inc()
			defer middleware.ActiveWebSockets.Dec()

			ctx := context.Background()
			userID := conn.Locals("userID").(uint)

			if s.hub == nil {
				log.Printf("WebSocket Portfolio: hub unavailable, closing connection for user %d", userID)
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"push channel unavailable"}`))
				_ = conn.Close()
				return
			}

			// The user must exist; unknown IDs get an error frame and a close.
			if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
				log.Printf("WebSocket Portfolio: unknown user %d: %v", userID, err)
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unknown user"}`))
				_ = conn.Close()
				return
			}

			client, err := s.hub.Register(userID, conn)
			if err != nil {
				log.Printf("WebSocket Portfolio: failed to register user %d: %v", userID, err)
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
				_ = conn.Close()
				return
			}

			log.Printf("WebSocket: User %d subscribed to portfolio stream", userID)

			welcome, err := json.Marshal(notifications.Event{
				Type: "connected",
				Data: map[string]interface{}{"user_id": userID},
			})
			if err == nil {
				client.TrySend(welcome)
			}

			// Write pump in a goroutine; the read pump blocks here until the
			// connection drops.
			go client.WritePump()
			client.ReadPump()
		})(c)
	}
}
