package handlers

import (
	"github.com/Albierrto/borts-books-sub000/internal/ws"
	"github.com/Albierrto/borts-books-sub000/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// WSUpgrade gates the inventory feed behind the websocket handshake.
// It runs after the auth middleware, so only admins reach the upgrade.
func WSUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("actor", utils.Actor(c))
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// InventoryFeed - GET /ws/inventory
// Attaches the connection to the hub; the dashboard receives every
// stock_update and reorder_needed event until it disconnects.
func InventoryFeed(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		username, _ := conn.Locals("actor").(string)

		client := &ws.Client{
			Hub:      hub,
			Conn:     conn,
			Send:     make(chan []byte, 16),
			Username: username,
		}
		hub.Register <- client

		go client.WritePump()
		client.ReadPump()
	})
}
