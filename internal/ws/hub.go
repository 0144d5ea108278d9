package ws

import (
	"encoding/json"
	"log"
)

// Hub maintains the set of connected admin dashboards and fans inventory
// events out to them. Dashboards are read-only consumers; all mutations go
// through the HTTP API.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Outbound events for all connected clients.
	Broadcast chan []byte
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Printf("Admin %s connected to inventory feed (%d clients)", client.Username, len(h.clients))
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("Admin %s disconnected from inventory feed (%d clients)", client.Username, len(h.clients))
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastJSON marshals the event and queues it for all connected
// dashboards. Marshalling failures are logged and dropped; the feed is
// advisory and must never block a stock mutation.
func (h *Hub) BroadcastJSON(event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshalling inventory event: %v", err)
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
		log.Println("Inventory feed backlog full, dropping event")
	}
}
