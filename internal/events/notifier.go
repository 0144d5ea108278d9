package events

import (
	"context"
	"log"
	"time"

	"github.com/Albierrto/borts-books-sub000/internal/inventory"
	"github.com/Albierrto/borts-books-sub000/internal/ws"
)

const publishTimeout = 5 * time.Second

// InventoryNotifier fans committed stock mutations out to the websocket
// admin feed and the message broker. Either collaborator may be nil;
// notification is best-effort and never fails the mutation.
type InventoryNotifier struct {
	Hub       *ws.Hub
	Publisher *Publisher
}

func (n *InventoryNotifier) StockChanged(update inventory.StockUpdate) {
	if n.Hub != nil {
		n.Hub.BroadcastJSON(update)
	}
	n.publish(StockRoutingKey, update)
}

func (n *InventoryNotifier) ReorderNeeded(event inventory.ReorderEvent) {
	if n.Hub != nil {
		n.Hub.BroadcastJSON(event)
	}
	n.publish(ReorderRoutingKey, event)
}

func (n *InventoryNotifier) publish(routingKey string, message interface{}) {
	if n.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := n.Publisher.Publish(ctx, routingKey, message); err != nil {
		log.Printf("Failed to publish %s event: %v", routingKey, err)
	}
}
