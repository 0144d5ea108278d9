// Package events publishes inventory notifications to RabbitMQ so
// fulfillment tooling can react to reorder conditions without polling
// the admin API.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// Routing keys
	ReorderRoutingKey = "inventory.reorder"
	StockRoutingKey   = "inventory.stock"
)

// Publisher is a wrapper around a RabbitMQ connection publishing to a
// single topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher connects to RabbitMQ with retry and declares the exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		return nil, fmt.Errorf("exchange name cannot be empty")
	}

	var conn *amqp.Connection
	var err error

	// Retry connection up to 5 times with exponential backoff
	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		retryTime := time.Duration(i*i)*time.Second + time.Second
		log.Printf("Failed to connect to RabbitMQ, retrying in %v: %v", retryTime, err)
		time.Sleep(retryTime)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ after retries: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	log.Printf("Successfully declared exchange: %s", exchange)

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Publish sends a JSON message to the exchange under the routing key.
// A nil Publisher is a no-op so the service runs without a broker.
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	if p == nil {
		return nil
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         messageBytes,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message to exchange %s with routing key %s: %w",
			p.exchange, routingKey, err)
	}

	return nil
}

// Close closes the RabbitMQ connection and channel.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return err
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
