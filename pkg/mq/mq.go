// Package mq publishes and consumes POS events over RabbitMQ.
//
// The backend publishes to a durable topic exchange; downstream consumers
// (receipt printing, nightly reconciliation) bind their own queues. Event
// publication is always best effort: a broker outage must never fail a
// committed sale.
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys emitted by the backend.
const (
	RoutingKeySaleRegistered = "sale.registered"
)

// SaleRegisteredEvent is the payload published after a sale commits.
type SaleRegisteredEvent struct {
	SaleID     uint      `json:"sale_id"`
	BuyerName  string    `json:"buyer_name,omitempty"`
	TotalCents int64     `json:"total_cents"`
	Courtesy   bool      `json:"courtesy"`
	ItemCount  int       `json:"item_count"`
	SoldAt     time.Time `json:"sold_at"`
}

// Publisher sends messages to a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher connects to RabbitMQ and declares the exchange.
//
// The exchange is durable so it survives broker restarts; exchangeType is
// normally "topic".
func NewPublisher(url, exchange, exchangeType string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		exchangeType,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Publish serializes message as JSON and publishes it with the given
// routing key. Messages are persistent (DeliveryMode 2).
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publishing message: %w", err)
	}

	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// Consumer receives messages from a queue bound to the exchange.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewConsumer connects, declares the exchange and queue, and binds the
// queue with the given routing keys (topic wildcards allowed, e.g.
// "sale.*").
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		exchangeType,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange: %w", err)
	}

	q, err := channel.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring queue: %w", err)
	}

	for _, routingKey := range routingKeys {
		err = channel.QueueBind(
			q.Name,
			routingKey,
			exchange,
			false,
			nil,
		)
		if err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("binding queue %s to %s: %w", q.Name, routingKey, err)
		}
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   q.Name,
	}, nil
}

// Consume delivers messages to handler until ctx is canceled. A handler
// error leaves the message un-acked so the broker redelivers it.
func (c *Consumer) Consume(ctx context.Context, handler func(body []byte) error) error {
	deliveries, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag (server-generated)
		false, // auto-ack disabled, ack after handling
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("starting consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := handler(d.Body); err != nil {
				log.Printf("[mq] handler failed, message will be redelivered: %v", err)
				d.Nack(false, true)
				continue
			}
			d.Ack(false)
		}
	}
}

// Close releases the channel and connection.
func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
