package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers domain events. Callers treat failures as non-fatal.
type Publisher interface {
	PublishCommitted(ctx context.Context, event ReservationsCommitted) error
}

type amqpPublisher struct {
	url   string
	queue string
}

// NewAMQPPublisher returns a Publisher that writes persistent JSON messages
// to a durable queue through the default exchange.
func NewAMQPPublisher(url, queue string) Publisher {
	if queue == "" {
		queue = CommittedQueue
	}
	return &amqpPublisher{url: url, queue: queue}
}

func (p *amqpPublisher) PublishCommitted(ctx context.Context, event ReservationsCommitted) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishCommitted(context.Context, ReservationsCommitted) error { return nil }
