package helpers

import (
	"context"
	"encoding/json"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/go-user-post-api/pkg/events"
)

// RabbitPublisher wraps an AMQP channel and queue for publishing messages.
// A channel must not be used by two goroutines at once, so publishes are serialized.
type RabbitPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := DeclareQueue(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &RabbitPublisher{conn: conn, ch: ch, Queue: queue}, nil
}

// DeclareQueue declares the durable queue shared by the publisher and the indexer.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	return err
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Publish sends a domain event; the event id doubles as the AMQP message id.
func (p *RabbitPublisher) Publish(ctx context.Context, ev events.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.ID,
			Type:         ev.Type,
			Timestamp:    ev.OccurredAt,
			Body:         b,
		},
	)
}
