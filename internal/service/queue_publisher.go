// Package service publishes appointment domain events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures without
// interrupting the request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/medbook/appointment-api/internal/queue"
)

// Publisher emits AppointmentEvents to the durable appointment.events
// queue. Each publish dials its own short-lived connection so a broker
// outage never pins request goroutines to a broken channel.
type Publisher struct{}

func NewPublisher() *Publisher { return &Publisher{} }

// Publish marshals the event and sends it as a persistent message.
func (p *Publisher) Publish(ctx context.Context, ev queue.AppointmentEvent) error {
	conn, err := amqp.Dial(queue.BrokerURL())
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

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queue.QueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	if err := ch.PublishWithContext(ctx,
		"",              // default exchange
		queue.QueueName, // routing key = queue name
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
