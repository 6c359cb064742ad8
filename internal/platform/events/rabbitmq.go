// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
)

// Breaker settings for the broker connection.
const (
	breakerMaxRequests         = 3
	breakerInterval            = 10 * time.Second
	breakerTimeout             = 30 * time.Second
	breakerConsecutiveFailures = 3
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher sends events to a durable topic exchange, routing by type.
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
	breaker  *gobreaker.CircuitBreaker
}

// NewRabbitMQPublisher dials the broker and declares the exchange.
func NewRabbitMQPublisher(amqpURL, exchange string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("events: dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: open channel: %w", err)
	}

	// Declare the exchange (idempotent)
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare exchange: %w", err)
	}

	publisher := newPublisher(ch, exchange, logger)
	publisher.conn = conn
	return publisher, nil
}

func newPublisher(ch channel, exchange string, logger *slog.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		channel:  ch,
		exchange: exchange,
		breaker:  newBreaker("rabbitmq-events", logger),
	}
}

func newBreaker(name string, logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}

// Publish implements [Publisher]. While the breaker is open it fails fast
// with [gobreaker.ErrOpenState].
func (publisher *RabbitMQPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: encode %s: %w", event.Type, err)
	}

	_, err = publisher.breaker.Execute(func() (interface{}, error) {
		return nil, publisher.channel.PublishWithContext(
			ctx,
			publisher.exchange,
			event.Type, // routing key
			false,      // mandatory
			false,      // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    event.ID,
				Timestamp:    event.OccurredAt,
				Type:         event.Type,
				Body:         body,
			},
		)
	})
	return err
}

// Close releases the channel and connection.
func (publisher *RabbitMQPublisher) Close() error {
	if publisher.channel != nil {
		if err := publisher.channel.Close(); err != nil {
			return err
		}
	}
	if publisher.conn != nil {
		return publisher.conn.Close()
	}
	return nil
}
