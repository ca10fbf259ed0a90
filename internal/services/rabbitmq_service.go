package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// JobProgressQueue is where workers publish generation progress updates.
const JobProgressQueue = "generation.job.progress"

// RabbitMQService owns the broker connection used for job progress events.
type RabbitMQService struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitMQService connects to the broker using RABBITMQ_* env vars.
func NewRabbitMQService() (*RabbitMQService, error) {
	host := getEnvVar("RABBITMQ_HOST", "localhost")
	port := getEnvVar("RABBITMQ_PORT", "5672")
	user := getEnvVar("RABBITMQ_USER", "guest")
	password := getEnvVar("RABBITMQ_PASSWORD", "guest")

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, password, host, port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		JobProgressQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", JobProgressQueue, err)
	}

	logrus.Infof("Connected to RabbitMQ at %s:%s", host, port)
	return &RabbitMQService{conn: conn, channel: channel}, nil
}

// PublishJobEvent enqueues a progress event for the consumer to apply.
func (s *RabbitMQService) PublishJobEvent(event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal job event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = s.channel.PublishWithContext(ctx,
		"",               // exchange
		JobProgressQueue, // routing key
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job event: %w", err)
	}
	return nil
}

// Consume returns the delivery channel for the progress queue.
func (s *RabbitMQService) Consume() (<-chan amqp.Delivery, error) {
	deliveries, err := s.channel.Consume(
		JobProgressQueue,
		"",    // consumer tag
		false, // autoAck, we ack after applying
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start consumer on %s: %w", JobProgressQueue, err)
	}
	return deliveries, nil
}

// Close tears down the channel and connection.
func (s *RabbitMQService) Close() {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}

func getEnvVar(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
