package rabbitmq

import (
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel used for
// measurement events. Eventing is optional for the application: a nil
// client simply means no events are emitted.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

const (
	measurementQueue    = "measurement_queue"
	measurementExchange = "measurement"
)

// NewClient creates a new RabbitMQ client. It connects to RabbitMQ,
// sets up a channel, and declares the measurement exchange and queue
// with a binding for all measurement.* routing keys.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	setup := func() error {
		if err := ch.ExchangeDeclare(
			measurementExchange, // name
			"topic",             // kind
			true,                // durable
			false,               // auto-delete
			false,               // internal
			false,               // no-wait
			nil,                 // arguments
		); err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", measurementExchange, err)
		}
		if _, err := ch.QueueDeclare(
			measurementQueue, // name
			true,             // durable (persists messages across broker restarts)
			false,            // delete when unused
			false,            // exclusive
			false,            // no-wait
			nil,              // arguments
		); err != nil {
			return fmt.Errorf("failed to declare %s: %w", measurementQueue, err)
		}
		if err := ch.QueueBind(measurementQueue, "measurement.*", measurementExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind %s: %w", measurementQueue, err)
		}
		return nil
	}
	if err := setup(); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("RabbitMQ client connected, %s bound to %s.", measurementQueue, measurementExchange)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to the given exchange and
// routing key. Measurement events published under measurement.* end up
// in the measurement queue through the binding made at setup.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Make message persistent
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent measurement event: %s", body)
	return nil
}

// ConsumeMeasurementEvents starts consuming from the measurement queue
// and feeds each delivery to messageHandler. A nil handler error acks
// the message; an error nacks it with requeue.
func (c *Client) ConsumeMeasurementEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	// Re-declare to make sure the queue exists even if the broker was
	// reset between NewClient and the consumer starting.
	queue, err := c.channel.QueueDeclare(
		measurementQueue, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack: set to false to manually acknowledge messages
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for measurement events.")

	go func() {
		for msg := range msgs {
			if err := messageHandler(msg); err != nil {
				log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
				if nackErr := msg.Nack(false, true); nackErr != nil {
					log.Printf("Failed to nack message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Printf("Failed to ack message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
	}()

	return nil
}
