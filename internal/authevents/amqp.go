package authevents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/logging"
	"github.com/rabbitmq/amqp091-go"
)

// amqpChannel is the subset of *amqp091.Channel the source uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

var errDeliveriesClosed = errors.New("auth event channel closed")

// AMQPSource reads auth events from a RabbitMQ queue bound to a direct
// exchange. The routing key is the queue name.
type AMQPSource struct {
	conn     interface{ Close() error }
	channel  amqpChannel
	exchange string
	queue    string
	log      logging.Logger
}

// DialAMQP connects to url and declares the exchange, queue and binding.
func DialAMQP(url, exchange, queue string, log logging.Logger) (*AMQPSource, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	s, err := newAMQPSource(conn, ch, exchange, queue, log)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return s, nil
}

func newAMQPSource(conn interface{ Close() error }, ch amqpChannel, exchange, queue string, log logging.Logger) (*AMQPSource, error) {
	s := &AMQPSource{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		queue:    queue,
		log:      log.With("module", "authevents", "queue", queue),
	}
	if err := s.setup(); err != nil {
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return s, nil
}

func (s *AMQPSource) setup() error {
	if err := s.channel.ExchangeDeclare(s.exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := s.channel.QueueDeclare(s.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := s.channel.QueueBind(s.queue, s.queue, s.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Publish sends e to the exchange.
func (s *AMQPSource) Publish(ctx context.Context, e Event) error {
	body, err := Encode(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = s.channel.PublishWithContext(ctx, s.exchange, s.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Transient,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Consume delivers events to h until ctx is done or the channel closes.
// Malformed messages are rejected without requeue. A message whose
// handler fails is requeued once and dropped on the second failure.
func (s *AMQPSource) Consume(ctx context.Context, h Handler) error {
	deliveries, err := s.channel.Consume(s.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	s.log.Info(ctx, "consuming auth events")

	for {
		select {
		case <-ctx.Done():
			s.log.Info(ctx, "stopping auth event consumption", "reason", ctx.Err())
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errDeliveriesClosed
			}
			s.handle(ctx, d, h)
		}
	}
}

func (s *AMQPSource) handle(ctx context.Context, d amqp091.Delivery, h Handler) {
	e, err := Decode(d.Body)
	if err != nil {
		s.log.Warn(ctx, "malformed auth event", "error", err)
		_ = d.Nack(false, false)
		return
	}

	if err := h(ctx, e); err != nil {
		s.log.Error(ctx, "auth event handler failed", "event", e.Kind.String(), "error", err, "redelivered", d.Redelivered)
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	_ = d.Ack(false)
	s.log.Debug(ctx, "auth event processed", "event", e.Kind.String())
}

func (s *AMQPSource) Close() error {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
