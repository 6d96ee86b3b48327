package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"teamboard/internal/config"
	"teamboard/internal/domain"
	"teamboard/internal/model"
	"teamboard/internal/queue"
	"teamboard/internal/service/broadcast"
)

// Broadcaster runs one queued broadcast.
type Broadcaster interface {
	Broadcast(ctx context.Context, tmpl model.Template, opts broadcast.Options) (model.BroadcastResult, error)
}

type noopConsumer struct{}

func (n *noopConsumer) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Consumer runs queued broadcasts. Handler errors never stop the loop; only
// broker failures and cancellation do.
type Consumer struct {
	url         string
	topo        topology
	consumerTag string
	prefetch    int
	svc         Broadcaster
	logger      *zap.Logger
}

func NewConsumer(cfg *config.Config, svc *broadcast.Service, logger *zap.Logger) queue.Consumer {
	if cfg.RabbitMQURL == "" {
		return &noopConsumer{}
	}
	return &Consumer{
		url:         cfg.RabbitMQURL,
		topo:        newTopology(cfg),
		consumerTag: cfg.RabbitConsumerTag,
		prefetch:    1,
		svc:         svc,
		logger:      logger,
	}
}

func (r *Consumer) Start(ctx context.Context) error {
	ctx, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.consume_loop")
	span.SetAttributes(
		attribute.String("messaging.system", "rabbitmq"),
		attribute.String("messaging.destination", r.topo.exchange),
		attribute.String("messaging.rabbitmq.routing_key", r.topo.routingKey),
	)
	defer span.End()

	deliveries, closeFn, err := r.subscribe()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "subscribe failed")
		return err
	}
	defer closeFn()

	r.logger.Info("broadcast consumer started",
		zap.String("exchange", r.topo.exchange),
		zap.String("queue", r.topo.queue),
		zap.String("routing_key", r.topo.routingKey),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				span.SetStatus(codes.Error, "deliveries closed")
				return errors.New("rabbitmq deliveries closed")
			}
			if err := r.handleMessage(ctx, msg); err != nil {
				span.RecordError(err)
				return err
			}
		}
	}
}

// subscribe opens a channel with a small prefetch, since every broadcast
// writes many rows, and starts consuming the broadcast queue.
func (r *Consumer) subscribe() (<-chan amqp.Delivery, func(), error) {
	conn, err := amqp.Dial(r.url)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	closeFn := func() {
		_ = ch.Close()
		_ = conn.Close()
	}

	if err := ch.Qos(r.prefetch, 0, false); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("rabbitmq qos: %w", err)
	}
	name, err := r.topo.declareQueue(ch)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	deliveries, err := ch.Consume(name, r.consumerTag, false, false, false, false, nil)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("rabbitmq consume: %w", err)
	}
	return deliveries, closeFn, nil
}

func (r *Consumer) handleMessage(ctx context.Context, msg amqp.Delivery) error {
	ctx = otel.GetTextMapPropagator().Extract(ctx, amqpHeaderCarrier(msg.Headers))
	ctx, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.handle_message")
	span.SetAttributes(
		attribute.String("messaging.system", "rabbitmq"),
		attribute.String("messaging.destination", r.topo.exchange),
		attribute.String("messaging.rabbitmq.routing_key", msg.RoutingKey),
		attribute.String("messaging.message.id", msg.MessageId),
		attribute.Bool("messaging.rabbitmq.redelivered", msg.Redelivered),
	)
	defer span.End()

	var m queue.BroadcastMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid json")
		r.logger.Error("queued broadcast is not valid json", zap.String("message_id", msg.MessageId), zap.Error(err))
		return msg.Ack(false)
	}

	result, err := r.svc.Broadcast(ctx, m.Template(), broadcast.Options{SkipPush: m.SkipPush})
	if err != nil {
		span.RecordError(err)
		if !retryable(err) {
			span.SetStatus(codes.Error, "broadcast rejected")
			r.logger.Warn("queued broadcast dropped",
				zap.String("message_id", msg.MessageId),
				zap.String("title", m.Title),
				zap.Error(err),
			)
			return msg.Ack(false)
		}
		span.SetStatus(codes.Error, "broadcast failed")
		if msg.Redelivered {
			// A failed retry drops the message; requeueing again would loop it.
			r.logger.Error("queued broadcast failed after redelivery, dropping",
				zap.String("message_id", msg.MessageId),
				zap.String("title", m.Title),
				zap.Error(err),
			)
			return msg.Ack(false)
		}
		r.logger.Error("queued broadcast failed, requeueing",
			zap.String("message_id", msg.MessageId),
			zap.Bool("redelivered", msg.Redelivered),
			zap.Error(err),
		)
		if nackErr := msg.Nack(false, true); nackErr != nil {
			r.logger.Error("rabbitmq nack failed", zap.Error(nackErr))
		}
		return nil
	}

	span.SetAttributes(
		attribute.Int("broadcast.created", result.CreatedCount),
		attribute.Bool("broadcast.partial_failure", result.PartialFailure),
	)
	r.logger.Info("queued broadcast done",
		zap.String("message_id", msg.MessageId),
		zap.Int("created", result.CreatedCount),
		zap.Int("requested", result.RequestedCount),
	)
	return msg.Ack(false)
}

// retryable reports whether redelivering the message could succeed. A failed
// recipient lookup is not retried since the source replies the same way again.
func retryable(err error) bool {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNoRecipients),
		errors.Is(err, domain.ErrResolutionFailed),
		errors.Is(err, domain.ErrTableMissing):
		return false
	default:
		return true
	}
}
