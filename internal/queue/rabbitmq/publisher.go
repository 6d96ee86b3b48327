package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"teamboard/internal/config"
	"teamboard/internal/queue"
)

type noopPublisher struct {
	logger *zap.Logger
}

func (n *noopPublisher) Publish(_ context.Context, _ []byte, routingKey string) error {
	n.logger.Warn("rabbitmq disabled, broadcast not queued", zap.String("routing_key", routingKey))
	return nil
}

// Publisher dials per publish; queued broadcasts are rare admin actions.
type Publisher struct {
	url    string
	topo   topology
	logger *zap.Logger
}

func NewPublisher(cfg *config.Config, logger *zap.Logger) queue.Publisher {
	if cfg.RabbitMQURL == "" {
		return &noopPublisher{logger: logger}
	}
	return &Publisher{url: cfg.RabbitMQURL, topo: newTopology(cfg), logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, payload []byte, routingKey string) error {
	ctx, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.publish", trace.WithSpanKind(trace.SpanKindProducer))
	span.SetAttributes(
		attribute.String("messaging.system", "rabbitmq"),
		attribute.String("messaging.destination", p.topo.exchange),
		attribute.String("messaging.rabbitmq.routing_key", routingKey),
		attribute.Int("messaging.message.body.size", len(payload)),
	)
	defer span.End()

	if err := p.publish(ctx, payload, routingKey); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		p.logger.Error("rabbitmq publish failed", zap.String("routing_key", routingKey), zap.Error(err))
		return err
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, payload []byte, routingKey string) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := p.topo.declareExchange(ch); err != nil {
		return err
	}

	headers := amqp.Table{}
	otel.GetTextMapPropagator().Inject(ctx, amqpHeaderCarrier(headers))

	err = ch.PublishWithContext(ctx, p.topo.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         "broadcast",
		Headers:      headers,
		Body:         payload,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}
