package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"teamboard/internal/config"
)

const exchangeKind = "topic"

// topology is the durable exchange, queue and binding queued broadcasts travel through.
type topology struct {
	exchange   string
	queue      string
	routingKey string
}

func newTopology(cfg *config.Config) topology {
	return topology{
		exchange:   cfg.RabbitExchange,
		queue:      cfg.RabbitQueue,
		routingKey: cfg.RabbitRoutingKey,
	}
}

func (t topology) declareExchange(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(t.exchange, exchangeKind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	return nil
}

// declareQueue declares the exchange and the broadcast queue bound to it, returning the queue name.
func (t topology) declareQueue(ch *amqp.Channel) (string, error) {
	if err := t.declareExchange(ch); err != nil {
		return "", err
	}
	q, err := ch.QueueDeclare(t.queue, true, false, false, false, nil)
	if err != nil {
		return "", fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	if err := ch.QueueBind(q.Name, t.routingKey, t.exchange, false, nil); err != nil {
		return "", fmt.Errorf("rabbitmq queue bind: %w", err)
	}
	return q.Name, nil
}
