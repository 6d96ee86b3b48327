//go:build integration

package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"teamboard/internal/config"
	"teamboard/internal/queue"
)

// startRabbitMQ runs a broker for the lifetime of t and returns a config pointing at it.
func startRabbitMQ(t *testing.T) *config.Config {
	t.Helper()
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.12-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5672/tcp"),
				wait.ForLog("Server startup complete"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	return &config.Config{
		RabbitMQURL:         fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port()),
		RabbitExchange:      "notifications",
		RabbitQueue:         "notifications.broadcast",
		RabbitRoutingKey:    queue.BroadcastRoutingKey("notification"),
		RabbitConsumerTag:   "broadcast-consumer",
		RabbitPublishPrefix: "notification",
	}
}

func channel(t *testing.T, amqpURL string) *amqp.Channel {
	t.Helper()
	conn, err := amqp.Dial(amqpURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	ch, err := conn.Channel()
	require.NoError(t, err)
	return ch
}

func publishRaw(t *testing.T, cfg *config.Config, msg queue.BroadcastMessage) {
	t.Helper()
	ch := channel(t, cfg.RabbitMQURL)
	require.NoError(t, newTopology(cfg).declareExchange(ch))

	body, err := json.Marshal(msg)
	require.NoError(t, err)
	err = ch.PublishWithContext(context.Background(), cfg.RabbitExchange, cfg.RabbitRoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	require.NoError(t, err)
}

func waitForConsumer(t *testing.T, cfg *config.Config) {
	t.Helper()
	ch := channel(t, cfg.RabbitMQURL)
	require.Eventually(t, func() bool {
		q, err := ch.QueueDeclarePassive(cfg.RabbitQueue, true, false, false, false, nil)
		return err == nil && q.Consumers > 0
	}, 10*time.Second, 200*time.Millisecond)
}
