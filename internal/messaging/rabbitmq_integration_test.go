//go:build integration

package messaging_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"content-server/internal/messaging"

	"github.com/docker/docker/client"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func TestRabbitMQPublisher_PublishGenerationCreated(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv)
	require.NoError(t, err)
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Fatalf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	ctx := context.Background()
	rmqContainer, err := rabbitmq.Run(ctx,
		"rabbitmq:3-management-alpine",
		testcontainers.WithWaitStrategy(wait.ForLog("Server startup complete")),
	)
	require.NoError(t, err)
	defer func() { _ = rmqContainer.Terminate(ctx) }()

	amqpURL, err := rmqContainer.AmqpURL(ctx)
	require.NoError(t, err)

	logger := zap.NewNop()
	conn, err := messaging.Connect(ctx, amqpURL, 5, time.Second, logger)
	require.NoError(t, err)
	defer conn.Close()

	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	const queue = "test_generation_events"
	publisher, err := messaging.NewRabbitMQPublisher(ch, queue, logger)
	require.NoError(t, err)

	createdAt := time.Now().UTC().Truncate(time.Second)
	event := messaging.GenerationCreatedEvent{
		Event:        messaging.EventGenerationCreated,
		GenerationID: 42,
		Type:         "email",
		CreatedAt:    &createdAt,
	}
	require.NoError(t, publisher.PublishGenerationCreated(ctx, event))

	consumeCh, err := conn.Channel()
	require.NoError(t, err)
	defer consumeCh.Close()
	deliveries, err := consumeCh.Consume(queue, "", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		assert.Equal(t, "application/json", d.ContentType)
		assert.Equal(t, amqp.Persistent, d.DeliveryMode)
		assert.Equal(t, messaging.EventGenerationCreated, d.Type)
		assert.NotEmpty(t, d.MessageId)

		var got messaging.GenerationCreatedEvent
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, int64(42), got.GenerationID)
		assert.Equal(t, "email", got.Type)
	case <-time.After(10 * time.Second):
		t.Fatal("Timeout waiting for generation event")
	}
}
