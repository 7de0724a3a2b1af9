package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const appID = "content-server"

// Connect подключается к RabbitMQ, делая до attempts попыток с паузой delay.
func Connect(ctx context.Context, url string, attempts int, delay time.Duration, logger *zap.Logger) (*amqp.Connection, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			logger.Info("Connected to RabbitMQ", zap.Int("attempt", attempt))
			return conn, nil
		}
		lastErr = err
		logger.Warn("Не удалось подключиться к RabbitMQ",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("retry_delay", delay),
			zap.Error(err),
		)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("failed to connect to rabbitmq after %d attempts: %w", attempts, lastErr)
}

// rabbitMQPublisher публикует события в durable-очередь RabbitMQ.
// Публикации в канал сериализуются мьютексом.
type rabbitMQPublisher struct {
	mu        sync.Mutex
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewRabbitMQPublisher объявляет очередь queueName и возвращает издателя.
// Канал открывается и закрывается вызывающей стороной.
func NewRabbitMQPublisher(ch *amqp.Channel, queueName string, logger *zap.Logger) (EventPublisher, error) {
	_, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		amqp.Table{"x-queue-mode": "lazy"},
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось объявить очередь событий '%s': %w", queueName, err)
	}
	logger.Info("Generation events queue declared", zap.String("queue", queueName))

	return &rabbitMQPublisher{
		channel:   ch,
		queueName: queueName,
		logger:    logger.Named("RabbitMQPublisher"),
	}, nil
}

func (p *rabbitMQPublisher) PublishGenerationCreated(ctx context.Context, event GenerationCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка сериализации события для генерации %d: %w", event.GenerationID, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
			AppId:        appID,
			Type:         event.Event,
			MessageId:    uuid.NewString(),
		},
	)
	if err != nil {
		return fmt.Errorf("ошибка публикации события для генерации %d: %w", event.GenerationID, err)
	}

	p.logger.Debug("Generation event published",
		zap.Int64("generation_id", event.GenerationID),
		zap.String("queue", p.queueName),
	)
	return nil
}
