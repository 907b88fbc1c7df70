package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"poliza-service/internal/models"
)

const (
	notificationExchange = "poliza.notifications"
	polizaCreadaKey      = "poliza.creada"
)

// NotificationPublisher emits póliza lifecycle events for the notification
// service.
type NotificationPublisher struct {
	conn *RabbitMQConnection
}

func NewNotificationPublisher(conn *RabbitMQConnection) (*NotificationPublisher, error) {
	err := conn.Channel.ExchangeDeclare(
		notificationExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", notificationExchange, err)
	}
	return &NotificationPublisher{conn: conn}, nil
}

// PublishPolizaCreada publishes the creation event. Callers treat failures
// as non-fatal; the póliza already exists in Velneo.
func (p *NotificationPublisher) PublishPolizaCreada(ctx context.Context, event models.PolizaCreadaEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(ctx,
		notificationExchange,
		polizaCreadaKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", polizaCreadaKey, err)
	}

	slog.Info("Published póliza-created event", "numero_poliza", event.NumeroPoliza)
	return nil
}
