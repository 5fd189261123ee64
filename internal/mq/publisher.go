package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shaiso/Alerta/internal/domain"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// Типы сообщений.
const (
	MessageTypeSyncCompleted MessageType = "sync.completed"
	MessageTypeAlertAction   MessageType = "alert.action"
	MessageTypePassCompleted MessageType = "pass.completed"
)

// Publisher публикует сообщения в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// SyncCompletedPayload — payload для сообщения о завершённой синхронизации
// списка. Пустой ListID означает полную синхронизацию всех списков.
type SyncCompletedPayload struct {
	ListID uuid.UUID `json:"list_id"`
}

// AlertActionPayload — payload для действия пользователя по сработавшему алерту.
type AlertActionPayload struct {
	ItemID   uuid.UUID `json:"item_id"`
	ListID   uuid.UUID `json:"list_id"`
	Category string    `json:"category"` // пока только "complete"
}

// PassCompletedPayload — payload со сводкой завершённого пасса сверки.
type PassCompletedPayload struct {
	Trigger string         `json:"trigger"`
	Summary domain.Summary `json:"summary"`
}

// Publish публикует сообщение в указанный exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),   // exchange
			string(routingKey), // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)

		return nil
	})
}

// PublishSyncCompleted публикует событие о завершённой синхронизации списка.
// Потребитель: Engine.
func (p *Publisher) PublishSyncCompleted(ctx context.Context, listID uuid.UUID) error {
	msg := &Message{
		ID:        uuid.New().String(),
		Type:      MessageTypeSyncCompleted,
		Payload:   SyncCompletedPayload{ListID: listID},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeSync, RoutingKeyCompleted, msg)
}

// PublishAlertAction публикует действие пользователя по алерту.
// Потребитель: Engine.
func (p *Publisher) PublishAlertAction(ctx context.Context, payload AlertActionPayload) error {
	msg := &Message{
		ID:        uuid.New().String(),
		Type:      MessageTypeAlertAction,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeAlerts, RoutingKeyActions, msg)
}

// PublishPassCompleted публикует сводку завершённого пасса сверки.
// Потребители: внешние наблюдатели.
func (p *Publisher) PublishPassCompleted(ctx context.Context, trigger string, summary domain.Summary) error {
	msg := &Message{
		ID:        uuid.New().String(),
		Type:      MessageTypePassCompleted,
		Payload:   PassCompletedPayload{Trigger: trigger, Summary: summary},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangePasses, RoutingKeyCompleted, msg)
}
