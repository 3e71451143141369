package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SyncResultPayload: publicado após cada evento de webhook processado,
// para consumidores internos (alertas, auditoria). Não é fila de retry:
// o evento de webhook em si nunca é reenfileirado
type SyncResultPayload struct {
	EventID       int64     `json:"event_id"`
	CorrelationID string    `json:"correlation_id"`
	EntityType    string    `json:"entity_type"` // contact | deal
	RemoteID      string    `json:"remote_id"`
	Operation     string    `json:"operation"` // sync | delete
	Succeeded     bool      `json:"succeeded"`
	ErrorCode     string    `json:"error_code,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishSyncResult(ctx context.Context, payload SyncResultPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
