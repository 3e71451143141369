package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/http/middleware"
)

// AlertSender define o contrato de notificação de falha (email ops)
type AlertSender interface {
	SendSyncFailureAlert(payload SyncResultPayload) error
}

// Worker consome os resultados de sync e alerta ops quando algo
// falhou de forma terminal. Consumo é best-effort: alerta que falha
// não reenfileira o resultado
type Worker struct {
	Channel *amqp.Channel
	Alerts  AlertSender
}

func NewWorker(ch *amqp.Channel, alerts AlertSender) *Worker {
	return &Worker{
		Channel: ch,
		Alerts:  alerts,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Falha ao registrar consumidor RabbitMQ")
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload SyncResultPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Error().Err(err).Msg("❌ [WORKER] JSON inválido, descartando")
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			w.processResult(payload)
			d.Ack(false)
		}
	}()

	log.Info().Str("queue", queueName).Msg(" [*] Worker de resultados rodando")
	<-forever
}

func (w *Worker) processResult(payload SyncResultPayload) {
	logger := log.With().
		Str("correlation_id", payload.CorrelationID).
		Str("entity_type", payload.EntityType).
		Str("remote_id", payload.RemoteID).
		Logger()

	if payload.Succeeded {
		logger.Info().Msg("✅ [WORKER] Sync concluído")
		return
	}

	logger.Warn().
		Str("error_code", payload.ErrorCode).
		Str("error", payload.ErrorMessage).
		Msg("⚠️ [WORKER] Sync falhou, alertando ops")

	middleware.RecordSyncFailure(payload.EntityType)

	if w.Alerts == nil {
		return
	}

	if err := w.Alerts.SendSyncFailureAlert(payload); err != nil {
		logger.Error().Err(err).Msg("❌ [WORKER] Falha ao enviar alerta")
	}
}
