package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/xavierca1/ligue-crm-sync/internal/entity"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/queue"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/retry"
)

// ProcessWebhookUseCase: orquestrador do pipeline de sync.
// Consome um lote já autenticado e validado, despacha cada evento pela
// variante resolvida no ingress e isola falhas por evento — o evento N
// falhar nunca impede o N+1 de ser tentado
type ProcessWebhookUseCase struct {
	Contacts  entity.ContactRepository
	Companies entity.CompanyRepository
	Deals     entity.DealRepository
	LineItems entity.LineItemRepository
	CRM       CRMGateway
	Portal    PortalGateway
	Queue     QueueProducerInterface
	Retry     retry.Policy
}

func NewProcessWebhookUseCase(
	contacts entity.ContactRepository,
	companies entity.CompanyRepository,
	deals entity.DealRepository,
	lineItems entity.LineItemRepository,
	crm CRMGateway,
	portalClient PortalGateway,
	producer QueueProducerInterface,
) *ProcessWebhookUseCase {
	return &ProcessWebhookUseCase{
		Contacts:  contacts,
		Companies: companies,
		Deals:     deals,
		LineItems: lineItems,
		CRM:       crm,
		Portal:    portalClient,
		Queue:     producer,
		Retry:     retry.DefaultPolicy(),
	}
}

// Execute processa o lote sequencialmente (eventos do mesmo remote_id
// precisam aplicar na ordem de entrega) e devolve quantos concluíram.
// Falha parcial NUNCA vira erro: o chamador responde 200 e as falhas
// ficam observáveis via log/fila
func (uc *ProcessWebhookUseCase) Execute(ctx context.Context, events []entity.WebhookEvent) int {
	processed := 0

	for _, ev := range events {
		logger := zerolog.Ctx(ctx).With().
			Int64("event_id", ev.EventID).
			Str("subscription_type", ev.SubscriptionType).
			Str("remote_id", ev.RemoteObjectID()).
			Int("attempt_number", ev.AttemptNumber).
			Logger()
		evCtx := logger.WithContext(ctx)

		kind := ev.Kind()
		if kind == entity.EventUnhandled {
			logger.Info().Msg("ℹ️ Tipo de evento não tratado, ignorando")
			continue
		}

		err := uc.processEvent(evCtx, kind, ev)
		uc.publishResult(evCtx, ev, kind, err)

		if err != nil {
			logger.Error().Err(err).Msg("❌ Evento falhou, seguindo para o próximo")
			continue
		}

		processed++
	}

	return processed
}

func (uc *ProcessWebhookUseCase) processEvent(ctx context.Context, kind entity.EventKind, ev entity.WebhookEvent) error {
	switch kind {
	case entity.EventContactChanged:
		return uc.SyncContact(ctx, ev.RemoteObjectID())
	case entity.EventContactDeleted:
		return uc.DeleteContact(ctx, ev.RemoteObjectID())
	case entity.EventDealChanged:
		return uc.SyncDeal(ctx, ev.RemoteObjectID())
	default:
		return nil
	}
}

// publishResult manda o resultado para a fila de auditoria/alerta.
// Best-effort: falha de publicação não muda o destino do evento
func (uc *ProcessWebhookUseCase) publishResult(ctx context.Context, ev entity.WebhookEvent, kind entity.EventKind, syncErr error) {
	if uc.Queue == nil {
		return
	}

	payload := queue.SyncResultPayload{
		EventID:       ev.EventID,
		CorrelationID: correlationID(ctx),
		EntityType:    entityTypeFor(kind),
		RemoteID:      ev.RemoteObjectID(),
		Operation:     operationFor(kind),
		Succeeded:     syncErr == nil,
		OccurredAt:    time.Now(),
	}

	if syncErr != nil {
		payload.ErrorCode, payload.ErrorMessage = describeError(syncErr)
	}

	if err := uc.Queue.PublishSyncResult(ctx, payload); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("⚠️ Falha ao publicar resultado na fila")
	}
}

func entityTypeFor(kind entity.EventKind) string {
	if kind == entity.EventDealChanged {
		return "deal"
	}
	return "contact"
}

func operationFor(kind entity.EventKind) string {
	if kind == entity.EventContactDeleted {
		return "delete"
	}
	return "sync"
}

func describeError(err error) (code, message string) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code, domainErr.Message
	}

	var techErr *TechnicalError
	if errors.As(err, &techErr) {
		return techErr.Code, techErr.Message
	}

	return "UNKNOWN", err.Error()
}

type correlationKey struct{}

// WithCorrelationID guarda o request id no contexto — sempre explícito,
// nunca estado global
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func correlationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationKey{}).(string); ok {
		return id
	}
	return ""
}
