package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xavierca1/ligue-crm-sync/internal/entity"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/http/middleware"
)

// ContactPusher: reaproveita o push best-effort do orquestrador
type ContactPusher interface {
	PushContactToPortal(ctx context.Context, contact *entity.Contact) bool
}

// PortalResyncWorker retenta periodicamente o envio ao Portal dos
// contatos cujo último sync falhou. Reconciliação downstream apenas:
// eventos de webhook nunca passam por aqui
type PortalResyncWorker struct {
	contacts     entity.ContactRepository
	pusher       ContactPusher
	tickInterval time.Duration
	batchSize    int
}

func NewPortalResyncWorker(contacts entity.ContactRepository, pusher ContactPusher) *PortalResyncWorker {
	return &PortalResyncWorker{
		contacts:     contacts,
		pusher:       pusher,
		tickInterval: 5 * time.Minute,
		batchSize:    50,
	}
}

func (w *PortalResyncWorker) Start(ctx context.Context) {
	log.Info().Msg("🕒 Portal Resync Worker iniciado (janela de 5min)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Warn().Msg("⚠️ Portal Resync Worker encerrado")
			return
		case <-ticker.C:
			w.resyncFailed(ctx)
		}
	}
}

func (w *PortalResyncWorker) resyncFailed(ctx context.Context) {
	logger := log.With().Str("worker", "portal-resync").Logger()
	runCtx := logger.WithContext(ctx)

	contacts, err := w.contacts.FindPortalSyncFailed(runCtx, w.batchSize)
	if err != nil {
		logger.Error().Err(err).Msg("❌ Falha ao listar contatos pendentes")
		return
	}

	if len(contacts) == 0 {
		return
	}

	logger.Info().Int("pending", len(contacts)).Msg("🔁 Retentando sync com o Portal")

	for _, contact := range contacts {
		if !w.pusher.PushContactToPortal(runCtx, contact) {
			middleware.RecordIntegrationError("portal")
			// Portal ainda fora: o resto do lote esperaria o mesmo ping
			return
		}
	}
}
