package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm-sync/internal/infra/integration/hubspot"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/integration/portal"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/queue"
)

// CRMGateway: o que o orquestrador precisa do HubSpot.
// Toda chamada passa pela política de retry no call site
type CRMGateway interface {
	GetContact(ctx context.Context, id string) (*hubspot.ContactResponse, error)
	GetCompany(ctx context.Context, id string) (*hubspot.CompanyResponse, error)
	GetDeal(ctx context.Context, id string) (*hubspot.DealResponse, error)
	GetLineItem(ctx context.Context, id string) (*hubspot.LineItemResponse, error)
	GetAssociations(ctx context.Context, fromType, toType, id string) ([]string, error)
}

// PortalGateway: sistema downstream, best-effort por contrato
type PortalGateway interface {
	Ping(ctx context.Context) bool
	CreateMember(ctx context.Context, input portal.MemberInput) (string, error)
	UpdateMember(ctx context.Context, memberID string, input portal.MemberInput) (string, error)
}

type QueueProducerInterface interface {
	PublishSyncResult(ctx context.Context, payload queue.SyncResultPayload) error
}
