package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/xavierca1/ligue-crm-sync/internal/entity"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/integration/hubspot"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/retry"
)

// SyncDeal: caminho de um evento de negócio, espelha o de contato mas
// ancorado no deal. Negócio sem contato associado aborta só este evento
func (uc *ProcessWebhookUseCase) SyncDeal(ctx context.Context, remoteID string) error {
	contactIDs, err := retry.Do(ctx, uc.Retry, "hubspot.GetAssociations.contacts", func(ctx context.Context) ([]string, error) {
		return uc.CRM.GetAssociations(ctx, hubspot.ObjectTypeDeals, hubspot.ObjectTypeContacts, remoteID)
	})
	if err != nil {
		return classifyRemoteError("associações do negócio", remoteID, err)
	}

	if len(contactIDs) == 0 {
		return NewDomainError(CodeDealNoContact,
			fmt.Sprintf("negócio %s não tem contato associado", remoteID), entity.ErrDealNoContact)
	}

	// Contato primário = primeiro associado. Garante que existe localmente
	// (fetch+upsert se faltar) para o deal ter onde se pendurar
	primary := contactIDs[0]
	contact, err := uc.Contacts.FindByRemoteID(ctx, primary)
	if errors.Is(err, entity.ErrContactNotFound) {
		contact, err = uc.fetchAndUpsertContact(ctx, primary)
	}
	if err != nil {
		var techErr *TechnicalError
		var domainErr *DomainError
		if !errors.As(err, &techErr) && !errors.As(err, &domainErr) {
			err = NewTechnicalError(CodeLocalPersist,
				fmt.Sprintf("erro ao resolver contato primário %s", primary), err)
		}
		return err
	}

	// Empresas do contato primário, isoladas como no caminho de contato
	uc.syncContactCompanies(ctx, primary, contact.ID)

	return uc.syncDealCascade(ctx, remoteID, contact.ID)
}

// syncDealCascade: busca o deal, recalcula has_line_items a partir da
// contagem ATUAL de associações (nunca do valor local antigo), faz o
// upsert e sincroniza cada line item isoladamente
func (uc *ProcessWebhookUseCase) syncDealCascade(ctx context.Context, dealRemoteID, contactID string) error {
	logger := zerolog.Ctx(ctx)

	remote, err := retry.Do(ctx, uc.Retry, "hubspot.GetDeal", func(ctx context.Context) (*hubspot.DealResponse, error) {
		return uc.CRM.GetDeal(ctx, dealRemoteID)
	})
	if err != nil {
		return classifyRemoteError("negócio", dealRemoteID, err)
	}

	lineItemIDs, assocErr := retry.Do(ctx, uc.Retry, "hubspot.GetAssociations.line_items", func(ctx context.Context) ([]string, error) {
		return uc.CRM.GetAssociations(ctx, hubspot.ObjectTypeDeals, hubspot.ObjectTypeLineItems, dealRemoteID)
	})

	hasLineItems := len(lineItemIDs) > 0
	if assocErr != nil {
		// Contagem desconhecida: preserva o flag local em vez de
		// derrubar para false sem evidência
		logger.Warn().Err(assocErr).Msg("⚠️ Falha ao listar line items, preservando flag local")
		if existing, findErr := uc.Deals.FindByRemoteID(ctx, dealRemoteID); findErr == nil {
			hasLineItems = existing.HasLineItems
		} else {
			hasLineItems = false
		}
	}

	deal, err := entity.NewDeal(
		remote.ID,
		remote.Properties.DealName,
		remote.Properties.DealStage,
		contactID,
		parseAmountCents(remote.Properties.Amount),
	)
	if err != nil {
		return NewDomainError(CodeUnprocessable, err.Error(), err)
	}
	deal.HasLineItems = hasLineItems

	deal, err = uc.Deals.Upsert(ctx, deal)
	if err != nil {
		return NewTechnicalError(CodeLocalPersist,
			fmt.Sprintf("erro ao gravar negócio %s", dealRemoteID), err)
	}

	for _, lineItemID := range lineItemIDs {
		if err := uc.syncLineItem(ctx, lineItemID, deal.ID); err != nil {
			logger.Warn().Err(err).
				Str("line_item_remote_id", lineItemID).
				Msg("⚠️ Line item falhou, seguindo para o próximo")
		}
	}

	// Patch final: com os itens conhecidos, o flag derivado fica consistente
	if assocErr == nil {
		if err := uc.Deals.UpdateHasLineItems(ctx, deal.ID, len(lineItemIDs) > 0); err != nil {
			logger.Warn().Err(err).Msg("⚠️ Falha ao atualizar has_line_items")
		}
	}

	logger.Info().
		Str("deal_id", deal.ID).
		Bool("has_line_items", deal.HasLineItems).
		Msg("✅ Negócio sincronizado")

	return nil
}

func (uc *ProcessWebhookUseCase) syncLineItem(ctx context.Context, lineItemRemoteID, dealID string) error {
	remote, err := retry.Do(ctx, uc.Retry, "hubspot.GetLineItem", func(ctx context.Context) (*hubspot.LineItemResponse, error) {
		return uc.CRM.GetLineItem(ctx, lineItemRemoteID)
	})
	if err != nil {
		return classifyRemoteError("line item", lineItemRemoteID, err)
	}

	quantity, _ := strconv.Atoi(remote.Properties.Quantity)

	lineItem, err := entity.NewLineItem(
		remote.ID,
		remote.Properties.Name,
		dealID,
		quantity,
		parseAmountCents(remote.Properties.Price),
	)
	if err != nil {
		return NewDomainError(CodeUnprocessable, err.Error(), err)
	}

	if _, err := uc.LineItems.Upsert(ctx, lineItem); err != nil {
		return NewTechnicalError(CodeLocalPersist,
			fmt.Sprintf("erro ao gravar line item %s", lineItemRemoteID), err)
	}

	return nil
}

// parseAmountCents: HubSpot manda valores como string decimal ("150.00").
// Guardamos em centavos, nunca float
func parseAmountCents(amount string) int {
	if amount == "" {
		return 0
	}

	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}

	return int(math.Round(value * 100))
}
