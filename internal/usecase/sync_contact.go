package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xavierca1/ligue-crm-sync/internal/entity"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/integration/hubspot"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/integration/portal"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/retry"
)

// SyncContact: caminho completo de um evento de contato.
// 1. busca estado autoritativo no HubSpot
// 2. upsert local por chave dupla (remote_id primeiro, depois email)
// 3-5. cascata de empresas e negócios, cada irmão isolado
// 6. push best-effort para o Portal
func (uc *ProcessWebhookUseCase) SyncContact(ctx context.Context, remoteID string) error {
	contact, err := uc.fetchAndUpsertContact(ctx, remoteID)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("contact_id", contact.ID).
		Str("email", contact.Email).
		Msg("✅ Contato sincronizado")

	// Cascatas: o upsert do contato já foi commitado, daqui pra baixo
	// qualquer falha degrada, nunca aborta
	uc.syncContactCompanies(ctx, remoteID, contact.ID)
	uc.syncContactDeals(ctx, remoteID, contact.ID)

	uc.PushContactToPortal(ctx, contact)

	return nil
}

// DeleteContact remove a linha local. Redelivery de deleção é idempotente:
// não achar a linha é sucesso
func (uc *ProcessWebhookUseCase) DeleteContact(ctx context.Context, remoteID string) error {
	err := uc.Contacts.DeleteByRemoteID(ctx, remoteID)
	if errors.Is(err, entity.ErrContactNotFound) {
		zerolog.Ctx(ctx).Info().Msg("ℹ️ Contato já não existia localmente")
		return nil
	}
	if err != nil {
		return NewTechnicalError(CodeLocalPersist, fmt.Sprintf("erro ao deletar contato %s", remoteID), err)
	}

	zerolog.Ctx(ctx).Info().Msg("🗑️ Contato removido localmente")
	return nil
}

// fetchAndUpsertContact é o miolo compartilhado entre o caminho de contato
// e o "garantir contato primário" do caminho de negócio
func (uc *ProcessWebhookUseCase) fetchAndUpsertContact(ctx context.Context, remoteID string) (*entity.Contact, error) {
	remote, err := retry.Do(ctx, uc.Retry, "hubspot.GetContact", func(ctx context.Context) (*hubspot.ContactResponse, error) {
		return uc.CRM.GetContact(ctx, remoteID)
	})
	if err != nil {
		return nil, classifyRemoteError("contato", remoteID, err)
	}

	// Sem email não existe chave de negócio para o upsert dual-key
	if remote.Properties.Email == "" {
		return nil, NewDomainError(CodeUnprocessable,
			fmt.Sprintf("contato %s veio sem email do HubSpot", remoteID), entity.ErrContactNoEmail)
	}

	contact, err := entity.NewContact(
		remote.ID,
		remote.Properties.Email,
		remote.Properties.FirstName,
		remote.Properties.LastName,
		remote.Properties.Phone,
	)
	if err != nil {
		return nil, NewDomainError(CodeUnprocessable, err.Error(), err)
	}

	contact, err = uc.Contacts.Upsert(ctx, contact)
	if err != nil {
		return nil, NewTechnicalError(CodeLocalPersist,
			fmt.Sprintf("erro ao gravar contato %s", remoteID), err)
	}

	return contact, nil
}

// syncContactCompanies: passo 3-4. Falha na listagem degrada para zero
// associações; falha em UMA empresa não bloqueia as irmãs
func (uc *ProcessWebhookUseCase) syncContactCompanies(ctx context.Context, contactRemoteID, contactID string) {
	logger := zerolog.Ctx(ctx)

	companyIDs, err := retry.Do(ctx, uc.Retry, "hubspot.GetAssociations.companies", func(ctx context.Context) ([]string, error) {
		return uc.CRM.GetAssociations(ctx, hubspot.ObjectTypeContacts, hubspot.ObjectTypeCompanies, contactRemoteID)
	})
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ Falha ao listar empresas associadas, seguindo sem cascata")
		return
	}

	for _, companyID := range companyIDs {
		if err := uc.syncCompany(ctx, companyID, contactID); err != nil {
			logger.Warn().Err(err).
				Str("company_remote_id", companyID).
				Msg("⚠️ Empresa associada falhou, seguindo para a próxima")
		}
	}
}

func (uc *ProcessWebhookUseCase) syncCompany(ctx context.Context, companyRemoteID, contactID string) error {
	remote, err := retry.Do(ctx, uc.Retry, "hubspot.GetCompany", func(ctx context.Context) (*hubspot.CompanyResponse, error) {
		return uc.CRM.GetCompany(ctx, companyRemoteID)
	})
	if err != nil {
		return classifyRemoteError("empresa", companyRemoteID, err)
	}

	company, err := entity.NewCompany(remote.ID, remote.Properties.Name, remote.Properties.Domain, contactID)
	if err != nil {
		return NewDomainError(CodeUnprocessable, err.Error(), err)
	}

	if _, err := uc.Companies.Upsert(ctx, company); err != nil {
		return NewTechnicalError(CodeLocalPersist,
			fmt.Sprintf("erro ao gravar empresa %s", companyRemoteID), err)
	}

	return nil
}

// syncContactDeals: passo 5. Mesmo isolamento por irmão das empresas
func (uc *ProcessWebhookUseCase) syncContactDeals(ctx context.Context, contactRemoteID, contactID string) {
	logger := zerolog.Ctx(ctx)

	dealIDs, err := retry.Do(ctx, uc.Retry, "hubspot.GetAssociations.deals", func(ctx context.Context) ([]string, error) {
		return uc.CRM.GetAssociations(ctx, hubspot.ObjectTypeContacts, hubspot.ObjectTypeDeals, contactRemoteID)
	})
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ Falha ao listar negócios associados, seguindo sem cascata")
		return
	}

	for _, dealID := range dealIDs {
		if err := uc.syncDealCascade(ctx, dealID, contactID); err != nil {
			logger.Warn().Err(err).
				Str("deal_remote_id", dealID).
				Msg("⚠️ Negócio associado falhou, seguindo para o próximo")
		}
	}
}

// PushContactToPortal: passo 6 — downstream best-effort.
// Nunca devolve erro: o sync primário já aconteceu, o resultado aqui só
// é registrado para o worker de reconciliação retentar depois
func (uc *ProcessWebhookUseCase) PushContactToPortal(ctx context.Context, contact *entity.Contact) bool {
	logger := zerolog.Ctx(ctx)
	outcome := entity.SyncOutcome{SyncedAt: time.Now()}

	if !uc.Portal.Ping(ctx) {
		logger.Warn().Msg("⚠️ Portal indisponível, pulando sync downstream")
		uc.recordPortalOutcome(ctx, contact.ID, outcome)
		return false
	}

	input := portal.MemberInput{
		Name:        contact.FullName(),
		Email:       contact.Email,
		Phone:       contact.Phone,
		ExternalRef: contact.RemoteID,
	}

	var memberID string
	var err error
	if contact.PortalUserID != "" {
		memberID, err = uc.Portal.UpdateMember(ctx, contact.PortalUserID, input)
	} else {
		memberID, err = uc.Portal.CreateMember(ctx, input)
	}

	if err != nil {
		logger.Warn().Err(err).Msg("⚠️ Sync com o Portal falhou, resultado registrado")
		uc.recordPortalOutcome(ctx, contact.ID, outcome)
		return false
	}

	outcome.Succeeded = true
	outcome.PortalUserID = memberID
	uc.recordPortalOutcome(ctx, contact.ID, outcome)

	logger.Info().Str("portal_user_id", memberID).Msg("🚀 Contato enviado ao Portal")
	return true
}

func (uc *ProcessWebhookUseCase) recordPortalOutcome(ctx context.Context, contactID string, outcome entity.SyncOutcome) {
	if err := uc.Contacts.UpdatePortalSync(ctx, contactID, outcome); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("⚠️ Falha ao registrar resultado do Portal")
	}
}

// classifyRemoteError traduz o APIError do client na taxonomia do pipeline
func classifyRemoteError(label, remoteID string, err error) error {
	var apiErr *hubspot.APIError
	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
		return NewDomainError(CodeRemoteNotFound,
			fmt.Sprintf("%s %s não existe no HubSpot", label, remoteID), err)
	}

	return NewTechnicalError(CodeRemoteDown,
		fmt.Sprintf("hubspot indisponível para %s %s", label, remoteID), err)
}
