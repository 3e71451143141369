package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/xavierca1/ligue-crm-sync/internal/entity"
	"github.com/xavierca1/ligue-crm-sync/internal/usecase"
)

// ContactSyncer: resync manual reaproveita o mesmo caminho do webhook
type ContactSyncer interface {
	SyncContact(ctx context.Context, remoteID string) error
}

type ContactHandler struct {
	Repo   entity.ContactRepository
	Syncer ContactSyncer
}

func NewContactHandler(repo entity.ContactRepository, syncer ContactSyncer) *ContactHandler {
	return &ContactHandler{Repo: repo, Syncer: syncer}
}

// HandleGet: GET /contacts/{remoteID} — ferramenta de suporte
func (h *ContactHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	remoteID := chi.URLParam(r, "remoteID")

	contact, err := h.Repo.FindByRemoteID(r.Context(), remoteID)
	if errors.Is(err, entity.ErrContactNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "contact_not_found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

type SyncStatusResponse struct {
	RemoteID       string     `json:"remote_id"`
	PortalUserID   string     `json:"portal_user_id"`
	PortalSyncedAt *time.Time `json:"portal_synced_at"`
	PortalSyncOK   bool       `json:"portal_sync_ok"`
}

// HandleGetSyncStatus: GET /contacts/{remoteID}/sync-status
func (h *ContactHandler) HandleGetSyncStatus(w http.ResponseWriter, r *http.Request) {
	remoteID := chi.URLParam(r, "remoteID")

	contact, err := h.Repo.FindByRemoteID(r.Context(), remoteID)
	if errors.Is(err, entity.ErrContactNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "contact_not_found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, SyncStatusResponse{
		RemoteID:       contact.RemoteID,
		PortalUserID:   contact.PortalUserID,
		PortalSyncedAt: contact.PortalSyncedAt,
		PortalSyncOK:   contact.PortalSyncOK,
	})
}

// HandleResync: POST /sync/contacts/{remoteID} — reprocessamento manual
// depois que ops resolveu a causa da falha
func (h *ContactHandler) HandleResync(w http.ResponseWriter, r *http.Request) {
	remoteID := chi.URLParam(r, "remoteID")
	ctx := usecase.WithCorrelationID(r.Context(), chimiddleware.GetReqID(r.Context()))

	if err := h.Syncer.SyncContact(ctx, remoteID); err != nil {
		writeJSON(w, statusForSyncError(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "remote_id": remoteID})
}

func statusForSyncError(err error) int {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case usecase.CodeRemoteNotFound:
			return http.StatusNotFound
		case usecase.CodeUnprocessable:
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}
