package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/xavierca1/ligue-crm-sync/internal/entity"
	"github.com/xavierca1/ligue-crm-sync/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm-sync/internal/usecase"
)

// WebhookProcessor: o que o handler precisa do orquestrador
type WebhookProcessor interface {
	Execute(ctx context.Context, events []entity.WebhookEvent) int
}

type WebhookHandler struct {
	Processor WebhookProcessor
}

func NewWebhookHandler(processor WebhookProcessor) *WebhookHandler {
	return &WebhookHandler{Processor: processor}
}

type WebhookResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Processed int    `json:"processed"`
}

// Handle recebe o lote JÁ autenticado (middleware de assinatura na rota).
// Shape inválido rejeita o lote inteiro com 400; depois disso a resposta
// é sempre 200 com a contagem — falha por evento é assunto de log/fila,
// o HubSpot vai redeliverar o que importa
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var events []entity.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		writeJSON(w, http.StatusBadRequest, WebhookResponse{
			Status:  "error",
			Message: "invalid payload: expected a JSON array of events",
		})
		return
	}

	if validationErrors := usecase.ValidateWebhookBatch(events); len(validationErrors) > 0 {
		msg := "invalid payload: "
		for _, e := range validationErrors {
			msg += e.Error() + "; "
		}
		writeJSON(w, http.StatusBadRequest, WebhookResponse{
			Status:  "error",
			Message: msg,
		})
		return
	}

	ctx := usecase.WithCorrelationID(r.Context(), chimiddleware.GetReqID(r.Context()))
	processed := h.Processor.Execute(ctx, events)

	middleware.RecordWebhookBatch(len(events), processed)

	writeJSON(w, http.StatusOK, WebhookResponse{
		Status:    "ok",
		Message:   "batch processed",
		Processed: processed,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
