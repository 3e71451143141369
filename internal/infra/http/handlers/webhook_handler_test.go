package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-crm-sync/internal/entity"
)

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Execute(ctx context.Context, events []entity.WebhookEvent) int {
	args := m.Called(ctx, events)
	return args.Int(0)
}

func postWebhook(handler *WebhookHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/hubspot", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestWebhookHandler_MalformedJSONReturns400(t *testing.T) {
	processor := new(MockProcessor)
	handler := NewWebhookHandler(processor)

	rec := postWebhook(handler, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	processor.AssertNotCalled(t, "Execute")
}

func TestWebhookHandler_ObjectInsteadOfArrayReturns400(t *testing.T) {
	processor := new(MockProcessor)
	handler := NewWebhookHandler(processor)

	rec := postWebhook(handler, `{"eventId":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	processor.AssertNotCalled(t, "Execute")
}

func TestWebhookHandler_InvalidEventShapeReturns400(t *testing.T) {
	processor := new(MockProcessor)
	handler := NewWebhookHandler(processor)

	// objectId ausente: o lote inteiro é rejeitado antes do orquestrador
	rec := postWebhook(handler, `[{"eventId":1,"subscriptionType":"contact.propertyChange"}]`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "events[0]")
	processor.AssertNotCalled(t, "Execute")
}

func TestWebhookHandler_ValidBatchReturns200WithCount(t *testing.T) {
	processor := new(MockProcessor)
	handler := NewWebhookHandler(processor)

	processor.On("Execute", mock.Anything, mock.MatchedBy(func(events []entity.WebhookEvent) bool {
		return len(events) == 1 && events[0].ObjectID == 173595202426
	})).Return(1)

	rec := postWebhook(handler, `[{"eventId":714285774,"subscriptionType":"contact.propertyChange","objectId":173595202426,"propertyName":"firstname","propertyValue":"Briane","occurredAt":1765043528476,"attemptNumber":0}]`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp WebhookResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Processed)
}

func TestWebhookHandler_PartialFailureStillReturns200(t *testing.T) {
	processor := new(MockProcessor)
	handler := NewWebhookHandler(processor)

	// 2 eventos no lote, só 1 concluiu: continua 200 — o HubSpot não
	// deve redeliverar o lote por falha de processamento
	processor.On("Execute", mock.Anything, mock.Anything).Return(1)

	rec := postWebhook(handler, `[`+
		`{"eventId":1,"subscriptionType":"contact.propertyChange","objectId":111},`+
		`{"eventId":2,"subscriptionType":"contact.propertyChange","objectId":222}]`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp WebhookResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Processed)
}

func TestWebhookHandler_EmptyBatchReturns200WithZero(t *testing.T) {
	processor := new(MockProcessor)
	handler := NewWebhookHandler(processor)

	processor.On("Execute", mock.Anything, mock.Anything).Return(0)

	rec := postWebhook(handler, `[]`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp WebhookResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Processed)
}
