package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookEventKind(t *testing.T) {
	cases := []struct {
		subscriptionType string
		expected         EventKind
	}{
		{"contact.propertyChange", EventContactChanged},
		{"contact.creation", EventContactChanged},
		{"contact.deletion", EventContactDeleted},
		{"deal.propertyChange", EventDealChanged},
		{"deal.creation", EventDealChanged},
		{"ticket.creation", EventUnhandled},
		{"company.propertyChange", EventUnhandled},
		{"", EventUnhandled},
	}

	for _, c := range cases {
		ev := WebhookEvent{SubscriptionType: c.subscriptionType}
		assert.Equal(t, c.expected, ev.Kind(), "subscriptionType=%q", c.subscriptionType)
	}
}

func TestWebhookEventValidate(t *testing.T) {
	t.Run("Evento completo", func(t *testing.T) {
		ev := WebhookEvent{EventID: 1, SubscriptionType: "contact.propertyChange", ObjectID: 42}
		assert.NoError(t, ev.Validate())
	})

	t.Run("Sem objectId", func(t *testing.T) {
		ev := WebhookEvent{EventID: 1, SubscriptionType: "contact.propertyChange"}
		assert.ErrorIs(t, ev.Validate(), ErrEventMissingObjectID)
	})

	t.Run("Sem subscriptionType", func(t *testing.T) {
		ev := WebhookEvent{EventID: 1, ObjectID: 42}
		assert.ErrorIs(t, ev.Validate(), ErrEventMissingType)
	})
}

func TestWebhookEventRemoteObjectID(t *testing.T) {
	ev := WebhookEvent{ObjectID: 173595202426}
	assert.Equal(t, "173595202426", ev.RemoteObjectID())
}
