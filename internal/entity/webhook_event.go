package entity

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrEventMissingObjectID = errors.New("evento sem objectId")
	ErrEventMissingType     = errors.New("evento sem subscriptionType")
)

// WebhookEvent: notificação de mudança vinda do HubSpot.
// Transiente: criado no ingress, consumido uma vez pelo orquestrador.
// eventId se repete em redeliveries (attemptNumber cresce), então
// nenhuma lógica pode tratá-lo como chave idempotente.
type WebhookEvent struct {
	EventID          int64  `json:"eventId"`
	SubscriptionType string `json:"subscriptionType"`
	ObjectID         int64  `json:"objectId"`
	PropertyName     string `json:"propertyName"`
	PropertyValue    string `json:"propertyValue"`
	OccurredAt       int64  `json:"occurredAt"`
	AttemptNumber    int    `json:"attemptNumber"`
}

// EventKind: variante fechada resolvida uma única vez no ingress,
// para não espalhar comparação de string pelo orquestrador
type EventKind int

const (
	EventUnhandled EventKind = iota
	EventContactChanged
	EventContactDeleted
	EventDealChanged
)

func (e WebhookEvent) Kind() EventKind {
	switch {
	case e.SubscriptionType == "contact.deletion":
		return EventContactDeleted
	case strings.HasPrefix(e.SubscriptionType, "contact."):
		return EventContactChanged
	case strings.HasPrefix(e.SubscriptionType, "deal."):
		return EventDealChanged
	default:
		return EventUnhandled
	}
}

// RemoteObjectID: o HubSpot manda objectId numérico, a API v3 usa string
func (e WebhookEvent) RemoteObjectID() string {
	return strconv.FormatInt(e.ObjectID, 10)
}

func (e WebhookEvent) Validate() error {
	if e.ObjectID <= 0 {
		return ErrEventMissingObjectID
	}
	if e.SubscriptionType == "" {
		return ErrEventMissingType
	}
	return nil
}
