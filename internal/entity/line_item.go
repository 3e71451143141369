package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entidade: LineItem (item de um Deal)
type LineItem struct {
	ID         string `json:"id"`
	RemoteID   string `json:"remote_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int    `json:"price_cents"`

	DealID string `json:"deal_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LineItemRepository interface {
	Upsert(ctx context.Context, li *LineItem) (*LineItem, error)
}

func NewLineItem(remoteID, name, dealID string, quantity, priceCents int) (*LineItem, error) {
	if remoteID == "" {
		return nil, errors.New("remote_id is required")
	}

	return &LineItem{
		ID:         uuid.New().String(),
		RemoteID:   remoteID,
		Name:       name,
		Quantity:   quantity,
		PriceCents: priceCents,
		DealID:     dealID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}, nil
}
