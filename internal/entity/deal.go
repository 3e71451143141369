package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDealNotFound  = errors.New("negócio não encontrado")
	ErrDealNoContact = errors.New("negócio sem contato associado")
)

// Entidade: Deal
type Deal struct {
	ID          string `json:"id"`
	RemoteID    string `json:"remote_id"`
	Name        string `json:"name"`
	Stage       string `json:"stage"`
	AmountCents int    `json:"amount_cents"` // Em centavos, nunca float

	ContactID string `json:"contact_id"`

	// Derivado: recalculado a cada sync a partir das associações,
	// nunca confiado do valor local anterior
	HasLineItems bool `json:"has_line_items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DealRepository interface {
	FindByRemoteID(ctx context.Context, remoteID string) (*Deal, error)
	Upsert(ctx context.Context, d *Deal) (*Deal, error)
	UpdateHasLineItems(ctx context.Context, dealID string, has bool) error
}

func NewDeal(remoteID, name, stage, contactID string, amountCents int) (*Deal, error) {
	if remoteID == "" {
		return nil, errors.New("remote_id is required")
	}

	return &Deal{
		ID:          uuid.New().String(),
		RemoteID:    remoteID,
		Name:        name,
		Stage:       stage,
		AmountCents: amountCents,
		ContactID:   contactID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}
