package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCompanyNotFound = errors.New("empresa não encontrada")

// Entidade: Company (associada a um Contact)
type Company struct {
	ID       string `json:"id"`
	RemoteID string `json:"remote_id"`
	Name     string `json:"name"`
	Domain   string `json:"domain"`

	// Vínculo resolvido via lookup no repositório, nunca grafo cíclico
	ContactID string `json:"contact_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CompanyRepository interface {
	FindByRemoteID(ctx context.Context, remoteID string) (*Company, error)
	Upsert(ctx context.Context, c *Company) (*Company, error)
}

func NewCompany(remoteID, name, domain, contactID string) (*Company, error) {
	if remoteID == "" {
		return nil, errors.New("remote_id is required")
	}

	return &Company{
		ID:        uuid.New().String(),
		RemoteID:  remoteID,
		Name:      name,
		Domain:    domain,
		ContactID: contactID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}
