package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

var (
	ErrContactNotFound    = errors.New("contato não encontrado")
	ErrContactNoEmail     = errors.New("contato sem email não pode ser sincronizado")
	ErrEmailAlreadyExists = errors.New("email já cadastrado para outro contato")
)

// Entidade: Contact (espelho local de um contato do HubSpot)
type Contact struct {
	ID        string `json:"id"`
	RemoteID  string `json:"remote_id"` // ID do objeto no HubSpot (chave natural)
	Email     string `json:"email"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Phone     string `json:"phone"`

	// Último resultado do sync com o Portal
	PortalUserID   string     `json:"portal_user_id"`
	PortalSyncedAt *time.Time `json:"portal_synced_at"`
	PortalSyncOK   bool       `json:"portal_sync_ok"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SyncOutcome registra o resultado de uma tentativa de envio ao Portal
type SyncOutcome struct {
	PortalUserID string    `json:"portal_user_id"`
	SyncedAt     time.Time `json:"synced_at"`
	Succeeded    bool      `json:"succeeded"`
}

type ContactRepository interface {
	FindByRemoteID(ctx context.Context, remoteID string) (*Contact, error)
	FindByEmail(ctx context.Context, email string) (*Contact, error)
	Upsert(ctx context.Context, c *Contact) (*Contact, error)
	UpdatePortalSync(ctx context.Context, contactID string, outcome SyncOutcome) error
	DeleteByRemoteID(ctx context.Context, remoteID string) error
	FindPortalSyncFailed(ctx context.Context, limit int) ([]*Contact, error)
}

// Factory
func NewContact(remoteID, email, firstName, lastName, phone string) (*Contact, error) {
	contact := &Contact{
		ID:        uuid.New().String(),
		RemoteID:  remoteID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

func (c *Contact) Validate() error {
	if c.RemoteID == "" {
		return errors.New("remote_id is required")
	}
	if c.Email == "" {
		return ErrContactNoEmail
	}
	return nil
}

func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
