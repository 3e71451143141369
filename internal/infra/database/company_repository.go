package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/xavierca1/ligue-crm-sync/internal/entity"
)

type CompanyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) FindByRemoteID(ctx context.Context, remoteID string) (*entity.Company, error) {
	query := `
		SELECT id, remote_id, name, domain, contact_id, created_at, updated_at
		FROM companies WHERE remote_id = $1
	`

	var c entity.Company
	err := r.DB.QueryRowContext(ctx, query, remoteID).Scan(
		&c.ID, &c.RemoteID, &c.Name, &c.Domain, &c.ContactID, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Upsert em comando único: o UNIQUE em remote_id resolve a concorrência
func (r *CompanyRepository) Upsert(ctx context.Context, c *entity.Company) (*entity.Company, error) {
	now := time.Now()

	query := `
		INSERT INTO companies (id, remote_id, name, domain, contact_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (remote_id) DO UPDATE
		SET name = EXCLUDED.name, domain = EXCLUDED.domain,
		    contact_id = EXCLUDED.contact_id, updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	err := r.DB.QueryRowContext(ctx, query,
		c.ID, c.RemoteID, c.Name, c.Domain, c.ContactID, now, now,
	).Scan(&c.ID)
	if err != nil {
		return nil, err
	}

	c.UpdatedAt = now
	return c, nil
}
