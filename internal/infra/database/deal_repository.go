package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/xavierca1/ligue-crm-sync/internal/entity"
)

type DealRepository struct {
	DB *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{DB: db}
}

func (r *DealRepository) FindByRemoteID(ctx context.Context, remoteID string) (*entity.Deal, error) {
	query := `
		SELECT id, remote_id, name, stage, amount_cents, contact_id, has_line_items, created_at, updated_at
		FROM deals WHERE remote_id = $1
	`

	var d entity.Deal
	err := r.DB.QueryRowContext(ctx, query, remoteID).Scan(
		&d.ID, &d.RemoteID, &d.Name, &d.Stage, &d.AmountCents,
		&d.ContactID, &d.HasLineItems, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *DealRepository) Upsert(ctx context.Context, d *entity.Deal) (*entity.Deal, error) {
	now := time.Now()

	query := `
		INSERT INTO deals (id, remote_id, name, stage, amount_cents, contact_id, has_line_items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (remote_id) DO UPDATE
		SET name = EXCLUDED.name, stage = EXCLUDED.stage, amount_cents = EXCLUDED.amount_cents,
		    contact_id = EXCLUDED.contact_id, has_line_items = EXCLUDED.has_line_items,
		    updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	err := r.DB.QueryRowContext(ctx, query,
		d.ID, d.RemoteID, d.Name, d.Stage, d.AmountCents,
		d.ContactID, d.HasLineItems, now, now,
	).Scan(&d.ID)
	if err != nil {
		return nil, err
	}

	d.UpdatedAt = now
	return d, nil
}

// UpdateHasLineItems grava o flag derivado depois que os itens foram contados
func (r *DealRepository) UpdateHasLineItems(ctx context.Context, dealID string, has bool) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE deals SET has_line_items = $2, updated_at = $3 WHERE id = $1`,
		dealID, has, time.Now(),
	)
	return err
}
