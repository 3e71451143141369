package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/xavierca1/ligue-crm-sync/internal/entity"
)

type LineItemRepository struct {
	DB *sql.DB
}

func NewLineItemRepository(db *sql.DB) *LineItemRepository {
	return &LineItemRepository{DB: db}
}

func (r *LineItemRepository) Upsert(ctx context.Context, li *entity.LineItem) (*entity.LineItem, error) {
	now := time.Now()

	query := `
		INSERT INTO line_items (id, remote_id, name, quantity, price_cents, deal_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (remote_id) DO UPDATE
		SET name = EXCLUDED.name, quantity = EXCLUDED.quantity, price_cents = EXCLUDED.price_cents,
		    deal_id = EXCLUDED.deal_id, updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	err := r.DB.QueryRowContext(ctx, query,
		li.ID, li.RemoteID, li.Name, li.Quantity, li.PriceCents, li.DealID, now, now,
	).Scan(&li.ID)
	if err != nil {
		return nil, err
	}

	li.UpdatedAt = now
	return li, nil
}
