package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xavierca1/ligue-crm-sync/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

const contactColumns = `id, remote_id, email, firstname, lastname, phone,
	portal_user_id, portal_synced_at, portal_sync_ok, created_at, updated_at`

func (r *ContactRepository) FindByRemoteID(ctx context.Context, remoteID string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE remote_id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, remoteID))
}

func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

// Upsert resolve a linha existente por remote_id PRIMEIRO, depois por email
// (contato pode ter nascido por fluxo só-email, antes do ID do HubSpot existir).
// Tudo dentro de uma transação: dois upserts concorrentes do mesmo remote_id
// não podem gerar linha duplicada.
// O retorno é a linha MERGEADA: o estado do Portal (portal_user_id etc) vive
// só no banco e precisa voltar para quem decide update-vs-create no Portal
func (r *ContactRepository) Upsert(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	var portalUserID sql.NullString
	var portalSyncedAt sql.NullTime
	var portalSyncOK sql.NullBool

	err = tx.QueryRowContext(ctx,
		`SELECT id, portal_user_id, portal_synced_at, portal_sync_ok FROM contacts WHERE remote_id = $1`,
		c.RemoteID).Scan(&existingID, &portalUserID, &portalSyncedAt, &portalSyncOK)
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.QueryRowContext(ctx,
			`SELECT id, portal_user_id, portal_synced_at, portal_sync_ok FROM contacts WHERE email = $1`,
			c.Email).Scan(&existingID, &portalUserID, &portalSyncedAt, &portalSyncOK)
	}

	now := time.Now()

	switch {
	case err == nil:
		// Match por qualquer uma das chaves: atualiza no lugar
		_, err = tx.ExecContext(ctx, `
			UPDATE contacts
			SET remote_id = $2, email = $3, firstname = $4, lastname = $5, phone = $6, updated_at = $7
			WHERE id = $1
		`, existingID, c.RemoteID, c.Email, c.FirstName, c.LastName, c.Phone, now)
		if err != nil {
			return nil, translatePgError(err)
		}
		c.ID = existingID

	case errors.Is(err, sql.ErrNoRows):
		// Nenhuma chave bateu: insere. ON CONFLICT cobre a corrida entre
		// o SELECT acima e este INSERT
		err = tx.QueryRowContext(ctx, `
			INSERT INTO contacts (id, remote_id, email, firstname, lastname, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (remote_id) DO UPDATE
			SET email = EXCLUDED.email, firstname = EXCLUDED.firstname,
			    lastname = EXCLUDED.lastname, phone = EXCLUDED.phone, updated_at = EXCLUDED.updated_at
			RETURNING id, portal_user_id, portal_synced_at, portal_sync_ok
		`, c.ID, c.RemoteID, c.Email, c.FirstName, c.LastName, c.Phone, now, now).
			Scan(&c.ID, &portalUserID, &portalSyncedAt, &portalSyncOK)
		if err != nil {
			return nil, translatePgError(err)
		}

	default:
		return nil, fmt.Errorf("erro ao resolver chave natural: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("erro ao commitar upsert: %w", err)
	}

	c.PortalUserID = portalUserID.String
	if portalSyncedAt.Valid {
		c.PortalSyncedAt = &portalSyncedAt.Time
	}
	c.PortalSyncOK = portalSyncOK.Bool
	c.UpdatedAt = now

	return c, nil
}

func (r *ContactRepository) UpdatePortalSync(ctx context.Context, contactID string, outcome entity.SyncOutcome) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE contacts
		SET portal_user_id = COALESCE(NULLIF($2, ''), portal_user_id),
		    portal_synced_at = $3,
		    portal_sync_ok = $4,
		    updated_at = $3
		WHERE id = $1
	`, contactID, outcome.PortalUserID, outcome.SyncedAt, outcome.Succeeded)

	if err != nil {
		return fmt.Errorf("erro ao gravar resultado do sync: %w", err)
	}
	return nil
}

func (r *ContactRepository) DeleteByRemoteID(ctx context.Context, remoteID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE remote_id = $1`, remoteID)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return entity.ErrContactNotFound
	}
	return nil
}

// FindPortalSyncFailed lista contatos cujo último envio ao Portal falhou,
// para o worker de reconciliação retentar
func (r *ContactRepository) FindPortalSyncFailed(ctx context.Context, limit int) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE portal_sync_ok = false AND portal_synced_at IS NOT NULL
		ORDER BY portal_synced_at ASC
		LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ContactRepository) scanOne(row *sql.Row) (*entity.Contact, error) {
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var c entity.Contact
	var portalUserID sql.NullString
	var portalSyncedAt sql.NullTime
	var portalSyncOK sql.NullBool

	err := row.Scan(
		&c.ID, &c.RemoteID, &c.Email, &c.FirstName, &c.LastName, &c.Phone,
		&portalUserID, &portalSyncedAt, &portalSyncOK, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.PortalUserID = portalUserID.String
	if portalSyncedAt.Valid {
		c.PortalSyncedAt = &portalSyncedAt.Time
	}
	c.PortalSyncOK = portalSyncOK.Bool

	return &c, nil
}

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return entity.ErrEmailAlreadyExists
	}
	return err
}
