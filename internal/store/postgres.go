package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const linkColumns = `code, user_id, original_url, short_link, expires_at, click_count, created_at, updated_at`

func (p *PostgresStore) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	var exists bool

	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM short_links WHERE code = $1)`,
		string(code),
	).Scan(&exists)

	return exists, err
}

func (p *PostgresStore) Insert(ctx context.Context, link *shortener.ShortLink) error {
	query := `
		INSERT INTO short_links (` + linkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query,
		string(link.Code),
		link.OwnerID,
		link.DestinationURL,
		link.PublicURL,
		link.ExpiresAt,
		link.ClickCount,
		link.CreatedAt,
		link.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return shortener.ErrCodeConflict
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrCodeConflict
	}

	return nil
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	query := `SELECT ` + linkColumns + ` FROM short_links WHERE code = $1`

	return scanLink(p.pool.QueryRow(ctx, query, string(code)))
}

func (p *PostgresStore) GetOwned(ctx context.Context, code shortener.Code, owner uuid.UUID) (*shortener.ShortLink, error) {
	query := `SELECT ` + linkColumns + ` FROM short_links WHERE code = $1 AND user_id = $2`

	return scanLink(p.pool.QueryRow(ctx, query, string(code), owner))
}

func (p *PostgresStore) ListByOwner(ctx context.Context, owner uuid.UUID) ([]shortener.ShortLink, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM short_links
		WHERE user_id = $1
		ORDER BY created_at DESC, code ASC
	`

	rows, err := p.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (shortener.ShortLink, error) {
		link, err := scanLink(row)
		if err != nil {
			return shortener.ShortLink{}, err
		}

		return *link, nil
	})
}

func (p *PostgresStore) IncrementClicks(ctx context.Context, code shortener.Code) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE short_links SET click_count = click_count + 1 WHERE code = $1`,
		string(code),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) InsertClick(ctx context.Context, click *shortener.ClickEvent) error {
	query := `
		INSERT INTO click_logs (id, short_code, clicked_at, ip_address, user_agent, referer)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		click.ID,
		string(click.Code),
		click.Timestamp,
		click.IPAddress,
		click.UserAgent,
		click.Referer,
	)

	return err
}

func (p *PostgresStore) ListClicks(ctx context.Context, code shortener.Code) ([]shortener.ClickEvent, error) {
	query := `
		SELECT id, short_code, clicked_at, ip_address, user_agent, referer
		FROM click_logs
		WHERE short_code = $1
		ORDER BY clicked_at DESC, id
	`

	rows, err := p.pool.Query(ctx, query, string(code))
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (shortener.ClickEvent, error) {
		var click shortener.ClickEvent

		err := row.Scan(
			&click.ID,
			&click.Code,
			&click.Timestamp,
			&click.IPAddress,
			&click.UserAgent,
			&click.Referer,
		)

		return click, err
	})
}

func scanLink(row pgx.Row) (*shortener.ShortLink, error) {
	var link shortener.ShortLink

	err := row.Scan(
		&link.Code,
		&link.OwnerID,
		&link.DestinationURL,
		&link.PublicURL,
		&link.ExpiresAt,
		&link.ClickCount,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &link, nil
}
