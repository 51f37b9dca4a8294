package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/users"
)

// PostgresUserStore is a PostgreSQL implementation of users.Repository.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a new PostgreSQL-backed user store.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

const userColumns = `id, first_name, last_name, email, password_hash, address, phone_number, created_at, updated_at`

func (p *PostgresUserStore) Create(ctx context.Context, user *users.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := p.pool.Exec(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Address,
		user.PhoneNumber,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return users.ErrEmailTaken
	}

	return err
}

func (p *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return scanUser(p.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (p *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return scanUser(p.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func scanUser(row pgx.Row) (*users.User, error) {
	var user users.User

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Address,
		&user.PhoneNumber,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrNotFound
		}

		return nil, err
	}

	return &user, nil
}
