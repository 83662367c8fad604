package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Rollin-123/belafrica-node-sub000/internal/user/domain"
)

const (
	userColumns = `id, phone_number, pseudo, country_name, nationality_name, community, profile_complete, created_at, updated_at`

	getUserByID    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByPhone = `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`

	// The WHERE on the conflict branch turns a second completion into zero returned rows.
	completeProfile = `INSERT INTO users (id, phone_number, pseudo, country_name, nationality_name, community, profile_complete, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $7)
ON CONFLICT (phone_number) DO UPDATE SET
    pseudo = EXCLUDED.pseudo,
    country_name = EXCLUDED.country_name,
    nationality_name = EXCLUDED.nationality_name,
    community = EXCLUDED.community,
    profile_complete = TRUE,
    updated_at = EXCLUDED.updated_at
WHERE users.profile_complete = FALSE
RETURNING ` + userColumns
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, getUserByID, id)
}

// GetByPhone returns the user with the given phone number, or nil if not found.
func (r *PostgresRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getOne(ctx, getUserByPhone, phone)
}

// CompleteProfile upserts the profile only while profile_complete is false.
func (r *PostgresRepository) CompleteProfile(ctx context.Context, newID, phone string, p domain.Profile, now time.Time) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, completeProfile, newID, phone, p.Pseudo, p.CountryName, p.NationalityName, p.Community, now)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAlreadyComplete
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query, arg string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	if err := row.Scan(&u.ID, &u.PhoneNumber, &u.Pseudo, &u.CountryName, &u.NationalityName,
		&u.Community, &u.ProfileComplete, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}
