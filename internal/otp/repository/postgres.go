package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Rollin-123/belafrica-node-sub000/internal/otp/domain"
)

const (
	insertOTP = `INSERT INTO otp_codes (id, phone_number, code_hash, created_at, expires_at, consumed)
VALUES ($1, $2, $3, $4, $5, FALSE)`

	consumeOTP = `UPDATE otp_codes SET consumed = TRUE, consumed_at = $4
WHERE id = (
    SELECT id FROM otp_codes
    WHERE phone_number = $1 AND code_hash = $2 AND consumed = FALSE AND expires_at > $3
    ORDER BY created_at DESC
    LIMIT 1
    FOR UPDATE SKIP LOCKED
) AND consumed = FALSE
RETURNING id`

	findUnexpiredOTP = `SELECT id, phone_number, code_hash, created_at, expires_at, consumed, consumed_at
FROM otp_codes
WHERE phone_number = $1 AND consumed = FALSE AND expires_at > $2
ORDER BY created_at DESC
LIMIT 1`

	deleteExpiredOTP = `DELETE FROM otp_codes WHERE expires_at < $1`
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an OTP repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the record.
func (r *PostgresRepository) Create(ctx context.Context, rec *domain.Record) error {
	_, err := r.db.ExecContext(ctx, insertOTP, rec.ID, rec.PhoneNumber, rec.CodeHash, rec.CreatedAt, rec.ExpiresAt)
	return err
}

// Consume flips consumed with one UPDATE ... RETURNING; the row lock and the repeated
// consumed = FALSE guard make concurrent submissions of the same code race-safe.
func (r *PostgresRepository) Consume(ctx context.Context, phone, codeHash string, now time.Time) (bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, consumeOTP, phone, codeHash, now, now).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindUnexpiredByPhone returns the newest usable record for phone, or nil if none.
func (r *PostgresRepository) FindUnexpiredByPhone(ctx context.Context, phone string, now time.Time) (*domain.Record, error) {
	rec := &domain.Record{}
	var consumedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, findUnexpiredOTP, phone, now).Scan(
		&rec.ID, &rec.PhoneNumber, &rec.CodeHash, &rec.CreatedAt, &rec.ExpiresAt, &rec.Consumed, &consumedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if consumedAt.Valid {
		t := consumedAt.Time
		rec.ConsumedAt = &t
	}
	return rec, nil
}

// DeleteExpiredBefore removes records whose expiry is older than cutoff.
func (r *PostgresRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredOTP, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
